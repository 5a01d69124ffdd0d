// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runtime

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/spacecard/pkg/types"
)

// mockExecutor records calls and returns configured responses.
type mockExecutor struct {
	availableBins map[string]bool // binary -> whether LookPath succeeds
	runnableCmds  map[string]bool // "bin arg1 arg2" -> whether RunSilent succeeds
	attachedFunc  func(name string, args []string, output io.Writer) error
	attachedCalls [][]string // recorded RunAttached invocations: [bin, args...]
}

func (m *mockExecutor) LookPath(file string) (string, error) {
	if m.availableBins[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found: " + file)
}

func (m *mockExecutor) RunSilent(name string, args ...string) error {
	key := name + " " + strings.Join(args, " ")
	if m.runnableCmds[key] {
		return nil
	}
	return errors.New("command failed: " + key)
}

func (m *mockExecutor) RunAttached(name string, args []string, output io.Writer) error {
	m.attachedCalls = append(m.attachedCalls, append([]string{name}, args...))
	if m.attachedFunc != nil {
		return m.attachedFunc(name, args, output)
	}
	return nil
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		exec     *mockExecutor
		wantName string
		wantErr  bool
	}{
		{
			name: "docker available",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true},
				runnableCmds:  map[string]bool{"docker info": true},
			},
			wantName: "docker",
		},
		{
			name: "podman fallback when docker missing",
			exec: &mockExecutor{
				availableBins: map[string]bool{"podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name: "docker on PATH but info fails, podman works",
			exec: &mockExecutor{
				availableBins: map[string]bool{"docker": true, "podman": true},
				runnableCmds:  map[string]bool{"podman info": true},
			},
			wantName: "podman",
		},
		{
			name:    "neither available",
			exec:    &mockExecutor{},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt, err := detect(tt.exec)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), "no container runtime available") {
					t.Errorf("error should mention no runtime available, got: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if rt.Name() != tt.wantName {
				t.Errorf("got runtime %q, want %q", rt.Name(), tt.wantName)
			}
		})
	}
}

func TestRun_ArgsAssembly(t *testing.T) {
	exec := &mockExecutor{}
	rt := &runtime{bin: "docker", exec: exec}

	var out bytes.Buffer
	spec := RunSpec{
		Image:   "python:3.11-slim",
		Dir:     "/work/demo",
		Port:    7860,
		Command: []string{"sh", "-c", "python app.py"},
	}
	if err := rt.Run(spec, &out); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(exec.attachedCalls) != 1 {
		t.Fatalf("expected 1 container invocation, got %d", len(exec.attachedCalls))
	}
	got := strings.Join(exec.attachedCalls[0], " ")
	for _, want := range []string{
		"docker run --rm",
		"-p 7860:7860",
		"-v /work/demo:/space:ro",
		"-w /space",
		"python:3.11-slim sh -c python app.py",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("invocation %q missing %q", got, want)
		}
	}
}

func TestRun_FailureWraps(t *testing.T) {
	exec := &mockExecutor{
		attachedFunc: func(string, []string, io.Writer) error {
			return errors.New("container exited with code 1")
		},
	}
	rt := &runtime{bin: "podman", exec: exec}

	err := rt.Run(RunSpec{Image: "python:3.11-slim"}, io.Discard)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "podman") {
		t.Errorf("error should name the runtime: %v", err)
	}
}

func TestLaunch_PythonSDKs(t *testing.T) {
	tests := []struct {
		name     string
		sdk      types.SDK
		version  string
		wantFrag []string
	}{
		{
			name: "streamlit",
			sdk:  types.SDKStreamlit,
			wantFrag: []string{
				"pip install --quiet streamlit",
				"streamlit run app.py --server.port 7860 --server.address 0.0.0.0",
			},
		},
		{
			name:    "gradio with pinned version",
			sdk:     types.SDKGradio,
			version: "4.36.1",
			wantFrag: []string{
				"pip install --quiet gradio==4.36.1",
				"GRADIO_SERVER_PORT=7860 python app.py",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{}
			rt := &runtime{bin: "docker", exec: exec}

			c := types.Card{SDK: tt.sdk, AppFile: "app.py", SDKVersion: tt.version}
			var out bytes.Buffer
			if err := Launch(rt, c, "/work/demo", types.RunConfig{}, &out); err != nil {
				t.Fatalf("Launch: %v", err)
			}

			got := strings.Join(exec.attachedCalls[0], " ")
			for _, frag := range tt.wantFrag {
				if !strings.Contains(got, frag) {
					t.Errorf("invocation %q missing %q", got, frag)
				}
			}
			if !strings.Contains(out.String(), "Launching") {
				t.Errorf("missing launch log: %q", out.String())
			}
		})
	}
}

func TestLaunch_Docker(t *testing.T) {
	exec := &mockExecutor{}
	rt := &runtime{bin: "docker", exec: exec}

	c := types.Card{Title: "PDF Table Genius", SDK: types.SDKDocker, AppFile: "Dockerfile"}
	var out bytes.Buffer
	if err := Launch(rt, c, "/work/demo", types.RunConfig{Port: 8080}, &out); err != nil {
		t.Fatalf("Launch: %v", err)
	}

	if len(exec.attachedCalls) != 2 {
		t.Fatalf("expected build then run, got %d calls", len(exec.attachedCalls))
	}
	build := strings.Join(exec.attachedCalls[0], " ")
	if !strings.Contains(build, "build -t spacecard/pdf-table-genius:latest /work/demo") {
		t.Errorf("unexpected build invocation: %q", build)
	}
	run := strings.Join(exec.attachedCalls[1], " ")
	if !strings.Contains(run, "-p 8080:8080") || !strings.Contains(run, "spacecard/pdf-table-genius:latest") {
		t.Errorf("unexpected run invocation: %q", run)
	}
}

func TestLaunch_Static(t *testing.T) {
	rt := &runtime{bin: "docker", exec: &mockExecutor{}}
	c := types.Card{SDK: types.SDKStatic, AppFile: "index.html"}

	err := Launch(rt, c, "/work/demo", types.RunConfig{}, io.Discard)
	if err == nil {
		t.Fatal("expected error for static sdk")
	}
	if !strings.Contains(err.Error(), "index.html") {
		t.Errorf("error should name the entry file: %v", err)
	}
}
