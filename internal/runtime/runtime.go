// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runtime detects a local container runtime and launches Spaces
// with it, approximating what the hosting platform does with the declared
// sdk and app_file.
package runtime

import (
	"fmt"
	"io"
	"os/exec"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides container operations: checking availability, building
// images, and running Space containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available() bool

	// Build builds an image from the Dockerfile in dir and tags it.
	Build(dir, tag string, output io.Writer) error

	// Run starts a container per spec, attached to output until it exits.
	Run(spec RunSpec, output io.Writer) error
}

// RunSpec describes one Space container launch.
type RunSpec struct {
	// Image is the container image to run.
	Image string

	// Dir, when set, is bind-mounted read-only at /space and used as the
	// working directory.
	Dir string

	// Port is published on the host and passed to the container.
	Port int

	// Command overrides the image entry point (e.g. the pip install +
	// framework launch line for python SDKs).
	Command []string
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunAttached(name string, args []string, output io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunAttached(name string, args []string, output io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = output
	cmd.Stderr = output
	return cmd.Run()
}

// runtime implements Runtime for a specific container binary. Docker and
// Podman share the same CLI surface for everything spacecard needs.
type runtime struct {
	bin  string
	exec executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) Build(dir, tag string, output io.Writer) error {
	args := []string{"build", "-t", tag, dir}
	if err := r.exec.RunAttached(r.bin, args, output); err != nil {
		return fmt.Errorf("building image %s with %s: %w", tag, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(spec RunSpec, output io.Writer) error {
	args := []string{"run", "--rm"}
	if spec.Port > 0 {
		args = append(args, "-p", fmt.Sprintf("%d:%d", spec.Port, spec.Port))
	}
	if spec.Dir != "" {
		args = append(args, "-v", spec.Dir+":/space:ro", "-w", "/space")
	}
	args = append(args, spec.Image)
	args = append(args, spec.Command...)

	if err := r.exec.RunAttached(r.bin, args, output); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, spec.Image, err)
	}
	return nil
}

var defaultExec executor = &osExecutor{}

// Detect tries docker first, falls back to podman. Returns an error if
// neither runtime is available.
func Detect() (Runtime, error) {
	return detect(defaultExec)
}

func detect(exec executor) (Runtime, error) {
	docker := &runtime{bin: binDocker, exec: exec}
	if docker.Available() {
		return docker, nil
	}

	podman := &runtime{bin: binPodman, exec: exec}
	if podman.Available() {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
