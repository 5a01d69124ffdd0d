// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/spacecard/internal/httputil"
	"github.com/pdiddy/spacecard/pkg/types"
)

func init() {
	// Use a tiny base delay so retry tests finish quickly.
	httputil.RetryBaseDelay = 1 * time.Millisecond
}

const spacePayload = `{
	"id": "alice/pdf-genius",
	"sdk": "streamlit",
	"private": false,
	"likes": 12,
	"runtime": {"stage": "RUNNING"},
	"cardData": {
		"title": "PDF Table Genius",
		"emoji": "📋",
		"colorFrom": "blue",
		"colorTo": "indigo",
		"sdk": "streamlit",
		"app_file": "App_For_PDF_To_Dataframe.py",
		"pinned": false
	}
}`

func testClient(ts *httptest.Server, cfg types.HubConfig) *Client {
	cfg.Endpoint = ts.URL
	c := NewClient(cfg)
	c.client = ts.Client()
	return c
}

func TestSpace(t *testing.T) {
	var gotPath, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(spacePayload))
	}))
	defer ts.Close()

	client := testClient(ts, types.HubConfig{Token: "hf_secret"})
	info, err := client.Space(context.Background(), "alice/pdf-genius")
	require.NoError(t, err)

	assert.Equal(t, "/api/spaces/alice/pdf-genius", gotPath)
	assert.Equal(t, "Bearer hf_secret", gotAuth)
	assert.Equal(t, "alice/pdf-genius", info.ID)
	assert.Equal(t, types.SDKStreamlit, info.SDK)
	assert.Equal(t, "RUNNING", info.Stage)
	assert.Equal(t, 12, info.Likes)
	assert.Equal(t, "PDF Table Genius", info.Card.Title)
}

func TestSpace_NotFound(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := testClient(ts, types.HubConfig{})
	_, err := client.Space(context.Background(), "nobody/nothing")
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestSpace_AuthDenied(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := testClient(ts, types.HubConfig{})
	_, err := client.Space(context.Background(), "alice/private-space")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "hf-token")
}

func TestSpace_RetriesRateLimit(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(spacePayload))
	}))
	defer ts.Close()

	client := testClient(ts, types.HubConfig{MaxRetries: 5})
	info, err := client.Space(context.Background(), "alice/pdf-genius")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.Equal(t, "alice/pdf-genius", info.ID)
}

func TestSpace_BadJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer ts.Close()

	client := testClient(ts, types.HubConfig{})
	_, err := client.Space(context.Background(), "alice/pdf-genius")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing hub response")
}

func TestDiff(t *testing.T) {
	var remote SpaceInfo
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "alice/pdf-genius",
		"sdk": "streamlit",
		"card": {
			"title": "PDF Table Genius",
			"emoji": "📋",
			"sdk": "streamlit",
			"app_file": "App_For_PDF_To_Dataframe.py",
			"pinned": false
		}
	}`), &remote))

	local := types.Card{
		Title:   "PDF Table Genius",
		Emoji:   "📋",
		SDK:     types.SDKStreamlit,
		AppFile: "App_For_PDF_To_Dataframe.py",
	}
	assert.Empty(t, Diff(local, &remote), "matching cards should show no drift")

	local.SDK = types.SDKGradio
	local.Pinned = true
	drift := Diff(local, &remote)
	require.Len(t, drift, 2)
	assert.Contains(t, drift[0], "sdk")
	assert.Contains(t, drift[1], "pinned")
}

func TestDiff_IgnoresUnsetRemoteFields(t *testing.T) {
	// A Hub payload without cardData should not flag every local field.
	remote := &SpaceInfo{ID: "alice/demo", SDK: types.SDKGradio}
	local := types.Card{Title: "Demo", Emoji: "🚀", SDK: types.SDKGradio, AppFile: "app.py"}
	assert.Empty(t, Diff(local, remote))
}
