// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hub talks to the hosting platform's REST API to fetch the
// deployed view of a Space and compare it against the local card.
package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/spacecard/internal/httputil"
	"github.com/pdiddy/spacecard/pkg/types"
)

const (
	defaultEndpoint  = "https://huggingface.co"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "spacecard/0.1"
)

// ErrSpaceNotFound is returned when the Hub has no Space under the given ID.
var ErrSpaceNotFound = errors.New("space not found on the hub")

// Client queries the Hub API for Space metadata.
type Client struct {
	cfg    types.HubConfig
	client *http.Client
}

// NewClient builds a Hub client, filling config defaults.
func NewClient(cfg types.HubConfig) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// SpaceInfo is the Hub's view of a deployed Space.
type SpaceInfo struct {
	// ID is the owner/name identifier.
	ID string `json:"id" yaml:"id"`

	// SDK is the runtime the Hub launched the Space with.
	SDK types.SDK `json:"sdk" yaml:"sdk"`

	// Stage is the runtime lifecycle state (e.g. RUNNING, SLEEPING,
	// BUILD_ERROR).
	Stage string `json:"stage" yaml:"stage"`

	// Private marks Spaces hidden from public listings.
	Private bool `json:"private" yaml:"private"`

	// Likes is the listing-page like count.
	Likes int `json:"likes" yaml:"likes"`

	// Card is the configuration card the Hub read at deployment time.
	Card types.Card `json:"card" yaml:"card"`
}

// spaceResponse mirrors the Hub API payload for GET /api/spaces/{id}.
type spaceResponse struct {
	ID      string     `json:"id"`
	SDK     string     `json:"sdk"`
	Private bool       `json:"private"`
	Likes   int        `json:"likes"`
	Runtime struct {
		Stage string `json:"stage"`
	} `json:"runtime"`
	CardData types.Card `json:"cardData"`
}

// Space fetches the deployed metadata for the Space with the given
// owner/name ID. Rate-limited responses are retried with backoff.
func (c *Client) Space(ctx context.Context, id string) (*SpaceInfo, error) {
	url := fmt.Sprintf("%s/api/spaces/%s", c.cfg.Endpoint, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := httputil.DoWithRetry(ctx, c.client, req, c.cfg.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("hub API request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", id, ErrSpaceNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("hub denied access to %s (HTTP %d): check the hf-token secret", id, resp.StatusCode)
	default:
		return nil, fmt.Errorf("hub API returned HTTP %d for %s", resp.StatusCode, id)
	}

	var sr spaceResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing hub response: %w", err)
	}

	return &SpaceInfo{
		ID:      sr.ID,
		SDK:     types.SDK(sr.SDK),
		Stage:   sr.Runtime.Stage,
		Private: sr.Private,
		Likes:   sr.Likes,
		Card:    sr.CardData,
	}, nil
}

// Diff compares the local card against the Hub's deployed view and returns
// one human-readable line per drifted field. An empty slice means the local
// card matches what the Hub is serving.
func Diff(local types.Card, remote *SpaceInfo) []string {
	var drift []string

	add := func(field string, localVal, remoteVal any) {
		drift = append(drift, fmt.Sprintf("%s: local %v, hub %v", field, localVal, remoteVal))
	}

	if remote.SDK != "" && local.SDK != remote.SDK {
		add("sdk", local.SDK, remote.SDK)
	}
	if remote.Card.Title != "" && local.Title != remote.Card.Title {
		add("title", quoted(local.Title), quoted(remote.Card.Title))
	}
	if remote.Card.Emoji != "" && local.Emoji != remote.Card.Emoji {
		add("emoji", local.Emoji, remote.Card.Emoji)
	}
	if remote.Card.AppFile != "" && local.AppFile != remote.Card.AppFile {
		add("app_file", local.AppFile, remote.Card.AppFile)
	}
	if local.Pinned != remote.Card.Pinned {
		add("pinned", local.Pinned, remote.Card.Pinned)
	}
	if remote.Card.ColorFrom != "" && local.ColorFrom != remote.Card.ColorFrom {
		add("colorFrom", local.ColorFrom, remote.Card.ColorFrom)
	}
	if remote.Card.ColorTo != "" && local.ColorTo != remote.Card.ColorTo {
		add("colorTo", local.ColorTo, remote.Card.ColorTo)
	}

	return drift
}

func quoted(s string) string {
	return fmt.Sprintf("%q", s)
}
