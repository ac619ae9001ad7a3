package network

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/envtester/chaos-invaders/shared/messages"
	"github.com/envtester/chaos-invaders/shared/netconfig"
)

// ErrRejected is returned when the controller answers with a non-2xx status.
var ErrRejected = errors.New("request rejected")

// Client talks to the match controller over HTTP/JSON.
// It is safe for concurrent use; every call is independent.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// QueryMatchState fetches the authoritative match snapshot.
func (c *Client) QueryMatchState(ctx context.Context) (*messages.MatchState, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+netconfig.PathCheckGame, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("query match state: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp, netconfig.PathCheckGame); err != nil {
		return nil, err
	}

	var state messages.MatchState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("decode match state: %w", err)
	}
	return &state, nil
}

// RequestDestroy asks the controller to take a target down. A nil error means
// the request was accepted.
func (c *Client) RequestDestroy(ctx context.Context, id string) error {
	return c.post(ctx, netconfig.PathShoot, messages.ShotRequest{ID: id})
}

// NotifyPlayerHit reports that a hostile shot reached the player.
func (c *Client) NotifyPlayerHit(ctx context.Context) error {
	return c.post(ctx, netconfig.PathGetShot, nil)
}

// StartMatch configures and (re)starts a match on the controller.
func (c *Client) StartMatch(ctx context.Context, req messages.StartRequest) error {
	return c.post(ctx, netconfig.PathStartGame, req)
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return checkStatus(resp, path)
}

func checkStatus(resp *http.Response, path string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	err := fmt.Errorf("%w: %s returned status %d", ErrRejected, path, resp.StatusCode)
	log.Printf("[client] %v", err)
	return err
}
