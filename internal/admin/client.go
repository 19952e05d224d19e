package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/noah-isme/techfest-api/internal/models"
	appErrors "github.com/noah-isme/techfest-api/pkg/errors"
)

// TokenProvider supplies the bearer token attached to authenticated calls.
// Returning an empty token sends the request unauthenticated.
type TokenProvider interface {
	Token() (string, error)
}

// StaticToken is a fixed bearer token.
type StaticToken string

// Token implements TokenProvider.
func (t StaticToken) Token() (string, error) { return string(t), nil }

// envelope mirrors the API response contract on the consuming side.
type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *appErrors.Error `json:"error"`
}

// Client talks to the events API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      TokenProvider
}

// NewClient builds an API client rooted at baseURL (e.g.
// "https://api.example.org/api"). A nil httpClient gets a sane default.
func NewClient(baseURL string, creds TokenProvider, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		creds:      creds,
	}
}

// ListEvents fetches the full catalogue.
func (c *Client) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	if err := c.do(ctx, http.MethodGet, "/events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches one event by ID.
func (c *Client) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodGet, "/events/"+id, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// CreateEvent submits a new event and returns the stored record.
func (c *Client) CreateEvent(ctx context.Context, input models.EventInput) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodPost, "/events", input, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent replaces an existing event and returns the stored record.
func (c *Client) UpdateEvent(ctx context.Context, id string, input models.EventInput) (*models.Event, error) {
	var event models.Event
	if err := c.do(ctx, http.MethodPut, "/events/"+id, input, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// DeleteEvent removes an event by ID.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+id, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.creds != nil {
		token, err := c.creds.Token()
		if err != nil {
			return fmt.Errorf("resolve credentials: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}

	if resp.StatusCode >= 400 {
		if env.Error != nil {
			return env.Error
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, resp.StatusCode)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%s %s: decode payload: %w", method, path, err)
		}
	}
	return nil
}
