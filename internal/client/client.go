package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Client talks to the Kisan Unnati API on behalf of one user
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      *CredentialStore
	notifier   *Notifier
	nav        Navigator

	pending sync.WaitGroup
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithNavigator sets where post-login navigation goes
func WithNavigator(nav Navigator) Option {
	return func(c *Client) { c.nav = nav }
}

// New creates a client for the API at baseURL
func New(baseURL string, store *CredentialStore, notifier *Notifier, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		store:      store,
		notifier:   notifier,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the credential store the client writes to
func (c *Client) Store() *CredentialStore {
	return c.store
}

// do sends a JSON request and returns the status and raw body. Only
// transport failures are errors; HTTP status handling is the caller's.
func (c *Client) do(ctx context.Context, method, path, token string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

func isSuccess(status int) bool {
	return status >= 200 && status <= 299
}

// backendMessage pulls "message" out of an error body, "" when absent
func backendMessage(body []byte) string {
	var msg struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &msg); err != nil {
		return ""
	}
	if msg.Message != "" {
		return msg.Message
	}
	return msg.Error
}

// unwrapData returns the "data" member of an envelope, or body itself
// when the response is flat
func unwrapData(body []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Data) > 0 && string(env.Data) != "null" {
		return env.Data
	}
	return body
}

// call sends a request and decodes the envelope's data into out. Non-2xx
// answers become *APIError carrying the backend message or fallbackMsg.
func (c *Client) call(ctx context.Context, method, path, token string, body, out any, fallbackMsg string) error {
	status, respBody, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return &APIError{Message: fallbackMsg, Err: err}
	}
	if !isSuccess(status) {
		msg := backendMessage(respBody)
		if msg == "" {
			msg = fallbackMsg
		}
		return &APIError{StatusCode: status, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(unwrapData(respBody), out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
