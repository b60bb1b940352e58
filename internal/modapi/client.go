// Package modapi talks to the remote moderation REST service.
package modapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"modconsole.com/internal/config"
	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// Client handles all outgoing communication to the moderation service.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Client for the configured base URL.
func NewClient(cfg config.APIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
	}
}

// WithToken binds a bearer token to every request issued through the returned Conn.
func (c *Client) WithToken(token string) *Conn {
	return &Conn{client: c, token: token}
}

// SignIn exchanges operator credentials for a bearer token.
func (c *Client) SignIn(ctx context.Context, email, password string) (model.SignInResult, error) {
	var out model.SignInResult
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return out, domain.NewInternalError("encode sign-in request", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/login", strings.NewReader(string(body)))
	if err != nil {
		return out, err
	}
	req.Header.Set("Content-Type", "application/json")
	err = c.do(req, &out)
	return out, err
}

// Image fetches a stored avatar. It is served without authentication.
func (c *Client) Image(ctx context.Context, kind model.Kind, file string) ([]byte, string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, kind.ImagePath(file), nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", domain.NewUnavailableError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", domain.NewUnavailableError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", domain.NewUpstreamError(resp.StatusCode, extractMessage(data))
	}
	return data, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("build %s %s", method, path), err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req and decodes a 2xx JSON body into out. Non-2xx responses become
// an *domain.AppError carrying the server's message.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return domain.NewUnavailableError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewUnavailableError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.NewUpstreamError(resp.StatusCode, extractMessage(data))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return domain.NewInternalError(fmt.Sprintf("decode %s %s", req.Method, req.URL.Path), err)
	}
	return nil
}

// extractMessage pulls a human readable message out of an error body.
func extractMessage(data []byte) string {
	var body struct {
		Message    string `json:"message"`
		Error      string `json:"error"`
		ErrorUpper string `json:"Error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	switch {
	case body.Message != "":
		return body.Message
	case body.Error != "":
		return body.Error
	default:
		return body.ErrorUpper
	}
}
