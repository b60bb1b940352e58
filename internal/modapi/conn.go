package modapi

import (
	"context"
	"io"
	"net/http"

	"modconsole.com/internal/domain"
	"modconsole.com/internal/model"
)

// Conn is a Client bound to one operator's bearer token.
type Conn struct {
	client *Client
	token  string
}

// Token returns the bearer token sent with authenticated requests.
func (c *Conn) Token() string {
	return c.token
}

func (c *Conn) send(ctx context.Context, method, path string, body io.Reader, contentType string, auth bool, out any) error {
	req, err := c.client.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.client.do(req, out)
}

// TotalUsers reads the platform-wide user counter. The endpoint is public.
func (c *Conn) TotalUsers(ctx context.Context) (int64, error) {
	var out struct {
		TotalUsers int64 `json:"total_users"`
	}
	if err := c.send(ctx, http.MethodGet, "/stats/total-users", nil, "", false, &out); err != nil {
		return 0, err
	}
	return out.TotalUsers, nil
}

// TotalReportedUsers reads the reported-user counter. The endpoint is public.
func (c *Conn) TotalReportedUsers(ctx context.Context) (int64, error) {
	var out struct {
		TotalReportedUsers int64 `json:"total_reported_users"`
	}
	if err := c.send(ctx, http.MethodGet, "/stats/total-reported-users", nil, "", false, &out); err != nil {
		return 0, err
	}
	return out.TotalReportedUsers, nil
}

// ReportedUsers lists users that have been flagged by other members.
func (c *Conn) ReportedUsers(ctx context.Context) ([]model.User, error) {
	var out []model.User
	if err := c.send(ctx, http.MethodGet, "/userreport", nil, "", true, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Logout ends the remote session of the bound token.
func (c *Conn) Logout(ctx context.Context) (model.ActionResult, error) {
	var out model.ActionResult
	err := c.send(ctx, http.MethodPost, "/logout", nil, "", true, &out)
	return out, err
}

var (
	_ domain.StatsAPI   = (*Conn)(nil)
	_ domain.SessionAPI = (*Conn)(nil)
)
