// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/formbuilder/formmodel"
	"github.com/danielhkuo/formbuilder/models"
	"github.com/danielhkuo/formbuilder/store"
)

// Client talks to a running form builder server. It implements store.Store,
// so a builder.Controller can edit remote forms.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ store.Store = (*Client)(nil)

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// APIError is a non-2xx response that is not a validation or not-found error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// New creates a client for the server at cfg.BaseURL.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) List(ctx context.Context) ([]models.FormSummary, error) {
	var forms []models.FormSummary
	if err := c.do(ctx, http.MethodGet, "/api/forms", nil, &forms); err != nil {
		return nil, err
	}
	return forms, nil
}

func (c *Client) Get(ctx context.Context, id string) (*models.Form, error) {
	var form models.Form
	if err := c.do(ctx, http.MethodGet, formPath(id), nil, &form); err != nil {
		return nil, err
	}
	return &form, nil
}

func (c *Client) Create(ctx context.Context, form *models.Form) (*models.Form, error) {
	var created models.Form
	if err := c.do(ctx, http.MethodPost, "/api/forms", form, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Update replaces the whole document: title, inputs and sections are all sent.
func (c *Client) Update(ctx context.Context, id string, form *models.Form) (*models.Form, error) {
	req := models.UpdateFormRequest{
		Title:    &form.Title,
		Inputs:   &form.Inputs,
		Sections: &form.Sections,
	}
	var updated models.Form
	if err := c.do(ctx, http.MethodPut, formPath(id), req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, formPath(id), nil, nil)
}

func (c *Client) Submit(ctx context.Context, formID string, data map[string]any) (*models.Submission, error) {
	if data == nil {
		data = map[string]any{}
	}
	var resp models.SubmitFormResponse
	if err := c.do(ctx, http.MethodPost, formPath(formID)+"/submit", data, &resp); err != nil {
		return nil, err
	}
	return &resp.Submission, nil
}

func (c *Client) ListSubmissions(ctx context.Context, formID string) ([]models.Submission, error) {
	var subs []models.Submission
	if err := c.do(ctx, http.MethodGet, formPath(formID)+"/submissions", nil, &subs); err != nil {
		return nil, err
	}
	return subs, nil
}

// Close is a no-op; the client holds no connections of its own.
func (c *Client) Close() error {
	return nil
}

func formPath(id string) string {
	return "/api/forms/" + url.PathEscape(id)
}

// do sends a JSON request and decodes a 2xx response into out. Error
// responses map onto the store's errors: 404 is store.ErrNotFound and 400 a
// *formmodel.ValidationError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	op := method + " " + path

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &store.PersistenceError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &store.PersistenceError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode >= 300 {
		var apiErr models.ErrorResponse
		if json.Unmarshal(respBody, &apiErr) != nil || apiErr.Error == "" {
			apiErr.Error = strings.TrimSpace(string(respBody))
		}
		switch resp.StatusCode {
		case http.StatusNotFound:
			return store.ErrNotFound
		case http.StatusBadRequest:
			return &formmodel.ValidationError{Message: apiErr.Error}
		default:
			return &store.PersistenceError{Op: op, Err: &APIError{Status: resp.StatusCode, Message: apiErr.Error}}
		}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return &store.PersistenceError{Op: op, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	return nil
}
