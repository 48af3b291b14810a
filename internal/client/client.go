// Package client talks to the feedback HTTP API.
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

	"airport-feedback/internal/models"
)

const defaultTimeout = 10 * time.Second

// Client calls the /api/feedback endpoints of one server.
type Client struct {
	baseURL string
	http    *http.Client
}

// New returns a client for the server at baseURL, e.g. http://localhost:5000.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// StatusError is a non-2xx answer from the API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("feedback api returned %d: %s", e.Status, e.Body)
}

// List fetches records newest first. Zero start or end means unbounded.
func (c *Client) List(ctx context.Context, start, end time.Time) ([]models.Feedback, error) {
	params := url.Values{}
	if !start.IsZero() {
		params.Set("startDate", start.Format(time.RFC3339Nano))
	}
	if !end.IsZero() {
		params.Set("endDate", end.Format(time.RFC3339Nano))
	}
	endpoint := c.baseURL + "/api/feedback"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build list request: %w", err)
	}

	var records []models.Feedback
	if err := c.do(req, http.StatusOK, &records); err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	if records == nil {
		records = []models.Feedback{}
	}
	return records, nil
}

// Submit posts one record and returns it as stored.
func (c *Client) Submit(ctx context.Context, location, rating, reasons string) (models.Feedback, error) {
	body, err := json.Marshal(map[string]string{
		"location": location,
		"rating":   rating,
		"reasons":  reasons,
	})
	if err != nil {
		return models.Feedback{}, fmt.Errorf("encode feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/feedback", bytes.NewReader(body))
	if err != nil {
		return models.Feedback{}, fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var created models.Feedback
	if err := c.do(req, http.StatusCreated, &created); err != nil {
		return models.Feedback{}, fmt.Errorf("submit feedback: %w", err)
	}
	return created, nil
}

func (c *Client) do(req *http.Request, want int, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
