package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the kiosk backend's REST API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// NewClient creates a client for baseURL. An empty baseURL uses paths
// relative to the page origin.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// CurrentExperiment fetches the experiment started on the selector page. It
// returns nil without error when there is none.
func (c *Client) CurrentExperiment(ctx context.Context) (*Experiment, error) {
	var exp *Experiment
	status, err := c.do(ctx, http.MethodGet, "/api/experiment/current", nil, &exp, http.StatusNotFound)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound || exp == nil || exp.Frequency <= 0 {
		return nil, nil
	}
	return exp, nil
}

// StartExperiment stores the selected tone as the next experiment.
func (c *Client) StartExperiment(ctx context.Context, tone Tone) error {
	_, err := c.do(ctx, http.MethodPost, "/api/experiment/start", tone, nil)
	return err
}

// Record starts the server-side capture.
func (c *Client) Record(ctx context.Context, req RecordRequest) error {
	_, err := c.do(ctx, http.MethodPost, "/api/experiment/record", req, nil)
	return err
}

// Stop ends the capture and returns the captured media.
func (c *Client) Stop(ctx context.Context) (*StopResult, error) {
	var res StopResult
	if _, err := c.do(ctx, http.MethodPost, "/api/experiment/stop", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Result fetches the last experiment's outcome.
func (c *Client) Result(ctx context.Context) (*Result, error) {
	var res Result
	if _, err := c.do(ctx, http.MethodGet, "/api/experiment/result", nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Save submits the contact form for the last experiment.
func (c *Client) Save(ctx context.Context, sub Submission) error {
	_, err := c.do(ctx, http.MethodPost, "/api/experiment/save", sub, nil)
	return err
}

// UsedFrequencies fetches the explored frequency history.
func (c *Client) UsedFrequencies(ctx context.Context) (History, error) {
	var res usedFrequencies
	if _, err := c.do(ctx, http.MethodGet, "/api/frequencies/used", nil, &res); err != nil {
		return nil, err
	}
	return NewHistory(res.Frequencies), nil
}

// SuggestFrequency asks the backend for an unexplored frequency. Zero means
// the backend had no suggestion.
func (c *Client) SuggestFrequency(ctx context.Context) (float64, error) {
	var res suggestion
	if _, err := c.do(ctx, http.MethodGet, "/api/frequencies/suggest", nil, &res); err != nil {
		return 0, err
	}
	return res.Frequency, nil
}

// do sends a JSON request and decodes a JSON response into out. Statuses in
// allow are returned without error and without decoding.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, allow ...int) (int, error) {
	fail := func(status int, err error) (int, error) {
		netDebug(method, path, "failed:", err)
		return status, &NetworkError{Op: method, Path: path, Status: status, Err: err}
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fail(0, err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fail(0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fail(0, err)
	}
	defer resp.Body.Close()

	for _, s := range allow {
		if resp.StatusCode == s {
			return s, nil
		}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fail(resp.StatusCode, errors.New(http.StatusText(resp.StatusCode)))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return fail(resp.StatusCode, err)
		}
	}
	return resp.StatusCode, nil
}
