// Package integration is a client of the kdset HTTP API.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"

	"github.com/go-sod/kdset/pkg/container/kdtree"
	"github.com/go-sod/kdset/pkg/geom"
)

type prefixRoundTripper struct {
	addr string
	rt   http.RoundTripper
}

func (p *prefixRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	u := r.URL
	if u.Scheme == "" {
		u.Scheme = "http"
	}
	if u.Host == "" {
		u.Host = p.addr
	}

	return p.rt.RoundTrip(r)
}

func NewClient(addr string) *Client {
	return &Client{client: &http.Client{Transport: &prefixRoundTripper{addr: addr, rt: http.DefaultTransport}}}
}

type Client struct {
	client *http.Client
}

// StatusError is returned for every response other than 200 OK.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (c *Client) post(ctx context.Context, path string, in, out interface{}) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("unable marshal %s request: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("create new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("error with sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// Insert returns how many points were new and the index size after the call.
func (c *Client) Insert(ctx context.Context, points ...geom.Point) (inserted, size int, err error) {
	var resp struct {
		Inserted int `json:"inserted"`
		Size     int `json:"size"`
	}
	if err := c.post(ctx, "/insert", struct {
		Points []geom.Point `json:"points"`
	}{points}, &resp); err != nil {
		return 0, 0, err
	}
	return resp.Inserted, resp.Size, nil
}

func (c *Client) Contains(ctx context.Context, p geom.Point) (bool, error) {
	var resp struct {
		Contains bool `json:"contains"`
	}
	err := c.post(ctx, "/contains", struct {
		Point geom.Point `json:"point"`
	}{p}, &resp)
	return resp.Contains, err
}

func (c *Client) Range(ctx context.Context, r geom.Rect) ([]geom.Point, error) {
	var resp struct {
		Points []geom.Point `json:"points"`
	}
	err := c.post(ctx, "/range", struct {
		Rect geom.Rect `json:"rect"`
	}{r}, &resp)
	return resp.Points, err
}

func (c *Client) Nearest(ctx context.Context, p geom.Point, k int) ([]geom.Point, error) {
	var resp struct {
		Points []geom.Point `json:"points"`
	}
	err := c.post(ctx, "/nearest", struct {
		Point geom.Point `json:"point"`
		K     int        `json:"k,omitempty"`
	}{p, k}, &resp)
	return resp.Points, err
}

func (c *Client) Partitions(ctx context.Context) ([]kdtree.Partition, error) {
	var resp struct {
		Partitions []kdtree.Partition `json:"partitions"`
	}
	err := c.post(ctx, "/partitions", struct{}{}, &resp)
	return resp.Partitions, err
}

func (c *Client) Health(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create new request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	return resp, nil
}
