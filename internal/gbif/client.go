package gbif

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/agenthands/gbif-reconcile/internal/config"
	"github.com/agenthands/gbif-reconcile/internal/core/model"
)

var (
	ErrUnexpectedStatus = errors.New("gbif: unexpected status")
	ErrMissingResults   = errors.New("gbif: response has no results")
)

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

func NewClient(cfg config.GBIFConfig) *Client {
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
	}
}

// NewClientWithHTTP is NewClient with a caller supplied http.Client.
func NewClientWithHTTP(cfg config.GBIFConfig, httpClient *http.Client) *Client {
	c := NewClient(cfg)
	c.http = httpClient
	return c
}

// page mirrors the GBIF paging envelope. Results is a pointer so a missing
// "results" key can be told apart from an empty list.
type page struct {
	Offset  int                `json:"offset"`
	Limit   int                `json:"limit"`
	Count   int                `json:"count"`
	Results *[]model.RawRecord `json:"results"`
}

// MatchSearch calls GET {base}/species?name=...
func (c *Client) MatchSearch(ctx context.Context, name string, offset, limit int) ([]model.RawRecord, error) {
	p, err := c.get(ctx, "/species", url.Values{
		"name":   {name},
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	return *p.Results, nil
}

// FullTextSearch calls GET {base}/species/search?q=...
func (c *Client) FullTextSearch(ctx context.Context, q string, offset, limit int) (*model.SearchPage, error) {
	p, err := c.get(ctx, "/species/search", url.Values{
		"q":      {q},
		"offset": {strconv.Itoa(offset)},
		"limit":  {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, err
	}
	return &model.SearchPage{
		Offset:  p.Offset,
		Limit:   p.Limit,
		Count:   p.Count,
		Results: *p.Results,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values) (*page, error) {
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, resp.StatusCode, path)
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	if p.Results == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingResults, path)
	}

	return &p, nil
}
