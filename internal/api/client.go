package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yaranai/yaranai/internal/domain"
)

const (
	itemsPath  = "/yaranai-items"
	incomePath = "/income-settings"

	// RequestIDHeader carries a per-call identifier for correlating logs.
	RequestIDHeader = "X-Request-ID"
)

// Client provides typed access to the yaranai REST API.
type Client interface {
	// ListItems returns every item in server order.
	ListItems(ctx context.Context) ([]domain.Item, error)

	// CreateItem registers a new item. The response body is ignored.
	CreateItem(ctx context.Context, p domain.ItemPayload) error

	// UpdateItem replaces title and description and returns the server's
	// representation, including refreshed estimates.
	UpdateItem(ctx context.Context, id int64, p domain.ItemPayload) (domain.Item, error)

	// DeleteItem removes an item.
	DeleteItem(ctx context.Context, id int64) error

	// SetIncome submits an income figure and returns the derived hourly rate.
	SetIncome(ctx context.Context, s domain.IncomeSetting) (domain.IncomeResult, error)
}

// httpClient implements Client over net/http with JSON bodies.
type httpClient struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) { c.http = hc }
}

// WithObserver sets the call observer.
func WithObserver(o Observer) Option {
	return func(c *httpClient) {
		if o != nil {
			c.observer = o
		}
	}
}

// NewClient creates a Client rooted at baseURL (for example
// "http://127.0.0.1:8000/api").
func NewClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{},
		observer: NoopObserver{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func itemPath(id int64) string {
	return itemsPath + "/" + strconv.FormatInt(id, 10)
}

func (c *httpClient) ListItems(ctx context.Context) ([]domain.Item, error) {
	var items []domain.Item
	if err := c.get(ctx, itemsPath, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Item{}
	}
	return items, nil
}

func (c *httpClient) CreateItem(ctx context.Context, p domain.ItemPayload) error {
	return c.post(ctx, itemsPath, p, nil)
}

func (c *httpClient) UpdateItem(ctx context.Context, id int64, p domain.ItemPayload) (domain.Item, error) {
	var item domain.Item
	if err := c.put(ctx, itemPath(id), p, &item); err != nil {
		return domain.Item{}, err
	}
	return item, nil
}

func (c *httpClient) DeleteItem(ctx context.Context, id int64) error {
	return c.delete(ctx, itemPath(id))
}

func (c *httpClient) SetIncome(ctx context.Context, s domain.IncomeSetting) (domain.IncomeResult, error) {
	var res domain.IncomeResult
	if err := c.post(ctx, incomePath, s, &res); err != nil {
		return domain.IncomeResult{}, err
	}
	return res, nil
}

// ── verbs ────────────────────────────────────────────────────────────────────

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *httpClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *httpClient) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *httpClient) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs one request. There is no retry: the first failure is final.
func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	start := time.Now()
	reqID := uuid.New().String()

	status, err := c.roundTrip(ctx, method, path, reqID, body, out)

	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		RequestID: reqID,
		Status:    status,
		Latency:   time.Since(start),
		Err:       err,
	})
	return err
}

func (c *httpClient) roundTrip(ctx context.Context, method, path, reqID string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("%w: marshaling request: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: creating request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: reading response: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, &StatusError{
			Method: method,
			Path:   path,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decoding response: %v", ErrRequestFailed, err)
	}
	return resp.StatusCode, nil
}
