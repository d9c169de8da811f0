package seminars

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aura-seminar/admin/internal/models"
	"github.com/aura-seminar/admin/internal/monitoring"
)

// ErrNotFound is returned when a seminar id is not present in the loaded list.
var ErrNotFound = errors.New("seminar not found")

// StatusError is returned when the store answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Store is the remote seminar collection.
type Store interface {
	List(ctx context.Context) ([]models.Seminar, error)
	Create(ctx context.Context, s models.Seminar) error
	Update(ctx context.Context, s models.Seminar) error
	Delete(ctx context.Context, id models.ID) error
}

// Client talks to the remote seminar store at a base URL.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a store client. baseURL must not be empty.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("seminar store base url is empty")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}, nil
}

// List handles GET {base}. Rows that do not decode are skipped and logged so
// one bad record does not hide the rest.
func (c *Client) List(ctx context.Context) ([]models.Seminar, error) {
	var rows []json.RawMessage
	if err := c.do(ctx, "list", http.MethodGet, c.baseURL, nil, &rows); err != nil {
		return nil, err
	}
	list := make([]models.Seminar, 0, len(rows))
	for i, row := range rows {
		var s models.Seminar
		if err := json.Unmarshal(row, &s); err != nil {
			c.logger.Warn("skipping undecodable seminar",
				zap.Int("index", i),
				zap.ByteString("row", row),
				zap.Error(err),
			)
			continue
		}
		list = append(list, s)
	}
	return list, nil
}

// Create handles POST {base} with the full record, including a client-assigned id.
func (c *Client) Create(ctx context.Context, s models.Seminar) error {
	return c.do(ctx, "create", http.MethodPost, c.baseURL, s, nil)
}

// Update handles PUT {base}/{id}, replacing the whole record.
func (c *Client) Update(ctx context.Context, s models.Seminar) error {
	return c.do(ctx, "update", http.MethodPut, c.itemURL(s.ID), s, nil)
}

// Delete handles DELETE {base}/{id}.
func (c *Client) Delete(ctx context.Context, id models.ID) error {
	return c.do(ctx, "delete", http.MethodDelete, c.itemURL(id), nil, nil)
}

func (c *Client) itemURL(id models.ID) string {
	return c.baseURL + "/" + id.String()
}

func (c *Client) do(ctx context.Context, op, method, url string, in, out interface{}) (err error) {
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		monitoring.TrackStoreRequest(op, status, time.Since(start))
	}()

	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", op, err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s seminar: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("seminar store rejected request",
			zap.String("operation", op),
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: string(snippet)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}
