package persona

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/soocke/vision-panel-go/domain/errs"
)

// HTTPClient implements Store against the persona API.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewHTTPClient(baseURL string, hc *http.Client, logger *slog.Logger) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc, logger: logger}
}

func (c *HTTPClient) List(ctx context.Context) ([]Persona, error) {
	body, err := c.do(ctx, "list personas", http.MethodGet, "/api/personas", nil)
	if err != nil {
		return nil, err
	}
	var out []Persona
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &errs.RequestError{Op: "list personas", Message: "invalid persona list", Err: err}
	}
	return out, nil
}

func (c *HTTPClient) Create(ctx context.Context, p Persona) error {
	if err := ValidateName(p.Name); err != nil {
		return err
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.LLMParams == nil {
		p.LLMParams = map[string]any{}
	}
	p.Timestamp = ""
	_, err := c.do(ctx, "create persona", http.MethodPost, "/api/personas", p)
	return err
}

func (c *HTTPClient) Update(ctx context.Context, name string, p Payload) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if p.LLMParams == nil {
		p.LLMParams = map[string]any{}
	}
	_, err := c.do(ctx, "update persona", http.MethodPut, "/api/personas/"+url.PathEscape(name), p)
	return err
}

func (c *HTTPClient) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	_, err := c.do(ctx, "delete persona", http.MethodDelete, "/api/personas/"+url.PathEscape(name), nil)
	return err
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var rd io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("%s: encode: %w", op, err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, &errs.RequestError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errs.RequestError{Op: op, Message: op + ": " + err.Error(), Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &errs.RequestError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if c.logger != nil {
			c.logger.Warn("persona request failed", "op", op, "status", resp.StatusCode)
		}
		return nil, &errs.RequestError{Op: op, Status: resp.StatusCode, Message: errs.ResponseDetail(body, resp.StatusCode)}
	}
	return body, nil
}
