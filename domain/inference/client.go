package inference

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/soocke/vision-panel-go/domain/errs"
)

// Service is the external inference collaborator.
type Service interface {
	ListModels(ctx context.Context) ([]ModelDescriptor, error)
	Run(ctx context.Context, req Request) (Result, error)
}

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 16 << 20

// HTTPClient talks to the inference API over JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewHTTPClient returns a client for baseURL. A nil hc uses a client with a
// 90 second overall timeout; per-request deadlines come from ctx.
func NewHTTPClient(baseURL string, hc *http.Client, logger *slog.Logger) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: 90 * time.Second}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc, logger: logger}
}

// ListModels fetches the model catalog.
func (c *HTTPClient) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	body, err := c.do(ctx, "list models", http.MethodGet, "/api/models", nil)
	if err != nil {
		return nil, err
	}
	models, err := DecodeModels(body)
	if err != nil {
		return nil, &errs.RequestError{Op: "list models", Message: "invalid model catalog", Err: err}
	}
	return models, nil
}

// Run submits req and decodes the typed result.
func (c *HTTPClient) Run(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	payload, err := EncodeRequest(req)
	if err != nil {
		return Result{}, fmt.Errorf("encode request: %w", err)
	}
	start := time.Now()
	body, err := c.do(ctx, "run inference", http.MethodPost, "/api/inference", payload)
	if err != nil {
		return Result{}, err
	}
	res, err := DecodeResult(body)
	if err != nil {
		return Result{}, err
	}
	if c.logger != nil {
		c.logger.Debug("inference done", "model", req.ModelKey, "kind", res.Kind, "items", res.Len(), "duration", time.Since(start))
	}
	return res, nil
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, payload []byte) ([]byte, error) {
	var rd io.Reader
	if payload != nil {
		rd = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, &errs.RequestError{Op: op, Err: err}
	}
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &errs.RequestError{Op: op, Message: op + ": " + transportMessage(err), Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &errs.RequestError{Op: op, Status: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &errs.RequestError{Op: op, Status: resp.StatusCode, Message: errs.ResponseDetail(body, resp.StatusCode)}
	}
	return body, nil
}

func transportMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	}
	return err.Error()
}
