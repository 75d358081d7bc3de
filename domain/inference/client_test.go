package inference

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/vision-panel-go/domain/errs"
)

func TestHTTPClient_Run(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/inference", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		_, _ = io.WriteString(w, `{"kind":"detection","image_width":640,"image_height":480,"items":[{"box":{"x1":1,"y1":2,"x2":3,"y2":4},"label":"cat","score":0.91}]}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL+"/", nil, nil)
	res, err := c.Run(context.Background(), Request{SubjectID: testSubject, SubjectKind: SubjectImage, ModelKey: "detr-resnet-50", Threshold: 0.5, TopK: 5})
	require.NoError(t, err)
	assert.Equal(t, KindDetection, res.Kind)
	require.Len(t, res.Detections, 1)
	assert.Equal(t, "detr-resnet-50", got["model_key"])
	assert.Equal(t, 0.5, got["threshold"])
}

func TestHTTPClient_ServerErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"detail":"model not loaded"}`)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil, nil)
	_, err := c.Run(context.Background(), Request{SubjectID: testSubject, SubjectKind: SubjectImage, ModelKey: "m", Threshold: 0.5, TopK: 1})
	var reqErr *errs.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusInternalServerError, reqErr.Status)
	assert.Equal(t, "model not loaded", errs.Message(err))
}

func TestHTTPClient_ValidationBeforeNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls.Add(1) }))
	defer srv.Close()

	_, err := NewHTTPClient(srv.URL, nil, nil).Run(context.Background(), Request{SubjectID: "nope"})
	assert.True(t, errs.IsValidation(err))
	assert.Zero(t, calls.Load())
}

func TestHTTPClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := NewHTTPClient(srv.URL, nil, nil).ListModels(ctx)
	require.Error(t, err)
	assert.Equal(t, "list models: request timed out", errs.Message(err))
}

type countingService struct {
	mu    sync.Mutex
	calls int
	fail  bool
	gate  chan struct{}
}

func (s *countingService) ListModels(ctx context.Context) ([]ModelDescriptor, error) {
	s.mu.Lock()
	s.calls++
	fail := s.fail
	s.mu.Unlock()
	if s.gate != nil {
		<-s.gate
	}
	if fail {
		return nil, errors.New("offline")
	}
	return []ModelDescriptor{{Key: "detr-resnet-50", Label: "DETR", Type: ModelDetection}}, nil
}

func (s *countingService) Run(context.Context, Request) (Result, error) { return Result{}, nil }

func TestCatalogCache_FetchesOnce(t *testing.T) {
	svc := &countingService{gate: make(chan struct{})}
	cache := NewCatalogCache(svc)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			models, err := cache.Models(context.Background())
			assert.NoError(t, err)
			assert.Len(t, models, 1)
		}()
	}
	time.Sleep(20 * time.Millisecond)
	close(svc.gate)
	wg.Wait()

	_, _ = cache.Models(context.Background())
	assert.Equal(t, 1, svc.calls)
	m, ok := cache.Lookup("detr-resnet-50")
	assert.True(t, ok)
	assert.Equal(t, ModelDetection, m.Type)
}

func TestCatalogCache_FailureNotCached(t *testing.T) {
	svc := &countingService{fail: true}
	cache := NewCatalogCache(svc)
	_, err := cache.Models(context.Background())
	require.Error(t, err)

	svc.fail = false
	models, err := cache.Models(context.Background())
	require.NoError(t, err)
	assert.Len(t, models, 1)
	assert.Equal(t, 2, svc.calls)
}
