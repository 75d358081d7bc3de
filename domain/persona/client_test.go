package persona

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/vision-panel-go/domain/errs"
)

func TestClientRoutes(t *testing.T) {
	type call struct {
		method, path string
		body         map[string]any
	}
	var calls []call
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.EscapedPath()}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &c.body)
		}
		calls = append(calls, c)
		switch r.Method {
		case http.MethodGet:
			_, _ = io.WriteString(w, `[{"persona_name":"Analyst","initial_prompt":"a","final_prompt":"b","llm_params":{"temperature":0.2},"timestamp":"2025-01-01 10:00:00.000000"}]`)
		case http.MethodPost:
			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"message":"ok"}`)
		default:
			_, _ = io.WriteString(w, `{"message":"ok"}`)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil, nil)
	ctx := context.Background()

	list, err := c.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Analyst", list[0].Name)
	assert.Equal(t, 0.2, list[0].LLMParams["temperature"])

	require.NoError(t, c.Create(ctx, Persona{Name: "  Tutor ", InitialPrompt: "hi"}))
	require.NoError(t, c.Update(ctx, "Tutor Bot", Payload{FinalPrompt: "bye"}))
	require.NoError(t, c.Delete(ctx, "Tutor Bot"))

	require.Len(t, calls, 4)
	assert.Equal(t, "Tutor", calls[1].body["persona_name"])
	assert.Equal(t, map[string]any{}, calls[1].body["llm_params"])
	assert.Equal(t, http.MethodPut, calls[2].method)
	assert.Equal(t, "/api/personas/Tutor%20Bot", calls[2].path)
	assert.Equal(t, "bye", calls[2].body["final_prompt"])
	assert.Equal(t, http.MethodDelete, calls[3].method)
}

func TestClientBlankNameNeverCallsServer(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits.Add(1) }))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, nil, nil)
	ctx := context.Background()
	assert.True(t, errs.IsValidation(c.Create(ctx, Persona{Name: "   "})))
	assert.True(t, errs.IsValidation(c.Update(ctx, "", Payload{})))
	assert.True(t, errs.IsValidation(c.Delete(ctx, "\t")))
	assert.Zero(t, hits.Load())
}

func TestClientServerDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"detail":"Persona 'Tutor' already exists"}`)
	}))
	defer srv.Close()

	err := NewHTTPClient(srv.URL, nil, nil).Create(context.Background(), Persona{Name: "Tutor"})
	var reqErr *errs.RequestError
	require.True(t, errors.As(err, &reqErr))
	assert.Equal(t, http.StatusConflict, reqErr.Status)
	assert.Equal(t, "Persona 'Tutor' already exists", errs.Message(err))
}
