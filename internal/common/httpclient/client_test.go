package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_PostWithHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "world", body["hello"])

		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(0)
	var out struct {
		OK bool `json:"ok"`
	}
	err := client.DoJSON(context.Background(), "POST", srv.URL,
		map[string]string{"Authorization": "Bearer tok"},
		map[string]string{"hello": "world"}, &out)

	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDoJSON_Non2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "nope"}`, http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(0)
	err := client.DoJSON(context.Background(), "GET", srv.URL, nil, nil, nil)

	require.Error(t, err)
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "nope")
}

func TestDoJSON_TruncatesHugeErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(strings.Repeat("x", 100000)))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(0)
	err := client.DoJSON(context.Background(), "GET", srv.URL, nil, nil, nil)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.LessOrEqual(t, len(statusErr.Body), 4096)
}

func TestDoJSON_NilOutSkipsDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	}))
	t.Cleanup(srv.Close)

	client := NewClient(0)
	err := client.DoJSON(context.Background(), "GET", srv.URL, nil, nil, nil)

	assert.NoError(t, err)
}

func TestDoJSON_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(0)
	err := client.DoJSON(ctx, "GET", srv.URL, nil, nil, nil)

	assert.Error(t, err)
}
