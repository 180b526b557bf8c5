package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospect-pipeline/internal/common/config"
	"prospect-pipeline/internal/common/logger"
)

func newRandomUserService(t *testing.T, baseURL string) *RandomUserService {
	return NewRandomUserService(config.ToolsConfig{
		RandomUserBaseURL: baseURL,
		Timeout:           2,
	}, logger.NewTestLogger(t))
}

func TestGetUsers_Live(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("results"))
		_, _ = w.Write([]byte(`{"results": [
			{"name": {"first": "Ada", "last": "Lovelace"}, "email": "ada@example.com", "location": {"country": "UK"}},
			{"name": {"first": "Alan", "last": "Turing"}, "email": "alan@example.com", "location": {"country": "UK"}},
			{"name": {"first": "Grace", "last": "Hopper"}, "email": "grace@example.com", "location": {"country": "US"}}
		]}`))
	}))
	t.Cleanup(srv.Close)

	result, err := newRandomUserService(t, srv.URL).GetUsers(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "live", result.Source)
	require.Len(t, result.Users, 3)
	assert.Equal(t, "Ada Lovelace", result.Users[0].Name)
	assert.Equal(t, "UK", result.Users[0].Country)
}

func TestGetUsers_ClampsCount(t *testing.T) {
	var requested string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.Query().Get("results")
		_, _ = w.Write([]byte(`{"results": [{"name": {"first": "A", "last": "B"}, "email": "a@b.c", "location": {"country": "X"}}]}`))
	}))
	t.Cleanup(srv.Close)
	svc := newRandomUserService(t, srv.URL)

	_, err := svc.GetUsers(context.Background(), 500)
	require.NoError(t, err)
	assert.Equal(t, "10", requested)

	_, err = svc.GetUsers(context.Background(), 0)
	require.NoError(t, err)
	assert.Equal(t, "1", requested)

	_, err = svc.GetUsers(context.Background(), -7)
	require.NoError(t, err)
	assert.Equal(t, "1", requested)
}

func TestGetUsers_UpstreamDownServesMock(t *testing.T) {
	result, err := newRandomUserService(t, "http://127.0.0.1:1").GetUsers(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "mock", result.Source)
	assert.Len(t, result.Users, 4)
}

func TestRandomUserTool_RejectsOutOfRangeCount(t *testing.T) {
	registry := NewRegistry()
	registry.Register(newRandomUserService(t, "http://127.0.0.1:1").Tool())

	// Schema validation rejects out-of-range values before execution.
	_, err := registry.Call(context.Background(), "get_random_users", map[string]interface{}{"count": float64(50)})
	assert.Error(t, err)

	result, err := registry.Call(context.Background(), "get_random_users", map[string]interface{}{"count": float64(2)})
	require.NoError(t, err)
	users, ok := result.(*RandomUserResult)
	require.True(t, ok)
	assert.Len(t, users.Users, 2)
}
