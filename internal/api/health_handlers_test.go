package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"panel-rekordow/internal/config"
	"panel-rekordow/internal/database"
	"panel-rekordow/internal/database/dynamotest"

	"github.com/stretchr/testify/require"
)

func TestAPI_Health(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestAPI_Health_MissingTable(t *testing.T) {
	store, err := database.NewStore(dynamotest.New(database.DefaultUsersTable), database.Tables{})
	require.NoError(t, err)
	server := NewServer(&config.Config{}, store, nil, nil)

	rr := httptest.NewRecorder()
	server.Routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	require.JSONEq(t, `{"status":"unavailable"}`, rr.Body.String())
}

func TestAPI_Banner(t *testing.T) {
	env := newTestEnv(t)

	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "/swagger/index.html")
}

func TestAPI_Metrics(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	rr := env.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	require.True(t, strings.Contains(string(body), `http_requests_total{method="GET",route="/api/v1/users",status="200"}`), string(body))
	require.Contains(t, string(body), `record_store_operations_total{operation="list",status="ok",table="Users"}`)
}
