package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"panel-rekordow/internal/config"
	"panel-rekordow/internal/database"
	"panel-rekordow/internal/database/dynamotest"
	"panel-rekordow/internal/storage"
	"panel-rekordow/internal/websocket"

	"github.com/stretchr/testify/require"
)

type testEnv struct {
	server  *Server
	handler http.Handler
	fake    *dynamotest.Fake
	blobs   storage.BlobStore
	hub     *websocket.Hub
}

type envOption func(*config.Config)

// newTestEnv wires the real record store over an in-memory table client,
// local blob storage in a temp dir and a running hub.
func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := &config.Config{
		Upload: config.UploadConfig{MaxBytes: 1 << 20},
		CORS:   config.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	fake := dynamotest.New(database.DefaultUsersTable, database.DefaultFilesTable)
	store, err := database.NewStore(fake, database.Tables{})
	require.NoError(t, err)

	blobs, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	hub := websocket.NewHub()
	go hub.Run(ctx)
	t.Cleanup(cancel)

	server := NewServer(cfg, store, blobs, hub)
	return &testEnv{
		server:  server,
		handler: server.Routes(),
		fake:    fake,
		blobs:   blobs,
		hub:     hub,
	}
}

func (e *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, method, target string, payload any) *http.Request {
	t.Helper()
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}
