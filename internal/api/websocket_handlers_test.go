package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func dialFeed(t *testing.T, srv *httptest.Server, query string) (*gws.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws" + query
	return gws.DefaultDialer.Dial(url, nil)
}

func readEvent(t *testing.T, conn *gws.Conn) EventMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var event EventMessage
	require.NoError(t, json.Unmarshal(data, &event))
	return event
}

func TestAPI_EventFeed(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	conn, _, err := dialFeed(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	resp, err := http.Post(srv.URL+"/api/v1/users", "application/json",
		strings.NewReader(`{"name":"Ada Lovelace","email":"ada@example.com"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	event := readEvent(t, conn)
	require.Equal(t, EventUserCreated, event.EventType)
	payload, ok := event.Payload.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "Ada Lovelace", payload["name"])
	userID, _ := payload["id"].(string)
	require.NotEmpty(t, userID)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/users/"+userID, nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	event = readEvent(t, conn)
	require.Equal(t, EventUserDeleted, event.EventType)
	require.Equal(t, map[string]any{"id": userID}, event.Payload)
}

func TestAPI_EventFeed_RequiresToken(t *testing.T) {
	env := newTestEnv(t, withAuth(t))
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	_, resp, err := dialFeed(t, srv, "")
	require.ErrorIs(t, err, gws.ErrBadHandshake)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := login(t, env)
	conn, _, err := dialFeed(t, srv, "?token="+token.AccessToken)
	require.NoError(t, err)
	conn.Close()
}

func TestAPI_EventFeed_DeleteOfMissingIDStillBroadcasts(t *testing.T) {
	env := newTestEnv(t)
	srv := httptest.NewServer(env.handler)
	defer srv.Close()

	conn, _, err := dialFeed(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return env.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/files/never-existed", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	event := readEvent(t, conn)
	require.Equal(t, EventFileDeleted, event.EventType)
	require.Equal(t, map[string]any{"id": "never-existed"}, event.Payload)
}
