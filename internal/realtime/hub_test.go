package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendUnknownSocket(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	err := hub.Send("no-such-socket", "tagged_in_post", nil)
	assert.Error(t, err)
}

func TestRegisterSendUnregister(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		socketID := hub.Register(conn)

		require.NoError(t, hub.Send(socketID, "tagged_in_post", map[string]string{"target_id": "p1"}))

		hub.Unregister(socketID)
		assert.Error(t, hub.Send(socketID, "tagged_in_post", nil))
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer client.Close()

	var ev Event
	require.NoError(t, client.ReadJSON(&ev))
	assert.Equal(t, "tagged_in_post", ev.Event)
}
