// file: websocket/hub_test.go
package websocket

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// fakeConn satisfies WSConn without a network.
type fakeConn struct{}

func (fakeConn) WriteMessage(int, []byte) error    { return nil }
func (fakeConn) SetWriteDeadline(time.Time) error  { return nil }
func (fakeConn) ReadMessage() (int, []byte, error) { return 0, nil, net.ErrClosed }
func (fakeConn) Close() error                      { return nil }
func (fakeConn) RemoteAddr() net.Addr              { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)} }
func (fakeConn) SetReadLimit(int64)                {}
func (fakeConn) SetReadDeadline(time.Time) error   { return nil }
func (fakeConn) SetPongHandler(func(string) error) {}

func startHubServer(t *testing.T) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub("http://dashboard.test")
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWs(w, r, r.URL.Query().Get("user"))
	}))
	t.Cleanup(func() {
		server.Close()
		cancel()
		<-hub.Done()
	})
	return hub, server
}

func dial(t *testing.T, server *httptest.Server, user string) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?user=" + user
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err, "WebSocket connection should succeed")
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestHub_RunStopsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	hub := NewHub("")
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)

	cancel()
	select {
	case <-hub.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}

	assert.False(t, hub.register(&Connection{conn: fakeConn{}, send: make(chan []byte, 1), hub: hub}),
		"a stopped hub refuses new connections")
}

func TestHub_NotifyReachesOnlyThatUser(t *testing.T) {
	hub, server := startHubServer(t)
	alice := dial(t, server, "alice")
	bob := dial(t, server, "bob")

	require.Eventually(t, func() bool {
		return hub.ConnectionCount("alice") == 1 && hub.ConnectionCount("bob") == 1
	}, time.Second, 10*time.Millisecond)

	hub.Notify("alice", "success", "Hackathon added successfully!")

	require.NoError(t, alice.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := alice.ReadMessage()
	require.NoError(t, err)

	var n Notification
	require.NoError(t, json.Unmarshal(data, &n))
	assert.Equal(t, Notification{Action: "toast", Level: "success", Message: "Hackathon added successfully!"}, n)

	require.NoError(t, bob.SetReadDeadline(time.Now().Add(200*time.Millisecond)))
	_, _, err = bob.ReadMessage()
	assert.Error(t, err, "bob should not receive alice's toast")
}

func TestHub_UnregistersClosedConnections(t *testing.T) {
	hub, server := startHubServer(t)
	conn := dial(t, server, "alice")

	require.Eventually(t, func() bool { return hub.ConnectionCount("alice") == 1 }, time.Second, 10*time.Millisecond)
	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.ConnectionCount("alice") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	_, server := startHubServer(t)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "?user=alice"
	header := http.Header{"Origin": []string{"http://evil.test"}}
	_, resp, err := websocket.DefaultDialer.Dial(wsURL, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHub_DeliverDropsWhenClientIsSlow(t *testing.T) {
	hub := NewHub("")
	c := &Connection{conn: fakeConn{}, send: make(chan []byte, 1), user: "alice", hub: hub}
	require.True(t, hub.register(c))

	hub.deliver(envelope{user: "alice", payload: []byte("1")})
	hub.deliver(envelope{user: "alice", payload: []byte("2")})

	assert.Equal(t, []byte("1"), <-c.send)
	assert.Empty(t, c.send)
}

func TestHub_NotifierQueuesSuccess(t *testing.T) {
	hub := NewHub("")

	hub.Notifier("alice").Success("Paper added successfully!")

	env := <-hub.broadcast
	assert.Equal(t, "alice", env.user)
	assert.JSONEq(t, `{"action":"toast","level":"success","message":"Paper added successfully!"}`, string(env.payload))
}

func TestHub_NotifyNeverBlocks(t *testing.T) {
	hub := NewHub("")
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.Notify("alice", "success", "x")
	}
	assert.Len(t, hub.broadcast, broadcastBuffer)
}

func TestUnregister_Twice(t *testing.T) {
	hub := NewHub("")
	c := &Connection{conn: fakeConn{}, send: make(chan []byte, 1), hub: hub}
	require.True(t, hub.register(c))

	hub.unregister(c)
	assert.NotPanics(t, func() { hub.unregister(c) })
}
