package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var connTestUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// newServerConnection dials a throwaway websocket server and returns the
// server-side Connection with its write loop running.
func newServerConnection(t *testing.T) *Connection {
	t.Helper()

	accepted := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := connTestUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewConnection(ws)
		c.Start()
		accepted <- c
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case c := <-accepted:
		t.Cleanup(func() { c.Close(websocket.CloseNormalClosure, "test done") })
		return c
	case <-time.After(2 * time.Second):
		t.Fatal("server side connection never established")
		return nil
	}
}

func TestConnectionSendAfterCloseReturnsError(t *testing.T) {
	c := newServerConnection(t)
	c.Close(websocket.CloseNormalClosure, "bye")

	// well past the send buffer size; every attempt must fail cleanly
	for i := 0; i < 512; i++ {
		assert.Error(t, c.Send([]byte("late")))
	}
}

func TestConnectionConcurrentSendAndClose(t *testing.T) {
	c := newServerConnection(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				_ = c.Send([]byte("payload"))
			}
		}()
	}
	c.Close(websocket.CloseGoingAway, "teardown")
	wg.Wait()
}

func TestConnectionCloseIsIdempotent(t *testing.T) {
	c := newServerConnection(t)
	for i := 0; i < 3; i++ {
		c.Close(websocket.CloseNormalClosure, "bye")
	}
}
