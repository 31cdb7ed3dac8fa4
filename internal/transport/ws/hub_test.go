package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cubestate"
	"github.com/SeamusWaldron/cubestate/internal/playback"
)

type fixture struct {
	server *httptest.Server
	hub    *Hub
	player *playback.Player
	reg    *prometheus.Registry
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	start := cubestate.NewSolved()
	require.NoError(t, start.ApplySequence("R U R' U'"))
	player := playback.NewPlayer(playback.NewSession(start, cubestate.InverseSexyMove),
		playback.WithInterval(5*time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	reg := prometheus.NewRegistry()
	hub := NewHub(ctx, player, WithRegisterer(reg))
	player.OnStep(hub.Broadcast)

	server := httptest.NewServer(NewMux(hub, reg))
	t.Cleanup(func() {
		cancel()
		player.Close()
		hub.Close()
		server.Close()
	})

	return &fixture{server: server, hub: hub, player: player, reg: reg}
}

func (f *fixture) dial(t *testing.T) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(f.server.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestClientReceivesInitialSnapshot(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)

	msg := readMessage(t, conn)
	assert.Equal(t, "snapshot", msg.Type)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, 0, msg.Snapshot.Position)
	assert.Equal(t, 4, msg.Snapshot.Total)

	assert.Eventually(t, func() bool { return f.hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.hub.Metrics().Clients))
}

func TestCommandsDrivePlayback(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(Command{Action: "next"}))
	msg := readMessage(t, conn)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, 1, msg.Snapshot.Position)
	assert.Equal(t, "U", msg.Snapshot.Move)

	require.NoError(t, conn.WriteJSON(Command{Action: "jump", Step: 4}))
	msg = readMessage(t, conn)
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, 4, msg.Snapshot.Position)
	assert.True(t, msg.Snapshot.Completed)
	assert.Equal(t, cubestate.NewSolved().SolverString(), msg.Snapshot.State)

	require.NoError(t, conn.WriteJSON(Command{Action: "prev"}))
	msg = readMessage(t, conn)
	assert.Equal(t, 3, msg.Snapshot.Position)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.hub.Metrics().Commands.WithLabelValues("next")))
	assert.Equal(t, 1.0, testutil.ToFloat64(f.hub.Metrics().Commands.WithLabelValues("jump")))
}

func TestCommandErrors(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(Command{Action: "jump", Step: 99}))
	msg := readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "out of range")

	require.NoError(t, conn.WriteJSON(Command{Action: "dance"}))
	msg = readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
	assert.Contains(t, msg.Error, "unknown action")

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{")))
	msg = readMessage(t, conn)
	assert.Equal(t, "malformed command", msg.Error)

	require.NoError(t, conn.WriteJSON(Command{Action: "speed", Speed: "warp"}))
	msg = readMessage(t, conn)
	assert.Equal(t, "error", msg.Type)
}

func TestPlayStreamsToEnd(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)

	require.NoError(t, conn.WriteJSON(Command{Action: "play"}))

	for {
		msg := readMessage(t, conn)
		require.Equal(t, "snapshot", msg.Type)
		if msg.Snapshot.Completed && !msg.Snapshot.Playing {
			assert.Equal(t, 4, msg.Snapshot.Position)
			break
		}
	}
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	f := newFixture(t)
	a := f.dial(t)
	b := f.dial(t)
	readMessage(t, a)
	readMessage(t, b)
	require.Eventually(t, func() bool { return f.hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	f.player.Next()

	assert.Equal(t, 1, readMessage(t, a).Snapshot.Position)
	assert.Equal(t, 1, readMessage(t, b).Snapshot.Position)
	assert.GreaterOrEqual(t, testutil.ToFloat64(f.hub.Metrics().Broadcasts), 1.0)
}

func TestDisconnectUnregisters(t *testing.T) {
	f := newFixture(t)
	conn := f.dial(t)
	readMessage(t, conn)
	require.Eventually(t, func() bool { return f.hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	conn.Close()
	assert.Eventually(t, func() bool { return f.hub.ClientCount() == 0 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 0.0, testutil.ToFloat64(f.hub.Metrics().Clients))
}

func TestStateAndMetricsEndpoints(t *testing.T) {
	f := newFixture(t)
	f.player.Next()

	resp, err := http.Get(f.server.URL + "/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var snap playback.Snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, 1, snap.Position)

	metrics, err := http.Get(f.server.URL + "/metrics")
	require.NoError(t, err)
	defer metrics.Body.Close()
	assert.Equal(t, http.StatusOK, metrics.StatusCode)
}

func TestServeListenerStopsOnCancel(t *testing.T) {
	start := cubestate.NewSolved()
	player := playback.NewPlayer(playback.NewSession(start, nil))
	reg := prometheus.NewRegistry()
	hub := NewHub(context.Background(), player, WithRegisterer(reg))

	srv := httptest.NewUnstartedServer(nil)
	ln := srv.Listener

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ServeListener(ctx, ln, hub, reg) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
