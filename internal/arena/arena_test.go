package arena

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeonwoo/harvesters-server/internal/game"
	"github.com/yeonwoo/harvesters-server/internal/geom"
	"github.com/yeonwoo/harvesters-server/internal/ws"
)

// mockClient creates a ws.Client with a buffered Send channel for testing.
func mockClient(id string) *ws.Client {
	return &ws.Client{
		ID:   id,
		Send: make(chan []byte, 256),
	}
}

// drainMessages reads all pending messages from a client's send channel.
func drainMessages(client *ws.Client) []ws.Message {
	var msgs []ws.Message
	for {
		select {
		case data := <-client.Send:
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err == nil {
				msgs = append(msgs, msg)
			}
		default:
			return msgs
		}
	}
}

// waitForMessage polls a client for a message of the given type.
func waitForMessage(t *testing.T, client *ws.Client, msgType string, timeout time.Duration) *ws.Message {
	t.Helper()
	deadline := time.After(timeout)
	for {
		select {
		case data := <-client.Send:
			var msg ws.Message
			if err := json.Unmarshal(data, &msg); err == nil && msg.Type == msgType {
				return &msg
			}
		case <-deadline:
			return nil
		}
	}
}

func fastTuning() game.Tuning {
	t := game.DefaultTuning()
	t.TickRate = 100
	t.WorldWidth = 400
	t.WorldHeight = 400
	t.ObstacleRects = 0
	t.ObstacleCircles = 0
	t.ObstacleEllipses = 0
	t.StartEnemies = 0
	return t
}

func TestJoin_ReturnsWorldConfig(t *testing.T) {
	tun := fastTuning()
	a := New(tun, 1, nil)

	c := mockClient("c1")
	id, cfg := a.Join(c, "tester")

	require.NotEmpty(t, id)
	assert.Equal(t, tun.WorldWidth, cfg.Width)
	assert.Equal(t, tun.WorldHeight, cfg.Height)
	assert.Equal(t, tun.CellSize, cfg.CellSize)
	assert.Equal(t, tun.TickRate, cfg.TickRate)
	assert.Equal(t, 1, a.PlayerCount())

	a.Leave(id)
}

func TestLoop_BroadcastsStateEveryTick(t *testing.T) {
	a := New(fastTuning(), 1, nil)

	c := mockClient("c1")
	id, _ := a.Join(c, "tester")
	defer a.Leave(id)

	msg := waitForMessage(t, c, ws.TypeState, time.Second)
	require.NotNil(t, msg, "state snapshot broadcast after a tick")

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	require.Len(t, snap.Players, 1)
	assert.Equal(t, id, snap.Players[0].ID)
	assert.Equal(t, "tester", snap.Players[0].Name)
	assert.Equal(t, 1, snap.Round)
}

func TestLeave_RemovesPlayerBeforeNextBroadcast(t *testing.T) {
	a := New(fastTuning(), 1, nil)

	c1 := mockClient("c1")
	c2 := mockClient("c2")
	id1, _ := a.Join(c1, "leaver")
	id2, _ := a.Join(c2, "stayer")
	defer a.Leave(id2)

	a.Leave(id1)
	drainMessages(c2)

	msg := waitForMessage(t, c2, ws.TypeState, time.Second)
	require.NotNil(t, msg)

	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	require.Len(t, snap.Players, 1)
	assert.Equal(t, id2, snap.Players[0].ID)
}

func TestLeave_LastPlayerStopsSession(t *testing.T) {
	a := New(fastTuning(), 1, nil)

	c := mockClient("c1")
	id, _ := a.Join(c, "tester")
	a.Leave(id)

	assert.Equal(t, 0, a.PlayerCount())

	// Session restarts cleanly for a later join.
	id2, _ := a.Join(mockClient("c2"), "again")
	assert.Equal(t, 1, a.PlayerCount())
	a.Leave(id2)
}

// Rapid session churn restarts the loop many times; afterwards exactly one
// loop must be driving the broadcast cadence. A stale loop surviving a
// restart would roughly double the observed rate.
func TestJoinLeaveChurn_SingleLoopSurvives(t *testing.T) {
	tun := fastTuning()
	a := New(tun, 1, nil)

	for i := 0; i < 50; i++ {
		c := mockClient(fmt.Sprintf("churn-%d", i))
		id, _ := a.Join(c, "churner")
		a.Leave(id)
	}

	c := mockClient("stayer")
	id, _ := a.Join(c, "stayer")
	defer a.Leave(id)

	require.NotNil(t, waitForMessage(t, c, ws.TypeState, time.Second))
	drainMessages(c)

	window := 30 * a.tickInterval
	time.Sleep(window)
	got := len(drainMessages(c))

	assert.Greater(t, got, 0, "restarted session still broadcasts")
	assert.LessOrEqual(t, got, 60, "no doubled cadence from leaked loops")
}

func TestEliminatedPlayer_GetsDeadAndIsDropped(t *testing.T) {
	tun := fastTuning()
	tun.StartEnemies = 3
	tun.EnemySpeed = 40
	tun.EnemyContactDamage = 1000
	a := New(tun, 7, nil)

	c := mockClient("victim")
	_, _ = a.Join(c, "victim")

	msg := waitForMessage(t, c, ws.TypeDead, 3*time.Second)
	require.NotNil(t, msg, "eliminated player receives a dead message")

	var dead deadMessage
	require.NoError(t, json.Unmarshal(msg.Data, &dead))
	assert.Equal(t, 1, dead.Round)

	// Removal is synchronous with the eliminating tick.
	assert.Equal(t, 0, a.PlayerCount())
}

func TestIntents_FlowThroughToSimulation(t *testing.T) {
	a := New(fastTuning(), 1, nil)

	c := mockClient("c1")
	id, _ := a.Join(c, "mover")
	defer a.Leave(id)

	var before game.PlayerView
	msg := waitForMessage(t, c, ws.TypeState, time.Second)
	require.NotNil(t, msg)
	var snap game.Snapshot
	require.NoError(t, json.Unmarshal(msg.Data, &snap))
	before = snap.Players[0]

	// Head toward the far side so clamping cannot mask the movement.
	dirX := 1.0
	if before.X > 200 {
		dirX = -1
	}
	a.SetDirection(id, geom.Vec2{X: dirX})

	assert.Eventually(t, func() bool {
		m := waitForMessage(t, c, ws.TypeState, 200*time.Millisecond)
		if m == nil {
			return false
		}
		var s game.Snapshot
		if err := json.Unmarshal(m.Data, &s); err != nil || len(s.Players) != 1 {
			return false
		}
		return (s.Players[0].X-before.X)*dirX > 0
	}, time.Second, 10*time.Millisecond, "player moves toward the intent direction")
}
