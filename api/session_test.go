package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionManagerCreateGetDestroy(t *testing.T) {
	mgr := NewSessionManager(NewBroadcaster())

	sess := mgr.Create(SessionCreateRequest{RV64: true})
	require.NotEmpty(t, sess.ID)
	assert.Equal(t, 1, mgr.Count())

	got, ok := mgr.Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess, got)

	assert.True(t, mgr.Destroy(sess.ID))
	assert.Equal(t, 0, mgr.Count())
	assert.False(t, mgr.Destroy(sess.ID))
}

func TestSessionManagerGetMissingReturnsFalse(t *testing.T) {
	mgr := NewSessionManager(NewBroadcaster())
	_, ok := mgr.Get("nonexistent")
	assert.False(t, ok)
}

func TestSessionCreateAppliesTicksPerSecondOverride(t *testing.T) {
	mgr := NewSessionManager(NewBroadcaster())
	sess := mgr.Create(SessionCreateRequest{TicksPerSecond: 2_000_000})
	assert.Equal(t, uint64(2_000_000), sess.Timer.TicksPerSecond)
}

func TestSessionCreateDefaultsTicksPerSecondWhenZero(t *testing.T) {
	mgr := NewSessionManager(NewBroadcaster())
	sess := mgr.Create(SessionCreateRequest{})
	assert.NotZero(t, sess.Timer.TicksPerSecond)
}

func TestTimerSnapshotReflectsWrites(t *testing.T) {
	mgr := NewSessionManager(NewBroadcaster())
	sess := mgr.Create(SessionCreateRequest{})

	sess.Timer.WriteRegister(0x2c, 1234) // ARR offset
	snap := sess.TimerSnapshot()
	assert.Equal(t, uint32(1234), snap.ARR)
}

func TestBroadcastIRQPulseEmitsExecutionEvent(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("sess-1", nil)
	defer b.Unsubscribe(sub)

	irq := &broadcastIRQ{sessionID: "sess-1", broadcaster: b}
	irq.Pulse()

	event := <-sub.Channel
	assert.Equal(t, EventTypeExecution, event.Type)
	assert.Equal(t, "sess-1", event.SessionID)
	assert.Equal(t, "irq", event.Data["event"])
}
