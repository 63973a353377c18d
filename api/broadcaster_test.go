package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroadcastDeliversToMatchingSubscription(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("sess-1", []EventType{EventTypeTimer})
	defer b.Unsubscribe(sub)

	b.BroadcastTimerState("sess-1", map[string]interface{}{"cnt": uint32(5)})

	select {
	case event := <-sub.Channel:
		assert.Equal(t, EventTypeTimer, event.Type)
		assert.Equal(t, uint32(5), event.Data["cnt"])
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}

func TestBroadcastFiltersBySessionID(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("sess-1", nil)
	defer b.Unsubscribe(sub)

	b.BroadcastTimerState("sess-2", map[string]interface{}{"cnt": uint32(1)})

	select {
	case event := <-sub.Channel:
		t.Fatalf("unexpected event delivered for unrelated session: %+v", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestBroadcastFiltersByEventType(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("", []EventType{EventTypeEncode})
	defer b.Unsubscribe(sub)

	b.BroadcastTimerState("sess-1", map[string]interface{}{"cnt": uint32(1)})

	select {
	case event := <-sub.Channel:
		t.Fatalf("unexpected event of filtered-out type: %+v", event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSubscribeIncrementsSubscriptionCount(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	require.Equal(t, 0, b.SubscriptionCount())
	sub := b.Subscribe("", nil)
	require.Eventually(t, func() bool { return b.SubscriptionCount() == 1 }, time.Second, 10*time.Millisecond)

	b.Unsubscribe(sub)
	require.Eventually(t, func() bool { return b.SubscriptionCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("", nil)
	b.Unsubscribe(sub)

	require.Eventually(t, func() bool {
		_, ok := <-sub.Channel
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestBroadcastEncodeCarriesWordAndCursor(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()

	sub := b.Subscribe("sess-1", []EventType{EventTypeEncode})
	defer b.Unsubscribe(sub)

	b.BroadcastEncode("sess-1", 4, 0xdeadbeef)

	select {
	case event := <-sub.Channel:
		assert.Equal(t, uint32(4), event.Data["cursor"])
		assert.Equal(t, uint32(0xdeadbeef), event.Data["word"])
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
}
