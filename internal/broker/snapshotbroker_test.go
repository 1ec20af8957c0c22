package broker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveWithin(t *testing.T, c chan int, timeout time.Duration) int {
	t.Helper()
	select {
	case v := <-c:
		return v
	case <-time.After(timeout):
		t.Fatal("timed out waiting for payload")
		return 0
	}
}

func TestSnapshotBroker_publishThenSubscribe(t *testing.T) {
	t.Parallel()
	b := NewSnapshotBroker[string, int]()
	go b.Start()
	defer b.Stop()

	b.Publish("ABC123", 1)
	sub := b.Subscribe("ABC123")

	assert.Equal(t, 1, receiveWithin(t, sub.C, time.Second), "late subscriber is primed with the latest payload")
}

func TestSnapshotBroker_fanOut(t *testing.T) {
	t.Parallel()
	b := NewSnapshotBroker[string, int]()
	go b.Start()
	defer b.Stop()

	first := b.Subscribe("ABC123")
	second := b.Subscribe("ABC123")
	other := b.Subscribe("ZZZ999")

	b.Publish("ABC123", 7)

	assert.Equal(t, 7, receiveWithin(t, first.C, time.Second))
	assert.Equal(t, 7, receiveWithin(t, second.C, time.Second))
	select {
	case v := <-other.C:
		t.Fatalf("unrelated session received payload %d", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestSnapshotBroker_slowSubscriberSeesLatest(t *testing.T) {
	t.Parallel()
	b := NewSnapshotBroker[string, int]()
	go b.Start()
	defer b.Stop()

	sub := b.Subscribe("ABC123")
	b.Publish("ABC123", 1)
	b.Publish("ABC123", 2)
	b.Publish("ABC123", 3)

	// Intermediate payloads are skipped, never queued.
	require.Eventually(t, func() bool {
		select {
		case v := <-sub.C:
			return v == 3
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}

func TestSnapshotBroker_unsubscribeClosesChannel(t *testing.T) {
	t.Parallel()
	b := NewSnapshotBroker[string, int]()
	go b.Start()
	defer b.Stop()

	sub := b.Subscribe("ABC123")
	b.Unsubscribe(sub)

	_, ok := <-sub.C
	assert.False(t, ok, "unsubscribed channel is closed")
}

func TestSnapshotBroker_dropForgetsSession(t *testing.T) {
	t.Parallel()
	b := NewSnapshotBroker[string, int]()
	go b.Start()
	defer b.Stop()

	sub := b.Subscribe("ABC123")
	b.Publish("ABC123", 9)
	assert.Equal(t, 9, receiveWithin(t, sub.C, time.Second))

	b.Drop("ABC123")
	_, ok := <-sub.C
	assert.False(t, ok)

	// A new subscriber no longer gets the dropped payload.
	fresh := b.Subscribe("ABC123")
	select {
	case v, open := <-fresh.C:
		if open {
			t.Fatalf("dropped session replayed payload %d", v)
		}
	case <-time.After(50 * time.Millisecond):
	}
}
