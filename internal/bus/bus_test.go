package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, sub *Subscription) any {
	t.Helper()
	select {
	case payload, ok := <-sub.C():
		require.True(t, ok, "subscription closed unexpectedly")
		return payload
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for payload")
		return nil
	}
}

func TestPublishReachesAllAttachments(t *testing.T) {
	b := New()
	defer b.Close()

	first := b.Subscribe("account.created")
	second := b.Subscribe("account.created")
	defer first.Close()
	defer second.Close()

	b.Publish("account.created", "payload")

	require.Equal(t, "payload", receive(t, first))
	require.Equal(t, "payload", receive(t, second))
}

func TestPublishOrderPreserved(t *testing.T) {
	b := New()
	defer b.Close()

	sub := b.Subscribe("event.updated")
	defer sub.Close()

	for i := 0; i < 50; i++ {
		b.Publish("event.updated", i)
	}

	for i := 0; i < 50; i++ {
		require.Equal(t, i, receive(t, sub))
	}
}

func TestTopicsAreIndependent(t *testing.T) {
	b := New()
	defer b.Close()

	accounts := b.Subscribe("account.created")
	events := b.Subscribe("event.created")
	defer accounts.Close()
	defer events.Close()

	b.Publish("account.created", "a")
	b.Publish("event.created", "e")

	require.Equal(t, "a", receive(t, accounts))
	require.Equal(t, "e", receive(t, events))
}

func TestNoHistoricalReplay(t *testing.T) {
	b := New()
	defer b.Close()

	b.Publish("account.created", "before")

	sub := b.Subscribe("account.created")
	defer sub.Close()

	b.Publish("account.created", "after")

	require.Equal(t, "after", receive(t, sub))
}

func TestCloseDetaches(t *testing.T) {
	b := New()
	defer b.Close()

	closed := b.Subscribe("account.created")
	alive := b.Subscribe("account.created")
	defer alive.Close()

	closed.Close()
	b.Publish("account.created", "payload")

	require.Equal(t, "payload", receive(t, alive))

	select {
	case _, ok := <-closed.C():
		require.False(t, ok, "closed subscription should yield no payloads")
	case <-time.After(time.Second):
		t.Fatal("closed subscription channel never closed")
	}
}

func TestSlowConsumerDoesNotStallPublisher(t *testing.T) {
	b := New()
	defer b.Close()

	slow := b.Subscribe("account.created")
	defer slow.Close()

	done := make(chan struct{})
	go func() {
		// Nobody pulls from slow while these run.
		for i := 0; i < 1000; i++ {
			b.Publish("account.created", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publisher blocked on a slow consumer")
	}

	// Everything published is still deliverable, in order.
	for i := 0; i < 1000; i++ {
		require.Equal(t, i, receive(t, slow))
	}
}

func TestSubscribeAfterBusClose(t *testing.T) {
	b := New()
	b.Close()

	sub := b.Subscribe("account.created")

	select {
	case _, ok := <-sub.C():
		require.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("subscription on closed bus should be closed immediately")
	}
}

func TestDoubleCloseIsSafe(t *testing.T) {
	b := New()
	defer b.Close()

	sub := b.Subscribe("account.created")
	sub.Close()
	sub.Close()
}
