package router

import (
	"context"
	"testing"
	"time"

	"github.com/golangid/relay/relayshared"
	"github.com/stretchr/testify/assert"
)

func TestJanitorSweepInactive(t *testing.T) {
	r := New(SetInactiveThreshold(30 * time.Minute))
	stale := r.Subscribe("c1", relayshared.TopicPriceUpdates, relayshared.Filter{})
	fresh := r.Subscribe("c2", relayshared.TopicPriceUpdates, relayshared.Filter{})

	r.registry.mu.Lock()
	r.registry.subscriptions[stale].LastActivity = time.Now().Add(-time.Hour)
	r.registry.mu.Unlock()

	NewJanitor(r).Sweep()

	_, ok := r.GetSubscription(stale)
	assert.False(t, ok)
	assert.False(t, r.Unsubscribe(stale))
	assert.False(t, r.ToggleSubscription(stale, true))

	_, ok = r.GetSubscription(fresh)
	assert.True(t, ok)
}

func TestJanitorSweepRateWindows(t *testing.T) {
	r := New(SetRateLimit(10*time.Millisecond, 100))
	r.Subscribe("c1", relayshared.TopicPriceUpdates, relayshared.Filter{})
	r.Publish(relayshared.TopicPriceUpdates, map[string]interface{}{}, relayshared.Filter{})
	assert.Equal(t, 1, r.RateLimitedClients())

	time.Sleep(20 * time.Millisecond)
	NewJanitor(r).Sweep()
	assert.Equal(t, 0, r.RateLimitedClients())
}

func TestJanitorServeShutdown(t *testing.T) {
	r := New(SetJanitorInterval(10*time.Millisecond), SetInactiveThreshold(time.Millisecond))
	stale := r.Subscribe("c1", relayshared.TopicPriceUpdates, relayshared.Filter{})

	r.registry.mu.Lock()
	r.registry.subscriptions[stale].LastActivity = time.Now().Add(-time.Minute)
	r.registry.mu.Unlock()

	j := NewJanitor(r)
	go j.Serve()

	assert.Eventually(t, func() bool {
		_, ok := r.GetSubscription(stale)
		return !ok
	}, time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	j.Shutdown(ctx)

	// no sweep runs after shutdown
	again := r.Subscribe("c1", relayshared.TopicPriceUpdates, relayshared.Filter{})
	r.registry.mu.Lock()
	r.registry.subscriptions[again].LastActivity = time.Now().Add(-time.Minute)
	r.registry.mu.Unlock()

	time.Sleep(30 * time.Millisecond)
	_, ok := r.GetSubscription(again)
	assert.True(t, ok)
}
