package router

import (
	"github.com/golangid/relay/relayshared"
)

// Stats read-only snapshot over registry and queues, mutates nothing and is
// safe to call concurrently with publish, drain and the janitor
func (r *Router) Stats() relayshared.StatsSnapshot {
	snapshot := r.registry.stats()

	r.queueMu.RLock()
	for _, queue := range r.queues {
		snapshot.QueuedMessages += queue.Len()
	}
	r.queueMu.RUnlock()

	return snapshot
}

// RateLimitedClients current count of tracked rate limit windows, exposed for
// introspection
func (r *Router) RateLimitedClients() int {
	return r.limiter.size()
}
