package router

import (
	"sort"
	"sync"
	"time"

	"github.com/golangid/relay/interfaces"
	"github.com/golangid/relay/logger"
	"github.com/golangid/relay/relayshared"
	"go.uber.org/zap/zapcore"
)

// Router in-process publish/subscribe message router. Producers publish typed
// events, the router matches them against registered subscriptions, applies
// per-client admission control and queues admitted events per subscription
// until the owning client drains them. Construct with New, one router per
// process component that needs one, there is no package level instance.
type Router struct {
	opt      option
	registry *registry
	limiter  *rateLimiter

	queueMu sync.RWMutex
	queues  map[string]*relayshared.BoundedQueue[relayshared.Message]
}

var _ interfaces.EventPublisher = (*Router)(nil)

// New create new message router
func New(opts ...OptionFunc) *Router {
	opt := getDefaultOption()
	for _, o := range opts {
		o(&opt)
	}

	return &Router{
		opt:      opt,
		registry: newRegistry(opt.listeners),
		limiter:  newRateLimiter(opt.rateLimitWindow, opt.rateLimitCapacity),
		queues:   make(map[string]*relayshared.BoundedQueue[relayshared.Message]),
	}
}

// Subscribe register a standing expression of interest for a client, returns
// the generated subscription id
func (r *Router) Subscribe(clientID string, topic relayshared.Topic, filter relayshared.Filter) string {
	sub := r.registry.create(clientID, topic, filter)

	r.queueMu.Lock()
	r.queues[sub.ID] = relayshared.NewBoundedQueue[relayshared.Message](r.opt.queueCapacity)
	r.queueMu.Unlock()

	logger.LogWithField(zapcore.InfoLevel, map[string]interface{}{
		"message":        "subscription created",
		"subscriptionId": sub.ID,
		"clientId":       clientID,
		"topic":          string(topic),
	})
	return sub.ID
}

// Unsubscribe remove a subscription and discard its queue, returns false when
// the id is unknown (already gone is a normal outcome)
func (r *Router) Unsubscribe(subscriptionID string) bool {
	sub, ok := r.registry.remove(subscriptionID)
	if !ok {
		return false
	}

	r.queueMu.Lock()
	delete(r.queues, subscriptionID)
	r.queueMu.Unlock()

	logger.LogWithField(zapcore.InfoLevel, map[string]interface{}{
		"message":        "subscription removed",
		"subscriptionId": subscriptionID,
		"clientId":       sub.ClientID,
		"topic":          string(sub.Topic),
	})
	return true
}

// UnsubscribeClient remove every subscription owned by a client, used on
// disconnect, returns the number removed
func (r *Router) UnsubscribeClient(clientID string) (removed int) {
	for _, id := range r.registry.idsForClient(clientID) {
		if r.Unsubscribe(id) {
			removed++
		}
	}
	return removed
}

// Publish match an event against every subscription on the topic, admit per
// client budget and queue per matching subscription, returns the count of
// subscriptions that received the event
func (r *Router) Publish(topic relayshared.Topic, data interface{}, addressing relayshared.Filter) (delivered int) {
	ids := r.registry.idsForTopic(topic)
	if len(ids) == 0 {
		return 0
	}

	priority := addressing.Priority
	if priority == "" {
		priority = relayshared.PriorityMedium
	}
	now := time.Now()

	for _, id := range ids {
		sub, ok := r.registry.get(id)
		if !ok || !sub.IsActive {
			continue
		}
		if !matchesFilter(sub.Filter, addressing, data) {
			continue
		}
		if !r.limiter.admit(sub.ClientID) {
			logger.LogWithField(zapcore.WarnLevel, map[string]interface{}{
				"message":  "rate limit exceeded, event dropped",
				"clientId": sub.ClientID,
				"topic":    string(topic),
			})
			continue
		}

		queue := r.queue(id)
		if queue == nil { // removed between snapshot and push
			continue
		}
		if evicted := queue.Push(relayshared.Message{
			Topic:          topic,
			Data:           data,
			Timestamp:      now,
			Priority:       priority,
			SubscriptionID: id,
		}); evicted {
			logger.LogWithField(zapcore.WarnLevel, map[string]interface{}{
				"message":        "queue overflow, oldest message evicted",
				"subscriptionId": id,
				"topic":          string(topic),
			})
		}
		delivered++
	}
	return delivered
}

// Drain atomically collect and clear all queued messages across every
// subscription owned by the client, sorted by priority descending. Within one
// subscription's contribution publish order is preserved before the sort.
func (r *Router) Drain(clientID string) []relayshared.Message {
	ids := r.registry.idsForClient(clientID)
	if len(ids) == 0 {
		return nil
	}

	var messages []relayshared.Message
	for _, id := range ids {
		queue := r.queue(id)
		if queue == nil {
			continue
		}
		messages = append(messages, queue.DrainAndClear()...)
	}
	r.registry.touchClient(clientID)

	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].Priority.Weight() > messages[j].Priority.Weight()
	})
	return messages
}

// ToggleSubscription activate or deactivate a subscription, inactive
// subscriptions stay registered but never receive matches
func (r *Router) ToggleSubscription(subscriptionID string, active bool) bool {
	ok := r.registry.setActive(subscriptionID, active)
	if ok && r.opt.debugMode {
		state := "deactivated"
		if active {
			state = "activated"
		}
		logger.LogIf("subscription %s %s", subscriptionID, state)
	}
	return ok
}

// GetSubscription lookup by id
func (r *Router) GetSubscription(subscriptionID string) (relayshared.Subscription, bool) {
	return r.registry.get(subscriptionID)
}

// ListClientSubscriptions list all subscriptions owned by a client, order is
// not significant
func (r *Router) ListClientSubscriptions(clientID string) []relayshared.Subscription {
	return r.registry.listForClient(clientID)
}

func (r *Router) queue(subscriptionID string) *relayshared.BoundedQueue[relayshared.Message] {
	r.queueMu.RLock()
	defer r.queueMu.RUnlock()
	return r.queues[subscriptionID]
}
