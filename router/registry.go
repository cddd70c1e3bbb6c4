package router

import (
	"sync"
	"time"

	"github.com/golangid/relay/relayshared"
	"github.com/google/uuid"
)

// registry authoritative store of subscriptions plus the client and topic
// secondary indices. The three maps are one consistency unit, every mutation
// holds the write lock so a concurrent lookup never observes an id in an index
// without its primary entry.
type registry struct {
	mu            sync.RWMutex
	subscriptions map[string]*relayshared.Subscription
	clientIndex   map[string]map[string]struct{}
	topicIndex    map[relayshared.Topic]map[string]struct{}

	listeners []relayshared.SubscriptionListener
}

func newRegistry(listeners []relayshared.SubscriptionListener) *registry {
	return &registry{
		subscriptions: make(map[string]*relayshared.Subscription),
		clientIndex:   make(map[string]map[string]struct{}),
		topicIndex:    make(map[relayshared.Topic]map[string]struct{}),
		listeners:     listeners,
	}
}

func (r *registry) create(clientID string, topic relayshared.Topic, filter relayshared.Filter) relayshared.Subscription {
	now := time.Now()
	sub := relayshared.Subscription{
		ID:           uuid.NewString(),
		Topic:        topic,
		Filter:       filter,
		ClientID:     clientID,
		CreatedAt:    now,
		LastActivity: now,
		IsActive:     true,
	}

	r.mu.Lock()
	stored := sub
	r.subscriptions[sub.ID] = &stored

	if _, ok := r.clientIndex[clientID]; !ok {
		r.clientIndex[clientID] = make(map[string]struct{})
	}
	r.clientIndex[clientID][sub.ID] = struct{}{}

	if _, ok := r.topicIndex[topic]; !ok {
		r.topicIndex[topic] = make(map[string]struct{})
	}
	r.topicIndex[topic][sub.ID] = struct{}{}
	r.mu.Unlock()

	r.notify(relayshared.SubscriptionCreated, sub)
	return sub
}

func (r *registry) remove(subscriptionID string) (relayshared.Subscription, bool) {
	r.mu.Lock()
	sub, ok := r.subscriptions[subscriptionID]
	if !ok {
		r.mu.Unlock()
		return relayshared.Subscription{}, false
	}

	delete(r.subscriptions, subscriptionID)

	if clientSubs, ok := r.clientIndex[sub.ClientID]; ok {
		delete(clientSubs, subscriptionID)
		if len(clientSubs) == 0 {
			delete(r.clientIndex, sub.ClientID)
		}
	}
	if topicSubs, ok := r.topicIndex[sub.Topic]; ok {
		delete(topicSubs, subscriptionID)
		if len(topicSubs) == 0 {
			delete(r.topicIndex, sub.Topic)
		}
	}
	removed := *sub
	r.mu.Unlock()

	r.notify(relayshared.SubscriptionRemoved, removed)
	return removed, true
}

func (r *registry) get(subscriptionID string) (relayshared.Subscription, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sub, ok := r.subscriptions[subscriptionID]
	if !ok {
		return relayshared.Subscription{}, false
	}
	return *sub, true
}

// idsForTopic snapshot of subscription ids registered on topic
func (r *registry) idsForTopic(topic relayshared.Topic) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topicSubs := r.topicIndex[topic]
	if len(topicSubs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(topicSubs))
	for id := range topicSubs {
		ids = append(ids, id)
	}
	return ids
}

// idsForClient snapshot of subscription ids owned by client
func (r *registry) idsForClient(clientID string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clientSubs := r.clientIndex[clientID]
	if len(clientSubs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(clientSubs))
	for id := range clientSubs {
		ids = append(ids, id)
	}
	return ids
}

func (r *registry) listForClient(clientID string) []relayshared.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clientSubs := r.clientIndex[clientID]
	if len(clientSubs) == 0 {
		return nil
	}
	list := make([]relayshared.Subscription, 0, len(clientSubs))
	for id := range clientSubs {
		if sub, ok := r.subscriptions[id]; ok {
			list = append(list, *sub)
		}
	}
	return list
}

func (r *registry) setActive(subscriptionID string, active bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.subscriptions[subscriptionID]
	if !ok {
		return false
	}
	sub.IsActive = active
	sub.LastActivity = time.Now()
	return true
}

// touchClient refresh last activity for every subscription owned by client,
// called by the drain path
func (r *registry) touchClient(clientID string) {
	now := time.Now()
	r.mu.Lock()
	defer r.mu.Unlock()
	for id := range r.clientIndex[clientID] {
		if sub, ok := r.subscriptions[id]; ok {
			sub.LastActivity = now
		}
	}
}

// inactiveSince snapshot of subscription ids whose last activity is older than
// the threshold, used by the janitor sweep
func (r *registry) inactiveSince(threshold time.Duration) []string {
	deadline := time.Now().Add(-threshold)
	r.mu.RLock()
	defer r.mu.RUnlock()
	var ids []string
	for id, sub := range r.subscriptions {
		if sub.LastActivity.Before(deadline) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *registry) stats() relayshared.StatsSnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	snapshot := relayshared.StatsSnapshot{
		TotalSubscriptions:   len(r.subscriptions),
		TotalClients:         len(r.clientIndex),
		SubscriptionsByTopic: make(map[relayshared.Topic]int, len(r.topicIndex)),
	}
	for _, sub := range r.subscriptions {
		if sub.IsActive {
			snapshot.ActiveSubscriptions++
		}
	}
	for topic, topicSubs := range r.topicIndex {
		snapshot.SubscriptionsByTopic[topic] = len(topicSubs)
	}
	return snapshot
}

// notify invoke listeners outside the registry lock
func (r *registry) notify(event relayshared.SubscriptionEvent, sub relayshared.Subscription) {
	for _, listener := range r.listeners {
		listener(event, sub)
	}
}
