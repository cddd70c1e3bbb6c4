package interfaces

import (
	"github.com/golangid/relay/relayshared"
)

// EventPublisher abstraction implemented by the router publish path, consumed
// by producer adapters (typed publishers, broker ingress)
type EventPublisher interface {
	Publish(topic relayshared.Topic, data interface{}, addressing relayshared.Filter) (delivered int)
}

// SubscriptionRegistrar abstraction implemented by the router subscribe path,
// consumed by connection lifecycle components
type SubscriptionRegistrar interface {
	Subscribe(clientID string, topic relayshared.Topic, filter relayshared.Filter) (subscriptionID string)
	Unsubscribe(subscriptionID string) bool
	UnsubscribeClient(clientID string) (removed int)
	ToggleSubscription(subscriptionID string, active bool) bool
	Drain(clientID string) []relayshared.Message
}
