package relayshared

import (
	"time"
)

// Topic closed category of routed event
type Topic string

const (
	// TopicPriceUpdates market price ticks
	TopicPriceUpdates Topic = "price_updates"
	// TopicTradeUpdates trade engine state changes
	TopicTradeUpdates Topic = "trade_updates"
	// TopicBalanceUpdates balance ledger changes
	TopicBalanceUpdates Topic = "balance_updates"
	// TopicNotificationUpdates user notifications
	TopicNotificationUpdates Topic = "notification_updates"
	// TopicAdminUpdates admin broadcaster events
	TopicAdminUpdates Topic = "admin_updates"
	// TopicSystemStatus system status reports
	TopicSystemStatus Topic = "system_status"
	// TopicFlashTradeResults flash trade settlement results
	TopicFlashTradeResults Topic = "flash_trade_results"
	// TopicQuickTradeUpdates quick trade progress events
	TopicQuickTradeUpdates Topic = "quick_trade_updates"
	// TopicQuantAIUpdates quant AI strategy events
	TopicQuantAIUpdates Topic = "quant_ai_updates"
)

// AllTopics list all registered topic
var AllTopics = []Topic{
	TopicPriceUpdates, TopicTradeUpdates, TopicBalanceUpdates,
	TopicNotificationUpdates, TopicAdminUpdates, TopicSystemStatus,
	TopicFlashTradeResults, TopicQuickTradeUpdates, TopicQuantAIUpdates,
}

// Valid check topic is a registered topic
func (t Topic) Valid() bool {
	for _, topic := range AllTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// Priority message priority for ordering on drain
type Priority string

const (
	// PriorityLow priority
	PriorityLow Priority = "low"
	// PriorityMedium priority, default when empty
	PriorityMedium Priority = "medium"
	// PriorityHigh priority
	PriorityHigh Priority = "high"
)

// Weight numeric ordering value, unknown or empty priority counts as medium
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityLow:
		return 1
	default:
		return 2
	}
}

// Filter subscriber-side constraint set, also used as publisher-side addressing.
// All fields optional, empty field means no constraint on that attribute.
type Filter struct {
	Symbols    []string `json:"symbols,omitempty"`
	UserID     string   `json:"userId,omitempty"`
	TradeTypes []string `json:"tradeTypes,omitempty"`
	AdminLevel string   `json:"adminLevel,omitempty"`
	Priority   Priority `json:"priority,omitempty"`
}

// Subscription standing expression of interest from one client
type Subscription struct {
	ID           string    `json:"id"`
	Topic        Topic     `json:"topic"`
	Filter       Filter    `json:"filter"`
	ClientID     string    `json:"clientId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	IsActive     bool      `json:"isActive"`
}

// Message queued event annotated with the subscription it was matched against
type Message struct {
	Topic          Topic       `json:"type"`
	Data           interface{} `json:"data"`
	Timestamp      time.Time   `json:"timestamp"`
	Priority       Priority    `json:"priority,omitempty"`
	SubscriptionID string      `json:"subscriptionId,omitempty"`
}

// StatsSnapshot read-only aggregation over registry and queues
type StatsSnapshot struct {
	TotalSubscriptions   int           `json:"totalSubscriptions"`
	ActiveSubscriptions  int           `json:"activeSubscriptions"`
	TotalClients         int           `json:"totalClients"`
	SubscriptionsByTopic map[Topic]int `json:"subscriptionsByTopic"`
	QueuedMessages       int           `json:"queuedMessages"`
}

// SubscriptionEvent registry lifecycle notification type
type SubscriptionEvent string

const (
	// SubscriptionCreated emitted after a subscription is registered
	SubscriptionCreated SubscriptionEvent = "subscription_created"
	// SubscriptionRemoved emitted after a subscription is removed
	SubscriptionRemoved SubscriptionEvent = "subscription_removed"
)

// SubscriptionListener callback for registry lifecycle notifications, registered
// at router construction. Invoked synchronously outside the registry lock.
type SubscriptionListener func(event SubscriptionEvent, sub Subscription)
