package publisher

import (
	"github.com/golangid/relay/interfaces"
	"github.com/golangid/relay/relayshared"
)

// SubscriptionHelper typed subscribe shortcuts per topic, used by connection
// lifecycle components so clients never build raw filters
type SubscriptionHelper struct {
	registrar interfaces.SubscriptionRegistrar
}

// NewSubscriptionHelper constructor
func NewSubscriptionHelper(registrar interfaces.SubscriptionRegistrar) *SubscriptionHelper {
	return &SubscriptionHelper{registrar: registrar}
}

// SubscribeToPriceUpdates subscribe to price ticks, empty symbols means all
func (h *SubscriptionHelper) SubscribeToPriceUpdates(clientID string, symbols ...string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicPriceUpdates, relayshared.Filter{Symbols: symbols})
}

// SubscribeToTradeUpdates subscribe to trade state changes
func (h *SubscriptionHelper) SubscribeToTradeUpdates(clientID, userID string, tradeTypes ...string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicTradeUpdates,
		relayshared.Filter{UserID: userID, TradeTypes: tradeTypes})
}

// SubscribeToBalanceUpdates subscribe to ledger changes for one user
func (h *SubscriptionHelper) SubscribeToBalanceUpdates(clientID, userID string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicBalanceUpdates, relayshared.Filter{UserID: userID})
}

// SubscribeToNotifications subscribe to user notifications
func (h *SubscriptionHelper) SubscribeToNotifications(clientID, userID string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicNotificationUpdates, relayshared.Filter{UserID: userID})
}

// SubscribeToAdminUpdates subscribe to admin broadcasts for one admin level
func (h *SubscriptionHelper) SubscribeToAdminUpdates(clientID, adminLevel string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicAdminUpdates, relayshared.Filter{AdminLevel: adminLevel})
}

// SubscribeToSystemStatus subscribe to system status reports
func (h *SubscriptionHelper) SubscribeToSystemStatus(clientID string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicSystemStatus, relayshared.Filter{})
}

// SubscribeToFlashTradeResults subscribe to flash trade settlements
func (h *SubscriptionHelper) SubscribeToFlashTradeResults(clientID, userID string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicFlashTradeResults, relayshared.Filter{UserID: userID})
}

// SubscribeToQuickTradeUpdates subscribe to quick trade progress
func (h *SubscriptionHelper) SubscribeToQuickTradeUpdates(clientID, userID string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicQuickTradeUpdates, relayshared.Filter{UserID: userID})
}

// SubscribeToQuantAIUpdates subscribe to quant AI strategy events
func (h *SubscriptionHelper) SubscribeToQuantAIUpdates(clientID, userID string) string {
	return h.registrar.Subscribe(clientID, relayshared.TopicQuantAIUpdates, relayshared.Filter{UserID: userID})
}
