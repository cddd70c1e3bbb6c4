package publisher

import (
	"time"

	"github.com/golangid/relay/interfaces"
	"github.com/golangid/relay/relayshared"
)

// MessagePublisher typed publish shortcuts for the backend producers (price
// feed, trade engine, balance ledger, notification service, admin
// broadcaster, system status reporter). Each method owns the payload shape and
// the addressing the router matches against.
type MessagePublisher struct {
	router interfaces.EventPublisher
}

// NewMessagePublisher constructor
func NewMessagePublisher(router interfaces.EventPublisher) *MessagePublisher {
	return &MessagePublisher{router: router}
}

// PublishPriceUpdate publish market price tick
func (p *MessagePublisher) PublishPriceUpdate(symbol string, price, change float64) int {
	return p.router.Publish(relayshared.TopicPriceUpdates, map[string]interface{}{
		"symbol":    symbol,
		"price":     price,
		"change":    change,
		"timestamp": time.Now(),
	}, relayshared.Filter{Symbols: []string{symbol}})
}

// PublishTradeUpdate publish trade engine state change for one user
func (p *MessagePublisher) PublishTradeUpdate(userID, tradeType string, tradeData map[string]interface{}) int {
	data := map[string]interface{}{
		"userId":    userID,
		"tradeType": tradeType,
	}
	for k, v := range tradeData {
		data[k] = v
	}
	return p.router.Publish(relayshared.TopicTradeUpdates, data,
		relayshared.Filter{UserID: userID, TradeTypes: []string{tradeType}})
}

// PublishBalanceUpdate publish ledger change for one user
func (p *MessagePublisher) PublishBalanceUpdate(userID, newBalance, change string) int {
	return p.router.Publish(relayshared.TopicBalanceUpdates, map[string]interface{}{
		"userId":     userID,
		"newBalance": newBalance,
		"change":     change,
		"timestamp":  time.Now(),
	}, relayshared.Filter{UserID: userID})
}

// PublishNotification publish user notification, priority taken from the
// notification payload when present
func (p *MessagePublisher) PublishNotification(userID string, notification map[string]interface{}) int {
	priority := relayshared.PriorityMedium
	if val, ok := notification["priority"].(string); ok && val != "" {
		priority = relayshared.Priority(val)
	}
	return p.router.Publish(relayshared.TopicNotificationUpdates, notification,
		relayshared.Filter{UserID: userID, Priority: priority})
}

// PublishAdminUpdate publish admin broadcast scoped by admin level
func (p *MessagePublisher) PublishAdminUpdate(adminLevel string, update map[string]interface{}) int {
	return p.router.Publish(relayshared.TopicAdminUpdates, update,
		relayshared.Filter{AdminLevel: adminLevel, Priority: relayshared.PriorityHigh})
}

// PublishSystemStatus publish system status report to all status subscribers
func (p *MessagePublisher) PublishSystemStatus(status map[string]interface{}) int {
	return p.router.Publish(relayshared.TopicSystemStatus, status,
		relayshared.Filter{Priority: relayshared.PriorityHigh})
}

// PublishFlashTradeResult publish flash trade settlement for one user
func (p *MessagePublisher) PublishFlashTradeResult(userID string, result map[string]interface{}) int {
	return p.router.Publish(relayshared.TopicFlashTradeResults, result,
		relayshared.Filter{UserID: userID, Priority: relayshared.PriorityHigh})
}
