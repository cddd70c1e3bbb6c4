package router

import (
	"github.com/golangid/relay/relayhelper"
	"github.com/golangid/relay/relayshared"
)

// matchesFilter reports whether a published event is relevant for a
// subscription. Every declared constraint must hold, an absent constraint is a
// wildcard. The policy is deliberately asymmetric: when the event side carries
// no value for a constrained attribute the constraint is not enforced
// (permissive when unaddressed), so richer addressing always wins.
func matchesFilter(subscriptionFilter, addressing relayshared.Filter, data interface{}) bool {
	if len(subscriptionFilter.Symbols) > 0 {
		symbol := resolveAttribute(data, "symbol", addressing.Symbols)
		if symbol != "" && !relayhelper.StringInSlice(symbol, subscriptionFilter.Symbols) {
			return false
		}
	}

	if subscriptionFilter.UserID != "" && addressing.UserID != "" &&
		subscriptionFilter.UserID != addressing.UserID {
		return false
	}

	if len(subscriptionFilter.TradeTypes) > 0 {
		tradeType := resolveAttribute(data, "tradeType", addressing.TradeTypes)
		if tradeType != "" && !relayhelper.StringInSlice(tradeType, subscriptionFilter.TradeTypes) {
			return false
		}
	}

	if subscriptionFilter.AdminLevel != "" && addressing.AdminLevel != "" &&
		subscriptionFilter.AdminLevel != addressing.AdminLevel {
		return false
	}

	return true
}

// resolveAttribute read a string attribute from the event payload, falling back
// to the first entry of the addressing attribute set. The payload is opaque to
// the router except for this lookup.
func resolveAttribute(data interface{}, field string, addressing []string) string {
	switch payload := data.(type) {
	case map[string]interface{}:
		if val, ok := payload[field].(string); ok && val != "" {
			return val
		}
	case map[string]string:
		if val := payload[field]; val != "" {
			return val
		}
	}

	if len(addressing) > 0 {
		return addressing[0]
	}
	return ""
}
