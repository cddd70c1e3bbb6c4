package router

import (
	"testing"

	"github.com/golangid/relay/relayshared"
	"github.com/stretchr/testify/assert"
)

func TestMatchesFilterSymbols(t *testing.T) {
	filter := relayshared.Filter{Symbols: []string{"BTC/USDT"}}

	t.Run("Testcase #1: symbol from payload matches", func(t *testing.T) {
		data := map[string]interface{}{"symbol": "BTC/USDT", "price": 50000}
		assert.True(t, matchesFilter(filter, relayshared.Filter{}, data))
	})

	t.Run("Testcase #2: symbol from payload does not match", func(t *testing.T) {
		data := map[string]interface{}{"symbol": "ETH/USDT"}
		assert.False(t, matchesFilter(filter, relayshared.Filter{}, data))
	})

	t.Run("Testcase #3: symbol resolved from addressing fallback", func(t *testing.T) {
		addressing := relayshared.Filter{Symbols: []string{"ETH/USDT"}}
		assert.False(t, matchesFilter(filter, addressing, map[string]interface{}{}))

		addressing = relayshared.Filter{Symbols: []string{"BTC/USDT"}}
		assert.True(t, matchesFilter(filter, addressing, map[string]interface{}{}))
	})

	t.Run("Testcase #4: no symbols constraint is a wildcard", func(t *testing.T) {
		data := map[string]interface{}{"symbol": "DOGE/USDT"}
		assert.True(t, matchesFilter(relayshared.Filter{}, relayshared.Filter{}, data))
	})

	t.Run("Testcase #5: unresolvable symbol is not enforced", func(t *testing.T) {
		// neither payload nor addressing carries a symbol
		assert.True(t, matchesFilter(filter, relayshared.Filter{}, map[string]interface{}{"price": 1}))
	})
}

func TestMatchesFilterUserID(t *testing.T) {
	filter := relayshared.Filter{UserID: "u1"}

	t.Run("Testcase #1: both sides declared and equal", func(t *testing.T) {
		assert.True(t, matchesFilter(filter, relayshared.Filter{UserID: "u1"}, nil))
	})

	t.Run("Testcase #2: both sides declared and different", func(t *testing.T) {
		assert.False(t, matchesFilter(filter, relayshared.Filter{UserID: "u2"}, nil))
	})

	t.Run("Testcase #3: permissive when unaddressed", func(t *testing.T) {
		// event addressing omits userId entirely, constraint not enforced
		assert.True(t, matchesFilter(filter, relayshared.Filter{}, nil))
	})
}

func TestMatchesFilterTradeTypes(t *testing.T) {
	filter := relayshared.Filter{TradeTypes: []string{"flash", "quick"}}

	assert.True(t, matchesFilter(filter, relayshared.Filter{}, map[string]interface{}{"tradeType": "flash"}))
	assert.False(t, matchesFilter(filter, relayshared.Filter{}, map[string]interface{}{"tradeType": "spot"}))
	assert.True(t, matchesFilter(filter, relayshared.Filter{TradeTypes: []string{"quick"}}, map[string]interface{}{}))
	assert.True(t, matchesFilter(filter, relayshared.Filter{}, map[string]interface{}{}))
}

func TestMatchesFilterAdminLevel(t *testing.T) {
	filter := relayshared.Filter{AdminLevel: "superadmin"}

	assert.True(t, matchesFilter(filter, relayshared.Filter{AdminLevel: "superadmin"}, nil))
	assert.False(t, matchesFilter(filter, relayshared.Filter{AdminLevel: "support"}, nil))
	assert.True(t, matchesFilter(filter, relayshared.Filter{}, nil))
}

func TestMatchesFilterConjunction(t *testing.T) {
	filter := relayshared.Filter{
		Symbols: []string{"BTC/USDT"},
		UserID:  "u1",
	}
	addressing := relayshared.Filter{UserID: "u1", Symbols: []string{"BTC/USDT"}}
	assert.True(t, matchesFilter(filter, addressing, map[string]interface{}{}))

	// one failing constraint rejects the whole match
	addressing.UserID = "u2"
	assert.False(t, matchesFilter(filter, addressing, map[string]interface{}{}))
}

func TestResolveAttribute(t *testing.T) {
	assert.Equal(t, "BTC/USDT", resolveAttribute(map[string]interface{}{"symbol": "BTC/USDT"}, "symbol", []string{"ETH/USDT"}))
	assert.Equal(t, "BTC/USDT", resolveAttribute(map[string]string{"symbol": "BTC/USDT"}, "symbol", nil))
	assert.Equal(t, "ETH/USDT", resolveAttribute(map[string]interface{}{}, "symbol", []string{"ETH/USDT"}))
	assert.Equal(t, "", resolveAttribute(nil, "symbol", nil))
	assert.Equal(t, "", resolveAttribute("opaque", "symbol", nil))
}
