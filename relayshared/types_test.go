package relayshared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopicValid(t *testing.T) {
	for _, topic := range AllTopics {
		assert.True(t, topic.Valid())
	}
	assert.False(t, Topic("order_book").Valid())
	assert.False(t, Topic("").Valid())
}

func TestPriorityWeight(t *testing.T) {
	assert.Equal(t, 3, PriorityHigh.Weight())
	assert.Equal(t, 2, PriorityMedium.Weight())
	assert.Equal(t, 1, PriorityLow.Weight())

	// empty and unknown fall back to medium
	assert.Equal(t, 2, Priority("").Weight())
	assert.Equal(t, 2, Priority("urgent").Weight())
}
