package ingress

import (
	"time"

	"github.com/Shopify/sarama"
)

type option struct {
	brokers       []string
	clientID      string
	clientVersion string
	consumerGroup string
	topics        []string
	maxGoroutines int
	config        *sarama.Config
}

// OptionFunc type
type OptionFunc func(*option)

func getDefaultOption() option {
	return option{
		clientVersion: "2.0.0",
		consumerGroup: "relay",
		maxGoroutines: 10,
	}
}

// SetBrokers option func
func SetBrokers(brokers []string) OptionFunc {
	return func(o *option) {
		o.brokers = brokers
	}
}

// SetClientID option func
func SetClientID(clientID string) OptionFunc {
	return func(o *option) {
		o.clientID = clientID
	}
}

// SetClientVersion option func
func SetClientVersion(version string) OptionFunc {
	return func(o *option) {
		o.clientVersion = version
	}
}

// SetConsumerGroup option func
func SetConsumerGroup(group string) OptionFunc {
	return func(o *option) {
		o.consumerGroup = group
	}
}

// SetTopics option func, restrict consumed topics (default all relay topics)
func SetTopics(topics []string) OptionFunc {
	return func(o *option) {
		o.topics = topics
	}
}

// SetMaxGoroutines option func, control maximum concurrent message handlers
func SetMaxGoroutines(max int) OptionFunc {
	return func(o *option) {
		o.maxGoroutines = max
	}
}

// SetConfig option func, override sarama configuration
func SetConfig(cfg *sarama.Config) OptionFunc {
	return func(o *option) {
		o.config = cfg
	}
}

// GetDefaultKafkaConfig construct default kafka consumer config
func GetDefaultKafkaConfig(clientID, clientVersion string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Version, _ = sarama.ParseKafkaVersion(clientVersion)
	cfg.ClientID = clientID

	cfg.Consumer.Offsets.Initial = sarama.OffsetOldest
	cfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.BalanceStrategyRoundRobin}
	cfg.Consumer.Group.Session.Timeout = 20 * time.Second

	return cfg
}
