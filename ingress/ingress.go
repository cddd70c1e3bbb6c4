package ingress

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Shopify/sarama"
	"go.uber.org/zap/zapcore"

	"github.com/golangid/relay/interfaces"
	"github.com/golangid/relay/logger"
	"github.com/golangid/relay/relayshared"
)

// envelope payload consumed from kafka, addressing narrows fan-out the same way a direct publish does
type envelope struct {
	Data       interface{}          `json:"data"`
	Addressing relayshared.Filter   `json:"addressing"`
	Priority   relayshared.Priority `json:"priority,omitempty"`
}

// KafkaIngress bridge kafka topics into the subscription router
type KafkaIngress struct {
	engine          sarama.ConsumerGroup
	consumerHandler *kafkaConsumer
	cancelFunc      func()
}

// NewKafkaIngress create new kafka consumer bridge
func NewKafkaIngress(publisher interfaces.EventPublisher, opts ...OptionFunc) *KafkaIngress {
	opt := getDefaultOption()
	for _, o := range opts {
		o(&opt)
	}

	if opt.config == nil {
		opt.config = GetDefaultKafkaConfig(opt.clientID, opt.clientVersion)
	}
	if len(opt.topics) == 0 {
		for _, topic := range relayshared.AllTopics {
			opt.topics = append(opt.topics, string(topic))
		}
	}

	consumerEngine, err := sarama.NewConsumerGroup(opt.brokers, opt.consumerGroup, opt.config)
	if err != nil {
		log.Panicf("Error creating kafka consumer group client: %v", err)
	}

	for _, topic := range opt.topics {
		logger.LogYellow(fmt.Sprintf("[KAFKA-INGRESS] (topic): %-8s  (consumed by group)--> [%s]", topic, opt.consumerGroup))
	}
	fmt.Printf("\x1b[34;1m⇨ Kafka ingress is active. Brokers: " + strings.Join(opt.brokers, ", ") + "\x1b[0m\n\n")

	return &KafkaIngress{
		engine: consumerEngine,
		consumerHandler: &kafkaConsumer{
			publisher: publisher,
			topics:    opt.topics,
			semaphore: make(chan struct{}, opt.maxGoroutines),
		},
	}
}

func (k *KafkaIngress) Serve() {
	ctx, cancel := context.WithCancel(context.Background())
	k.cancelFunc = cancel

startConsume:
	if err := k.engine.Consume(ctx, k.consumerHandler.topics, k.consumerHandler); err != nil {
		log.Printf("Error from kafka ingress consumer: %v", err)
		goto startConsume
	}
}

func (k *KafkaIngress) Shutdown(ctx context.Context) {
	defer logger.LogWithDefer("Stopping Kafka ingress...")()

	if k.cancelFunc != nil {
		k.cancelFunc()
	}
	k.engine.Close()
}

// kafkaConsumer represents a Sarama consumer group consumer
type kafkaConsumer struct {
	publisher interfaces.EventPublisher
	topics    []string
	semaphore chan struct{} // for control maximum total goroutines when exec handlers
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (c *kafkaConsumer) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (c *kafkaConsumer) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages().
func (c *kafkaConsumer) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {

	for {
		select {
		case msg := <-claim.Messages():
			if msg == nil {
				continue
			}

			c.semaphore <- struct{}{}
			go func(message *sarama.ConsumerMessage) {
				defer func() {
					if r := recover(); r != nil {
						logger.LogE(fmt.Sprintf("kafka ingress: panic handling message from topic %s: %v", message.Topic, r))
					}
					session.MarkMessage(message, "")
					<-c.semaphore
				}()

				c.handleMessage(message)
			}(msg)

		case <-session.Context().Done():
			return nil

		}
	}
}

func (c *kafkaConsumer) handleMessage(message *sarama.ConsumerMessage) {
	topic := relayshared.Topic(message.Topic)
	if !topic.Valid() {
		logger.LogYellow(fmt.Sprintf("kafka ingress: skip message, unknown topic %s", message.Topic))
		return
	}

	var payload envelope
	if err := json.Unmarshal(message.Value, &payload); err != nil {
		logger.LogE(fmt.Sprintf("kafka ingress: malformed payload on topic %s: %v", message.Topic, err))
		return
	}
	if payload.Priority != "" {
		payload.Addressing.Priority = payload.Priority
	}

	delivered := c.publisher.Publish(topic, payload.Data, payload.Addressing)
	logger.LogWithField(zapcore.DebugLevel, map[string]interface{}{
		"message":   "kafka ingress: message routed",
		"topic":     message.Topic,
		"partition": message.Partition,
		"offset":    message.Offset,
		"delivered": delivered,
	})
}
