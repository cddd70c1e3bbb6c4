package env

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golangid/relay/relayhelper"
	"github.com/joho/godotenv"
)

// Env model
type Env struct {
	RootApp, ServiceName string
	BuildNumber          string
	// Env on application
	Environment string

	DebugMode bool

	// HTTPPort for websocket gateway and introspection endpoints
	HTTPPort uint16
	// WSPath websocket upgrade path
	WSPath string
	// DrainInterval how often the gateway drains queued messages per client
	DrainInterval time.Duration

	// Router tuning environment
	Router struct {
		QueueCapacity     int
		RateLimitWindow   time.Duration
		RateLimitCapacity int
		JanitorInterval   time.Duration
		InactiveThreshold time.Duration
	}

	// UseKafkaIngress env, enable kafka producer bridge
	UseKafkaIngress bool

	// Kafka broker environment, required when UseKafkaIngress
	Kafka struct {
		Brokers       []string
		ClientVersion string
		ClientID      string
		ConsumerGroup string
		Topics        []string
	}

	// RedisLockerDSN optional, janitor sweep lock when running multiple instances
	RedisLockerDSN string

	// BasicAuthUsername & BasicAuthPassword optional, guard introspection endpoints when set
	BasicAuthUsername string
	BasicAuthPassword string

	StartAt string
}

var env Env

// BaseEnv get global basic environment
func BaseEnv() Env {
	return env
}

// SetEnv set env for mocking data env
func SetEnv(newEnv Env) {
	env = newEnv
}

// Load environment
func Load(serviceName string) {
	env.ServiceName = serviceName

	// load main .env and additional .env in app
	if err := godotenv.Load(os.Getenv(relayhelper.WORKDIR) + ".env"); err != nil {
		log.Printf("Warning: load env, %v", err)
	}

	env.RootApp = os.Getenv("ROOT_APP")
	env.BuildNumber = os.Getenv("BUILD_NUMBER")
	env.Environment = os.Getenv("ENVIRONMENT")

	var err error
	env.DebugMode, err = strconv.ParseBool(os.Getenv("DEBUG_MODE"))
	if err != nil {
		env.DebugMode = true
	}

	httpPort, err := strconv.Atoi(os.Getenv("RELAY_HTTP_PORT"))
	if err != nil || httpPort <= 0 {
		httpPort = 8004
	}
	env.HTTPPort = uint16(httpPort)

	env.WSPath = os.Getenv("RELAY_WS_PATH")
	if env.WSPath == "" {
		env.WSPath = "/ws"
	}

	env.DrainInterval = parseDuration("RELAY_DRAIN_INTERVAL", 100*time.Millisecond)

	parseRouterEnv()
	parseBrokerEnv()

	env.RedisLockerDSN = os.Getenv("REDIS_LOCKER_DSN")
	env.BasicAuthUsername = os.Getenv("BASIC_AUTH_USERNAME")
	env.BasicAuthPassword = os.Getenv("BASIC_AUTH_PASS")

	env.StartAt = time.Now().Format(time.RFC3339)
}

func parseRouterEnv() {
	env.Router.QueueCapacity = parseInt("RELAY_QUEUE_CAPACITY", 50)
	env.Router.RateLimitWindow = parseDuration("RELAY_RATE_WINDOW", time.Minute)
	env.Router.RateLimitCapacity = parseInt("RELAY_RATE_CAPACITY", 100)
	env.Router.JanitorInterval = parseDuration("RELAY_JANITOR_INTERVAL", 5*time.Minute)
	env.Router.InactiveThreshold = parseDuration("RELAY_INACTIVE_THRESHOLD", 30*time.Minute)
}

func parseBrokerEnv() {
	env.UseKafkaIngress, _ = strconv.ParseBool(os.Getenv("USE_KAFKA_INGRESS"))
	if !env.UseKafkaIngress {
		return
	}

	var kafkaEnv struct {
		Brokers       string `env:"KAFKA_BROKERS"`
		ClientVersion string `env:"KAFKA_CLIENT_VERSION"`
		ClientID      string `env:"KAFKA_CLIENT_ID"`
		ConsumerGroup string `env:"KAFKA_CONSUMER_GROUP"`
	}
	relayhelper.MustParseEnv(&kafkaEnv)
	env.Kafka.Brokers = strings.Split(kafkaEnv.Brokers, ",")
	env.Kafka.ClientVersion = kafkaEnv.ClientVersion
	env.Kafka.ClientID = kafkaEnv.ClientID
	env.Kafka.ConsumerGroup = kafkaEnv.ConsumerGroup

	if raw := os.Getenv("KAFKA_INGRESS_TOPICS"); raw != "" {
		env.Kafka.Topics = strings.Split(raw, ",")
	}
}

func parseInt(key string, defaultVal int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}

func parseDuration(key string, defaultVal time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return defaultVal
	}
	return v
}
