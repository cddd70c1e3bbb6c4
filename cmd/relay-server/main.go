package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/golangid/relay/config/env"
	"github.com/golangid/relay/gateway"
	"github.com/golangid/relay/ingress"
	"github.com/golangid/relay/logger"
	"github.com/golangid/relay/relayutils"
	"github.com/golangid/relay/restserver"
	"github.com/golangid/relay/router"
)

const serviceName = "relay"

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Println("Failed to start relay service:", r)
			fmt.Printf("Stack trace: \n%s\n", debug.Stack())
		}
	}()

	env.Load(serviceName)
	logger.InitZap()
	logger.SetDebugMode(env.BaseEnv().DebugMode)

	cfg := env.BaseEnv()

	routerOpts := []router.OptionFunc{
		router.SetQueueCapacity(cfg.Router.QueueCapacity),
		router.SetRateLimit(cfg.Router.RateLimitWindow, cfg.Router.RateLimitCapacity),
		router.SetJanitorInterval(cfg.Router.JanitorInterval),
		router.SetInactiveThreshold(cfg.Router.InactiveThreshold),
		router.SetDebugMode(cfg.DebugMode),
	}
	if cfg.RedisLockerDSN != "" {
		pool := &redis.Pool{
			MaxIdle:     3,
			IdleTimeout: 240 * time.Second,
			Dial: func() (redis.Conn, error) {
				return redis.DialURL(cfg.RedisLockerDSN)
			},
		}
		ping := pool.Get()
		if _, err := ping.Do("PING"); err != nil {
			ping.Close()
			panic(err)
		}
		ping.Close()
		routerOpts = append(routerOpts, router.SetLocker(relayutils.NewRedisLocker(pool)))
	}

	rt := router.New(routerOpts...)

	janitor := router.NewJanitor(rt)
	go janitor.Serve()

	gw := gateway.New(rt,
		gateway.SetDrainInterval(cfg.DrainInterval),
		gateway.SetDebugMode(cfg.DebugMode),
	)

	restOpts := []restserver.OptionFunc{
		restserver.SetHTTPPort(cfg.HTTPPort),
		restserver.SetWebsocketHandler(cfg.WSPath, http.HandlerFunc(gw.HandleUpgrade)),
		restserver.SetDebugMode(cfg.DebugMode),
	}
	if cfg.BasicAuthUsername != "" {
		restOpts = append(restOpts, restserver.SetBasicAuth(cfg.BasicAuthUsername, cfg.BasicAuthPassword))
	}
	rest := restserver.NewServer(rt, restOpts...)
	go rest.Serve()

	var kafkaIngress *ingress.KafkaIngress
	if cfg.UseKafkaIngress {
		ingressOpts := []ingress.OptionFunc{
			ingress.SetBrokers(cfg.Kafka.Brokers),
			ingress.SetClientID(cfg.Kafka.ClientID),
			ingress.SetConsumerGroup(cfg.Kafka.ConsumerGroup),
		}
		if cfg.Kafka.ClientVersion != "" {
			ingressOpts = append(ingressOpts, ingress.SetClientVersion(cfg.Kafka.ClientVersion))
		}
		if len(cfg.Kafka.Topics) > 0 {
			ingressOpts = append(ingressOpts, ingress.SetTopics(cfg.Kafka.Topics))
		}
		kafkaIngress = ingress.NewKafkaIngress(rt, ingressOpts...)
		go kafkaIngress.Serve()
	}

	quitSignal := make(chan os.Signal, 1)
	signal.Notify(quitSignal, os.Interrupt, syscall.SIGTERM)
	<-quitSignal

	println("Graceful shutdown...")
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	if kafkaIngress != nil {
		kafkaIngress.Shutdown(ctx)
	}
	rest.Shutdown(ctx)
	gw.Shutdown(ctx)
	janitor.Shutdown(ctx)
}
