// ipn-service/cmd/ipn-listener/main.go

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/config"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/events"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/ipn"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/listener"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/payment"
	paypalwebhook "github.com/Tanmoy095/LogiSynapse/ipn-service/internal/payment/webhook/paypal"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/paypal"
	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/store"
)

func main() {
	// =========================================================================
	// 1. LOAD CONFIG
	// =========================================================================
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Printf("PayPal mode=%s endpoint=%s", cfg.PaypalMode, cfg.IPNURL)

	ctx := context.Background()

	// =========================================================================
	// 2. SETUP DEPENDENCIES (DB & EVENT BUS)
	// =========================================================================
	var logStore store.NotificationLogStore
	if cfg.CommonConfig.HasDatabase() {
		pg, err := store.NewPostgresStore(ctx, cfg.CommonConfig.GetDBURL())
		if err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to create ipn_notification_log table: %v", err)
		}
		logStore = pg
		log.Println("Connected to Postgres")
	} else {
		log.Println("Warning: DB_HOST missing, notification log is kept in memory")
		logStore = store.NewMemoryStore()
	}

	publisher := newPublisher(cfg)
	defer publisher.Close()

	// =========================================================================
	// 3. WIRE THE IPN PIPELINE
	// =========================================================================
	client := paypal.NewClient(cfg.VerifyTimeout)
	validator := ipn.NewValidator(cfg.IPNURL, client)
	processor := paypalwebhook.New(validator)
	svc := payment.NewIPNService(processor, logStore, publisher)

	srv := listener.NewServer(cfg.ListenAddr, svc)

	// =========================================================================
	// 4. START LISTENER
	// =========================================================================
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run() }()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Listener stopped: %v", err)
		}
	case sig := <-quit:
		log.Printf("Received %s, shutting down", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Graceful shutdown failed: %v", err)
		}
	}
}

func newPublisher(cfg *config.Config) events.Publisher {
	common := cfg.CommonConfig
	switch cfg.EventBus {
	case config.EventBusKafka:
		log.Printf("Publishing events to Kafka topic %s", common.KAFKA_TOPIC)
		return events.NewKafkaProducer(common.KAFKA_BROKER, common.KAFKA_TOPIC)
	case config.EventBusRabbitMQ:
		p, err := events.NewRabbitmqPublisher(common.GetRabbitMQURL(), common.RABBITMQ_QUEUE)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		log.Printf("Publishing events to RabbitMQ queue %s", common.RABBITMQ_QUEUE)
		return p
	default:
		log.Println("Warning: no event bus configured, events are only logged")
		return events.LogPublisher{}
	}
}
