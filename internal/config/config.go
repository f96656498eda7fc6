// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Tanmoy095/LogiSynapse/ipn-service/internal/paypal"
)

const (
	EventBusKafka    = "kafka"
	EventBusRabbitMQ = "rabbitmq"
	EventBusNone     = "none"

	defaultListenAddr    = ":8085"
	defaultVerifyTimeout = 30 * time.Second
)

// CommonConfig holds infrastructure details (database and brokers)
type CommonConfig struct {
	//Database (PostgreSQL) config
	DB_USER     string
	DB_PASSWORD string
	DB_NAME     string
	DB_HOST     string
	DB_PORT     string
	//Kafka config
	KAFKA_TOPIC  string
	KAFKA_BROKER string
	//RabbitMQ config
	RABBITMQ_USER     string
	RABBITMQ_PASSWORD string
	RABBITMQ_HOST     string
	RABBITMQ_PORT     string
	RABBITMQ_QUEUE    string
}

// Config is the IPN service configuration
type Config struct {
	CommonConfig *CommonConfig
	// PayPal
	PaypalMode    string        // "sandbox" or "production"
	IPNURL        string        // resolved validation endpoint
	VerifyTimeout time.Duration // limit for one postback round-trip
	// Listener
	ListenAddr string
	EventBus   string
}

// LoadCommonConfig returns the shared infrastructure config
func LoadCommonConfig() *CommonConfig {
	return &CommonConfig{

		DB_USER:     os.Getenv("DB_USER"),
		DB_PASSWORD: os.Getenv("DB_PASSWORD"),
		DB_HOST:     os.Getenv("DB_HOST"),
		DB_PORT:     os.Getenv("DB_PORT"),
		DB_NAME:     os.Getenv("DB_NAME"),

		KAFKA_TOPIC:  getenv("KAFKA_TOPIC", "payment.ipn.events"),
		KAFKA_BROKER: os.Getenv("KAFKA_BROKER"),

		RABBITMQ_USER:     os.Getenv("RABBITMQ_USER"),
		RABBITMQ_PASSWORD: os.Getenv("RABBITMQ_PASSWORD"),
		RABBITMQ_HOST:     os.Getenv("RABBITMQ_HOST"),
		RABBITMQ_PORT:     os.Getenv("RABBITMQ_PORT"),
		RABBITMQ_QUEUE:    getenv("RABBITMQ_QUEUE", "payment.ipn.events"),
	}
}

// LoadConfig loads the IPN service configuration from the environment.
// PAYPAL_IPN_URL overrides the endpoint picked by PAYPAL_MODE.
func LoadConfig() (*Config, error) {
	common := LoadCommonConfig()

	mode := getenv("PAYPAL_MODE", paypal.ModeSandbox)
	ipnURL := os.Getenv("PAYPAL_IPN_URL")
	if ipnURL == "" {
		resolved, err := paypal.EndpointFor(mode)
		if err != nil {
			return nil, fmt.Errorf("PAYPAL_MODE: %w", err)
		}
		ipnURL = resolved
	}

	timeout := defaultVerifyTimeout
	if raw := os.Getenv("PAYPAL_VERIFY_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("PAYPAL_VERIFY_TIMEOUT must be a positive duration, got %q", raw)
		}
		timeout = d
	}

	bus := strings.ToLower(getenv("IPN_EVENT_BUS", EventBusNone))
	switch bus {
	case EventBusKafka:
		if common.KAFKA_BROKER == "" {
			return nil, fmt.Errorf("KAFKA_BROKER is required when IPN_EVENT_BUS=kafka")
		}
	case EventBusRabbitMQ, EventBusNone:
	default:
		return nil, fmt.Errorf("IPN_EVENT_BUS must be kafka, rabbitmq or none, got %q", bus)
	}

	return &Config{
		CommonConfig:  common,
		PaypalMode:    mode,
		IPNURL:        ipnURL,
		VerifyTimeout: timeout,
		ListenAddr:    getenv("IPN_LISTEN_ADDR", defaultListenAddr),
		EventBus:      bus,
	}, nil
}

// HasDatabase reports whether a PostgreSQL host was configured.
func (c *CommonConfig) HasDatabase() bool {
	return c.DB_HOST != ""
}

// GetDBURL formats the config into a PostgreSQL connection string
func (c *CommonConfig) GetDBURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", c.DB_USER, c.DB_PASSWORD, c.DB_HOST, c.DB_PORT, c.DB_NAME)
}

// GetRabbitMQURL formats the config into a RabbitMQ connection string
func (c *CommonConfig) GetRabbitMQURL() string {

	//DEFAULTS STANDARD PORTS IF MISSING PREVENTS CRASHES

	host := c.RABBITMQ_HOST
	if host == "" {
		host = "localhost"
	}
	port := c.RABBITMQ_PORT
	if port == "" {
		port = "5672"
	}

	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.RABBITMQ_USER, c.RABBITMQ_PASSWORD, host, port)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
