package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
	Payment  PaymentConfig
	Booking  BookingConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string `validate:"required"`
	Port int    `validate:"gt=0,lte=65535"`
}

type RedisConfig struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`
}

type PostgresConfig struct {
	User     string `validate:"required"`
	Password string `validate:"required"`
	Name     string `validate:"required"`
	Host     string `validate:"required"`
	Port     int    `validate:"gt=0,lte=65535"`
	SSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int32  `validate:"gte=0"`
	Migrate  bool
}

// DSN builds the pgx connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
		c.SSLMode,
	)
}

// AMQPConfig configures the booking.confirmed publisher. An empty URL turns
// publishing off.
type AMQPConfig struct {
	URL   string `validate:"omitempty,url"`
	Queue string `validate:"required_with=URL"`
}

// PaymentConfig points card, UPI and wallet payments at an external gateway.
// Cash is always settled at the counter. Without a gateway URL only cash is
// accepted.
type PaymentConfig struct {
	GatewayURL string        `validate:"omitempty,url"`
	Timeout    time.Duration `validate:"gt=0"`
}

type BookingConfig struct {
	HoldTTL        time.Duration `validate:"gt=0"`
	SessionTTL     time.Duration `validate:"gt=0"`
	ExpiryInterval time.Duration `validate:"gt=0"`
	VenueLockTTL   time.Duration `validate:"gt=0"`
	RateLimit      int           `validate:"gt=0"`
	RateWindow     time.Duration `validate:"gt=0"`
	IdempotencyTTL time.Duration `validate:"gt=0"`
}

type LogConfig struct {
	Level string `validate:"omitempty,oneof=debug info warn warning error"`
}

func New() (*Config, error) {
	const op = "config.New"

	_ = godotenv.Load()

	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	serverCfg := ServerConfig{
		Host: stringEnv("SERVER_HOST", "localhost"),
		Port: serverPort,
	}

	postgresPort, err := intEnv("POSTGRES_PORT", 5432)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresMaxConns, err := intEnv("POSTGRES_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresMigrate, err := boolEnv("POSTGRES_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	postgresUser := os.Getenv("POSTGRES_USER")
	if postgresUser == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_USER", op)
	}

	postgresPassword := os.Getenv("POSTGRES_PASSWORD")
	if postgresPassword == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_PASSWORD", op)
	}

	postgresDB := os.Getenv("POSTGRES_DB")
	if postgresDB == "" {
		return nil, fmt.Errorf("%s: missing POSTGRES_DB", op)
	}

	postgresCfg := PostgresConfig{
		User:     postgresUser,
		Password: postgresPassword,
		Name:     postgresDB,
		Host:     stringEnv("POSTGRES_HOST", "localhost"),
		Port:     postgresPort,
		SSLMode:  stringEnv("POSTGRES_SSLMODE", "disable"),
		MaxConns: int32(postgresMaxConns),
		Migrate:  postgresMigrate,
	}

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisCfg := RedisConfig{
		Addr:     stringEnv("REDIS_ADDR", "localhost:6380"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	amqpURL := os.Getenv("RABBITMQ_URL")
	if amqpURL == "" {
		amqpURL = os.Getenv("AMQP_URL")
	}

	amqpCfg := AMQPConfig{
		URL:   amqpURL,
		Queue: stringEnv("AMQP_QUEUE", "booking.confirmed"),
	}

	paymentTimeout, err := durationEnv("PAYMENT_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	paymentCfg := PaymentConfig{
		GatewayURL: os.Getenv("PAYMENT_GATEWAY_URL"),
		Timeout:    paymentTimeout,
	}

	bookingCfg, err := bookingFromEnv()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cfg := &Config{
		Server:   serverCfg,
		Postgres: postgresCfg,
		Redis:    redisCfg,
		AMQP:     amqpCfg,
		Payment:  paymentCfg,
		Booking:  bookingCfg,
		Log:      LogConfig{Level: strings.ToLower(os.Getenv("LOG_LEVEL"))},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cfg, nil
}

func bookingFromEnv() (BookingConfig, error) {
	var (
		cfg BookingConfig
		err error
	)

	if cfg.HoldTTL, err = durationEnv("HOLD_TTL", 5*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.SessionTTL, err = durationEnv("SESSION_TTL", 30*time.Minute); err != nil {
		return cfg, err
	}
	if cfg.ExpiryInterval, err = durationEnv("HOLD_EXPIRY_INTERVAL", 30*time.Second); err != nil {
		return cfg, err
	}
	if cfg.VenueLockTTL, err = durationEnv("VENUE_LOCK_TTL", 30*time.Second); err != nil {
		return cfg, err
	}
	if cfg.RateLimit, err = intEnv("CHECKOUT_RATE_LIMIT", 10); err != nil {
		return cfg, err
	}
	if cfg.RateWindow, err = durationEnv("CHECKOUT_RATE_WINDOW", time.Minute); err != nil {
		return cfg, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL", 2*time.Hour); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func stringEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}

func boolEnv(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}

	v, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}

	return v, nil
}
