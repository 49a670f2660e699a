package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort string
	LogLevel string

	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSslMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int

	KafkaBrokers          []string
	KafkaClientID         string
	KafkaOrderEventsTopic string

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string

	Currency              string
	FlatShippingFee       decimal.Decimal
	FreeShippingThreshold decimal.Decimal
	DeliveryDays          int
	ExternalCallTimeout   time.Duration

	AbandonedCartTTL     time.Duration
	CouponExpirySchedule string
	CartPurgeSchedule    string

	OTLPEnabled  bool
	OTLPEndpoint string
}

// DSN is the libpq-style connection string for the gorm postgres driver.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment, after loading .env when present.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	r := envReader{}
	cfg := Config{
		HTTPPort: r.str("HTTP_PORT", "8080"),
		LogLevel: r.str("LOG_LEVEL", "info"),

		DBHost:         r.str("DB_HOST", "localhost"),
		DBPort:         r.str("DB_PORT", "5432"),
		DBUser:         r.str("DB_USER", "postgres"),
		DBPassword:     r.str("DB_PASSWORD", "postgres"),
		DBName:         r.str("DB_NAME", "checkout"),
		DBSslMode:      r.str("DB_SSLMODE", "disable"),
		DBMaxOpenConns: r.integer("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: r.integer("DB_MAX_IDLE_CONNS", 5),

		KafkaBrokers:          r.list("KAFKA_BROKERS"),
		KafkaClientID:         r.str("KAFKA_CLIENT_ID", "checkout-service"),
		KafkaOrderEventsTopic: r.str("KAFKA_ORDER_EVENTS_TOPIC", "checkout.order-events"),

		RazorpayKeyID:     r.str("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: r.str("RAZORPAY_KEY_SECRET", ""),
		RazorpayBaseURL:   r.str("RAZORPAY_BASE_URL", "https://api.razorpay.com"),

		Currency:              r.str("CURRENCY", "INR"),
		FlatShippingFee:       r.decimal("FLAT_SHIPPING_FEE", "49"),
		FreeShippingThreshold: r.decimal("FREE_SHIPPING_THRESHOLD", "500"),
		DeliveryDays:          r.integer("DELIVERY_DAYS", 5),
		ExternalCallTimeout:   r.duration("EXTERNAL_CALL_TIMEOUT", 3*time.Second),

		AbandonedCartTTL:     r.duration("ABANDONED_CART_TTL", 72*time.Hour),
		CouponExpirySchedule: r.str("COUPON_EXPIRY_SCHEDULE", "0 */5 * * * *"),
		CartPurgeSchedule:    r.str("CART_PURGE_SCHEDULE", "0 0 * * * *"),

		OTLPEnabled:  r.flag("OTLP_ENABLED", false),
		OTLPEndpoint: r.str("OTLP_ENDPOINT", "localhost:4318"),
	}
	if r.err != nil {
		return Config{}, r.err
	}
	return cfg, nil
}

// envReader collects every malformed variable instead of stopping at the first.
type envReader struct {
	err error
}

func (r *envReader) fail(key, value string, err error) {
	r.err = errors.Join(r.err, fmt.Errorf("%s=%q: %w", key, value, err))
}

func (r *envReader) str(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func (r *envReader) integer(key string, def int) int {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) flag(key string, def bool) bool {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := r.str(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) decimal(key, def string) decimal.Decimal {
	v := r.str(key, def)
	d, err := decimal.NewFromString(v)
	if err != nil {
		r.fail(key, v, err)
		return decimal.Zero
	}
	return d
}

func (r *envReader) list(key string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key, ""), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
