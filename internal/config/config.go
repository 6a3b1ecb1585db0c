package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// Config stores dispatch service settings.
type Config struct {
	Port      int       `yaml:"port"`
	DB        DB        `yaml:"db"`
	Kafka     Kafka     `yaml:"kafka"`
	RabbitMQ  RabbitMQ  `yaml:"rabbitmq"`
	Notifier  Notifier  `yaml:"notifier"`
	Dispatch  Dispatch  `yaml:"dispatch"`
	RateLimit RateLimit `yaml:"rate_limit"`
	Log       Log       `yaml:"log"`
	Pprof     Pprof     `yaml:"pprof"`
}

// DB stores Postgres connection settings.
type DB struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
	User string `yaml:"user"`
	Pass string `yaml:"password"`
	Name string `yaml:"name"`
}

// DSN returns a postgres:// connection string.
func (d DB) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Pass),
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Kafka stores broker settings. Empty Brokers disables the order consumer.
type Kafka struct {
	Brokers     []string `yaml:"brokers"`
	GroupID     string   `yaml:"group_id"`
	OrdersTopic string   `yaml:"orders_topic"`
	EventsTopic string   `yaml:"events_topic"`
}

// RabbitMQ stores publisher settings.
type RabbitMQ struct {
	URL       string        `yaml:"url"`
	Exchange  string        `yaml:"exchange"`
	Heartbeat time.Duration `yaml:"heartbeat"`
}

// Notifier selects the dispatch event sink and its retry policy.
type Notifier struct {
	Kind        string        `yaml:"kind"` // kafka | rabbitmq | log
	MaxAttempts int           `yaml:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay"`
}

// Dispatch tunes the dispatch engine.
type Dispatch struct {
	Store                 string        `yaml:"store"` // postgres | memory
	RoundTimeout          time.Duration `yaml:"round_timeout"`
	MaxRounds             int           `yaml:"max_rounds"`
	ExpireOnEmptyRound    bool          `yaml:"expire_on_empty_round"`
	SearchRadiusKm        float64       `yaml:"search_radius_km"`
	MaxCandidatesPerRound int           `yaml:"max_candidates_per_round"`
	PresenceTTL           time.Duration `yaml:"presence_ttl"`
	CASMaxAttempts        int           `yaml:"cas_max_attempts"`
	OperationTimeout      time.Duration `yaml:"operation_timeout"`
	SweepInterval         time.Duration `yaml:"sweep_interval"`
	DueBatchSize          int           `yaml:"due_batch_size"`
	PublishTimeout        time.Duration `yaml:"publish_timeout"`
}

// RateLimit stores HTTP rate limiter settings.
type RateLimit struct {
	Enabled    bool          `yaml:"enabled"`
	Rate       float64       `yaml:"rate"`
	Burst      int           `yaml:"burst"`
	TTL        time.Duration `yaml:"ttl"`
	MaxBuckets int           `yaml:"max_buckets"`
}

// Log stores logger settings.
type Log struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // json | console
}

// Pprof stores debug server settings.
type Pprof struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	User    string `yaml:"user"`
	Pass    string `yaml:"password"`
}

// Load reads configuration in order: defaults → YAML file from CONFIG_FILE
// (if set) → .env (if present) → environment → flags.
func Load() (*Config, error) {
	cfg := Defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.Dispatch.Store, "store", cfg.Dispatch.Store, "job store: postgres or memory")
	pflag.StringVar(&cfg.Notifier.Kind, "notifier", cfg.Notifier.Kind, "event sink: kafka, rabbitmq or log")
	pflag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "log level")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks ranges and enum values.
func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port: %d", c.Port))
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		errs = append(errs, fmt.Errorf("invalid postgres port: %q", c.DB.Port))
	}
	switch c.Dispatch.Store {
	case "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("invalid dispatch store: %q", c.Dispatch.Store))
	}
	switch c.Notifier.Kind {
	case "log":
	case "kafka":
		if len(c.Kafka.Brokers) == 0 || c.Kafka.EventsTopic == "" {
			errs = append(errs, errors.New("kafka notifier needs KAFKA_BROKERS and KAFKA_EVENTS_TOPIC"))
		}
	case "rabbitmq":
		if c.RabbitMQ.URL == "" || c.RabbitMQ.Exchange == "" {
			errs = append(errs, errors.New("rabbitmq notifier needs RABBITMQ_URL and RABBITMQ_EXCHANGE"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid notifier: %q", c.Notifier.Kind))
	}
	if c.Dispatch.RoundTimeout <= 0 || c.Dispatch.SweepInterval <= 0 {
		errs = append(errs, errors.New("dispatch round timeout and sweep interval must be positive"))
	}
	if c.Dispatch.MaxRounds <= 0 {
		errs = append(errs, fmt.Errorf("invalid dispatch max rounds: %d", c.Dispatch.MaxRounds))
	}
	if c.Dispatch.SearchRadiusKm <= 0 {
		errs = append(errs, fmt.Errorf("invalid search radius: %v", c.Dispatch.SearchRadiusKm))
	}
	return errors.Join(errs...)
}

func applyEnv(cfg *Config) error {
	var errs []error

	setInt(&errs, "PORT", &cfg.Port)

	setString("POSTGRES_HOST", &cfg.DB.Host)
	setString("POSTGRES_PORT", &cfg.DB.Port)
	setString("POSTGRES_USER", &cfg.DB.User)
	setString("POSTGRES_PASSWORD", &cfg.DB.Pass)
	setString("POSTGRES_DB", &cfg.DB.Name)

	if v := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	setString("KAFKA_GROUP_ID", &cfg.Kafka.GroupID)
	setString("KAFKA_ORDERS_TOPIC", &cfg.Kafka.OrdersTopic)
	setString("KAFKA_EVENTS_TOPIC", &cfg.Kafka.EventsTopic)

	setString("RABBITMQ_URL", &cfg.RabbitMQ.URL)
	setString("RABBITMQ_EXCHANGE", &cfg.RabbitMQ.Exchange)
	setDuration(&errs, "RABBITMQ_HEARTBEAT", &cfg.RabbitMQ.Heartbeat)

	setString("NOTIFIER", &cfg.Notifier.Kind)
	setInt(&errs, "NOTIFIER_MAX_ATTEMPTS", &cfg.Notifier.MaxAttempts)
	setDuration(&errs, "NOTIFIER_BASE_DELAY", &cfg.Notifier.BaseDelay)
	setDuration(&errs, "NOTIFIER_MAX_DELAY", &cfg.Notifier.MaxDelay)

	setString("DISPATCH_STORE", &cfg.Dispatch.Store)
	setDuration(&errs, "DISPATCH_ROUND_TIMEOUT", &cfg.Dispatch.RoundTimeout)
	setInt(&errs, "DISPATCH_MAX_ROUNDS", &cfg.Dispatch.MaxRounds)
	setBool(&errs, "DISPATCH_EXPIRE_ON_EMPTY_ROUND", &cfg.Dispatch.ExpireOnEmptyRound)
	setFloat(&errs, "DISPATCH_SEARCH_RADIUS_KM", &cfg.Dispatch.SearchRadiusKm)
	setInt(&errs, "DISPATCH_MAX_CANDIDATES_PER_ROUND", &cfg.Dispatch.MaxCandidatesPerRound)
	setDuration(&errs, "DISPATCH_PRESENCE_TTL", &cfg.Dispatch.PresenceTTL)
	setInt(&errs, "DISPATCH_CAS_MAX_ATTEMPTS", &cfg.Dispatch.CASMaxAttempts)
	setDuration(&errs, "DISPATCH_OPERATION_TIMEOUT", &cfg.Dispatch.OperationTimeout)
	setDuration(&errs, "DISPATCH_SWEEP_INTERVAL", &cfg.Dispatch.SweepInterval)
	setInt(&errs, "DISPATCH_DUE_BATCH_SIZE", &cfg.Dispatch.DueBatchSize)
	setDuration(&errs, "DISPATCH_PUBLISH_TIMEOUT", &cfg.Dispatch.PublishTimeout)

	setBool(&errs, "RATE_LIMIT_ENABLED", &cfg.RateLimit.Enabled)
	setFloat(&errs, "RATE_LIMIT_RATE", &cfg.RateLimit.Rate)
	setInt(&errs, "RATE_LIMIT_BURST", &cfg.RateLimit.Burst)
	setDuration(&errs, "RATE_LIMIT_TTL", &cfg.RateLimit.TTL)
	setInt(&errs, "RATE_LIMIT_MAX_BUCKETS", &cfg.RateLimit.MaxBuckets)

	setString("LOG_LEVEL", &cfg.Log.Level)
	setString("LOG_FORMAT", &cfg.Log.Format)

	setBool(&errs, "PPROF_ENABLED", &cfg.Pprof.Enabled)
	setString("PPROF_ADDR", &cfg.Pprof.Addr)
	setString("PPROF_USER", &cfg.Pprof.User)
	setString("PPROF_PASSWORD", &cfg.Pprof.Pass)

	return errors.Join(errs...)
}

func setString(key string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*dst = v
	}
}

func setInt(errs *[]error, key string, dst *int) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = n
}

func setFloat(errs *[]error, key string, dst *float64) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = f
}

func setBool(errs *[]error, key string, dst *bool) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = b
}

func setDuration(errs *[]error, key string, dst *time.Duration) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return
	}
	*dst = d
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
