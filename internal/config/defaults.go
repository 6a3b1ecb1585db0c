package config

import "time"

const defaultPort = 8080

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "test_db",
}

var defaultKafka = Kafka{
	GroupID:     "service-dispatch",
	OrdersTopic: "orders.shop_orders",
	EventsTopic: "dispatch.events",
}

var defaultNotifier = Notifier{
	Kind:        "log",
	MaxAttempts: 4,
	BaseDelay:   150 * time.Millisecond,
	MaxDelay:    2 * time.Second,
}

var defaultDispatch = Dispatch{
	Store:            "postgres",
	RoundTimeout:     30 * time.Second,
	MaxRounds:        3,
	SearchRadiusKm:   5,
	PresenceTTL:      2 * time.Minute,
	CASMaxAttempts:   5,
	OperationTimeout: 3 * time.Second,
	SweepInterval:    5 * time.Second,
	DueBatchSize:     100,
	PublishTimeout:   2 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:    true,
	Rate:       10,
	Burst:      20,
	TTL:        5 * time.Minute,
	MaxBuckets: 10000,
}

// Defaults returns the configuration used when nothing is overridden.
func Defaults() Config {
	return Config{
		Port:      defaultPort,
		DB:        defaultDB,
		Kafka:     defaultKafka,
		RabbitMQ:  RabbitMQ{Exchange: "dispatch.events", Heartbeat: 10 * time.Second},
		Notifier:  defaultNotifier,
		Dispatch:  defaultDispatch,
		RateLimit: defaultRateLimit,
		Log:       Log{Level: "info", Format: "json"},
		Pprof:     Pprof{Addr: "127.0.0.1:6060"},
	}
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}
