package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DBDriver    string
	DatabaseURL string

	KafkaBrokers    []string
	KafkaOrderTopic string

	ESURL       string
	ESUser      string
	ESPassword  string
	ESMenuIndex string
}

func Load() Config {
	cfg := Config{
		ServiceName: EnvDefault("SERVICE_NAME", "canteen"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 7001),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(EnvDefault("DB_DRIVER", DriverPostgres)),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		KafkaBrokers:    CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaOrderTopic: EnvDefault("KAFKA_ORDER_TOPIC", "order_events"),

		ESURL:       os.Getenv("ES_URL"),
		ESUser:      os.Getenv("ES_USER"),
		ESPassword:  os.Getenv("ES_PASSWORD"),
		ESMenuIndex: EnvDefault("ES_MENU_INDEX", "menu_items"),
	}

	if cfg.DBDriver == DriverSQLite && cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "canteen.db"
	}

	return cfg
}

func (c Config) Validate() error {
	var errs []error

	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unsupported driver %q", c.DBDriver))
	}
	if err := NonEmpty(c.DatabaseURL, "DATABASE_URL"); err != nil {
		errs = append(errs, err)
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT: out of range: %d", c.ServerPort))
	}
	if len(c.KafkaBrokers) > 0 {
		if err := NonEmpty(c.KafkaOrderTopic, "KAFKA_ORDER_TOPIC"); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (c Config) EventsEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func (c Config) SearchEnabled() bool {
	return c.ESURL != ""
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
