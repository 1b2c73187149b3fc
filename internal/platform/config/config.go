package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	pstrings "uvci/pkg/platform/strings"
)

const envPrefix = "UVCI"

// Server captures process level configuration.
type Server struct {
	Addr      string
	LogLevel  string
	LogFormat string

	// MaxBatchSize caps the identifiers accepted by one batch request.
	MaxBatchSize int
	// BatchConcurrency bounds the parallel inspections of one batch.
	BatchConcurrency int

	Redis    RedisConfig
	Postgres PostgresConfig
	Kafka    KafkaConfig
}

// RedisConfig enables the record cache when URL is set.
type RedisConfig struct {
	URL          string
	CacheTTL     time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// BreakerCooldown is how long the cache is bypassed after repeated
	// failures.
	BreakerCooldown time.Duration
}

// PostgresConfig enables the durable inspection store when URL is set.
type PostgresConfig struct {
	URL      string
	MaxConns int32
}

// KafkaConfig enables inspection events when Brokers is non-empty.
type KafkaConfig struct {
	Brokers  []string
	Topic    string
	ClientID string
}

func defaults(v *viper.Viper) {
	v.SetDefault("addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")
	v.SetDefault("max_batch_size", 1000)
	v.SetDefault("batch_concurrency", 8)

	v.SetDefault("redis_url", "")
	v.SetDefault("cache_ttl", 10*time.Minute)
	v.SetDefault("redis_pool_size", 10)
	v.SetDefault("redis_min_idle_conns", 2)
	v.SetDefault("redis_dial_timeout", 5*time.Second)
	v.SetDefault("redis_read_timeout", 3*time.Second)
	v.SetDefault("redis_write_timeout", 3*time.Second)
	v.SetDefault("redis_breaker_cooldown", 30*time.Second)

	v.SetDefault("database_url", "")
	v.SetDefault("database_max_conns", 10)

	v.SetDefault("kafka_brokers", "")
	v.SetDefault("kafka_topic", "uvci.inspections")
	v.SetDefault("kafka_client_id", "uvci-inspector")
}

// FromEnv builds a Server config from UVCI_* environment variables so main
// stays lean.
func FromEnv() Server {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	defaults(v)
	return load(v)
}

func load(v *viper.Viper) Server {
	cfg := Server{
		Addr:             v.GetString("addr"),
		LogLevel:         strings.ToLower(v.GetString("log_level")),
		LogFormat:        strings.ToLower(v.GetString("log_format")),
		MaxBatchSize:     v.GetInt("max_batch_size"),
		BatchConcurrency: v.GetInt("batch_concurrency"),
		Redis: RedisConfig{
			URL:             v.GetString("redis_url"),
			CacheTTL:        v.GetDuration("cache_ttl"),
			PoolSize:        v.GetInt("redis_pool_size"),
			MinIdleConns:    v.GetInt("redis_min_idle_conns"),
			DialTimeout:     v.GetDuration("redis_dial_timeout"),
			ReadTimeout:     v.GetDuration("redis_read_timeout"),
			WriteTimeout:    v.GetDuration("redis_write_timeout"),
			BreakerCooldown: v.GetDuration("redis_breaker_cooldown"),
		},
		Postgres: PostgresConfig{
			URL:      v.GetString("database_url"),
			MaxConns: v.GetInt32("database_max_conns"),
		},
		Kafka: KafkaConfig{
			Brokers:  pstrings.SplitList(v.GetString("kafka_brokers")),
			Topic:    v.GetString("kafka_topic"),
			ClientID: v.GetString("kafka_client_id"),
		},
	}
	if cfg.BatchConcurrency < 1 {
		cfg.BatchConcurrency = 1
	}
	if cfg.MaxBatchSize < 1 {
		cfg.MaxBatchSize = 1
	}
	return cfg
}
