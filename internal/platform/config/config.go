package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	strutil "govinda/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
	CORSOrigins     []string
	Log             LogConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	Kafka           KafkaConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// DatabaseConfig selects PostgreSQL. An empty URL runs on in-memory stores.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

// RedisConfig enables the person read cache when URL is set.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// KafkaConfig enables the outbox relay when Brokers is non-empty.
type KafkaConfig struct {
	Brokers      []string
	Topic        string
	Partitions   int32
	PollInterval time.Duration
	BatchSize    int
}

const envPrefix = "GOVINDA"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.cors_origins", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.migrate", true)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.cache_ttl", 5*time.Minute)
	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.topic", "masterdata.events")
	v.SetDefault("kafka.partitions", 6)
	v.SetDefault("kafka.poll_interval", time.Second)
	v.SetDefault("kafka.batch_size", 100)
}

// Load reads config.yaml from path (if given and present) and applies
// GOVINDA_* environment overrides, e.g. GOVINDA_DATABASE_URL.
func Load(path string) (Server, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
				return Server{}, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	cfg := Server{
		Addr:            v.GetString("server.addr"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		RequestTimeout:  v.GetDuration("server.request_timeout"),
		CORSOrigins:     strutil.SplitList(v.GetStringSlice("server.cors_origins")),
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			Migrate:         v.GetBool("database.migrate"),
		},
		Redis: RedisConfig{
			URL:          v.GetString("redis.url"),
			PoolSize:     v.GetInt("redis.pool_size"),
			MinIdleConns: v.GetInt("redis.min_idle_conns"),
			DialTimeout:  v.GetDuration("redis.dial_timeout"),
			ReadTimeout:  v.GetDuration("redis.read_timeout"),
			WriteTimeout: v.GetDuration("redis.write_timeout"),
			CacheTTL:     v.GetDuration("redis.cache_ttl"),
		},
		Kafka: KafkaConfig{
			Brokers:      strutil.SplitList(v.GetStringSlice("kafka.brokers")),
			Topic:        v.GetString("kafka.topic"),
			Partitions:   v.GetInt32("kafka.partitions"),
			PollInterval: v.GetDuration("kafka.poll_interval"),
			BatchSize:    v.GetInt("kafka.batch_size"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// FromEnv builds the configuration from GOVINDA_* variables only.
func FromEnv() (Server, error) {
	return Load("")
}

func (c Server) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if len(c.Kafka.Brokers) > 0 && c.Database.URL == "" {
		return fmt.Errorf("kafka relay requires database.url")
	}
	if c.Kafka.BatchSize <= 0 {
		return fmt.Errorf("kafka.batch_size must be positive, got %d", c.Kafka.BatchSize)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
