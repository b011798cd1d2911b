// Package config loads server configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"mentiond/internal/mentions/models"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	BaseURL  string
	LogLevel string
}

// Redis captures the sent-store connection configuration. An empty URL means
// Redis is not configured and the in-memory store is used instead.
type Redis struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Postgres captures the identity store connection. An empty DSN selects the
// in-memory store.
type Postgres struct {
	DSN string
}

// Kafka captures the delivery-event publisher configuration. No brokers means
// no publisher.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Config is everything the server needs at startup.
type Config struct {
	Server   Server
	Redis    Redis
	Postgres Postgres
	Kafka    Kafka
	Mentions models.RawSettings
}

// FromEnv builds a Config from MENTIOND_* environment variables, with
// development defaults for everything.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:     envOr("MENTIOND_ADDR", ":8080"),
			BaseURL:  envOr("MENTIOND_BASE_URL", "http://localhost:8080"),
			LogLevel: envOr("MENTIOND_LOG_LEVEL", "info"),
		},
		Redis: Redis{
			URL:          os.Getenv("MENTIOND_REDIS_URL"),
			PoolSize:     envInt("MENTIOND_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("MENTIOND_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("MENTIOND_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("MENTIOND_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("MENTIOND_REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Postgres: Postgres{
			DSN: os.Getenv("MENTIOND_POSTGRES_DSN"),
		},
		Kafka: Kafka{
			Brokers: envList("MENTIOND_KAFKA_BROKERS"),
			Topic:   envOr("MENTIOND_KAFKA_TOPIC", "mentions.delivered"),
		},
		Mentions: models.RawSettings{
			DisableFollowedTopics:   os.Getenv("MENTIOND_DISABLE_FOLLOWED_TOPICS"),
			AutofillGroups:          os.Getenv("MENTIOND_AUTOFILL_GROUPS"),
			DisableGroupMentions:    os.Getenv("MENTIOND_DISABLE_GROUP_MENTIONS"),
			OverrideIgnores:         os.Getenv("MENTIOND_OVERRIDE_IGNORES"),
			Display:                 os.Getenv("MENTIOND_DISPLAY"),
			PrivilegedDirectReplies: os.Getenv("MENTIOND_PRIVILEGED_DIRECT_REPLIES"),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
