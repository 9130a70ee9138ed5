package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	AppEnv   string
	HTTPAddr string

	// StoreBackend selects where portal state lives: "memory",
	// "redis", or "mongo".
	StoreBackend string
	StorePrefix  string

	RedisAddress  string
	RedisPassword string

	MongoURI      string
	MongoDatabase string

	JWTSecret string

	// AMQPURI enables lifecycle event publishing when non-empty.
	AMQPURI   string
	AMQPQueue string

	// IssueRateLimit caps issue creations per user per day; 0
	// disables the limiter.
	IssueRateLimit int

	// AdminEmails grants the admin role to matching registrations.
	AdminEmails []string

	CORSOrigins []string
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoi(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func csv(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func Load() Config {
	return Config{
		AppEnv:   getenv("APP_ENV", "dev"),
		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		StoreBackend: getenv("STORE_BACKEND", "memory"),
		StorePrefix:  getenv("STORE_PREFIX", "smartcity"),

		RedisAddress:  getenv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),

		MongoURI:      getenv("MONGODB_URI", ""),
		MongoDatabase: getenv("MONGODB_DATABASE", "smartcity"),

		JWTSecret: getenv("JWT_SECRET", ""),

		AMQPURI:   getenv("AMQP_URI", ""),
		AMQPQueue: getenv("AMQP_QUEUE", "issue_updates"),

		IssueRateLimit: atoi("ISSUE_RATE_LIMIT", 0),

		AdminEmails: csv("ADMIN_EMAILS"),

		CORSOrigins: csv("CORS_ORIGINS"),
	}
}
