package config

import (
	"os"
	"strconv"
	"time"
)

// WebhookConfig holds delivery sink settings
type WebhookConfig struct {
	// URL is the external sink endpoint leads are delivered to
	URL string `json:"url"`

	// Transport selects the wire shape: "query" (GET + query string) or
	// "json" (POST + structured body)
	Transport string `json:"transport"`

	// TimeoutMS bounds a single delivery attempt
	TimeoutMS int `json:"timeoutMs"`
}

// Config holds all service configuration, loaded from the environment
type Config struct {
	Port        string        `json:"port"`
	MongoURI    string        `json:"-"` // Never serialize
	RedisURI    string        `json:"-"`
	JournalPath string        `json:"journalPath"`
	SessionTTL  time.Duration `json:"sessionTtl"`
	Webhook     WebhookConfig `json:"webhook"`
}

// Load reads configuration from the environment with defaults
func Load() *Config {
	return &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		MongoURI:    os.Getenv("MONGO_URI"),
		RedisURI:    os.Getenv("REDIS_URI"),
		JournalPath: getEnvOrDefault("JOURNAL_PATH", "leads.journal"),
		SessionTTL:  time.Duration(getEnvIntOrDefault("SESSION_TTL_MIN", 60)) * time.Minute,
		Webhook: WebhookConfig{
			URL:       os.Getenv("WEBHOOK_URL"),
			Transport: getEnvOrDefault("WEBHOOK_TRANSPORT", "query"),
			TimeoutMS: getEnvIntOrDefault("WEBHOOK_TIMEOUT_MS", 10000), // 10 second default timeout
		},
	}
}

// Timeout returns the webhook timeout as a duration
func (w *WebhookConfig) Timeout() time.Duration {
	return time.Duration(w.TimeoutMS) * time.Millisecond
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}
