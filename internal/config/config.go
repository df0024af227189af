package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port                int
	NatsURL             string
	NatsToken           string
	DatabaseURL         string
	LogLevel            string
	LLMAPIKey           string
	Model               string
	EmbeddingModel      string
	Temperature         float64
	TrendsURL           string
	CreativeDirectorURL string
	DisruptiveURL       string
}

func Load() Config {
	return Config{
		Port:                envInt("MUSE_PORT", 8780),
		NatsURL:             envStr("NATS_URL", "nats://hermes:4222"),
		NatsToken:           envStr("NATS_TOKEN", ""),
		DatabaseURL:         envStr("DATABASE_URL", ""),
		LogLevel:            envStr("LOG_LEVEL", "info"),
		LLMAPIKey:           envStr("LLM_API_KEY", ""),
		Model:               envStr("MUSE_MODEL", "gpt-4o"),
		EmbeddingModel:      envStr("MUSE_EMBEDDING_MODEL", "text-embedding-3-small"),
		Temperature:         envFloat("MUSE_TEMPERATURE", 0.9),
		TrendsURL:           envStr("TRENDS_URL", ""),
		CreativeDirectorURL: envStr("CREATIVE_DIRECTOR_URL", ""),
		DisruptiveURL:       envStr("DISRUPTIVE_URL", ""),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
