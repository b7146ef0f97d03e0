package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type AIConfig struct {
	GeminiAPIKey string
}

type PlannerConfig struct {
	SessionTTL       time.Duration
	GenerationBudget time.Duration
}

type Config struct {
	ServerPort  string
	MetricsPort string
	PprofPort   string
	AI          AIConfig
	Planner     PlannerConfig
}

func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8094"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", "9094"),
		PprofPort:   getEnvOrDefault("PPROF_PORT", "6060"),
		AI: AIConfig{
			GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		},
		Planner: PlannerConfig{
			SessionTTL:       getDurationOrDefault("PLANNER_SESSION_TTL", 30*time.Minute),
			GenerationBudget: getDurationOrDefault("PLANNER_GENERATION_BUDGET", 90*time.Second),
		},
	}

	if cfg.AI.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
