package config

import (
	"fmt"
	"os"
)

type Config struct {
	Env        string
	ListenAddr string
	DataDir    string
	LogFormat  string

	// DatabaseURL is optional; without it run persistence and the async
	// endpoints are disabled.
	DatabaseURL string
	RunWorkers  int

	OpenAIEndpoint   string
	OpenAIKey        string
	OpenAIDeployment string
	OpenAIAPIVersion string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() (Config, error) {
	cfg := Config{
		Env:              getenv("APP_ENV", "development"),
		ListenAddr:       getenv("LISTEN_ADDR", ":8080"),
		DataDir:          getenv("DATA_DIR", "payopti_data"),
		LogFormat:        getenv("LOG_FORMAT", "text"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RunWorkers:       getenvInt("RUN_WORKERS", 0),
		OpenAIEndpoint:   os.Getenv("AZURE_OPENAI_ENDPOINT"),
		OpenAIKey:        os.Getenv("AZURE_OPENAI_KEY"),
		OpenAIDeployment: getenv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o"),
		OpenAIAPIVersion: getenv("AZURE_OPENAI_API_VERSION", "2024-02-01"),
	}
	if cfg.DatabaseURL == "" {
		// Not fatal; callers decide whether run persistence matters.
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	return cfg, nil
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		var out int
		_, err := fmt.Sscanf(v, "%d", &out)
		if err == nil {
			return out
		}
	}
	return def
}
