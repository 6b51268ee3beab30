package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port     string `yaml:"port"`
	DBDSN    string `yaml:"db_dsn"`
	LogFile  string `yaml:"log_file"`
	LogLevel string `yaml:"log_level"`
	SeedDemo bool   `yaml:"seed_demo"`
	TopN     int    `yaml:"top_n"`
}

func Default() Config {
	return Config{
		Port:     "8080",
		DBDSN:    "storefront.db", // sqlite file in project root
		LogFile:  "./storefront.log",
		LogLevel: "info",
		SeedDemo: true,
		TopN:     3,
	}
}

// Load starts from defaults, applies CONFIG_FILE (YAML) when set, then env overrides.
func Load() (Config, error) {
	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return cfg, err
		}
	}
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBDSN = getEnv("DB_DSN", cfg.DBDSN)
	cfg.LogFile = getEnv("LOG_FILE", cfg.LogFile)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.SeedDemo = getEnvBool("SEED_DEMO", cfg.SeedDemo)
	cfg.TopN = getEnvInt("TOP_N", cfg.TopN)
	if cfg.TopN < 1 {
		cfg.TopN = 3
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
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

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
