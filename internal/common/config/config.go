package config

import (
	"os"
	"strconv"
	"strings"
)

// ============================================================
// Configuration
// ============================================================

type Config struct {
	Port         string
	Environment  string
	ReadTimeout  int
	WriteTimeout int

	DBPath      string
	StorageRoot string
	BodyLimitMB int
	CORSOrigins []string

	RenderPxPerMeter float64
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "3001"),
		Environment:      getEnv("ENV", "development"),
		ReadTimeout:      getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout:     getEnvAsInt("WRITE_TIMEOUT", 10),
		DBPath:           getEnv("MAPS_DB_PATH", "data/db/maps.db"),
		StorageRoot:      getEnv("MAPS_STORAGE_ROOT", "data/maps"),
		BodyLimitMB:      getEnvAsInt("BODY_LIMIT_MB", 16),
		CORSOrigins:      getEnvAsList("CORS_ORIGINS", []string{"*"}),
		RenderPxPerMeter: getEnvAsFloat("RENDER_PX_PER_METER", 20),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f > 0 {
			return f
		}
	}
	return defaultVal
}

// getEnvAsList splits a comma separated value, dropping empty items.
func getEnvAsList(key string, defaultVal []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultVal
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
