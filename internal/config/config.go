package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the server settings, read from the environment.
type Config struct {
	BindAddr     string
	Port         string
	DataFile     string
	ClientDir    string
	LogFile      string
	LogLevel     string
	GinMode      string
	StrictStatus bool     // map NotFound/IndexOutOfRange to 404/422 instead of 500
	CORSOrigins  []string // empty allows any origin
}

// Load reads .env (if present) and the environment, applying defaults.
func Load() *Config {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	return &Config{
		BindAddr:     getEnv("BIND_ADDR", "0.0.0.0"),
		Port:         getEnv("PORT", "3000"),
		DataFile:     getEnv("DATA_FILE", "./data/trip.json"),
		ClientDir:    getEnv("CLIENT_DIR", "./client"),
		LogFile:      getEnv("LOG_FILE", "./logs/app.log"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		GinMode:      getEnv("GIN_MODE", "release"),
		StrictStatus: getEnvBool("STRICT_STATUS", false),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "")),
	}
}

// Addr is the listen address.
func (c *Config) Addr() string {
	return c.BindAddr + ":" + c.Port
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	v, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		log.Printf("invalid boolean for %s=%q, using %v", key, v, defaultValue)
		return defaultValue
	}
	return b
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
