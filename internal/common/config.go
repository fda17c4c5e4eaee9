package common

import (
	"os"
	"strconv"
	"time"

	"github.com/jiwoo-han/testcase-gen/constants"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Upload UploadConfig
	LLM    LLMConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPAddr string
}

// UploadConfig holds upload boundary limits
type UploadConfig struct {
	MaxBytes     int64
	MinTextChars int
}

// LLMConfig holds generation backend configuration
type LLMConfig struct {
	Model           string
	APIKey          string
	Temperature     float32
	MaxOutputTokens int32
	Timeout         time.Duration
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		},
		Upload: UploadConfig{
			MaxBytes:     getEnvAsInt64("MAX_UPLOAD_BYTES", constants.MaxUploadBytes),
			MinTextChars: getEnvAsInt("MIN_TEXT_CHARS", constants.MinTextChars),
		},
		LLM: LLMConfig{
			Model:           getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
			APIKey:          getEnv("GEMINI_API_KEY", ""),
			Temperature:     getEnvAsFloat32("GEMINI_TEMPERATURE", 0.2),
			MaxOutputTokens: int32(getEnvAsInt("GEMINI_MAX_OUTPUT_TOKENS", 8192)),
			Timeout:         getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "GEMINI_API_KEY is required", ErrServiceUnavailable)
	}
	if c.Server.HTTPAddr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Upload.MaxBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_BYTES must be positive", ErrInvalidInput)
	}
	return nil
}
