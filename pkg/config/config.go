package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port      int
	UploadDir string

	// upload limits
	MaxUploadFiles int
	MaxFileSize    int64

	// analysis provider
	UseMockAnalysis bool
	Provider        string
	OpenAIKey       string
	OpenAIChatModel string
	GeminiKey       string
	GeminiModel     string
	AnalysisTimeout time.Duration

	// storage
	StorageBackend string
	DatabaseURL    string
}

func Load() *Config {
	godotenv.Load()

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		port = 8080
	}

	timeout, err := time.ParseDuration(getEnv("ANALYSIS_TIMEOUT", "60s"))
	if err != nil {
		timeout = 60 * time.Second
	}

	return &Config{
		Port:      port,
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),

		MaxUploadFiles: getEnvInt("MAX_UPLOAD_FILES", 10),
		MaxFileSize:    getEnvInt64("MAX_FILE_SIZE_BYTES", 20*1024*1024),

		UseMockAnalysis: getEnvBool("USE_MOCK_ANALYSIS", false),
		Provider:        getEnv("ANALYSIS_PROVIDER", "openai"),
		OpenAIKey:       getEnv("OPENAI_API_KEY", ""),
		OpenAIChatModel: getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
		GeminiKey:       getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AnalysisTimeout: timeout,

		StorageBackend: getEnv("STORAGE_BACKEND", "memory"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.ParseInt(val, 10, 64); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}
