package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName            string
	Port               string
	DebugMode          bool
	DatabaseURL        string
	FirebaseAPIKey     string
	HuggingFaceToken   string
	HFModel            string
	RedisURL           string
	JWTSecret          string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	FrontendURL        string
}

func Load() *Config {
	// .env is optional; deployments usually inject env vars directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	return &Config{
		AppName:            getEnv("APP_NAME", "VocabMaster"),
		Port:               getEnv("SERVER_PORT", "5000"),
		DebugMode:          strings.EqualFold(getEnv("DEBUG_MODE", "false"), "true"),
		DatabaseURL:        strings.TrimSuffix(getEnv("FIREBASE_DATABASE_URL", ""), "/"),
		FirebaseAPIKey:     getEnv("FIREBASE_API_KEY", ""),
		HuggingFaceToken:   strings.TrimSpace(getEnv("HUGGINGFACE_TOKEN", "")),
		HFModel:            getEnv("HF_MODEL", "mistralai/Mistral-Nemo-Instruct-2407"),
		RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		JWTSecret:          getEnv("JWT_SECRET", "your-256-bit-secret-change-in-production"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:5000/api/auth/google/callback"),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:3000"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
