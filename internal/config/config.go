package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	AllowedOrigins string

	MongoURI string
	MongoDB  string
	RedisURL string

	JWTSecret     string
	JWTTTLMinutes time.Duration

	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string

	// Opaque collaborator configuration for the text-extraction service.
	VisionAPIKey       string
	ServiceAccountFile string

	RateLimitMessage  time.Duration
	SupportReplyDelay time.Duration
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:         getEnv("APP_ENV", "development"),
		Port:           getEnv("PORT", "5000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "anusasana"),
		RedisURL: os.Getenv("REDIS_URL"),

		JWTSecret: getEnv("JWT_SECRET", "change-me"),

		CloudinaryCloudName:    os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:       os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret:    os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryUploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "anusasana_submissions"),

		VisionAPIKey:       os.Getenv("GOOGLE_CLOUD_VISION_API_KEY"),
		ServiceAccountFile: os.Getenv("SERVICE_ACCOUNT_FILE"),
	}

	var err error
	cfg.JWTTTLMinutes, err = parseDuration(getEnv("JWT_TTL", "60m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	cfg.RateLimitMessage, err = parseDuration(getEnv("RATE_LIMIT_MESSAGE", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_MESSAGE: %w", err)
	}
	cfg.SupportReplyDelay, err = parseDuration(getEnv("SUPPORT_REPLY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUPPORT_REPLY_DELAY: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
