package config

import "os"

// Config holds runtime configuration parsed from environment variables.
type Config struct {
	HTTPAddr      string
	MongoURI      string
	MongoDB       string
	JWTSecret     string
	CloudinaryURL string
	CORSOrigin    string
}

// FromEnv builds Config with defaults, overridden by environment variables.
func FromEnv() Config {
	return Config{
		HTTPAddr:      envOrDefault("HTTP_ADDR", ":8080"),
		MongoURI:      envOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       envOrDefault("MONGO_DB", "urbancart"),
		JWTSecret:     envOrDefault("JWT_SECRET", "SECRET"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),
		CORSOrigin:    envOrDefault("CORS_ORIGIN", "http://localhost:5173"),
	}
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
