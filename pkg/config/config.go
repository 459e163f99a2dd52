package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string

	// StoreDriver selects the document store: firestore, mongo or memory.
	StoreDriver string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpiry int64
	RedisURL  string

	BcryptCost int

	StorageProvider string
	StorageBucket   string
	S3Region        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string

	// AuthRateLimit is the number of login/signup attempts allowed per minute per client.
	AuthRateLimit int64
	CORSOrigins   []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:                 getEnv("SERVER_PORT", "8080"),
		Environment:                getEnv("ENVIRONMENT", "development"),
		LogLevel:                   getEnv("LOG_LEVEL", "info"),
		StoreDriver:                strings.ToLower(getEnv("STORE_DRIVER", "firestore")),
		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
		MongoURI:                   getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:              getEnv("MONGO_DATABASE", "unisell"),
		JWTSecret:                  getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry:                  getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		RedisURL:                   getEnv("REDIS_URL", ""),
		BcryptCost:                 int(getEnvAsInt64("BCRYPT_COST", 10)),
		StorageProvider:            strings.ToLower(getEnv("STORAGE_PROVIDER", "none")),
		StorageBucket:              getEnv("STORAGE_BUCKET", ""),
		S3Region:                   getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:                 getEnv("S3_ENDPOINT", ""),
		S3AccessKey:                getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:                getEnv("S3_SECRET_KEY", ""),
		AuthRateLimit:              getEnvAsInt64("AUTH_RATE_LIMIT", 10),
		CORSOrigins:                getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
