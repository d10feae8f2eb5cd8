package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is everything the service reads from the environment
type Config struct {
	Env      string
	Port     string
	LogLevel string

	DBDriver    string
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	AccessTokenSecret string
	AccessTokenTTL    time.Duration
	GoogleClientID    string

	MediaBackend        string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	S3Endpoint          string
	S3AccessKey         string
	S3SecretKey         string
	S3Bucket            string
	S3UseSSL            bool
	S3PublicURL         string

	KafkaBrokers        []string
	KafkaTopic          string
	KafkaPublishTimeout time.Duration

	Timezone    string
	CorsOrigins []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// LoadEnv loads .env when present; the process environment always wins
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded, using process environment: %v", err)
	}
}

// Load reads Config from the environment
func Load() *Config {
	LoadEnv()

	return &Config{
		Env:      GetEnv("APP_ENV", "dev"),
		Port:     GetEnv("PORT", "8083"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(GetEnv("DB_DRIVER", "postgres")),
		DatabaseURL: GetEnv("DATABASE_URL", ""),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBPort:      GetEnv("DB_PORT", ""),
		DBUser:      GetEnv("DB_USER", "postgres"),
		DBPassword:  GetEnv("DB_PASSWORD", ""),
		DBName:      GetEnv("DB_NAME", "abchotels"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "disable"),

		RedisAddr:     GetEnv("REDIS_ADDR", ""),
		RedisUser:     GetEnv("REDIS_USER", ""),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		RedisDB:       getInt("REDIS_DB", 0),
		CacheTTL:      getDuration("CACHE_TTL", 60*time.Minute),

		AccessTokenSecret: GetEnv("SECRET_KEY_ACCESS_TOKEN", ""),
		AccessTokenTTL:    getDuration("ACCESS_TOKEN_TTL", 72*time.Hour),
		GoogleClientID:    GetEnv("GOOGLE_CLIENT_ID", ""),

		MediaBackend:        strings.ToLower(GetEnv("MEDIA_BACKEND", "none")),
		CloudinaryCloudName: GetEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    GetEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: GetEnv("CLOUDINARY_API_SECRET", ""),
		S3Endpoint:          GetEnv("S3_ENDPOINT", ""),
		S3AccessKey:         GetEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:         GetEnv("S3_SECRET_KEY", ""),
		S3Bucket:            GetEnv("S3_BUCKET", "abchotels"),
		S3UseSSL:            getBool("S3_USE_SSL", false),
		S3PublicURL:         GetEnv("S3_PUBLIC_URL", ""),

		KafkaBrokers:        splitList(GetEnv("KAFKA_BROKERS", "")),
		KafkaTopic:          GetEnv("KAFKA_TOPIC", "hotel.events"),
		KafkaPublishTimeout: getDuration("KAFKA_PUBLISH_TIMEOUT", 2*time.Second),

		Timezone:    GetEnv("HOTEL_TIMEZONE", "UTC"),
		CorsOrigins: splitList(GetEnv("CORS_ORIGINS", "")),

		ReadTimeout:     getDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Location resolves the hotel timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown HOTEL_TIMEZONE %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

// GetEnv returns the variable or def when unset
func GetEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(key string, def int) int {
	v, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getBool(key string, def bool) bool {
	v, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

func getDuration(key string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(GetEnv(key, ""))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
