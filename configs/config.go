package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver  string
	DBSource  string
	Port      string
	JWTSecret string
	JWTTTL    time.Duration

	LogLevel  string
	LogFormat string

	CORSOrigins []string

	CatalogURL       string
	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	// ร้านสำหรับ seed ตัวอย่าง (ว่าง = ไม่ seed)
	SeedShop string
}

func LoadConfig() *Config {
	// prod ใช้ env จริง ไม่มี .env ก็ได้
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("skip .env: %v", err)
	}

	return &Config{
		DBDriver:         getEnv("DB_DRIVER", "sqlite"),
		DBSource:         getEnv("DB_SOURCE", "options.db"),
		Port:             getEnv("PORT", "8000"),
		JWTSecret:        getEnv("JWT_SECRET", "changeme"),
		JWTTTL:           getDuration("JWT_TTL", 24*time.Hour),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
		CORSOrigins:      getList("CORS_ORIGINS", []string{"*"}),
		CatalogURL:       os.Getenv("CATALOG_URL"),
		CatalogCacheSize: getInt("CATALOG_CACHE_SIZE", 1024),
		CatalogCacheTTL:  getDuration("CATALOG_CACHE_TTL", 10*time.Minute),
		SeedShop:         os.Getenv("SEED_SHOP"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
