package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	SellerURL   string
	AdsJSONPath string
	AdsCSVPath  string
	ImagesDir   string
	ChromeBin   string

	BatchSize          int
	ScrollStableRounds int
	ScrollPollMs       int
	SellerTimeoutSec   int
	DetailTimeoutSec   int

	ImageMaxWidth  int
	ImageMaxHeight int
	JPEGQuality    int
	ImageDelayMs   int

	HTTPPort string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "catalog"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "catalog123"),
		PostgresDB:       getEnv("POSTGRES_DB", "catalog_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		SellerURL:   getEnv("SELLER_URL", "https://jiji.co.ke/sellerpage-fpYsOXD7fz2sZqygUQ1Qtd6z"),
		AdsJSONPath: getEnv("ADS_JSON_PATH", "ads.json"),
		AdsCSVPath:  getEnv("ADS_CSV_PATH", "ads.csv"),
		ImagesDir:   getEnv("IMAGES_DIR", "images"),
		ChromeBin:   getEnv("CHROME_BIN", ""),

		BatchSize:          getEnvInt("BATCH_SIZE", 15),
		ScrollStableRounds: getEnvInt("SCROLL_STABLE_ROUNDS", 10),
		ScrollPollMs:       getEnvInt("SCROLL_POLL_MS", 2500),
		SellerTimeoutSec:   getEnvInt("SELLER_TIMEOUT_SEC", 240),
		DetailTimeoutSec:   getEnvInt("DETAIL_TIMEOUT_SEC", 90),

		ImageMaxWidth:  getEnvInt("IMAGE_MAX_WIDTH", 1000),
		ImageMaxHeight: getEnvInt("IMAGE_MAX_HEIGHT", 1000),
		JPEGQuality:    getEnvInt("JPEG_QUALITY", 90),
		ImageDelayMs:   getEnvInt("IMAGE_DELAY_MS", 300),

		HTTPPort: getEnv("HTTP_PORT", "8080"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}
