package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"time"    // For duration settings

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort      string        // Application port
	StoreBackend string        // Ledger store backend: memory or mysql
	DBUser       string        // Database user
	DBPassword   string        // Database password
	DBHost       string        // Database host
	DBPort       string        // Database port
	DBName       string        // Database name
	JWTSecret    string        // JWT secret key
	RedisAddr    string        // Redis server address, empty disables caching
	RedisPass    string        // Redis password
	RedisDB      int           // Redis database number
	RPCURL       string        // Chain JSON-RPC endpoint
	TokenAddress string        // Tracked token contract address
	BurnAddress  string        // Burn address, defaults to the dead address
	PriceAPIURL  string        // Optional price feed endpoint
	HolderAPIURL string        // Optional holder-count endpoint
	OpenAIKey    string        // OpenAI API key for the audit service
	OpenAIModel  string        // OpenAI model name
	StatsTTL     time.Duration // Snapshot freshness window
	SeedSupply   string        // Initial total supply when the history is empty
	SeedBurned   string        // Initial burned amount when the history is empty
	SeedPrice    string        // Initial price when the history is empty
	SeedHolders  int           // Initial holder count when the history is empty
	IsProd       bool          // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:      getEnv("APP_PORT", "8080"),
		StoreBackend: getEnv("STORE_BACKEND", "memory"),
		DBUser:       os.Getenv("DB_USER"),
		DBPassword:   os.Getenv("DB_PASSWORD"),
		DBHost:       os.Getenv("DB_HOST"),
		DBPort:       os.Getenv("DB_PORT"),
		DBName:       os.Getenv("DB_NAME"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		RedisAddr:    os.Getenv("REDIS_ADDR"),
		RedisPass:    os.Getenv("REDIS_PASS"),
		RedisDB:      redisDB,
		RPCURL:       getEnv("RPC_URL", "https://bsc-dataseed1.binance.org/"),
		TokenAddress: getEnv("TOKEN_ADDRESS", "0xfa4C07636B53D868E514777B9d4005F1e9c6c40B"),
		BurnAddress:  os.Getenv("BURN_ADDRESS"),
		PriceAPIURL:  os.Getenv("PRICE_API_URL"),
		HolderAPIURL: os.Getenv("HOLDER_API_URL"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
		StatsTTL:     getDuration("STATS_TTL_SECONDS", 5*time.Minute),
		SeedSupply:   getEnv("SEED_TOTAL_SUPPLY", "10000000"),
		SeedBurned:   getEnv("SEED_BURNED_TOKENS", "2450000"),
		SeedPrice:    getEnv("SEED_PRICE", "$0.0032"),
		SeedHolders:  getInt("SEED_HOLDERS", 42839),
		IsProd:       os.Getenv("IS_PROD") == "true",
	}
}

// getEnv reads an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getInt reads an integer environment variable with a fallback default
func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// getDuration reads a seconds-valued environment variable with a fallback default
func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return time.Duration(v) * time.Second
	}
	return fallback
}
