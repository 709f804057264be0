package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Economy  EconomyConfig
}

type ServerConfig struct {
	Port         string
	Environment  string
	JWTSecret    string
	AllowOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type TelegramConfig struct {
	BotToken   string
	ReviewChat int64 // chat that receives order review alerts
}

// EconomyConfig holds every tunable of the coin economy. It is injected into
// services at construction time so they stay testable with explicit values.
type EconomyConfig struct {
	DailyReward     int64
	ClaimInterval   time.Duration
	XPPerLevel      int64
	MaxLevel        int
	PremiumPrice    int64
	Season          int
	PromotionMinLen int
	PromotionMaxLen int
}

func (d DatabaseConfig) DSN() string {
	return "postgres://" + d.User + ":" + d.Password + "@" + d.Host + ":" + d.Port + "/" + d.Name + "?sslmode=" + d.SSLMode
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	reviewChat, _ := strconv.ParseInt(getEnv("TELEGRAM_REVIEW_CHAT_ID", "0"), 10, 64)
	dailyReward, _ := strconv.ParseInt(getEnv("ECONOMY_DAILY_REWARD", "100"), 10, 64)
	claimHours, _ := strconv.Atoi(getEnv("ECONOMY_CLAIM_INTERVAL_HOURS", "24"))
	xpPerLevel, _ := strconv.ParseInt(getEnv("ECONOMY_XP_PER_LEVEL", "100"), 10, 64)
	maxLevel, _ := strconv.Atoi(getEnv("ECONOMY_MAX_LEVEL", "50"))
	premiumPrice, _ := strconv.ParseInt(getEnv("ECONOMY_PREMIUM_PRICE", "1000"), 10, 64)
	season, _ := strconv.Atoi(getEnv("ECONOMY_SEASON", "1"))

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "crcrcoin"),
			Password: getEnv("DB_PASSWORD", "crcrcoin"),
			Name:     getEnv("DB_NAME", "crcrcoin"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Telegram: TelegramConfig{
			BotToken:   getEnv("TELEGRAM_BOT_TOKEN", ""),
			ReviewChat: reviewChat,
		},
		Economy: EconomyConfig{
			DailyReward:     dailyReward,
			ClaimInterval:   time.Duration(claimHours) * time.Hour,
			XPPerLevel:      xpPerLevel,
			MaxLevel:        maxLevel,
			PremiumPrice:    premiumPrice,
			Season:          season,
			PromotionMinLen: 10,
			PromotionMaxLen: 500,
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
