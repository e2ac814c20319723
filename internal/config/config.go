package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	Environment string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	APIKey string // API key for authentication between bot and server

	// TrustedProxies are the proxy IPs whose X-Forwarded-For we believe.
	TrustedProxies []string

	// Game economy knobs
	StartingGrant    int64
	DailyReward      int64
	WeeklyReward     int64
	SurfRewardMin    int64
	SurfRewardMax    int64
	ExploreRewardMin int64
	ExploreRewardMax int64
	BoosterReward    int64
	BoosterCards     int
	BonanzaReward    int64
	BonanzaCards     int

	// RarityWeights maps rarity tier (1..5) to its relative drop weight.
	// Parsed from RARITY_WEIGHTS as "tier:weight" pairs; weights need not sum
	// to 100, the roller normalizes by the sum.
	RarityWeights map[int]int

	// CooldownBypassUsers always pass the cooldown gate (maintenance accounts).
	CooldownBypassUsers []string

	// BoosterUsers may claim the booster reward.
	BoosterUsers []string

	// LockdownWhitelist may keep using the bot while lockdown is active.
	LockdownWhitelist []string

	TradeTTL time.Duration
}

// DefaultRarityWeights is used when RARITY_WEIGHTS is not set.
var DefaultRarityWeights = map[int]int{1: 50, 2: 30, 3: 14, 4: 5, 5: 1}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "shorebot"),
		APIKey:      getEnv("API_KEY", ""),

		TrustedProxies:      splitList(getEnv("TRUSTED_PROXIES", "")),
		CooldownBypassUsers: splitList(getEnv("COOLDOWN_BYPASS_USERS", "")),
		BoosterUsers:        splitList(getEnv("BOOSTER_USERS", "")),
		LockdownWhitelist:   splitList(getEnv("LOCKDOWN_WHITELIST", "")),
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", 8080); err != nil {
		return nil, err
	}
	if cfg.StartingGrant, err = getEnvInt64("STARTING_GRANT", 100); err != nil {
		return nil, err
	}
	if cfg.DailyReward, err = getEnvInt64("DAILY_REWARD", 50); err != nil {
		return nil, err
	}
	if cfg.WeeklyReward, err = getEnvInt64("WEEKLY_REWARD", 300); err != nil {
		return nil, err
	}
	if cfg.SurfRewardMin, err = getEnvInt64("SURF_REWARD_MIN", 50); err != nil {
		return nil, err
	}
	if cfg.SurfRewardMax, err = getEnvInt64("SURF_REWARD_MAX", 149); err != nil {
		return nil, err
	}
	if cfg.ExploreRewardMin, err = getEnvInt64("EXPLORE_REWARD_MIN", 1500); err != nil {
		return nil, err
	}
	if cfg.ExploreRewardMax, err = getEnvInt64("EXPLORE_REWARD_MAX", 2999); err != nil {
		return nil, err
	}
	if cfg.BoosterReward, err = getEnvInt64("BOOSTER_REWARD", 10000); err != nil {
		return nil, err
	}
	if cfg.BoosterCards, err = getEnvInt("BOOSTER_CARDS", 15); err != nil {
		return nil, err
	}
	if cfg.BonanzaReward, err = getEnvInt64("BONANZA_REWARD", 25000); err != nil {
		return nil, err
	}
	if cfg.BonanzaCards, err = getEnvInt("BONANZA_CARDS", 20); err != nil {
		return nil, err
	}

	ttlSec, err := getEnvInt("TRADE_TTL_SECONDS", 60)
	if err != nil {
		return nil, err
	}
	cfg.TradeTTL = time.Duration(ttlSec) * time.Second

	cfg.RarityWeights, err = parseRarityWeights(getEnv("RARITY_WEIGHTS", ""))
	if err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}
	if c.SurfRewardMin > c.SurfRewardMax {
		return fmt.Errorf("SURF_REWARD_MIN (%d) exceeds SURF_REWARD_MAX (%d)", c.SurfRewardMin, c.SurfRewardMax)
	}
	if c.ExploreRewardMin > c.ExploreRewardMax {
		return fmt.Errorf("EXPLORE_REWARD_MIN (%d) exceeds EXPLORE_REWARD_MAX (%d)", c.ExploreRewardMin, c.ExploreRewardMax)
	}
	return nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// parseRarityWeights parses "1:50,2:30,3:14,4:5,5:1" into a weight table.
// An empty input yields DefaultRarityWeights.
func parseRarityWeights(s string) (map[int]int, error) {
	if s == "" {
		weights := make(map[int]int, len(DefaultRarityWeights))
		for tier, w := range DefaultRarityWeights {
			weights[tier] = w
		}
		return weights, nil
	}

	weights := make(map[int]int)
	for _, pair := range strings.Split(s, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid RARITY_WEIGHTS entry %q", pair)
		}
		tier, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid rarity tier in RARITY_WEIGHTS entry %q: %w", pair, err)
		}
		weight, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid weight in RARITY_WEIGHTS entry %q: %w", pair, err)
		}
		if weight < 0 {
			return nil, fmt.Errorf("negative weight in RARITY_WEIGHTS entry %q", pair)
		}
		weights[tier] = weight
	}
	return weights, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
