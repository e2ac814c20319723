package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, int64(100), cfg.StartingGrant)
	assert.Equal(t, int64(50), cfg.DailyReward)
	assert.Equal(t, int64(300), cfg.WeeklyReward)
	assert.Equal(t, 15, cfg.BoosterCards)
	assert.Equal(t, 60*time.Second, cfg.TradeTTL)
	assert.Equal(t, DefaultRarityWeights, cfg.RarityWeights)
	assert.Empty(t, cfg.CooldownBypassUsers)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_KEY")
}

func TestLoad_CustomRarityWeights(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("RARITY_WEIGHTS", "1:60, 2:25,3:10,4:4,5:1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, map[int]int{1: 60, 2: 25, 3: 10, 4: 4, 5: 1}, cfg.RarityWeights)
}

func TestLoad_InvalidRarityWeights(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("RARITY_WEIGHTS", "1=60")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RewardRangeValidation(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("SURF_REWARD_MIN", "500")
	t.Setenv("SURF_REWARD_MAX", "100")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SURF_REWARD_MIN")
}

func TestLoad_UserLists(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("COOLDOWN_BYPASS_USERS", "111, 222 ,333")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"111", "222", "333"}, cfg.CooldownBypassUsers)
}

func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "u",
		DBPassword: "p",
		DBHost:     "db",
		DBPort:     "5433",
		DBName:     "shore",
	}
	assert.Equal(t, "postgres://u:p@db:5433/shore?sslmode=disable", cfg.GetDBConnString())
}
