package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), ".env"), false)
	require.NoError(t, err)

	assert.Equal(t, "5175", cfg.Port)
	assert.Equal(t, time.Second, cfg.RoundInterval)
	assert.Equal(t, uint64(200), cfg.TimeoutRounds)
	assert.Equal(t, "random", cfg.AnswerMode)
	assert.Equal(t, actor.ID("game-session"), cfg.CoordinatorID)
	assert.Equal(t, actor.ID("wordle"), cfg.WordleID)
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("TIMEOUT_ROUNDS=7\nANSWER_MODE=daily\nROUND_INTERVAL=250ms\n"), 0o600))
	t.Setenv("PORT", "9000")
	// godotenv does not override variables that are already set, and
	// t.Setenv restores them afterwards.
	t.Setenv("TIMEOUT_ROUNDS", "")
	os.Unsetenv("TIMEOUT_ROUNDS")
	t.Setenv("ANSWER_MODE", "")
	os.Unsetenv("ANSWER_MODE")
	t.Setenv("ROUND_INTERVAL", "")
	os.Unsetenv("ROUND_INTERVAL")

	cfg, err := loadConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, uint64(7), cfg.TimeoutRounds)
	assert.Equal(t, "daily", cfg.AnswerMode)
	assert.Equal(t, 250*time.Millisecond, cfg.RoundInterval)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.env"), true)
	assert.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	t.Setenv("ANSWER_MODE", "weekly")
	_, err := loadConfig(filepath.Join(t.TempDir(), ".env"), false)
	assert.ErrorContains(t, err, "ANSWER_MODE")

	t.Setenv("ANSWER_MODE", "random")
	t.Setenv("WORDLE_ID", "game-session")
	_, err = loadConfig(filepath.Join(t.TempDir(), ".env"), false)
	assert.ErrorContains(t, err, "must differ")

	t.Setenv("WORDLE_ID", "has space")
	_, err = loadConfig(filepath.Join(t.TempDir(), ".env"), false)
	assert.ErrorContains(t, err, "WORDLE_ID")
}
