// config.go
//
// Process configuration.
// Responsibilities:
//   - Load an optional .env file (godotenv) without overriding the real environment.
//   - Parse environment variables into a typed Config (caarlos0/env).
//   - Validate values the env tags cannot express.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
)

// Config is everything the server reads from the environment.
type Config struct {
	Port     string `env:"PORT"          envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL"     envDefault:"info"`
	DBPath   string `env:"DATABASE_PATH" envDefault:"./data/app.db"`

	JWTSecret      string `env:"JWT_SECRET"       envDefault:"dev_secret_change_me"`
	JWTExpiresDays int    `env:"JWT_EXPIRES_DAYS" envDefault:"14"`
	CookieName     string `env:"COOKIE_NAME"      envDefault:"wordle_token"`
	SecureCookies  bool   `env:"SECURE_COOKIES"   envDefault:"false"`
	ClientOrigin   string `env:"CLIENT_ORIGIN"    envDefault:"http://localhost:5173"`

	RoundInterval time.Duration `env:"ROUND_INTERVAL" envDefault:"1s"`
	TimeoutRounds uint64        `env:"TIMEOUT_ROUNDS" envDefault:"200"`

	AnswersFile string `env:"WORDS_ANSWERS_FILE"`
	AnswerMode  string `env:"ANSWER_MODE" envDefault:"random"`
	DailySalt   string `env:"DAILY_SALT"  envDefault:"wordle"`

	CoordinatorID actor.ID `env:"COORDINATOR_ID" envDefault:"game-session"`
	WordleID      actor.ID `env:"WORDLE_ID"      envDefault:"wordle"`
}

// loadConfig reads envFile (if present) and then the environment. A missing
// default .env is fine; a missing explicit file is not.
func loadConfig(envFile string, explicit bool) (Config, error) {
	if err := godotenv.Load(envFile); err != nil && (explicit || !errors.Is(err, os.ErrNotExist)) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.AnswerMode {
	case "random", "daily":
	default:
		return fmt.Errorf("ANSWER_MODE must be random or daily, got %q", c.AnswerMode)
	}
	if c.RoundInterval <= 0 {
		return fmt.Errorf("ROUND_INTERVAL must be positive, got %s", c.RoundInterval)
	}
	if c.TimeoutRounds == 0 {
		return errors.New("TIMEOUT_ROUNDS must be positive")
	}
	if err := c.CoordinatorID.Validate(); err != nil {
		return fmt.Errorf("COORDINATOR_ID: %w", err)
	}
	if err := c.WordleID.Validate(); err != nil {
		return fmt.Errorf("WORDLE_ID: %w", err)
	}
	if c.CoordinatorID == c.WordleID {
		return errors.New("COORDINATOR_ID and WORDLE_ID must differ")
	}
	return nil
}
