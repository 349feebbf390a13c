// serve.go
//
// Process wiring.
// Responsibilities:
//   - Open and migrate the database.
//   - Build the actor system: coordinator + guess service, history observer.
//   - Bootstrap the coordinator with the guess service identity.
//   - Run the runner, the history recorder and the HTTP server until SIGINT/SIGTERM.

package main

import (
	"errors"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle/apps/game-session/internal/actor"
	"github.com/robalobadob/wordle/apps/game-session/internal/coordinator"
	"github.com/robalobadob/wordle/apps/game-session/internal/db"
	"github.com/robalobadob/wordle/apps/game-session/internal/history"
	"github.com/robalobadob/wordle/apps/game-session/internal/httpserver"
	"github.com/robalobadob/wordle/apps/game-session/internal/wordle"
	"github.com/robalobadob/wordle/apps/game-session/internal/words"
)

func setupLogging(level string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Str("level", level).Msg("unknown LOG_LEVEL, keeping default")
	}
}

func component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := config(cmd)
	if err != nil {
		return err
	}
	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	return db.Migrate(conn)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config(cmd)
	if err != nil {
		return err
	}

	list, err := words.Load(cfg.AnswersFile)
	if err != nil {
		return err
	}
	log.Info().Int("answers", list.Len()).Str("mode", cfg.AnswerMode).Msg("word list loaded")

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(conn); err != nil {
		return err
	}

	store := history.NewStore(conn)
	recorder := history.NewRecorder(store, 256, component("history"))

	sys := actor.NewSystem(
		actor.WithLogger(component("actor")),
		actor.WithObserver(recorder.Observe),
	)
	coord := coordinator.New(
		coordinator.WithLogger(component("coordinator")),
		coordinator.WithTimeoutRounds(cfg.TimeoutRounds),
	)
	if err := sys.Register(cfg.CoordinatorID, coord); err != nil {
		return err
	}
	if err := sys.Register(cfg.WordleID, wordle.New(picker(cfg, list), component("wordle"))); err != nil {
		return err
	}
	if err := sys.Init(cfg.CoordinatorID, cfg.CoordinatorID, coordinator.Init{WordleID: cfg.WordleID}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := actor.NewRunner(sys, cfg.RoundInterval, component("runner"))
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); runner.Run(ctx) }()
	go func() { defer wg.Done(); recorder.Run(ctx) }()

	srv := httpserver.New(httpserver.Config{
		JWTSecret:      cfg.JWTSecret,
		JWTExpiresDays: cfg.JWTExpiresDays,
		CookieName:     cfg.CookieName,
		SecureCookies:  cfg.SecureCookies,
		ClientOrigin:   cfg.ClientOrigin,
		RequestTimeout: 10 * time.Second,
	}, httpserver.Deps{
		Runner:        runner,
		Coordinator:   coord,
		CoordinatorID: cfg.CoordinatorID,
		DB:            conn,
		History:       store,
	})

	log.Info().Str("port", cfg.Port).Msg("starting game-session")
	err = srv.Serve(ctx, ":"+cfg.Port)
	stop()
	wg.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func picker(cfg Config, list *words.List) wordle.Picker {
	if cfg.AnswerMode == "daily" {
		return wordle.DailyPicker(list, cfg.DailySalt, time.Now)
	}
	return wordle.RandomPicker(list)
}
