// main.go
//
// REddle HTTP server.
// Loads configuration, the word list and the session store, then serves
// until SIGINT/SIGTERM.

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/config"
	"github.com/robalobadob/reddle/internal/httpserver"
	"github.com/robalobadob/reddle/internal/store"
	"github.com/robalobadob/reddle/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	setupLogging(cfg)

	wl, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("open session store")
	}
	defer st.Close()

	srv, err := httpserver.New(cfg, st, wl)
	if err != nil {
		log.Fatal().Err(err).Msg("build server")
	}

	log.Info().
		Str("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Int("words", wl.Len()).
		Msg("starting reddle server")
	if err := srv.Run(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
		return
	}
	log.Info().Msg("bye")
}

func setupLogging(cfg config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.ConsoleLog {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
