// Command reddle-cli plays REddle in the terminal.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/reddle/internal/cli"
	"github.com/robalobadob/reddle/internal/config"
	"github.com/robalobadob/reddle/internal/game"
	"github.com/robalobadob/reddle/internal/words"
)

func main() {
	// Logs go to stderr so they never mix with the game transcript.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	wl, err := words.Load(cfg.WordsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g := game.New(wl.Random)
	if err := cli.Run(ctx, os.Stdin, os.Stdout, g); err != nil && err != context.Canceled {
		log.Error().Err(err).Msg("read input")
		os.Exit(1)
	}
}
