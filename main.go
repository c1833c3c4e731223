package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ignisVeneficus/bistro/cli"
	"github.com/ignisVeneficus/bistro/config"
	"github.com/ignisVeneficus/bistro/logging"
	"github.com/rs/zerolog/log"
)

func main() {
	env, err := config.LoadEnvironment()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logging.LoadLogging(env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(config.GetConfigPath())
	if err != nil {
		log.Logger.Fatal().Err(err).Msg("failed to load configuration")
	}
	config.SetGlobal(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Run(ctx, *cfg, os.Args[1:]); err != nil {
		stop()
		log.Logger.Fatal().Err(err).Msg("failed to run bistro")
	}
}
