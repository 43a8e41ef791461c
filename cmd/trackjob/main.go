package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/justsurfingit/trackjob/internal/cli"
	"github.com/justsurfingit/trackjob/internal/config"
	"github.com/justsurfingit/trackjob/internal/logger"
	"github.com/justsurfingit/trackjob/internal/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.Load(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log, err := logger.New(cfg.LogLevel, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync() //nolint:errcheck

	store := session.New(
		session.NewFileStorage(cfg.DurableSessionPath),
		session.NewFileStorage(cfg.SessionPath),
		log,
	)
	app := &cli.App{APIURL: cfg.APIURL, Session: store, Logger: log}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd(app).ExecuteContext(ctx); err != nil {
		cli.PrintError(os.Stderr, err)
		return 1
	}
	return 0
}
