package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/Dan9191/crypto-companion/internal/cli"
	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/Dan9191/crypto-companion/internal/integrations/coingecko"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"
)

var verbose = flag.Bool("v", false, "Log oracle requests")

func main() {
	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	flag.Parse()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	cli.Register(commander, &cli.Env{
		Oracle: coingecko.NewClient(cfg, logger),
		Out:    os.Stdout,
		Err:    os.Stderr,
	})
	os.Exit(int(commander.Execute(context.Background())))
}
