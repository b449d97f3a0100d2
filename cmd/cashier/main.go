package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/SscSPs/barbershop_cashdrawer/internal/cashiercli"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var verbose = flag.Bool("v", false, "Log requests to the ledger")

func main() {
	_ = godotenv.Load()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")

	env := &cashiercli.Env{
		Viper: viper.New(),
		Out:   os.Stdout,
		Err:   os.Stderr,
	}
	cashiercli.Register(commander, env)

	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	env.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}
