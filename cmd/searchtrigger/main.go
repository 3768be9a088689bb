package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"mediguide/internal/searchtrigger/cli"
	"mediguide/platform/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "production"
	}
	log := logger.NewWithWriter(env, os.Stderr)

	if err := cli.NewCommand(log).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
