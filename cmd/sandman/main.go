package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrison/sandman/internal/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	rootCmd := cmd.NewRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	stop()

	os.Exit(cmd.ExitCode(err, os.Stderr))
}
