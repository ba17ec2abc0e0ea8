package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/charmbracelet/huh"

	"github.com/theburrowhub/aicommit/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console := ui.NewConsole()
	err := newRootCmd(console).ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			console.Error("❌ Canceled by user")
			os.Exit(130)
		}
		console.Error("Error: %v", err)
		os.Exit(1)
	}
}
