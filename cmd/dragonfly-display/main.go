package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ladybug-tools/dragonfly-display/internal/cli"
	dferrors "github.com/ladybug-tools/dragonfly-display/pkg/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true

	if err := root.ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // Standard shell convention for SIGINT
		}
		c.Logger.Error(dferrors.UserMessage(err), "code", dferrors.GetCodeOr(err, dferrors.ErrCodeInternal), "error", err)
		os.Exit(1)
	}
}
