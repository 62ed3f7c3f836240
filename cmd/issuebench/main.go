package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjglira/issuebench/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cli.ExecuteContext(ctx)
	stop()
	if err != nil {
		cli.Logger().Error(err)
		os.Exit(1)
	}
}
