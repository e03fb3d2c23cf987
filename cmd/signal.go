package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func contextWithCancelOnInterrupt(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
