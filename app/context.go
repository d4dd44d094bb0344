// Package app provides application-level lifecycle helpers.
package app

import (
	"context"
	"os/signal"
	"syscall"
)

// Context returns a context that is cancelled when the process receives
// SIGINT or SIGTERM. Each call returns an independent context with its
// own signal registration.
func Context() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	return ctx
}
