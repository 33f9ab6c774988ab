package repository

import (
	"context"

	"github.com/charmbracelet/log"
)

// bestEffort runs a remote write whose failure must not fail the caller.
// The local write has already been applied, so the error is only logged.
func bestEffort(ctx context.Context, op string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		log.Debug("discarding remote write error", "op", op, "error", err)
	}
}
