package commands

import (
	"context"
	"log/slog"
	"time"
)

// asyncEffectRunner runs each effect in a detached goroutine with its own
// timeout. Outcomes are logged with enough context to replay the call by
// hand; there is no retry queue.
type asyncEffectRunner struct {
	timeout time.Duration
}

func NewAsyncEffectRunner(timeout time.Duration) EffectRunner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &asyncEffectRunner{timeout: timeout}
}

func (r *asyncEffectRunner) Go(name string, fields []any, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		args := append([]any{slog.String("effect", name)}, fields...)
		if err := fn(ctx); err != nil {
			slog.Error("external effect failed", append(args, slog.String("error", err.Error()))...)
			return
		}
		slog.Info("external effect completed", args...)
	}()
}

// SyncEffectRunner runs effects inline. Test use only.
type SyncEffectRunner struct {
	Names []string
	Errs  []error
}

func (r *SyncEffectRunner) Go(name string, _ []any, fn func(ctx context.Context) error) {
	r.Names = append(r.Names, name)
	r.Errs = append(r.Errs, fn(context.Background()))
}
