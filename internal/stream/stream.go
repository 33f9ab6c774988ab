// Package stream provides channel based read models that re-run their query whenever
// the underlying data changes.
package stream

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
)

// ErrClosed is returned by First when the source closes without emitting.
var ErrClosed = errors.New("stream closed")

// Query emits the result of fetch right away and again after every change signal for topics.
// Failed fetches are logged and skipped. The returned channel is closed once ctx is done.
func Query[T any](ctx context.Context, w Watcher, fetch func(context.Context) (T, error), topics ...string) <-chan T {
	out := make(chan T)
	signals, cancel := w.Watch(topics...)

	go func() {
		defer close(out)
		defer cancel()

		for {
			v, err := fetch(ctx)
			switch {
			case err == nil:
				select {
				case out <- v:
				case <-ctx.Done():
					return
				}
			case ctx.Err() != nil:
				return
			default:
				log.Error("failed to run query", "topics", topics, "error", err)
			}

			select {
			case <-signals:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// CombineLatest emits combine(a, b) with the latest value of each source whenever either
// source emits, once both have emitted at least once. A closed source keeps contributing
// its last value. The result closes when both sources are closed or ctx is done.
func CombineLatest[A, B, R any](ctx context.Context, a <-chan A, b <-chan B, combine func(A, B) R) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)

		var (
			lastA      A
			lastB      B
			hasA, hasB bool
		)
		for a != nil || b != nil {
			select {
			case v, ok := <-a:
				if !ok {
					a = nil
					if !hasA {
						return
					}
					continue
				}
				lastA, hasA = v, true
			case v, ok := <-b:
				if !ok {
					b = nil
					if !hasB {
						return
					}
					continue
				}
				lastB, hasB = v, true
			case <-ctx.Done():
				return
			}

			if !hasA || !hasB {
				continue
			}
			select {
			case out <- combine(lastA, lastB):
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Map applies fn to every value of in.
func Map[T, R any](ctx context.Context, in <-chan T, fn func(T) R) <-chan R {
	out := make(chan R)

	go func() {
		defer close(out)
		for {
			select {
			case v, ok := <-in:
				if !ok {
					return
				}
				select {
				case out <- fn(v):
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Just emits v once and closes.
func Just[T any](v T) <-chan T {
	out := make(chan T, 1)
	out <- v
	close(out)
	return out
}

// First waits for the first value of in.
func First[T any](ctx context.Context, in <-chan T) (T, error) {
	var zero T
	select {
	case v, ok := <-in:
		if !ok {
			return zero, ErrClosed
		}
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
