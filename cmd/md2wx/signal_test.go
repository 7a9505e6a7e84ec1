package main

// Notes:
// - Only the context contract is checked. Real signal delivery is
//   platform specific and racy, so it is left out.

import (
	"context"
	"testing"
	"time"
)

func isDone(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// ---------------------------------------------------------------------------
// TestNotifyContext - Cancellation paths
// ---------------------------------------------------------------------------

func TestNotifyContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		act      func(stop context.CancelFunc, cancelParent context.CancelFunc)
		wantDone bool
	}{
		{"live until stopped", func(context.CancelFunc, context.CancelFunc) {}, false},
		{"stop cancels", func(stop, _ context.CancelFunc) { stop() }, true},
		{"parent cancels", func(_, cancelParent context.CancelFunc) { cancelParent() }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			parent, cancelParent := context.WithCancel(context.Background())
			defer cancelParent()
			ctx, stop := notifyContext(parent)
			defer stop()

			tt.act(stop, cancelParent)
			if got := isDone(ctx); got != tt.wantDone {
				t.Errorf("done = %v, want %v", got, tt.wantDone)
			}
		})
	}
}

func TestNotifyContext_KeepsParentValues(t *testing.T) {
	t.Parallel()

	type key struct{}
	deadline := time.Now().Add(time.Hour)
	parent, cancel := context.WithDeadline(context.WithValue(context.Background(), key{}, "run-1"), deadline)
	defer cancel()

	ctx, stop := notifyContext(parent)
	defer stop()

	if got, _ := ctx.Value(key{}).(string); got != "run-1" {
		t.Errorf("value = %q, want run-1", got)
	}
	if got, ok := ctx.Deadline(); !ok || !got.Equal(deadline) {
		t.Errorf("deadline = %v (%v), want %v", got, ok, deadline)
	}
}
