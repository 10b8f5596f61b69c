package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"tempo/internal/log"
)

func TestGracefulShutdownRunsCleanup(t *testing.T) {
	logger := log.New(log.ComponentCLI, log.Config{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})

	var cleaned atomic.Bool
	ctx, done := GracefulShutdown(logger, time.Second, func(shutdownCtx context.Context) {
		if shutdownCtx.Err() != nil {
			t.Error("shutdown context expired before cleanup ran")
		}
		cleaned.Store(true)
	})

	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("send SIGTERM: %v", err)
	}

	WaitForShutdown(ctx, done)
	if !cleaned.Load() {
		t.Fatal("cleanup did not run before shutdown completed")
	}
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
