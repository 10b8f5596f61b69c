package backend

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"tempo/internal/config"
)

func TestCreateMemoryBackend(t *testing.T) {
	factory := NewFactory(nil)
	result, err := factory.CreateBackend(context.Background(), Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	if result.Backend == nil {
		t.Fatal("CreateBackend() returned nil backend")
	}
	if result.Events != nil {
		t.Fatal("memory backend must not carry an events client")
	}
}

func TestCreateSQLiteBackend(t *testing.T) {
	factory := NewFactory(nil)
	result, err := factory.CreateBackend(context.Background(), Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "tempo.db"),
	})
	if err != nil {
		t.Fatalf("CreateBackend() error = %v", err)
	}
	t.Cleanup(func() { result.Cleanup() })

	if _, err := result.Backend.ListEntries(context.Background()); err != nil {
		t.Fatalf("backend not usable: %v", err)
	}
}

func TestCreateBackendInvalidType(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.CreateBackend(context.Background(), Config{Type: "sheets"}); err == nil {
		t.Fatal("expected error for unknown backend type")
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg, err := FromAppConfig(&config.Config{
		DataBackend:   "remote",
		RemoteBaseURL: "http://localhost:8081",
	})
	if err != nil {
		t.Fatalf("FromAppConfig() error = %v", err)
	}
	if cfg.Type != RemoteBackend || cfg.RemoteBaseURL != "http://localhost:8081" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	_, err = FromAppConfig(&config.Config{DataBackend: "bogus"})
	if err == nil {
		t.Fatal("expected error for invalid backend type")
	}
	// The error names the accepted backends.
	for _, bt := range GetBackendTypes() {
		if !strings.Contains(err.Error(), bt.String()) {
			t.Fatalf("error %q does not mention backend type %s", err, bt)
		}
	}
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}
