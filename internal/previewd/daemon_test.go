package previewd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/opencode-ai/tsvg/internal/config"
	"github.com/opencode-ai/tsvg/internal/preview"
	"github.com/rs/zerolog"
)

func TestNewDefaultsFromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	daemon, err := New(cfg, zerolog.Nop(), Options{Hostname: "", Path: "icon.ts"})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := fmt.Sprintf("127.0.0.1:%d", cfg.Preview.Port)
	if got := daemon.bindAddr(); got != want {
		t.Fatalf("bindAddr() = %q, want %q", got, want)
	}
	if daemon.URL() != "" {
		t.Fatalf("URL() before Run = %q, want empty", daemon.URL())
	}
}

func TestNewRequiresConfigAndPath(t *testing.T) {
	if _, err := New(nil, zerolog.Nop(), Options{Path: "a.ts"}); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := New(config.DefaultConfig(), zerolog.Nop(), Options{}); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestRunServesAndFollowsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "icon.ts")
	if err := os.WriteFile(path, []byte("const a = /*svg*/ `<rect width=\"${w}\" />`;\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Preview.Port = 0
	cfg.Watch.Debounce = 20 * time.Millisecond

	daemon, err := New(cfg, zerolog.Nop(), Options{Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- daemon.Run(ctx)
	}()

	select {
	case <-daemon.Ready():
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not become ready")
	}

	waitForBody := func(want string) {
		t.Helper()
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if got := fetchPayload(t, "http://"+daemon.Addr()+RoutePayload); got.RawBody == want {
				return
			}
			time.Sleep(20 * time.Millisecond)
		}
		t.Fatalf("payload body never became %q", want)
	}

	waitForBody(`<rect width="${w}" />`)

	if err := os.WriteFile(path, []byte("const a = /*svg*/ `<rect height=\"${h}\" />`;\n"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}
	waitForBody(`<rect height="${h}" />`)

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}

func TestRunMissingFile(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Preview.Port = 0

	daemon, err := New(cfg, zerolog.Nop(), Options{Path: filepath.Join(t.TempDir(), "missing.ts")})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if err := daemon.Run(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRunTwiceFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.ts")
	if err := os.WriteFile(path, []byte("const a = /*svg*/ `<rect />`;\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Preview.Port = 0

	daemon, err := New(cfg, zerolog.Nop(), Options{Path: path})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- daemon.Run(ctx)
	}()

	select {
	case <-daemon.Ready():
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("daemon did not become ready")
	}

	if err := daemon.Run(ctx); !errors.Is(err, ErrAlreadyStarted) {
		t.Fatalf("second Run() error = %v, want ErrAlreadyStarted", err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}

func fetchPayload(t *testing.T, url string) preview.Payload {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	var p preview.Payload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	return p
}
