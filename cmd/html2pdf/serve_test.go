package main

// Notes:
// - runServe: we test startup and graceful stop on an ephemeral port with an
//   already canceled context, and the failure paths reachable before listening.
// - Request handling is covered by the server package tests.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/config"
)

// ---------------------------------------------------------------------------
// TestRunServe - Startup, shutdown and configuration errors
// ---------------------------------------------------------------------------

func TestRunServe(t *testing.T) {
	t.Parallel()

	t.Run("stops when context is canceled", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		env, _, stderr := testEnv(nil)
		if err := runServe(ctx, []string{"--addr", "127.0.0.1:0", "--quiet"}, env); err != nil {
			t.Fatalf("runServe() error = %v, stderr: %s", err, stderr.String())
		}
	})

	t.Run("invalid assets directory", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(nil)
		err := runServe(context.Background(), []string{"--assets", filepath.Join(t.TempDir(), "missing")}, env)
		if !errors.Is(err, assets.ErrInvalidBasePath) {
			t.Errorf("error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("invalid idle window from env", func(t *testing.T) {
		t.Parallel()
		env, _, _ := testEnv(map[string]string{"HTML2PDF_IDLE_WINDOW": "soon"})
		err := runServe(context.Background(), nil, env)
		if !errors.Is(err, config.ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}
