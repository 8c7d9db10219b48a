package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeAsset creates {dir}/{kind.Dir}/{name}{kind.Ext} with content.
func writeAsset(t *testing.T, dir string, kind Kind, name, content string) {
	t.Helper()

	sub := filepath.Join(dir, kind.Dir)
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", sub, err)
	}
	if err := os.WriteFile(filepath.Join(sub, name+kind.Ext), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write asset: %v", err)
	}
}

func TestNewDirLoader(t *testing.T) {
	t.Parallel()

	t.Run("valid directory", func(t *testing.T) {
		t.Parallel()

		loader, err := NewDirLoader(t.TempDir())
		if err != nil {
			t.Fatalf("NewDirLoader() error = %v", err)
		}
		if loader == nil {
			t.Fatal("NewDirLoader() returned nil")
		}
	})

	t.Run("empty path returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewDirLoader("")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewDirLoader(\"\") error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("nonexistent directory returns error", func(t *testing.T) {
		t.Parallel()

		_, err := NewDirLoader("/nonexistent/path/abc123xyz")
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewDirLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})

	t.Run("file instead of directory returns error", func(t *testing.T) {
		t.Parallel()

		filePath := filepath.Join(t.TempDir(), "file.txt")
		if err := os.WriteFile(filePath, []byte("test"), 0o644); err != nil {
			t.Fatalf("failed to create test file: %v", err)
		}

		_, err := NewDirLoader(filePath)
		if !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewDirLoader() error = %v, want ErrInvalidBasePath", err)
		}
	})
}

func TestDirLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, Style, "custom", "body { color: red; }")

	loader, err := NewDirLoader(dir)
	if err != nil {
		t.Fatalf("NewDirLoader() error = %v", err)
	}

	t.Run("existing asset", func(t *testing.T) {
		t.Parallel()

		got, err := loader.Load(Style, "custom")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if got != "body { color: red; }" {
			t.Errorf("Load() = %q", got)
		}
	})

	t.Run("missing asset", func(t *testing.T) {
		t.Parallel()

		_, err := loader.Load(Style, "missing")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Load() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("invalid name", func(t *testing.T) {
		t.Parallel()

		_, err := loader.Load(Style, "../custom")
		if !errors.Is(err, ErrInvalidAssetName) {
			t.Errorf("Load() error = %v, want ErrInvalidAssetName", err)
		}
	})
}

func TestDirLoader_Load_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require elevated privileges on Windows")
	}

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.css")
	if err := os.WriteFile(secret, []byte("secret"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, Style.Dir), 0o755); err != nil {
		t.Fatalf("failed to create styles dir: %v", err)
	}
	if err := os.Symlink(secret, filepath.Join(dir, Style.Dir, "escape.css")); err != nil {
		t.Fatalf("failed to create symlink: %v", err)
	}

	loader, err := NewDirLoader(dir)
	if err != nil {
		t.Fatalf("NewDirLoader() error = %v", err)
	}

	_, err = loader.Load(Style, "escape")
	if !errors.Is(err, ErrPathTraversal) {
		t.Errorf("Load() error = %v, want ErrPathTraversal", err)
	}
}
