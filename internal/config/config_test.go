package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Server.Addr != DefaultAddr {
		t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, DefaultAddr)
	}
	if cfg.Print.Paper != "a4" || cfg.Print.Scale != 0.8 || cfg.Print.Margin != 0.5 || !cfg.Print.Background {
		t.Errorf("Print = %+v, want A4 at 0.8 with 0.5in margins and backgrounds", cfg.Print)
	}
	if cfg.Assets.BasePath != "" {
		t.Errorf("Assets.BasePath = %q, want empty", cfg.Assets.BasePath)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestConfig_Durations(t *testing.T) {
	t.Parallel()

	d, err := DefaultConfig().Durations()
	if err != nil {
		t.Fatalf("Durations() error = %v", err)
	}

	want := Durations{
		Read:       30 * time.Second,
		Write:      5 * time.Minute,
		Shutdown:   30 * time.Second,
		IdleWindow: 500 * time.Millisecond,
	}
	if d != want {
		t.Errorf("Durations() = %+v, want %+v", d, want)
	}
}

func TestPaperSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		width  float64
		height float64
		ok     bool
	}{
		{"a4", "a4", 8.27, 11.69, true},
		{"letter upper case", "LETTER", 8.5, 11, true},
		{"legal", "legal", 8.5, 14, true},
		{"unknown", "tabloid", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			w, h, ok := PaperSize(tt.input)
			if ok != tt.ok || w != tt.width || h != tt.height {
				t.Errorf("PaperSize(%q) = %v, %v, %v; want %v, %v, %v", tt.input, w, h, ok, tt.width, tt.height, tt.ok)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"defaults", func(c *Config) {}, nil},
		{"console format", func(c *Config) { c.Log.Format = "console" }, nil},
		{"upper case level", func(c *Config) { c.Log.Level = "DEBUG" }, nil},
		{"addr too long", func(c *Config) { c.Server.Addr = strings.Repeat("a", MaxAddrLength+1) }, ErrFieldTooLong},
		{"zero body limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, ErrInvalidValue},
		{"bad duration", func(c *Config) { c.Server.ReadTimeout = "soon" }, ErrInvalidValue},
		{"negative duration", func(c *Config) { c.Server.WriteTimeout = "-1s" }, ErrInvalidValue},
		{"zero idle window", func(c *Config) { c.Browser.IdleWindow = "0s" }, ErrInvalidValue},
		{"unknown paper", func(c *Config) { c.Print.Paper = "tabloid" }, ErrInvalidValue},
		{"scale too small", func(c *Config) { c.Print.Scale = 0.05 }, ErrInvalidValue},
		{"scale too large", func(c *Config) { c.Print.Scale = 2.5 }, ErrInvalidValue},
		{"negative margin", func(c *Config) { c.Print.Margin = -0.1 }, ErrInvalidValue},
		{"unknown level", func(c *Config) { c.Log.Level = "trace" }, ErrInvalidValue},
		{"unknown format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidValue},
		{"code length zero", func(c *Config) { c.Transform.CodeLength = 0 }, ErrInvalidValue},
		{"code length too long", func(c *Config) { c.Transform.CodeLength = 21 }, ErrInvalidValue},
		{"date format too long", func(c *Config) { c.Transform.DateFormat = strings.Repeat("Y", MaxDateFormatLength+1) }, ErrFieldTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil && err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("LoadConfig(\"\") error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file path keeps defaults for absent keys", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "server.yaml", "server:\n  addr: \"127.0.0.1:9000\"\nprint:\n  scale: 1\n")

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Server.Addr != "127.0.0.1:9000" {
			t.Errorf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9000")
		}
		if cfg.Print.Scale != 1 {
			t.Errorf("Print.Scale = %v, want 1", cfg.Print.Scale)
		}
		if cfg.Print.Paper != DefaultPaper {
			t.Errorf("Print.Paper = %q, want default %q", cfg.Print.Paper, DefaultPaper)
		}
		if cfg.Server.MaxBodyBytes != DefaultMaxBodyBytes {
			t.Errorf("Server.MaxBodyBytes = %d, want default", cfg.Server.MaxBodyBytes)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "server:\n  port: 8080\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("LoadConfig() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, t.TempDir(), "bad.yaml", "print:\n  paper: tabloid\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("LoadConfig() error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	// Changes the working directory: not parallel.

	t.Run("resolves yaml in current directory", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "prod.yaml", "log:\n  level: debug\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("prod")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Level != "debug" {
			t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
		}
	})

	t.Run("resolves yml when yaml not found", func(t *testing.T) {
		dir := t.TempDir()
		writeConfig(t, dir, "prod.yml", "log:\n  format: console\n")
		t.Chdir(dir)

		cfg, err := LoadConfig("prod")
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Log.Format != "console" {
			t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "console")
		}
	})

	t.Run("not found lists tried paths", func(t *testing.T) {
		t.Chdir(t.TempDir())

		_, err := LoadConfig("nonexistent-xyz")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("LoadConfig() error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "nonexistent-xyz.yml") {
			t.Errorf("error %q does not list tried paths", err)
		}
	})
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("prod")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "prod.yaml" || paths[1] != "prod.yml" {
		t.Errorf("SearchPaths() local candidates = %v, want prod.yaml then prod.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(filepath.ToSlash(p), AppDir+"/") {
			t.Errorf("user candidate %q not under %s", p, AppDir)
		}
	}
}
