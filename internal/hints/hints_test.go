package hints

// Notes:
// - Detection runs on an injected getenv and a caller-chosen dockerenv
//   path, so every test runs in parallel without touching the process env.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func lookup(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

// ---------------------------------------------------------------------------
// TestDetect - Container, CI and browser variables
// ---------------------------------------------------------------------------

func TestDetect(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "no-dockerenv")

	tests := []struct {
		name          string
		vars          map[string]string
		wantContainer string
		wantCI        bool
		wantNoSandbox bool
		wantBin       string
	}{
		{name: "desktop"},
		{name: "explicit container", vars: map[string]string{"HTML2PDF_CONTAINER": "1"}, wantContainer: "HTML2PDF_CONTAINER=1"},
		{name: "podman", vars: map[string]string{"container": "podman"}, wantContainer: "container=podman"},
		{name: "kubernetes", vars: map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"}, wantContainer: "KUBERNETES_SERVICE_HOST"},
		{name: "github actions", vars: map[string]string{"GITHUB_ACTIONS": "true"}, wantCI: true},
		{name: "rod sandbox variable", vars: map[string]string{"ROD_NO_SANDBOX": "1"}, wantNoSandbox: true},
		{
			name:          "html2pdf variables win",
			vars:          map[string]string{"HTML2PDF_NO_SANDBOX": "false", "ROD_NO_SANDBOX": "1", "HTML2PDF_BROWSER_BIN": "/opt/chrome", "ROD_BROWSER_BIN": "/usr/bin/chromium"},
			wantNoSandbox: false,
			wantBin:       "/opt/chrome",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := detect(lookup(tt.vars), missing)

			if h.ContainerHint != tt.wantContainer || h.Container != (tt.wantContainer != "") {
				t.Errorf("container = %v (%q), want %q", h.Container, h.ContainerHint, tt.wantContainer)
			}
			if h.CI != tt.wantCI {
				t.Errorf("CI = %v, want %v", h.CI, tt.wantCI)
			}
			if h.NoSandbox != tt.wantNoSandbox {
				t.Errorf("NoSandbox = %v, want %v", h.NoSandbox, tt.wantNoSandbox)
			}
			if h.BrowserBin != tt.wantBin {
				t.Errorf("BrowserBin = %q, want %q", h.BrowserBin, tt.wantBin)
			}
		})
	}
}

func TestDetect_Dockerenv(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), ".dockerenv")
	if err := os.WriteFile(marker, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	h := detect(lookup(nil), marker)
	if !h.Container || h.ContainerHint != marker {
		t.Errorf("detect() = %+v, want container via %s", h, marker)
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Suggestions depend on the host
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		host        Host
		wantSandbox bool
		wantBin     bool
	}{
		{name: "ci", host: Host{CI: true}, wantSandbox: true, wantBin: true},
		{name: "container", host: Host{Container: true}, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", host: Host{Container: true, NoSandbox: true}, wantBin: true},
		{name: "binary configured", host: Host{BrowserBin: "/usr/bin/chromium"}},
		{name: "desktop", wantBin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForBrowserConnect(tt.host)

			if !strings.HasPrefix(hint, "\n  hint: ") {
				t.Errorf("hint %q lacks prefix", hint)
			}
			if got := strings.Contains(hint, "HTML2PDF_NO_SANDBOX"); got != tt.wantSandbox {
				t.Errorf("sandbox suggested = %v, want %v (%q)", got, tt.wantSandbox, hint)
			}
			if got := strings.Contains(hint, "HTML2PDF_BROWSER_BIN"); got != tt.wantBin {
				t.Errorf("browser bin suggested = %v, want %v (%q)", got, tt.wantBin, hint)
			}
			if !strings.Contains(hint, "html2pdf doctor") {
				t.Errorf("hint %q should point at doctor", hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForConfigNotFound / TestSimpleHints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"custom.yaml", "/home/u/.config/go-html2pdf/custom.yaml"})
	if !strings.Contains(hint, "--config") {
		t.Errorf("hint %q should mention --config", hint)
	}
	if !strings.Contains(hint, "/home/u/.config/go-html2pdf/custom.yaml") {
		t.Errorf("hint %q should suggest the user config path", hint)
	}

	if hint := ForConfigNotFound(nil); strings.Contains(hint, "create") {
		t.Errorf("hint %q should not suggest a path", hint)
	}
}

func TestSimpleHints(t *testing.T) {
	t.Parallel()

	for _, h := range []string{ForOutputDirectory(), ForListen(":8080")} {
		if !strings.HasPrefix(h, "\n  hint: ") {
			t.Errorf("hint %q lacks prefix", h)
		}
	}
	if !strings.Contains(ForListen(":8080"), ":8080") {
		t.Error("ForListen should name the address")
	}
	if format("") != "" {
		t.Error("format(\"\") should be empty")
	}
}
