package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
)

// Doctor statuses.
const (
	statusReady    = "ready"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// doctorResult is the report printed by "html2pdf doctor".
type doctorResult struct {
	Status   string      `json:"status"`
	Browser  browserInfo `json:"browser"`
	Env      envInfo     `json:"environment"`
	System   systemInfo  `json:"system"`
	Warnings []string    `json:"warnings,omitempty"`
	Errors   []string    `json:"errors,omitempty"`
}

type browserInfo struct {
	Found      bool   `json:"found"`
	Path       string `json:"path,omitempty"`
	Version    string `json:"version,omitempty"`
	Configured bool   `json:"configured"` // set through HTML2PDF_BROWSER_BIN or ROD_BROWSER_BIN
	Sandbox    bool   `json:"sandbox"`
}

type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
}

type systemInfo struct {
	TempWritable bool   `json:"temp_writable"`
	ConfigDir    string `json:"config_dir,omitempty"`
}

func (r *doctorResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *doctorResult) fail(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// runDoctorCmd prints the report and exits 1 only when a check failed;
// warnings still exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	asJSON := false
	for _, a := range args {
		asJSON = asJSON || a == "--json"
	}

	r := runDoctor(env.Getenv)
	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(r)
	} else {
		printDoctorResult(env.Stdout, r)
	}

	if r.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(getenv func(string) string) *doctorResult {
	host := hints.Detect(getenv)

	r := &doctorResult{
		Env: envInfo{
			OS:            runtime.GOOS,
			Arch:          runtime.GOARCH,
			Container:     host.Container,
			ContainerHint: host.ContainerHint,
			CI:            host.CI,
		},
	}

	checkBrowser(r, host)
	if host.NeedsNoSandbox() {
		r.warn("container/CI detected but sandbox not disabled; set HTML2PDF_NO_SANDBOX=true")
	}
	checkSystem(r)

	switch {
	case len(r.Errors) > 0:
		r.Status = statusErrors
	case len(r.Warnings) > 0:
		r.Status = statusWarnings
	default:
		r.Status = statusReady
	}
	return r
}

// checkBrowser locates Chrome. A missing browser is only a warning: go-rod
// downloads one on first launch. A configured path that does not exist is
// an error since it would never be replaced.
func checkBrowser(r *doctorResult, host hints.Host) {
	r.Browser.Sandbox = !host.NoSandbox
	r.Browser.Configured = host.BrowserBin != ""

	bin := host.BrowserBin
	if bin == "" {
		var ok bool
		if bin, ok = launcher.LookPath(); !ok {
			r.warn("Chrome/Chromium not found; it will be downloaded on first conversion")
			return
		}
	}

	if _, err := os.Stat(bin); err != nil {
		r.fail("browser binary %s: %v", bin, err)
		return
	}
	r.Browser.Found = true
	r.Browser.Path = bin

	out, err := exec.Command(bin, "--version").Output() // #nosec G204 -- operator-chosen binary
	if err != nil {
		r.warn("could not read browser version: %v", err)
		return
	}
	r.Browser.Version = strings.TrimSpace(string(out))
}

func checkSystem(r *doctorResult) {
	f, err := os.CreateTemp("", "html2pdf-doctor-*")
	if err != nil {
		r.fail("temp directory %s not writable: %v", os.TempDir(), err)
	} else {
		_ = f.Close()
		_ = os.Remove(f.Name())
		r.System.TempWritable = true
	}

	if dir, err := os.UserConfigDir(); err == nil {
		r.System.ConfigDir = filepath.Join(dir, config.AppDir)
	}
}

func printDoctorResult(w io.Writer, r *doctorResult) {
	line := func(tag, format string, args ...any) {
		fmt.Fprintf(w, "  [%s] %s\n", tag, fmt.Sprintf(format, args...))
	}

	fmt.Fprint(w, "html2pdf doctor\n\nChrome/Chromium\n")
	if r.Browser.Found {
		line("OK", "Found at %s", r.Browser.Path)
		if r.Browser.Version != "" {
			line("OK", "Version: %s", r.Browser.Version)
		}
	} else {
		line("WARN", "Not found")
	}
	if r.Browser.Sandbox {
		line("OK", "Sandbox: enabled")
	} else {
		line("OK", "Sandbox: disabled")
	}

	fmt.Fprint(w, "\nEnvironment\n")
	line("OK", "Platform: %s/%s", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		line("OK", "Container: detected (%s)", r.Env.ContainerHint)
	}
	if r.Env.CI {
		line("OK", "CI: detected")
	}

	fmt.Fprint(w, "\nSystem\n")
	if r.System.TempWritable {
		line("OK", "Temp directory: writable")
	} else {
		line("ERROR", "Temp directory: not writable")
	}
	if r.System.ConfigDir != "" {
		line("OK", "Config directory: %s", r.System.ConfigDir)
	}

	for _, group := range []struct {
		title, tag string
		items      []string
	}{
		{"Warnings", "WARN", r.Warnings},
		{"Errors", "ERROR", r.Errors},
	} {
		if len(group.items) == 0 {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n", group.title)
		for _, msg := range group.items {
			line(group.tag, "%s", msg)
		}
	}

	fmt.Fprintln(w)
	switch r.Status {
	case statusReady:
		fmt.Fprintln(w, "Status: Ready to convert")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
