// Package hints turns common setup failures into one-line suggestions that
// the CLI appends to its error messages as "\n  hint: <text>".
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// Host is what the browser setup depends on in the current environment.
type Host struct {
	Container     bool
	ContainerHint string // which signal revealed the container
	CI            bool
	NoSandbox     bool
	BrowserBin    string
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// Detect inspects the environment through getenv. HTML2PDF_* variables win
// over the ROD_* ones go-rod reads.
func Detect(getenv func(string) string) Host {
	return detect(getenv, "/.dockerenv")
}

func detect(getenv func(string) string, dockerenv string) Host {
	h := Host{
		BrowserBin: firstSet(getenv, "HTML2PDF_BROWSER_BIN", "ROD_BROWSER_BIN"),
		NoSandbox:  truthy(firstSet(getenv, "HTML2PDF_NO_SANDBOX", "ROD_NO_SANDBOX")),
	}

	switch {
	case getenv("HTML2PDF_CONTAINER") == "1":
		h.Container, h.ContainerHint = true, "HTML2PDF_CONTAINER=1"
	case fileutil.FileExists(dockerenv):
		h.Container, h.ContainerHint = true, dockerenv
	case getenv("container") != "":
		h.Container, h.ContainerHint = true, "container="+getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		h.Container, h.ContainerHint = true, "KUBERNETES_SERVICE_HOST"
	}

	for _, k := range ciVars {
		if getenv(k) != "" {
			h.CI = true
			break
		}
	}
	return h
}

// NeedsNoSandbox reports whether Chrome will likely refuse to start because
// it runs sandboxed inside a container or CI job.
func (h Host) NeedsNoSandbox() bool {
	return (h.Container || h.CI) && !h.NoSandbox
}

// ForBrowserConnect returns hints for browser launch failures on h.
func ForBrowserConnect(h Host) string {
	var hints []string
	if h.NeedsNoSandbox() {
		hints = append(hints, "set HTML2PDF_NO_SANDBOX=true in containers and CI")
	}
	if h.BrowserBin == "" {
		hints = append(hints, "set HTML2PDF_BROWSER_BIN to use an installed Chrome")
	}
	hints = append(hints, "run 'html2pdf doctor' to check the setup")
	return format(strings.Join(hints, "; "))
}

// ForConfigNotFound suggests --config, or creating the file in the user
// config directory when that location was among searchedPaths.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-html2pdf/") {
			hint += " or create " + p
			break
		}
	}
	return format(hint)
}

func ForOutputDirectory() string {
	return format("check the output directory exists and is writable")
}

func ForListen(addr string) string {
	return format("address " + addr + " may be in use; pass --addr or set HTML2PDF_ADDR")
}

func firstSet(getenv func(string) string, keys ...string) string {
	for _, k := range keys {
		if v := getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
