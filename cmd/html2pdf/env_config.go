package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/alnah/go-html2pdf/internal/config"
)

// envPrefix marks variables read by html2pdf.
const envPrefix = "HTML2PDF_"

// defaultEnvFile is read when --env-file is not given. It may be absent.
const defaultEnvFile = ".env"

// envConfig holds configuration from environment variables.
// Empty fields were not set.
type envConfig struct {
	ConfigPath   string // HTML2PDF_CONFIG: config file name or path
	Addr         string // HTML2PDF_ADDR: listen address
	MaxBodyBytes string // HTML2PDF_MAX_BODY_BYTES: request size limit
	TrustProxy   string // HTML2PDF_TRUST_PROXY: honour X-Forwarded-*
	BrowserBin   string // HTML2PDF_BROWSER_BIN: Chrome binary
	NoSandbox    string // HTML2PDF_NO_SANDBOX: disable Chrome sandbox
	IdleWindow   string // HTML2PDF_IDLE_WINDOW: network quiescence window
	Paper        string // HTML2PDF_PAPER: a4, letter, legal
	LogLevel     string // HTML2PDF_LOG_LEVEL
	LogFormat    string // HTML2PDF_LOG_FORMAT
	AssetsPath   string // HTML2PDF_ASSETS_PATH: custom page templates
}

// knownEnvVars lists valid HTML2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"HTML2PDF_CONFIG":         true,
	"HTML2PDF_ADDR":           true,
	"HTML2PDF_MAX_BODY_BYTES": true,
	"HTML2PDF_TRUST_PROXY":    true,
	"HTML2PDF_BROWSER_BIN":    true,
	"HTML2PDF_NO_SANDBOX":     true,
	"HTML2PDF_IDLE_WINDOW":    true,
	"HTML2PDF_PAPER":          true,
	"HTML2PDF_LOG_LEVEL":      true,
	"HTML2PDF_LOG_FORMAT":     true,
	"HTML2PDF_ASSETS_PATH":    true,
	"HTML2PDF_CONTAINER":      true,
}

// readDotenv reads KEY=VALUE pairs from path without touching the process
// environment. A missing file is only an error when it was asked for.
func readDotenv(path string, explicit bool) (map[string]string, error) {
	if path == "" {
		path = defaultEnvFile
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrEnvFile, path, err)
	}
	return values, nil
}

// loadEnvConfig reads HTML2PDF_* values. Variables set in the process
// environment win over the same keys from the dotenv file.
func loadEnvConfig(getenv func(string) string, dotenv map[string]string) *envConfig {
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}

	return &envConfig{
		ConfigPath:   lookup("HTML2PDF_CONFIG"),
		Addr:         lookup("HTML2PDF_ADDR"),
		MaxBodyBytes: lookup("HTML2PDF_MAX_BODY_BYTES"),
		TrustProxy:   lookup("HTML2PDF_TRUST_PROXY"),
		BrowserBin:   lookup("HTML2PDF_BROWSER_BIN"),
		NoSandbox:    lookup("HTML2PDF_NO_SANDBOX"),
		IdleWindow:   lookup("HTML2PDF_IDLE_WINDOW"),
		Paper:        lookup("HTML2PDF_PAPER"),
		LogLevel:     lookup("HTML2PDF_LOG_LEVEL"),
		LogFormat:    lookup("HTML2PDF_LOG_FORMAT"),
		AssetsPath:   lookup("HTML2PDF_ASSETS_PATH"),
	}
}

// warnUnknownEnvVars prints a warning for unrecognized HTML2PDF_* variables
// found in environ or the dotenv file.
// Helps catch typos like HTML2PDF_ADRR instead of HTML2PDF_ADDR.
func warnUnknownEnvVars(w io.Writer, environ []string, dotenv map[string]string) {
	seen := make(map[string]bool)
	var unknown []string

	check := func(name string) {
		if strings.HasPrefix(name, envPrefix) && !knownEnvVars[name] && !seen[name] {
			seen[name] = true
			unknown = append(unknown, name)
		}
	}
	for _, kv := range environ {
		check(strings.SplitN(kv, "=", 2)[0])
	}
	for name := range dotenv {
		check(name)
	}

	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig overrides config file values with environment values.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied afterwards by each command).
func applyEnvConfig(env *envConfig, cfg *config.Config) error {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.MaxBodyBytes != "" {
		n, err := strconv.ParseInt(env.MaxBodyBytes, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: HTML2PDF_MAX_BODY_BYTES %q", config.ErrInvalidValue, env.MaxBodyBytes)
		}
		cfg.Server.MaxBodyBytes = n
	}
	if env.TrustProxy != "" {
		b, err := strconv.ParseBool(env.TrustProxy)
		if err != nil {
			return fmt.Errorf("%w: HTML2PDF_TRUST_PROXY %q", config.ErrInvalidValue, env.TrustProxy)
		}
		cfg.Server.TrustProxy = b
	}
	if env.BrowserBin != "" {
		cfg.Browser.Bin = env.BrowserBin
	}
	if env.NoSandbox != "" {
		b, err := strconv.ParseBool(env.NoSandbox)
		if err != nil {
			return fmt.Errorf("%w: HTML2PDF_NO_SANDBOX %q", config.ErrInvalidValue, env.NoSandbox)
		}
		cfg.Browser.NoSandbox = b
	}
	if env.IdleWindow != "" {
		cfg.Browser.IdleWindow = env.IdleWindow
	}
	if env.Paper != "" {
		cfg.Print.Paper = env.Paper
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.LogFormat != "" {
		cfg.Log.Format = env.LogFormat
	}
	if env.AssetsPath != "" {
		cfg.Assets.BasePath = env.AssetsPath
	}
	return nil
}
