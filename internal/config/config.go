package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config dir.
const AppDir = "go-html2pdf"

// Field length limits.
const (
	MaxAddrLength       = 255
	MaxPathLength       = 4096
	MaxDurationLength   = 20
	MaxDateFormatLength = 50
)

// Defaults.
const (
	DefaultAddr            = ":8080"
	DefaultMaxBodyBytes    = 64 << 20
	DefaultReadTimeout     = "30s"
	DefaultWriteTimeout    = "5m"
	DefaultShutdownTimeout = "30s"
	DefaultIdleWindow      = "500ms"
	DefaultPaper           = "a4"
	DefaultScale           = 0.8
	DefaultMargin          = 0.5
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "json"
	DefaultCodeLength      = 6
)

// Config holds all configuration for the server and the convert command.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Browser   BrowserConfig   `yaml:"browser"`
	Print     PrintConfig     `yaml:"print"`
	Log       LogConfig       `yaml:"log"`
	Assets    AssetsConfig    `yaml:"assets"`
	Transform TransformConfig `yaml:"transform"`
}

// ServerConfig defines the HTTP listener.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	MaxBodyBytes    int64  `yaml:"maxBodyBytes"`
	ReadTimeout     string `yaml:"readTimeout"`     // Go duration, e.g. "30s"
	WriteTimeout    string `yaml:"writeTimeout"`    // bounds a whole batch response
	ShutdownTimeout string `yaml:"shutdownTimeout"` // grace period for in-flight batches
	TrustProxy      bool   `yaml:"trustProxy"`      // honour X-Forwarded-* headers
	Compress        bool   `yaml:"compress"`        // gzip/brotli for HTML, CSS and JSON
}

// BrowserConfig defines how Chrome is launched.
type BrowserConfig struct {
	Bin        string `yaml:"bin"`        // empty = ROD_BROWSER_BIN or auto-download
	NoSandbox  bool   `yaml:"noSandbox"`  // required in most containers
	IdleWindow string `yaml:"idleWindow"` // network quiescence window
}

// PrintConfig defines the page layout of every PDF.
type PrintConfig struct {
	Paper      string  `yaml:"paper"`  // "a4", "letter", "legal"
	Scale      float64 `yaml:"scale"`  // 0.1 to 2.0
	Margin     float64 `yaml:"margin"` // inches, all four sides
	Background bool    `yaml:"background"`
}

// LogConfig defines structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// TransformConfig defines defaults for the CLI transform flags.
type TransformConfig struct {
	DateFormat string `yaml:"dateFormat"` // token format or preset name
	CodeLength int    `yaml:"codeLength"`
	CodeUpper  bool   `yaml:"codeUpper"`
	NoLower    bool   `yaml:"noLower"`
	NoDigits   bool   `yaml:"noDigits"`
}

// Durations holds the parsed duration fields.
type Durations struct {
	Read       time.Duration
	Write      time.Duration
	Shutdown   time.Duration
	IdleWindow time.Duration
}

// paperSizes maps paper names to width and height in inches.
var paperSizes = map[string][2]float64{
	"a4":     {8.27, 11.69},
	"letter": {8.5, 11},
	"legal":  {8.5, 14},
}

// PaperSize returns the dimensions in inches of a named paper size.
func PaperSize(name string) (width, height float64, ok bool) {
	size, ok := paperSizes[strings.ToLower(name)]
	return size[0], size[1], ok
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            DefaultAddr,
			MaxBodyBytes:    DefaultMaxBodyBytes,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
			Compress:        true,
		},
		Browser: BrowserConfig{IdleWindow: DefaultIdleWindow},
		Print: PrintConfig{
			Paper:      DefaultPaper,
			Scale:      DefaultScale,
			Margin:     DefaultMargin,
			Background: true,
		},
		Log:       LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
		Transform: TransformConfig{CodeLength: DefaultCodeLength},
	}
}

// Validate checks lengths, ranges and enumerations. Called automatically by
// LoadConfig, but available for configs built in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("%w: server.maxBodyBytes must be positive, got %d", ErrInvalidValue, c.Server.MaxBodyBytes)
	}
	if _, err := c.Durations(); err != nil {
		return err
	}

	if err := validateFieldLength("browser.bin", c.Browser.Bin, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength); err != nil {
		return err
	}

	if _, _, ok := PaperSize(c.Print.Paper); !ok {
		return fmt.Errorf("%w: print.paper %q (must be a4, letter, or legal)", ErrInvalidValue, c.Print.Paper)
	}
	if c.Print.Scale < 0.1 || c.Print.Scale > 2 {
		return fmt.Errorf("%w: print.scale must be between 0.1 and 2, got %.2f", ErrInvalidValue, c.Print.Scale)
	}
	if c.Print.Margin < 0 || c.Print.Margin > 3 {
		return fmt.Errorf("%w: print.margin must be between 0 and 3 inches, got %.2f", ErrInvalidValue, c.Print.Margin)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log.level %q (must be debug, info, warn, or error)", ErrInvalidValue, c.Log.Level)
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format %q (must be json or console)", ErrInvalidValue, c.Log.Format)
	}

	if err := validateFieldLength("transform.dateFormat", c.Transform.DateFormat, MaxDateFormatLength); err != nil {
		return err
	}
	if c.Transform.CodeLength < 1 || c.Transform.CodeLength > 20 {
		return fmt.Errorf("%w: transform.codeLength must be between 1 and 20, got %d", ErrInvalidValue, c.Transform.CodeLength)
	}

	return nil
}

// Durations parses the duration fields.
func (c *Config) Durations() (Durations, error) {
	var d Durations
	for _, f := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"server.readTimeout", c.Server.ReadTimeout, &d.Read},
		{"server.writeTimeout", c.Server.WriteTimeout, &d.Write},
		{"server.shutdownTimeout", c.Server.ShutdownTimeout, &d.Shutdown},
		{"browser.idleWindow", c.Browser.IdleWindow, &d.IdleWindow},
	} {
		if err := validateFieldLength(f.name, f.value, MaxDurationLength); err != nil {
			return Durations{}, err
		}
		v, err := time.ParseDuration(f.value)
		if err != nil {
			return Durations{}, fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.name, err)
		}
		if v <= 0 {
			return Durations{}, fmt.Errorf("%w: %s must be positive, got %s", ErrInvalidValue, f.name, f.value)
		}
		*f.dst = v
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Values absent from the file keep their defaults. Returns an error if the
// file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !isFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	cfg := DefaultConfig()
	if err := yamlutil.ReadFile(configPath, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists, in order, the files LoadConfig tries for a config name:
// {name}.yaml and {name}.yml in the current directory, then in
// {UserConfigDir}/go-html2pdf/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
