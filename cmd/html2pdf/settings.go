package main

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/bolt/v3"
	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("invalid usage")
	ErrEnvFile     = errors.New("failed to read env file")
	ErrReadInput   = errors.New("failed to read input")
	ErrWriteOutput = errors.New("failed to write output")
)

// settings is the resolved configuration of one command run.
type settings struct {
	cfg       *config.Config
	durations config.Durations
	logger    *bolt.Logger
}

// loadSettings resolves the configuration for a command.
// Precedence: flags (via override) > env vars > config file > defaults.
// override may be nil; it runs before validation.
func loadSettings(fs *flag.FlagSet, common *commonFlags, env *Environment, override func(*config.Config)) (*settings, error) {
	dotenv, err := readDotenv(common.envFile, fs.Changed("env-file"))
	if err != nil {
		return nil, err
	}
	warnUnknownEnvVars(env.Stderr, env.Environ(), dotenv)
	envCfg := loadEnvConfig(env.Getenv, dotenv)

	cfg := config.DefaultConfig()
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, err
		}
		cfg = loaded
	}

	if err := applyEnvConfig(envCfg, cfg); err != nil {
		return nil, err
	}

	if fs.Changed("log-level") {
		cfg.Log.Level = common.logLevel
	}
	if fs.Changed("log-format") {
		cfg.Log.Format = common.logFormat
	}
	if common.quiet {
		cfg.Log.Level = "error"
	}
	if override != nil {
		override(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := cfg.Durations()
	if err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: env.Stderr,
	})

	return &settings{cfg: cfg, durations: d, logger: logger}, nil
}

// printSettings converts the print section to renderer settings.
// The paper name has been validated by config.Validate.
func printSettings(cfg *config.Config) html2pdf.PrintSettings {
	w, h, _ := config.PaperSize(cfg.Print.Paper)
	return html2pdf.PrintSettings{
		PaperWidth:      w,
		PaperHeight:     h,
		Scale:           cfg.Print.Scale,
		Margin:          cfg.Print.Margin,
		PrintBackground: cfg.Print.Background,
	}
}

// newEngine returns the injected engine, or a go-rod engine built from the
// browser section.
func (s *settings) newEngine(env *Environment) html2pdf.Engine {
	if env.Engine != nil {
		return env.Engine
	}
	e := html2pdf.NewRodEngine()
	e.BrowserBin = s.cfg.Browser.Bin
	e.NoSandbox = s.cfg.Browser.NoSandbox
	e.IdleWindow = s.durations.IdleWindow
	return e
}

// converterOptions returns the options shared by serve and convert.
func (s *settings) converterOptions(env *Environment) []html2pdf.Option {
	return []html2pdf.Option{
		html2pdf.WithEngine(s.newEngine(env)),
		html2pdf.WithPrintSettings(printSettings(s.cfg)),
		html2pdf.WithLogger(s.logger),
		html2pdf.WithClock(env.Now),
	}
}

// withBrowserHint appends setup hints to browser launch failures, judged
// against the effective browser settings.
func (s *settings) withBrowserHint(err error, env *Environment) error {
	if !errors.Is(err, html2pdf.ErrBrowserConnect) {
		return err
	}
	host := hints.Detect(env.Getenv)
	if s.cfg.Browser.Bin != "" {
		host.BrowserBin = s.cfg.Browser.Bin
	}
	host.NoSandbox = host.NoSandbox || s.cfg.Browser.NoSandbox
	return fmt.Errorf("%w%s", err, hints.ForBrowserConnect(host))
}
