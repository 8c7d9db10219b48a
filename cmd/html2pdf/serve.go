package main

import (
	"context"
	"errors"
	"fmt"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/assets"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/server"
)

// runServe starts the HTTP server and blocks until ctx is canceled.
func runServe(ctx context.Context, args []string, env *Environment) error {
	f := &serveFlags{}
	fs := newFlagSet("serve", env.Stderr, printServeUsage)
	addServeFlags(fs, f)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments: %v", ErrUsage, fs.Args())
	}

	s, err := loadSettings(fs, &f.common, env, func(cfg *config.Config) {
		if fs.Changed("addr") {
			cfg.Server.Addr = f.addr
		}
		if fs.Changed("assets") {
			cfg.Assets.BasePath = f.assets
		}
	})
	if err != nil {
		return err
	}

	loader, err := assets.NewResolver(s.cfg.Assets.BasePath)
	if err != nil {
		return err
	}

	// One converter per request: browsers never outlive the request
	// that launched them.
	opts := s.converterOptions(env)
	factory := func(requestID string) server.Converter {
		return html2pdf.NewConverter(append(opts[:len(opts):len(opts)], html2pdf.WithRequestID(requestID))...)
	}

	srv, err := server.New(server.Config{
		Addr:            s.cfg.Server.Addr,
		MaxBodyBytes:    s.cfg.Server.MaxBodyBytes,
		ReadTimeout:     s.durations.Read,
		WriteTimeout:    s.durations.Write,
		ShutdownTimeout: s.durations.Shutdown,
		TrustProxy:      s.cfg.Server.TrustProxy,
		Compress:        s.cfg.Server.Compress,
	}, factory,
		server.WithLogger(s.logger),
		server.WithAssets(loader),
		server.WithVersion(Version),
	)
	if err != nil {
		return err
	}

	if err := srv.ListenAndServe(ctx); err != nil {
		if errors.Is(err, server.ErrListen) {
			return fmt.Errorf("%w%s", err, hints.ForListen(s.cfg.Server.Addr))
		}
		return err
	}
	return nil
}
