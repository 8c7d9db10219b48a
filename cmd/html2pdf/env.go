package main

import (
	"io"
	"os"
	"time"

	html2pdf "github.com/alnah/go-html2pdf"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, process environment and the rendering engine.
type Environment struct {
	Now     func() time.Time
	Stdout  io.Writer
	Stderr  io.Writer
	Getenv  func(string) string
	Environ func() []string

	// Engine replaces the go-rod engine built from the configuration.
	Engine html2pdf.Engine
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getenv:  os.Getenv,
		Environ: os.Environ,
	}
}
