package main

import (
	"fmt"

	"github.com/alnah/go-html2pdf/internal/yamlutil"
)

// runConfig prints the effective configuration as YAML, after the config
// file, environment and flags have been applied.
func runConfig(args []string, env *Environment) error {
	f := &commonFlags{}
	fs := newFlagSet("config", env.Stderr, printConfigUsage)
	addCommonFlags(fs, f)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	s, err := loadSettings(fs, f, env, nil)
	if err != nil {
		return err
	}

	out, err := yamlutil.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(out)
	return err
}
