package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/config"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/hints"
	"github.com/alnah/go-html2pdf/internal/htmlref"
	"github.com/alnah/go-html2pdf/internal/substitute"
)

// filePerm is the permission of written PDFs and archives.
const filePerm = 0o644

// runConvert converts local HTML files as one batch and writes the single
// PDF or ZIP archive to disk.
func runConvert(ctx context.Context, args []string, env *Environment) error {
	f := &convertFlags{}
	fs := newFlagSet("convert", env.Stderr, printConvertUsage)
	addConvertFlags(fs, f)
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("%w: no input files", ErrUsage)
	}

	s, err := loadSettings(fs, &f.common, env, func(cfg *config.Config) {
		if fs.Changed("paper") {
			cfg.Print.Paper = f.paper
		}
	})
	if err != nil {
		return err
	}

	transform, err := buildTransform(fs, &f.transform, s.cfg.Transform)
	if err != nil {
		return err
	}

	paths, err := fileutil.CollectHTML(fs.Args())
	if err != nil {
		return err
	}
	files, err := readInputs(paths, f.meta.pdfMeta())
	if err != nil {
		return err
	}

	req, err := html2pdf.NewRequest(files, transform)
	if err != nil {
		return err
	}

	bundle, err := html2pdf.NewConverter(s.converterOptions(env)...).Convert(ctx, req)
	if err != nil {
		return s.withBrowserHint(err, env)
	}

	out := outputPath(f.output, bundle.Filename)
	if err := fileutil.CheckWritable(filepath.Dir(out)); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}
	if err := fileutil.WriteFileAtomic(out, bundle.Body, filePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}

	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote %s (%d document(s), %d bytes)\n", out, bundle.Count, len(bundle.Body))
	}
	return nil
}

// readInputs loads each HTML file into a batch entry named after it.
// Relative image, stylesheet and link references are pointed at the
// files next to the input.
func readInputs(paths []string, meta *html2pdf.PDFMeta) ([]html2pdf.IncomingFile, error) {
	files := make([]html2pdf.IncomingFile, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrReadInput, err)
		}
		doc, err := htmlref.Resolve(string(data), filepath.Dir(p))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadInput, p, err)
		}
		files = append(files, html2pdf.IncomingFile{
			Name:    substitute.PDFName(p),
			HTML:    doc,
			PDFMeta: meta,
		})
	}
	return files, nil
}

// buildTransform merges substitution flags over the transform section of
// the config. It returns nil when no substitution was requested, leaving
// the HTML untouched.
func buildTransform(fs *flag.FlagSet, f *transformFlags, defaults config.TransformConfig) (*html2pdf.Transform, error) {
	requested := false
	for _, name := range []string{
		"replace", "code", "code-length", "code-upper", "no-code-lower",
		"no-code-digits", "date", "date-format",
	} {
		if fs.Changed(name) {
			requested = true
			break
		}
	}
	if !requested {
		return nil, nil
	}

	rules, err := parseReplaceRules(f.replace)
	if err != nil {
		return nil, err
	}

	t := &html2pdf.Transform{
		Rules:      rules,
		Code:       f.code,
		CodeLength: defaults.CodeLength,
		CodeUpper:  defaults.CodeUpper || f.codeUpper,
		NoLower:    defaults.NoLower || f.noLower,
		NoDigits:   defaults.NoDigits || f.noDigits,
		Date:       f.date,
		DateFormat: defaults.DateFormat,
	}
	if fs.Changed("code-length") {
		t.CodeLength = f.codeLength
	}
	if fs.Changed("date-format") {
		t.DateFormat = f.dateFormat
	}
	return t, nil
}

// outputPath resolves -o: empty writes name to the working directory, an
// existing directory or a trailing separator receives name, anything else
// is the destination file.
func outputPath(output, name string) string {
	if output == "" {
		return name
	}
	if strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(filepath.Separator)) {
		return filepath.Join(output, name)
	}
	if info, err := os.Stat(output); err == nil && info.IsDir() {
		return filepath.Join(output, name)
	}
	return output
}
