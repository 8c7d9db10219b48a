package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	html2pdf "github.com/alnah/go-html2pdf"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config    string
	envFile   string
	logLevel  string
	logFormat string
	quiet     bool
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common commonFlags
	addr   string
	assets string
}

// metaFlags holds document property flags.
type metaFlags struct {
	author   string
	subject  string
	keywords string
	created  string
	modified string
	producer string
}

// transformFlags holds text substitution flags.
type transformFlags struct {
	replace    []string
	code       string
	codeLength int
	codeUpper  bool
	noLower    bool
	noDigits   bool
	date       string
	dateFormat string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	paper     string
	meta      metaFlags
	transform transformFlags
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	fs.SortFlags = false
	return fs
}

// parseFlags parses args and wraps every error except --help in ErrUsage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.envFile, "env-file", "", "dotenv file (default .env if present)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&f.logFormat, "log-format", "", "log format: json, console")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
}

// addServeFlags adds serve flags to a FlagSet.
func addServeFlags(fs *flag.FlagSet, f *serveFlags) {
	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.addr, "addr", "", "listen address, e.g. :8080")
	fs.StringVar(&f.assets, "assets", "", "custom page template directory")
}

// addMetaFlags adds document property flags to a FlagSet.
func addMetaFlags(fs *flag.FlagSet, f *metaFlags) {
	fs.StringVar(&f.author, "author", "", "document author")
	fs.StringVar(&f.subject, "subject", "", "document subject")
	fs.StringVar(&f.keywords, "keywords", "", "comma-separated keywords")
	fs.StringVar(&f.created, "created", "", "creation date (RFC 3339 or YYYY-MM-DD)")
	fs.StringVar(&f.modified, "modified", "", "modification date (RFC 3339 or YYYY-MM-DD)")
	fs.StringVar(&f.producer, "producer", "", "producing application")
}

// addTransformFlags adds substitution flags to a FlagSet.
func addTransformFlags(fs *flag.FlagSet, f *transformFlags) {
	fs.StringArrayVar(&f.replace, "replace", nil, "literal replacement FIND=REPLACE (repeatable)")
	fs.StringVar(&f.code, "code", "", "value for {CODE} (empty = generated)")
	fs.IntVar(&f.codeLength, "code-length", 0, "generated code length (1-20)")
	fs.BoolVar(&f.codeUpper, "code-upper", false, "include uppercase letters in generated code")
	fs.BoolVar(&f.noLower, "no-code-lower", false, "exclude lowercase letters from generated code")
	fs.BoolVar(&f.noDigits, "no-code-digits", false, "exclude digits from generated code")
	fs.StringVar(&f.date, "date", "", "value for {DATE} as YYYY-MM-DD (empty = today)")
	fs.StringVar(&f.dateFormat, "date-format", "", "format for {DATE}: tokens or preset")
}

// addConvertFlags adds convert flags to a FlagSet.
func addConvertFlags(fs *flag.FlagSet, f *convertFlags) {
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.StringVarP(&f.paper, "paper", "p", "", "paper size: a4, letter, legal")
	addMetaFlags(fs, &f.meta)
	addTransformFlags(fs, &f.transform)
}

// pdfMeta returns the document properties, or nil when none was given.
func (f *metaFlags) pdfMeta() *html2pdf.PDFMeta {
	meta := html2pdf.PDFMeta{
		Author:   f.author,
		Subject:  f.subject,
		Keywords: f.keywords,
		Created:  f.created,
		Modified: f.modified,
		Producer: f.producer,
	}
	if meta == (html2pdf.PDFMeta{}) {
		return nil
	}
	return &meta
}

// parseReplaceRules parses FIND=REPLACE pairs. The first '=' separates the
// two halves, so replacements may contain '='.
func parseReplaceRules(pairs []string) ([]html2pdf.ReplaceRule, error) {
	rules := make([]html2pdf.ReplaceRule, 0, len(pairs))
	for _, p := range pairs {
		find, replace, ok := strings.Cut(p, "=")
		if !ok || find == "" {
			return nil, fmt.Errorf("%w: --replace %q (want FIND=REPLACE)", ErrUsage, p)
		}
		rules = append(rules, html2pdf.ReplaceRule{Find: find, Replace: replace})
	}
	return rules, nil
}
