package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve      Run the HTTP conversion service and web UI")
	fmt.Fprintln(w, "  convert    Convert local HTML files to a PDF or ZIP archive")
	fmt.Fprintln(w, "  doctor     Check the browser and environment setup")
	fmt.Fprintln(w, "  config     Print the effective configuration")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pdf help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every configurable command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "      --env-file <path>     Dotenv file (default .env if present)")
	fmt.Fprintln(w, "      --log-level <s>       Log level: debug, info, warn, error")
	fmt.Fprintln(w, "      --log-format <s>      Log format: json, console")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve POST /api/html-to-pdf, the upload form and the docs pages.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Server:")
	fmt.Fprintln(w, "      --addr <addr>         Listen address (default :8080)")
	fmt.Fprintln(w, "      --assets <dir>        Custom templates, styles and docs")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PDF_ADDR, HTML2PDF_MAX_BODY_BYTES, HTML2PDF_TRUST_PROXY,")
	fmt.Fprintln(w, "  HTML2PDF_BROWSER_BIN, HTML2PDF_NO_SANDBOX, HTML2PDF_IDLE_WINDOW,")
	fmt.Fprintln(w, "  HTML2PDF_PAPER, HTML2PDF_LOG_LEVEL, HTML2PDF_LOG_FORMAT,")
	fmt.Fprintln(w, "  HTML2PDF_ASSETS_PATH, HTML2PDF_CONFIG")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf convert <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert HTML files as one batch. One input gives a PDF, several give")
	fmt.Fprintln(w, "updated-pdfs.zip.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file or directory (walked for .html and .htm)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -p, --paper <s>           Paper size: a4, letter, legal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document properties:")
	fmt.Fprintln(w, "      --author <s>          Author")
	fmt.Fprintln(w, "      --subject <s>         Subject")
	fmt.Fprintln(w, "      --keywords <s>        Comma-separated keywords")
	fmt.Fprintln(w, "      --created <date>      Creation date (RFC 3339 or YYYY-MM-DD)")
	fmt.Fprintln(w, "      --modified <date>     Modification date (RFC 3339 or YYYY-MM-DD)")
	fmt.Fprintln(w, "      --producer <s>        Producing application")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Substitution:")
	fmt.Fprintln(w, "      --replace <f=r>       Literal replacement (repeatable)")
	fmt.Fprintln(w, "      --code <s>            Value for {CODE} (default: generated)")
	fmt.Fprintln(w, "      --code-length <n>     Generated code length (1-20)")
	fmt.Fprintln(w, "      --code-upper          Include uppercase letters")
	fmt.Fprintln(w, "      --no-code-lower       Exclude lowercase letters")
	fmt.Fprintln(w, "      --no-code-digits      Exclude digits")
	fmt.Fprintln(w, "      --date <YYYY-MM-DD>   Value for {DATE} (default: today)")
	fmt.Fprintln(w, "      --date-format <s>     Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D")
	fmt.Fprintln(w, "                            Presets: iso, european, us, long")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printConfigUsage prints usage for the config command.
func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf config [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Print the configuration after file, environment and flags are applied.")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "serve":
		printServeUsage(env.Stdout)
	case "convert":
		printConvertUsage(env.Stdout)
	case "config":
		printConfigUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, container and CI detection, and the temp directory.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: html2pdf help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
