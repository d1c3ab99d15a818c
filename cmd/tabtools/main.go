package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/tabtools"
	"github.com/erraggy/tabtools/internal/mcpserver"
	"github.com/erraggy/tabtools/parse"
	"github.com/erraggy/tabtools/projection"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("tabtools v%s\n", tabtools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "resolve":
		if err := handleResolve(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := handleConvert(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := mcpserver.Run(context.Background()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// stderrLogger builds the structured logger used for non-fatal diagnostics.
func stderrLogger(verbose bool) projection.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return projection.NewSlogAdapter(slog.New(handler))
}

// resolveFlags contains flags for the resolve command
type resolveFlags struct {
	config  string
	verbose bool
}

func setupResolveFlags() (*flag.FlagSet, *resolveFlags) {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	flags := &resolveFlags{}

	fs.StringVar(&flags.config, "config", "", "parse configuration file (YAML or JSON)")
	fs.BoolVar(&flags.verbose, "verbose", false, "log debug diagnostics to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: tabtools resolve -config <file>\n\n")
		_, _ = fmt.Fprintf(output, "Resolve the projection table for a parse configuration and print it as JSON.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
	}
	return fs, flags
}

func handleResolve(args []string) error {
	fs, flags := setupResolveFlags()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if flags.config == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -config")
	}

	cfg, err := parse.LoadConfig(flags.config)
	if err != nil {
		return err
	}
	table, err := cfg.ResolveProjections(projection.WithLogger(stderrLogger(flags.verbose)))
	if err != nil {
		return err
	}

	// encoding/json sorts map keys, so output is deterministic
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(table)
}

// convertFlags contains flags for the convert command
type convertFlags struct {
	config  string
	comma   string
	verbose bool
}

func setupConvertFlags() (*flag.FlagSet, *convertFlags) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	flags := &convertFlags{}

	fs.StringVar(&flags.config, "config", "", "parse configuration file (YAML or JSON)")
	fs.StringVar(&flags.comma, "comma", ",", "CSV field delimiter")
	fs.BoolVar(&flags.verbose, "verbose", false, "log debug diagnostics to stderr")

	fs.Usage = func() {
		output := fs.Output()
		_, _ = fmt.Fprintf(output, "Usage: tabtools convert -config <file> [input.csv]\n\n")
		_, _ = fmt.Fprintf(output, "Convert CSV input into JSON documents, one per line on stdout.\n")
		_, _ = fmt.Fprintf(output, "Reads from stdin when no input file is given.\n\n")
		_, _ = fmt.Fprintf(output, "Flags:\n")
		fs.PrintDefaults()
	}
	return fs, flags
}

func handleConvert(args []string) error {
	fs, flags := setupConvertFlags()
	if err := fs.Parse(args); err != nil {
		return err
	}
	if flags.config == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -config")
	}
	comma := []rune(flags.comma)
	if len(comma) != 1 {
		return fmt.Errorf("invalid -comma value %q: must be a single character", flags.comma)
	}

	var input io.Reader = os.Stdin
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		input = f
	}

	logger := stderrLogger(flags.verbose)
	cfg, err := parse.LoadConfig(flags.config)
	if err != nil {
		return err
	}
	table, err := cfg.ResolveProjections(projection.WithLogger(logger))
	if err != nil {
		return err
	}

	parser := parse.NewCSVParser(table,
		parse.WithComma(comma[0]),
		parse.WithCSVLogger(logger),
	)
	encoder := json.NewEncoder(os.Stdout)
	return parser.Parse(input, func(doc map[string]any) error {
		return encoder.Encode(doc)
	})
}

func printUsage() {
	fmt.Println(`tabtools - project tabular data into nested JSON documents

Usage: tabtools <command> [flags]

Commands:
  resolve   Resolve and print the projection table for a parse configuration
  convert   Convert CSV input into JSON documents using a parse configuration
  mcp       Run the MCP server over stdio
  version   Print the version
  help      Show this help

Run 'tabtools <command> -h' for command-specific flags.`)
}
