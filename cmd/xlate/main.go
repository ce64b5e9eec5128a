// xlate - source-to-source translator for Python, Java and C++
//
// Uses manual argument parsing so flags may also be written without a
// space (-oout.java, -formatyaml).
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kolkov/xlate"
	"github.com/kolkov/xlate/internal/diag"
	"github.com/kolkov/xlate/internal/storage"
)

// version is set by GoReleaser at build time via -ldflags.
// For development builds, it will be "dev".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	shortUsage = "usage: xlate [flags] <source_lang> <target_lang> <input>"
	longUsage  = `Languages: python (py), java, cpp (c++). Input and output are paths or
URLs; "-" is standard input or output.

Output:
  -o url            write target code to url (default "-")
  -fingerprint      print the job fingerprint to stderr

Configuration:
  -config url       load settings from a YAML file
  -verify           re-parse the generated code with tree-sitter

Debugging arguments:
  -ast              print the source AST to stdout and exit
  -ir               print the lowered IR to stdout and exit
  -format mode      dump format for -ast and -ir: text, yaml (default text)
  -v                log pipeline stages to stderr

Other:
  -h, --help        show this help message
  -version          show xlate version and exit
`
)

//nolint:gocyclo,funlen // CLI argument parsing is inherently complex
func main() {
	output := storage.Stdio
	configURL := ""
	format := "text"
	dumpAST := false
	dumpIR := false
	verify := false
	printFingerprint := false
	verbose := false

	var i int
	for i = 1; i < len(os.Args); i++ {
		// Stop on explicit end of args or first arg not prefixed with "-"
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}

		switch arg {
		case "-o":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -o")
			}
			i++
			output = os.Args[i]
		case "-config":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -config")
			}
			i++
			configURL = os.Args[i]
		case "-format":
			if i+1 >= len(os.Args) {
				errorExitf("flag needs an argument: -format")
			}
			i++
			format = os.Args[i]
		case "-ast":
			dumpAST = true
		case "-ir":
			dumpIR = true
		case "-verify":
			verify = true
		case "-fingerprint":
			printFingerprint = true
		case "-v":
			verbose = true
		case "-h", "--help":
			fmt.Printf("xlate %s - Python/Java/C++ translator\n\n%s\n\n%s", version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("xlate version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
			os.Exit(0)
		default:
			switch {
			case strings.HasPrefix(arg, "-config"):
				configURL = arg[len("-config"):]
			case strings.HasPrefix(arg, "-format"):
				format = arg[len("-format"):]
			case strings.HasPrefix(arg, "-o"):
				output = arg[2:]
			default:
				errorExitf("flag provided but not defined: %s", arg)
			}
		}
	}
	if format != "text" && format != "yaml" {
		errorExitf("invalid format: %s (expected text or yaml)", format)
	}

	args := os.Args[i:]
	if len(args) != 3 {
		errorExitf(shortUsage)
	}
	from, ok := xlate.ParseLanguage(args[0])
	if !ok {
		errorExitf("unknown source language: %s", args[0])
	}
	to, ok := xlate.ParseLanguage(args[1])
	if !ok {
		errorExitf("unknown target language: %s", args[1])
	}

	ctx := context.Background()
	config := &xlate.Config{}
	if configURL != "" {
		loaded, err := xlate.LoadConfig(ctx, configURL)
		if err != nil {
			errorExit(err)
		}
		config = loaded
	}
	config.Verify = config.Verify || verify
	if verbose {
		config.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	store := storage.New()
	source, err := store.Load(ctx, args[2])
	if err != nil {
		errorExit(err)
	}

	res := xlate.New(config).TranslateContext(ctx, string(source), from, to)
	if err := diag.Fprint(os.Stderr, res.Diagnostics); err != nil {
		errorExit(err)
	}
	if printFingerprint {
		fmt.Fprintf(os.Stderr, "fingerprint: %016x\n", res.Fingerprint)
	}

	// Debug output modes
	if dumpAST || dumpIR {
		if dumpAST && res.AST != nil {
			writeTree(os.Stdout, res.AST, format)
		}
		if dumpIR && res.IR != nil {
			writeTree(os.Stdout, res.IR, format)
		}
		if !res.Success {
			errorExitf("%s", res.Summary())
		}
		os.Exit(0)
	}

	if !res.Success {
		errorExitf("%s", res.Summary())
	}
	if err := store.Save(ctx, output, []byte(res.TargetCode)); err != nil {
		errorExit(err)
	}
}

// writeTree dumps t as indented text or YAML.
func writeTree(w io.Writer, t *xlate.Tree, format string) {
	if format == "text" {
		fmt.Fprint(w, t.String())
		return
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		errorExit(err)
	}
	if err := enc.Close(); err != nil {
		errorExit(err)
	}
}

// errorExitf prints formatted error message and exits with code 1
func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "xlate: "+format+"\n", args...)
	os.Exit(1)
}

// errorExit prints error and exits with code 1
func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "xlate: %v\n", err)
	os.Exit(1)
}
