package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/example/jsclass/runtime"
	"github.com/example/jsclass/scenario"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("jsclass", flag.ContinueOnError)
	fs.SetOutput(stderr)
	evalCode := fs.String("e", "", "evaluate an inline script")
	interactive := fs.Bool("repl", false, "start the interactive shell")
	debug := fs.Bool("debug", false, "log class and super operations to stderr")
	maxDepth := fs.Int("max-call-depth", runtime.DefaultMaxCallDepth, "maximum nested calls before a RangeError")
	maxChain := fs.Int("max-chain", runtime.DefaultMaxChainLength, "maximum prototype chain walk before a RangeError")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := scenario.Config{
		Realm: runtime.RealmConfig{MaxCallDepth: *maxDepth, MaxChainLength: *maxChain},
	}
	if *debug {
		cfg.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if *interactive {
		if err := runREPL(cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	var source string
	switch {
	case *evalCode != "":
		source = *evalCode
	case fs.NArg() > 0:
		data, err := os.ReadFile(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "Error reading file: %v\n", err)
			return 1
		}
		source = string(data)
	default:
		fmt.Fprintf(stderr, "Usage: jsclass [options] <script>\n")
		fmt.Fprintf(stderr, "       jsclass -e \"commands\"\n")
		fmt.Fprintf(stderr, "       jsclass -repl\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		return 2
	}

	s := scenario.NewSession(cfg)
	result, err := s.Run(source)
	if err != nil {
		fmt.Fprintln(stderr, s.FormatError(err))
		return 1
	}
	if result.Type != runtime.TypeUndefined {
		fmt.Fprintln(stdout, runtime.Inspect(result))
	}
	return 0
}
