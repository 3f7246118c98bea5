package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vegasq/parquet2csv/convert"
)

const progName = "parquet2csv"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

// run parses args, converts the input file and returns the process exit code.
func run(args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet(progName, flag.ContinueOnError)
	fs.SetOutput(stderr)

	var input string
	fs.StringVar(&input, "i", "", "Parquet `FILE` to be csv'd")
	fs.StringVar(&input, "input", "", "Parquet `FILE` to be csv'd")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s -i FILE\n\n", progName)
		fmt.Fprintf(stderr, "parquet2csv; converts a parquet file to <stem>.csv in the current directory.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  %s -i data.parquet\n", progName)
		fmt.Fprintf(stderr, "  %s --input /path/to/orders.parquet\n", progName)
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unrecognized arguments: %v\n\n", fs.Args())
		fs.Usage()
		return exitUsage
	}

	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "i" || f.Name == "input" {
			set = true
		}
	})
	if !set {
		fmt.Fprintf(stderr, "Error: the following arguments are required: -i/--input\n\n")
		fs.Usage()
		return exitUsage
	}

	path, err := convert.ValidatePath(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: argument -i/--input: %v\n", err)
		return exitCode(err)
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if _, err := convert.New(convert.WithLogger(logger)).Run(path); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCode(err)
	}

	return exitOK
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, convert.ErrInputNotFound):
		return exitUsage
	default:
		return exitError
	}
}
