// Package convert runs the parquet to CSV pipeline: validate the input path,
// decode the parquet file into a table, and write the table as CSV to
// <stem>.csv in the current working directory.
package convert

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vegasq/parquet2csv/output"
	"github.com/vegasq/parquet2csv/reader"
	"github.com/vegasq/parquet2csv/table"
)

var (
	// ErrInputNotFound is matched by errors returned from ValidatePath.
	ErrInputNotFound = errors.New("input does not exist")
	// ErrDecode wraps failures while reading the parquet input.
	ErrDecode = errors.New("cannot decode parquet input")
	// ErrEncode wraps failures while writing the CSV output.
	ErrEncode = errors.New("cannot write csv output")
)

// ValidationError reports an input path that does not exist.
type ValidationError struct {
	Path string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s does not exist", e.Path)
}

func (e *ValidationError) Unwrap() error { return ErrInputNotFound }

// ValidatePath returns path unchanged if something exists there. Files and
// directories are both accepted; any stat failure counts as missing.
func ValidatePath(path string) (string, error) {
	if _, err := os.Stat(path); err != nil {
		return "", &ValidationError{Path: path}
	}
	return path, nil
}

// Stem returns the base name of path without its final extension.
// Dot files such as ".hidden" keep their full name.
func Stem(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base || ext == "." {
		return base
	}
	return strings.TrimSuffix(base, ext)
}

// OutputPath returns the CSV path for input. The input's directory is
// discarded, so the result is relative to the working directory.
func OutputPath(input string) string {
	return Stem(input) + ".csv"
}

// Result summarises a finished conversion.
type Result struct {
	Input   string
	Output  string
	Rows    int
	Columns int
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger sets the logger used for progress messages.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Converter) {
		c.logger = logger
	}
}

// Converter converts one parquet file to CSV.
type Converter struct {
	logger    *slog.Logger
	formatter output.Formatter
}

// New creates a Converter. Without options it logs to slog.Default().
func New(opts ...Option) *Converter {
	c := &Converter{
		logger:    slog.Default(),
		formatter: output.NewCSVFormatter(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run decodes input completely, then writes it to OutputPath(input),
// replacing any existing file. input is expected to have passed ValidatePath.
func (c *Converter) Run(input string) (Result, error) {
	c.logger.Debug("decoding parquet", "input", input)

	tbl, err := c.decode(input)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	out := OutputPath(input)
	c.logger.Debug("writing csv", "output", out, "rows", tbl.Rows())

	if err := c.writeCSV(out, tbl); err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrEncode, err)
	}

	res := Result{Input: input, Output: out, Rows: tbl.Rows(), Columns: tbl.Cols()}
	c.logger.Info("wrote csv",
		"input", res.Input,
		"output", res.Output,
		"rows", res.Rows,
		"columns", res.Columns,
	)
	return res, nil
}

func (c *Converter) decode(input string) (*table.Table, error) {
	r, err := reader.NewReader(input)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	c.logger.Debug("opened parquet", "input", input, "rows", r.NumRows())

	for _, info := range r.SchemaInfo() {
		c.logger.Debug("column",
			"name", info.Name,
			"type", info.Type,
			"physical_type", info.PhysicalType,
			"repeated", info.Repeated,
		)
	}

	return r.ReadTable()
}

func (c *Converter) writeCSV(path string, tbl *table.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close output file: %w", closeErr)
		}
	}()

	c.formatter.SetOutput(f)
	return c.formatter.Format(tbl)
}
