package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/segmentio/parquet-go"
	"github.com/stretchr/testify/require"
)

// writeParquet writes rows to dir/name and returns the file path.
func writeParquet[T any](t *testing.T, dir, name string, rows []T, options ...parquet.WriterOption) string {
	t.Helper()
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	require.NoError(t, err, "failed to create test file")

	writer := parquet.NewGenericWriter[T](f, options...)
	_, err = writer.Write(rows)
	require.NoError(t, err, "failed to write test data")
	require.NoError(t, writer.Close(), "failed to close writer")
	require.NoError(t, f.Close(), "failed to close file")

	return path
}

// openReader opens path and closes it when the test ends.
func openReader(t *testing.T, path string) *Reader {
	t.Helper()
	r, err := NewReader(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}
