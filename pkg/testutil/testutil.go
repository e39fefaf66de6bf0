// Package testutil provides testing utilities for tabula
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ajitpratap0/tabula/pkg/models"
	"github.com/ajitpratap0/tabula/pkg/table"
)

// TestLogger creates a test logger that writes to the test output.
// The logger is automatically cleaned up when the test completes.
func TestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t)
}

// WriteFile writes content to name inside a fresh temporary directory and
// returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	RequireNoError(t, os.WriteFile(path, []byte(content), 0o600), "write fixture")
	return path
}

// ReadFile returns the contents of path as a string
func ReadFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path) //nolint:gosec // test fixture path
	RequireNoError(t, err, "read "+path)
	return string(data)
}

// ScoresTable returns a fresh two-column table of string cells:
// id 1..n and score 10, 20, ...
func ScoresTable(n int) *table.Table {
	rows := make([][]models.Value, n)
	for i := range rows {
		rows[i] = models.Strings([]string{itoa(i + 1), itoa((i + 1) * 10)})
	}
	return table.New([]string{"id", "score"}, rows)
}

// RequireNoError fails the test immediately if err is not nil.
// The msg parameter provides additional context in the failure message.
func RequireNoError(t *testing.T, err error, msg string) {
	t.Helper()
	if err != nil {
		t.Fatalf("%s: %v", msg, err)
	}
}

func itoa(i int) string {
	return models.Int(int64(i)).String()
}
