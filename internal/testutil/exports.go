package testutil

import (
	"testing"

	"github.com/preston-bernstein/schedule-builder/internal/exports"
)

// NewTempExportWriter returns an export writer rooted in a temp dir.
func NewTempExportWriter(t *testing.T) *exports.Writer {
	t.Helper()
	return exports.NewWriter(t.TempDir(), 7)
}
