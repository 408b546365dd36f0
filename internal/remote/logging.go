package remote

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/schedule-builder/internal/logging"
)

// logWithOperation emits a log entry if a logger is available and always includes the operation name.
func logWithOperation(ctx context.Context, logger *slog.Logger, level slog.Level, op string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil {
		return
	}
	args = append(args, slog.String(logging.FieldOperation, op))
	logger.Log(ctx, level, msg, args...)
}
