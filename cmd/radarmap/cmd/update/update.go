package update

import (
	"context"
	"io"
	"slices"

	"github.com/google/uuid"

	"github.com/agentstation/radarmap/internal/cmd/application"
	"github.com/agentstation/radarmap/internal/cmd/output"
	"github.com/agentstation/radarmap/pkg/errors"
	"github.com/agentstation/radarmap/pkg/logging"
	"github.com/agentstation/radarmap/pkg/sync"
)

// ExecuteUpdate runs one roster update and prints its report to w.
func ExecuteUpdate(ctx context.Context, app application.Application, flags *Flags, w io.Writer) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return errors.NewValidationError("format", app.OutputFormat(), err.Error())
	}
	format = output.DetectFormat(string(format))

	ctx = logging.WithLogger(ctx, app.Logger())
	ctx = logging.WithRunID(ctx, uuid.NewString())

	opts := slices.Concat(app.SyncOptions(), flags.Options())
	result, err := sync.Run(ctx, opts...)
	if err != nil {
		logger := logging.FromContext(ctx)
		if errors.IsNotFound(err) {
			logger.Warn().Msg("A source URL was not found, check --stations-url and --availability-url")
		}
		logger.Error().Err(err).Msg("Update failed")
		return err
	}

	logging.FromContext(ctx).Info().
		Bool("changed", result.HasChanges()).
		Dur("duration", result.Duration).
		Msg("Update complete")

	return output.FormatResult(w, result, format)
}
