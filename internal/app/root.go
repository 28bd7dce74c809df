package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap/zapcore"

	flickr_client "github.com/oshokin/flickr-mirror/internal/client/flickr"
	"github.com/oshokin/flickr-mirror/internal/config"
	"github.com/oshokin/flickr-mirror/internal/fetcher"
	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/service/mirror"
	"github.com/oshokin/flickr-mirror/internal/version"
)

// ExecuteRootCommand is the entry point for the application.
// It attaches the warnings log, builds the mirror service and runs one pass.
// The summary is printed even when the run fails or is interrupted.
func ExecuteRootCommand(ctx context.Context, cfg *config.Config) error {
	// Dry runs must not create anything on disk, the log file included.
	if !cfg.DryRun {
		closeLogFile, err := logger.AttachFile(cfg.LogFile, zapcore.WarnLevel)
		if err != nil {
			return err
		}

		defer closeLogFile() //nolint:errcheck // Error on close is not critical here.
	}

	// Derived from the global logger, so it must come after the file is attached.
	ctx = logger.WithKV(ctx, "run_id", uuid.NewString())

	logger.Infof(ctx, "Starting flickr-mirror %s", version.Full())

	s, err := NewMirrorService(cfg)
	if err != nil {
		return err
	}

	return RunMirror(ctx, s)
}

// NewMirrorService builds the mirror service and its collaborators from cfg.
func NewMirrorService(cfg *config.Config) (mirror.Service, error) {
	client, err := flickr_client.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize flickr client: %w", err)
	}

	pageSize := int(cfg.PageSize)

	return mirror.NewService(
		cfg,
		mirror.NewAlbumEnumerator(client, cfg.UserID, pageSize),
		mirror.NewMediaResolver(client, cfg.UserID, pageSize),
		mirror.NewDownloadMaterializer(
			fetcher.NewHTTPFetcher(cfg),
			mirror.NewRetryPolicy(cfg.ParsedDownloadPause, cfg.MaxDownloadAttempts),
			cfg.DryRun),
	), nil
}

// RunMirror runs one mirror pass and prints the summary.
// Interruption by the user is not an error.
func RunMirror(ctx context.Context, s mirror.Service) (err error) {
	// Ensure statistics are ALWAYS printed, even on panic.
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf(ctx, "Panic recovered: %v", r)
			err = fmt.Errorf("panic: %v", r)
		}

		s.PrintDownloadSummary(ctx)
	}()

	if err = s.Mirror(ctx); err != nil {
		if mirror.IsInterrupted(err) {
			logger.Warn(ctx, "Mirror interrupted")

			return nil
		}

		logger.Errorf(ctx, "Mirror failed: %v", err)

		return err
	}

	return nil
}
