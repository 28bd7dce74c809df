package mirror

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/utils"
)

const summarySeparator = "═══════════════════════════════════════════════════════════════"

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}

	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	}

	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	}

	return fmt.Sprintf("%ds", seconds)
}

// Statistics returns a copy of the current run statistics.
func (s *ServiceImpl) Statistics() DownloadStatistics {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	stats := *s.stats
	stats.Outcome.Errors = append([]DownloadError(nil), s.stats.Outcome.Errors...)

	return stats
}

// PrintDownloadSummary prints a formatted summary of the run.
func (s *ServiceImpl) PrintDownloadSummary(ctx context.Context) {
	stats := s.Statistics()

	// Check if the context was canceled (CTRL+C or timeout).
	wasInterrupted := ctx.Err() != nil

	s.printSummaryHeader(ctx, wasInterrupted, stats.IsDryRun)
	s.printCatalogStatistics(ctx, &stats)
	s.printMediaStatistics(ctx, &stats)
	s.printDataTransferStatistics(ctx, &stats)
	logger.Info(ctx, summarySeparator)
	s.printErrorDetails(ctx, &stats)

	if s.cfg.LogFile != "" {
		logger.Infof(ctx, "Check log file for additional warnings and errors: %s", s.cfg.LogFile)
	}
}

// printSummaryHeader prints the summary header.
func (s *ServiceImpl) printSummaryHeader(ctx context.Context, wasInterrupted, isDryRun bool) {
	logger.Info(ctx, "")
	logger.Info(ctx, summarySeparator)

	switch {
	case isDryRun:
		logger.Info(ctx, "                  DRY-RUN PREVIEW")
	case wasInterrupted:
		logger.Info(ctx, "           MIRROR SUMMARY (Interrupted)")
	default:
		logger.Info(ctx, "                     MIRROR SUMMARY")
	}

	logger.Info(ctx, summarySeparator)
}

// printCatalogStatistics prints what the harvest found.
func (s *ServiceImpl) printCatalogStatistics(ctx context.Context, stats *DownloadStatistics) {
	logger.Infof(ctx, "Albums:           %d", stats.Albums)
	logger.Infof(ctx, "Media indexed:    %d", stats.Photos+stats.Videos)
	logger.Infof(ctx, "  Photos:         %d", stats.Photos)
	logger.Infof(ctx, "  Videos:         %d", stats.Videos)

	if stats.Unsupported > 0 {
		logger.Infof(ctx, "  Unsupported:    %d", stats.Unsupported)
	}

	if stats.Unresolved > 0 {
		logger.Infof(ctx, "  No URL found:   %d", stats.Unresolved)
	}
}

// printMediaStatistics prints download counters.
func (s *ServiceImpl) printMediaStatistics(ctx context.Context, stats *DownloadStatistics) {
	outcome := stats.Outcome

	logger.Info(ctx, "")

	if stats.IsDryRun {
		logger.Infof(ctx, "Would download:   %d", outcome.Successes)
		logger.Infof(ctx, "Already have:     %d", outcome.Skips)

		return
	}

	logger.Infof(ctx, "Successful photo/video downloads: %d", outcome.Successes)
	logger.Infof(ctx, "Skipped photo/video downloads:    %d", outcome.Skips)
	logger.Infof(ctx, "Number of retries:                %d", outcome.Retries)

	if outcome.Failures > 0 {
		logger.Infof(ctx, "Failed photo/video downloads:     %d", outcome.Failures)
	}
}

// printDataTransferStatistics prints data transfer statistics.
func (s *ServiceImpl) printDataTransferStatistics(ctx context.Context, stats *DownloadStatistics) {
	if stats.IsDryRun {
		return
	}

	bytes := stats.Outcome.BytesDownloaded
	if bytes > 0 {
		logger.Info(ctx, "")
		//nolint:gosec // BytesDownloaded is never negative.
		logger.Infof(ctx, "Data Downloaded:  %s", humanize.Bytes(uint64(bytes)))
	}

	if stats.StartTime.IsZero() || stats.EndTime.IsZero() {
		return
	}

	duration := stats.EndTime.Sub(stats.StartTime)

	// Only show if duration is meaningful (> 100ms).
	if duration <= 100*time.Millisecond {
		return
	}

	logger.Infof(ctx, "Duration:         %s", formatDuration(duration))

	if bytes > 0 {
		bytesPerSecond := float64(bytes) / duration.Seconds()
		//nolint:gosec // The speed is never negative.
		logger.Infof(ctx, "Average Speed:    %s/s", humanize.Bytes(uint64(bytesPerSecond)))
	}
}

// printErrorDetails lists the media the run gave up on.
func (s *ServiceImpl) printErrorDetails(ctx context.Context, stats *DownloadStatistics) {
	errors := stats.Outcome.Errors
	if len(errors) == 0 {
		return
	}

	logger.Info(ctx, "")
	logger.Errorf(ctx, "ERRORS ENCOUNTERED: %d", len(errors))

	for i := range errors {
		downloadErr := &errors[i]
		logger.Errorf(ctx, "  [%s] %s (%s): %s",
			utils.SanitizeTitle(downloadErr.AlbumTitle),
			downloadErr.MediaID,
			downloadErr.SourceURL,
			downloadErr.ErrorMessage)
	}

	logger.Info(ctx, summarySeparator)
}
