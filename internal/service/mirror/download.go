package mirror

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/oshokin/flickr-mirror/internal/constants"
	"github.com/oshokin/flickr-mirror/internal/fetcher"
	"github.com/oshokin/flickr-mirror/internal/logger"
	"github.com/oshokin/flickr-mirror/internal/utils"
)

// DownloadMaterializer turns a harvested catalog into files on disk.
type DownloadMaterializer interface {
	// Materialize downloads every media record of catalog below destinationRoot.
	// The returned outcome is valid even when an error is returned.
	Materialize(ctx context.Context, catalog *Catalog, destinationRoot string) (*DownloadOutcome, error)
}

// DownloadMaterializerImpl implements DownloadMaterializer with a Fetcher.
type DownloadMaterializerImpl struct {
	fetcher fetcher.Fetcher
	policy  *RetryPolicy
	dryRun  bool
}

// NewDownloadMaterializer creates a new download materializer.
// In dry-run mode nothing is fetched or created.
func NewDownloadMaterializer(f fetcher.Fetcher, policy *RetryPolicy, dryRun bool) DownloadMaterializer {
	return &DownloadMaterializerImpl{
		fetcher: f,
		policy:  policy,
		dryRun:  dryRun,
	}
}

// mediaTask bundles one record with its paths and position for logging.
type mediaTask struct {
	album     *Album
	record    *MediaRecord
	finalPath string
	tempPath  string
	position  int
	total     int
}

// Materialize downloads every media record of catalog below destinationRoot.
func (m *DownloadMaterializerImpl) Materialize(
	ctx context.Context,
	catalog *Catalog,
	destinationRoot string,
) (*DownloadOutcome, error) {
	outcome := new(DownloadOutcome)
	albums := catalog.Albums()

	for index, album := range albums {
		logger.Infof(ctx, "Downloading album (%d/%d): %s...", index+1, len(albums), album.Title)

		albumDir := filepath.Join(destinationRoot, album.SanitizedTitle)
		if err := m.ensureDir(ctx, albumDir); err != nil {
			return outcome, err
		}

		// The temporary file is shared by every download of the album, downloads run one at a time.
		// Its owner record ties leftover bytes to the item that wrote them.
		tempPath := filepath.Join(albumDir, constants.TempDownloadFilename)
		records := album.Media.Records()

		for position, record := range records {
			task := &mediaTask{
				album:     album,
				record:    record,
				finalPath: filepath.Join(albumDir, record.DestFilename),
				tempPath:  tempPath,
				position:  position + 1,
				total:     len(records),
			}

			if err := m.materializeRecord(ctx, outcome, task); err != nil {
				return outcome, err
			}
		}
	}

	return outcome, nil
}

func (m *DownloadMaterializerImpl) ensureDir(ctx context.Context, dir string) error {
	if m.dryRun {
		logger.Debugf(ctx, "[DRY-RUN] Would create album directory: %s", dir)

		return nil
	}

	exists, err := utils.IsDirExist(dir)
	if err != nil {
		return fmt.Errorf("%w '%s': %w", ErrCreateAlbumDir, dir, err)
	}

	if exists {
		return nil
	}

	if err = os.MkdirAll(dir, constants.DefaultFolderPermissions); err != nil {
		return fmt.Errorf("%w '%s': %w", ErrCreateAlbumDir, dir, err)
	}

	return nil
}

func (m *DownloadMaterializerImpl) materializeRecord(
	ctx context.Context,
	outcome *DownloadOutcome,
	task *mediaTask,
) error {
	record := task.record

	exists, err := utils.IsFileExist(task.finalPath)
	if err != nil {
		return fmt.Errorf("failed to check '%s': %w", task.finalPath, err)
	}

	if exists {
		logger.Infof(ctx, "Skipping %s (%d/%d): %s", record.Type, task.position, task.total, record.SourceURL)

		outcome.Skips++

		return nil
	}

	if m.dryRun {
		logger.Infof(ctx, "[DRY-RUN] Would download %s (%d/%d): %s to %s",
			record.Type, task.position, task.total, record.SourceURL, task.finalPath)

		outcome.Successes++

		return nil
	}

	if err = claimTempFile(task.tempPath, record.SourceURL); err != nil {
		return err
	}

	for attempt := int64(1); ; attempt++ {
		if err = m.policy.Wait(ctx); err != nil {
			return err
		}

		logger.Infof(ctx, "Downloading %s (%d/%d): %s", record.Type, task.position, task.total, record.SourceURL)

		result, fetchErr := m.fetcher.Fetch(ctx, record.SourceURL, task.tempPath)
		if fetchErr == nil {
			if err = os.Rename(task.tempPath, task.finalPath); err != nil {
				return fmt.Errorf("%w '%s': %w", ErrPublishFile, task.finalPath, err)
			}

			if err = releaseTempFile(task.tempPath); err != nil {
				return err
			}

			outcome.Successes++

			if result != nil {
				outcome.BytesDownloaded += result.BytesWritten
			}

			return nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if m.policy.Exhausted(attempt) {
			logger.Errorf(ctx, "Giving up after %d attempts, %s: %s of album %s: %v",
				attempt, record.Type, record.SourceURL, task.album.SanitizedTitle, fetchErr)

			outcome.Failures++
			outcome.Errors = append(outcome.Errors, DownloadError{
				AlbumTitle:   task.album.Title,
				MediaID:      record.ID,
				SourceURL:    record.SourceURL,
				ErrorMessage: fmt.Errorf("%w: %w", ErrMaxAttemptsExceeded, fetchErr).Error(),
			})

			// The next item shares the temp file and must not resume from these bytes.
			return releaseTempFile(task.tempPath)
		}

		logger.Errorf(ctx, "Retrying (attempt %d failed), %s: %s of album %s: %v",
			attempt, record.Type, record.SourceURL, task.album.SanitizedTitle, fetchErr)

		outcome.Retries++
	}
}
