package mirror

//go:generate $MOCKGEN -source=service.go -destination=mocks/service_mock.go

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/oshokin/flickr-mirror/internal/config"
	"github.com/oshokin/flickr-mirror/internal/constants"
	"github.com/oshokin/flickr-mirror/internal/logger"
)

// Service mirrors a user's albums onto local storage.
type Service interface {
	// Mirror harvests the whole catalog, then downloads it.
	Mirror(ctx context.Context) error
	// PrintDownloadSummary prints a formatted summary of the run.
	PrintDownloadSummary(ctx context.Context)
}

// ServiceImpl implements Service by chaining the harvest and materialize phases.
type ServiceImpl struct {
	// cfg contains the application configuration.
	cfg *config.Config
	// enumerator lists the user's albums.
	enumerator AlbumEnumerator
	// resolver fills albums with their media.
	resolver MediaResolver
	// materializer writes the catalog to disk.
	materializer DownloadMaterializer
	// stats tracks statistics for the current run.
	stats *DownloadStatistics
	// statsMutex protects access to statistics.
	statsMutex *sync.Mutex
}

// NewService creates a mirror service instance with dependency-injected components.
func NewService(
	cfg *config.Config,
	enumerator AlbumEnumerator,
	resolver MediaResolver,
	materializer DownloadMaterializer,
) Service {
	return &ServiceImpl{
		cfg:          cfg,
		enumerator:   enumerator,
		resolver:     resolver,
		materializer: materializer,
		stats:        new(DownloadStatistics),
		statsMutex:   new(sync.Mutex),
	}
}

// Mirror harvests the whole catalog, then downloads it.
func (s *ServiceImpl) Mirror(ctx context.Context) error {
	s.statsMutex.Lock()
	s.stats.StartTime = time.Now()
	s.stats.IsDryRun = s.cfg.DryRun
	s.statsMutex.Unlock()

	defer func() {
		s.statsMutex.Lock()
		s.stats.EndTime = time.Now()
		s.statsMutex.Unlock()
	}()

	if !s.cfg.DryRun {
		if err := os.MkdirAll(s.cfg.OutputPath, constants.DefaultFolderPermissions); err != nil {
			return fmt.Errorf("failed to create output path: %w", err)
		}
	} else {
		logger.Infof(ctx, "[DRY-RUN] Would create output directory: %s", s.cfg.OutputPath)
	}

	albums, err := s.enumerator.ListAlbums(ctx)
	if err != nil {
		return err
	}

	catalog, err := s.resolver.ResolveMedia(ctx, albums)
	if err != nil {
		return err
	}

	s.recordCatalog(catalog)

	logger.Infof(ctx, "Indexed %d media in %d albums", catalog.MediaCount(), len(catalog.Albums()))

	outcome, err := s.materializer.Materialize(ctx, catalog, s.cfg.OutputPath)
	s.recordOutcome(outcome)

	if err != nil {
		return err
	}

	logger.Info(ctx, "All downloads completed")

	return nil
}

func (s *ServiceImpl) recordCatalog(catalog *Catalog) {
	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.Albums = int64(len(catalog.Albums()))
	s.stats.Photos = catalog.Photos
	s.stats.Videos = catalog.Videos
	s.stats.Unsupported = catalog.Unsupported
	s.stats.Unresolved = catalog.Unresolved
}

func (s *ServiceImpl) recordOutcome(outcome *DownloadOutcome) {
	if outcome == nil {
		return
	}

	s.statsMutex.Lock()
	defer s.statsMutex.Unlock()

	s.stats.Outcome = *outcome
}

// IsInterrupted reports whether err came from the user stopping the run.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
