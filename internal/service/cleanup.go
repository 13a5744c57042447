package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"filecrate/internal/domain/repositories"
	"filecrate/internal/domain/services"
)

type cleanupService struct {
	folderRepo    repositories.FolderRepository
	fileRepo      repositories.FileRepository
	retentionDays int
	logger        *slog.Logger
	now           func() time.Time
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(
	folderRepo repositories.FolderRepository,
	fileRepo repositories.FileRepository,
	retentionDays int,
	logger *slog.Logger,
) services.CleanupService {
	return &cleanupService{
		folderRepo:    folderRepo,
		fileRepo:      fileRepo,
		retentionDays: retentionDays,
		logger:        logger,
		now:           time.Now,
	}
}

// PurgeExpired removes everything soft-deleted before now-retention.
// The folder and file purges are independent statements; neither needs
// the other's transaction because every runtime read path already
// filters deleted rows.
func (s *cleanupService) PurgeExpired(ctx context.Context) (*services.PurgeReport, error) {
	cutoff := s.now().UTC().AddDate(0, 0, -s.retentionDays)

	s.logger.Info("retention sweep starting", "cutoff", cutoff, "retention_days", s.retentionDays)

	folders, err := s.folderRepo.HardDeletePurged(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("purge folders: %w", err)
	}
	s.logger.Debug("purged folders", "count", folders.Count, "ids", folders.IDs)

	files, err := s.fileRepo.HardDeletePurged(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("purge files: %w", err)
	}
	s.logger.Debug("purged files", "count", files.Count, "ids", files.IDs)

	s.logger.Info("retention sweep completed",
		"folders_purged", folders.Count,
		"files_purged", files.Count,
	)

	return &services.PurgeReport{
		FoldersPurged: folders.Count,
		FilesPurged:   files.Count,
		FolderIDs:     folders.IDs,
		FileIDs:       files.IDs,
	}, nil
}
