package repositories

import (
	"context"
	"time"

	"filecrate/internal/domain/models"
)

// FileRepository defines data access operations for files.
// Same scoping rules as FolderRepository: owner-scoped, soft-deleted rows
// invisible to reads except HardDeletePurged.
type FileRepository interface {
	// Create persists a new file and fills in its generated ID
	Create(ctx context.Context, file *models.File) error

	// Exists reports whether a visible file with the ID exists for the owner
	Exists(ctx context.Context, fileID int64, ownerID string) (bool, error)

	// GetByID retrieves a visible file including its content
	GetByID(ctx context.Context, fileID int64, ownerID string) (*models.File, error)

	// ListRoot lists visible files outside any folder (metadata only, no content)
	ListRoot(ctx context.Context, ownerID string) ([]models.File, error)

	// ListInFolder lists visible files in a folder (metadata only, no content)
	ListInFolder(ctx context.Context, folderID int64, ownerID string) ([]models.File, error)

	// SoftDelete marks a file deleted and bumps its modification timestamp
	SoftDelete(ctx context.Context, fileID int64, ownerID string) error

	// SoftDeleteInFolders marks every visible file whose folder is in
	// folderIDs deleted. Joins an ambient transaction when present; the
	// cascade delete calls this inside the folder unit of work.
	SoftDeleteInFolders(ctx context.Context, folderIDs []int64, ownerID string) (int64, error)

	// HardDeletePurged permanently removes soft-deleted files whose
	// modification timestamp is strictly before the cutoff, across all owners.
	HardDeletePurged(ctx context.Context, cutoff time.Time) (PurgeResult, error)
}
