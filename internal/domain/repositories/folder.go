package repositories

import (
	"context"
	"time"

	"filecrate/internal/domain/models"
)

// PurgeResult reports what a retention hard-delete removed.
type PurgeResult struct {
	Count int64
	IDs   []int64
}

// FolderRepository defines data access operations for folders.
// Every operation is scoped to an owner unless noted; soft-deleted rows
// are invisible to all reads except HardDeletePurged.
type FolderRepository interface {
	// Create persists a new folder and fills in its generated ID
	Create(ctx context.Context, folder *models.Folder) error

	// Exists reports whether a visible folder with the ID exists for the owner
	Exists(ctx context.Context, folderID int64, ownerID string) (bool, error)

	// GetByID retrieves a visible folder
	GetByID(ctx context.Context, folderID int64, ownerID string) (*models.Folder, error)

	// ListAll lists every visible folder of the owner (flat)
	ListAll(ctx context.Context, ownerID string) ([]models.Folder, error)

	// ListRoot lists visible folders with no parent
	ListRoot(ctx context.Context, ownerID string) ([]models.Folder, error)

	// ListChildren lists visible immediate children of a folder
	ListChildren(ctx context.Context, folderID int64, ownerID string) ([]models.Folder, error)

	// Rename updates the name and bumps the modification timestamp
	Rename(ctx context.Context, folderID int64, newName, ownerID string) error

	// ListSubtreeIDs enumerates the folder plus all visible descendants
	// reachable over parent edges. The result always contains folderID
	// itself when the folder exists.
	ListSubtreeIDs(ctx context.Context, folderID int64, ownerID string) ([]int64, error)

	// SoftDeleteByIDs marks the given folders deleted and bumps their
	// modification timestamps. Joins an ambient transaction when present.
	SoftDeleteByIDs(ctx context.Context, folderIDs []int64, ownerID string) (int64, error)

	// HardDeletePurged permanently removes soft-deleted folders whose
	// modification timestamp is strictly before the cutoff, across all owners.
	HardDeletePurged(ctx context.Context, cutoff time.Time) (PurgeResult, error)
}
