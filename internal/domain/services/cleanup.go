package services

import (
	"context"
)

// CleanupService hard-deletes soft-deleted entities past the retention
// window. Folder and file purges run independently; neither needs the
// other's transaction because every runtime read path already filters
// deleted rows.
type CleanupService interface {
	// PurgeExpired removes everything soft-deleted before now-retention
	PurgeExpired(ctx context.Context) (*PurgeReport, error)
}

// PurgeReport summarizes one retention sweep
type PurgeReport struct {
	FoldersPurged int64   `json:"folders_purged"`
	FilesPurged   int64   `json:"files_purged"`
	FolderIDs     []int64 `json:"-"`
	FileIDs       []int64 `json:"-"`
}
