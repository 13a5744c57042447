package memory

import (
	"context"
	"sort"
	"time"

	"filecrate/internal/domain"
	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
)

// FileRepository implements repositories.FileRepository over a Store
type FileRepository struct {
	store *Store
}

// NewFileRepository creates a file repository backed by the store
func NewFileRepository(store *Store) repositories.FileRepository {
	return &FileRepository{store: store}
}

// Create persists a new file and fills in its generated ID
func (r *FileRepository) Create(ctx context.Context, file *models.File) error {
	return r.store.with(ctx, func(st *state) error {
		if file.FolderID != nil {
			folder, ok := st.folders[*file.FolderID]
			if !ok || !folder.Visible() || folder.OwnerID != file.OwnerID {
				return &domain.FolderNotFoundError{FolderID: *file.FolderID}
			}
		}

		st.fileSeq++
		file.ID = st.fileSeq
		st.files[file.ID] = *file
		return nil
	})
}

// Exists reports whether a visible file with the ID exists for the owner
func (r *FileRepository) Exists(ctx context.Context, fileID int64, ownerID string) (bool, error) {
	var exists bool
	err := r.store.with(ctx, func(st *state) error {
		f, ok := st.files[fileID]
		exists = ok && f.Visible() && f.OwnerID == ownerID
		return nil
	})
	return exists, err
}

// GetByID retrieves a visible file including its content
func (r *FileRepository) GetByID(ctx context.Context, fileID int64, ownerID string) (*models.File, error) {
	var file models.File
	err := r.store.with(ctx, func(st *state) error {
		f, ok := st.files[fileID]
		if !ok || !f.Visible() || f.OwnerID != ownerID {
			return &domain.FileNotFoundError{FileID: fileID}
		}
		file = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &file, nil
}

// ListRoot lists visible files outside any folder
func (r *FileRepository) ListRoot(ctx context.Context, ownerID string) ([]models.File, error) {
	return r.list(ctx, func(f *models.File) bool {
		return f.OwnerID == ownerID && f.FolderID == nil
	})
}

// ListInFolder lists visible files in a folder
func (r *FileRepository) ListInFolder(ctx context.Context, folderID int64, ownerID string) ([]models.File, error) {
	return r.list(ctx, func(f *models.File) bool {
		return f.OwnerID == ownerID && f.FolderID != nil && *f.FolderID == folderID
	})
}

// SoftDelete marks a file deleted and bumps its modification timestamp
func (r *FileRepository) SoftDelete(ctx context.Context, fileID int64, ownerID string) error {
	return r.store.with(ctx, func(st *state) error {
		f, ok := st.files[fileID]
		if !ok || !f.Visible() || f.OwnerID != ownerID {
			return &domain.FileNotFoundError{FileID: fileID}
		}
		f.Deleted = true
		f.UpdatedAt = time.Now().UTC()
		st.files[fileID] = f
		return nil
	})
}

// SoftDeleteInFolders marks every visible file whose folder is in
// folderIDs deleted
func (r *FileRepository) SoftDeleteInFolders(ctx context.Context, folderIDs []int64, ownerID string) (int64, error) {
	members := make(map[int64]bool, len(folderIDs))
	for _, id := range folderIDs {
		members[id] = true
	}

	var affected int64
	err := r.store.with(ctx, func(st *state) error {
		now := time.Now().UTC()
		for id, f := range st.files {
			if !f.Visible() || f.OwnerID != ownerID || f.FolderID == nil || !members[*f.FolderID] {
				continue
			}
			f.Deleted = true
			f.UpdatedAt = now
			st.files[id] = f
			affected++
		}
		return nil
	})
	return affected, err
}

// HardDeletePurged permanently removes soft-deleted files whose
// modification timestamp is strictly before the cutoff, across all owners
func (r *FileRepository) HardDeletePurged(ctx context.Context, cutoff time.Time) (repositories.PurgeResult, error) {
	var result repositories.PurgeResult
	err := r.store.with(ctx, func(st *state) error {
		for id, f := range st.files {
			if f.Purgeable(cutoff) {
				delete(st.files, id)
				result.IDs = append(result.IDs, id)
			}
		}
		sort.Slice(result.IDs, func(i, j int) bool { return result.IDs[i] < result.IDs[j] })
		result.Count = int64(len(result.IDs))
		return nil
	})
	return result, err
}

func (r *FileRepository) list(ctx context.Context, match func(*models.File) bool) ([]models.File, error) {
	var files []models.File
	err := r.store.with(ctx, func(st *state) error {
		for _, f := range st.files {
			if f.Visible() && match(&f) {
				files = append(files, f)
			}
		}
		sort.Slice(files, func(i, j int) bool { return files[i].ID < files[j].ID })
		return nil
	})
	return files, err
}
