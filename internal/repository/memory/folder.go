package memory

import (
	"context"
	"sort"
	"time"

	"filecrate/internal/domain"
	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
)

// FolderRepository implements repositories.FolderRepository over a Store
type FolderRepository struct {
	store *Store
}

// NewFolderRepository creates a folder repository backed by the store
func NewFolderRepository(store *Store) repositories.FolderRepository {
	return &FolderRepository{store: store}
}

// Create persists a new folder and fills in its generated ID
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	return r.store.with(ctx, func(st *state) error {
		if folder.ParentID != nil {
			parent, ok := st.folders[*folder.ParentID]
			if !ok || !parent.Visible() || parent.OwnerID != folder.OwnerID {
				return &domain.FolderNotFoundError{FolderID: *folder.ParentID}
			}
		}

		st.folderSeq++
		folder.ID = st.folderSeq
		st.folders[folder.ID] = *folder
		return nil
	})
}

// Exists reports whether a visible folder with the ID exists for the owner
func (r *FolderRepository) Exists(ctx context.Context, folderID int64, ownerID string) (bool, error) {
	var exists bool
	err := r.store.with(ctx, func(st *state) error {
		f, ok := st.folders[folderID]
		exists = ok && f.Visible() && f.OwnerID == ownerID
		return nil
	})
	return exists, err
}

// GetByID retrieves a visible folder
func (r *FolderRepository) GetByID(ctx context.Context, folderID int64, ownerID string) (*models.Folder, error) {
	var folder models.Folder
	err := r.store.with(ctx, func(st *state) error {
		f, ok := st.folders[folderID]
		if !ok || !f.Visible() || f.OwnerID != ownerID {
			return &domain.FolderNotFoundError{FolderID: folderID}
		}
		folder = f
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &folder, nil
}

// ListAll lists every visible folder of the owner (flat)
func (r *FolderRepository) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return r.list(ctx, func(f *models.Folder) bool {
		return f.OwnerID == ownerID
	})
}

// ListRoot lists visible folders with no parent
func (r *FolderRepository) ListRoot(ctx context.Context, ownerID string) ([]models.Folder, error) {
	return r.list(ctx, func(f *models.Folder) bool {
		return f.OwnerID == ownerID && f.ParentID == nil
	})
}

// ListChildren lists visible immediate children of a folder
func (r *FolderRepository) ListChildren(ctx context.Context, folderID int64, ownerID string) ([]models.Folder, error) {
	return r.list(ctx, func(f *models.Folder) bool {
		return f.OwnerID == ownerID && f.ParentID != nil && *f.ParentID == folderID
	})
}

// Rename updates the name and bumps the modification timestamp
func (r *FolderRepository) Rename(ctx context.Context, folderID int64, newName, ownerID string) error {
	return r.store.with(ctx, func(st *state) error {
		f, ok := st.folders[folderID]
		if !ok || !f.Visible() || f.OwnerID != ownerID {
			return &domain.FolderNotFoundError{FolderID: folderID}
		}
		f.Name = newName
		f.UpdatedAt = time.Now().UTC()
		st.folders[folderID] = f
		return nil
	})
}

// ListSubtreeIDs enumerates the folder plus all visible descendants with a
// breadth-first walk over an adjacency view of the parent edges. The
// visited set makes the walk terminate even if the forest invariant were
// ever broken.
func (r *FolderRepository) ListSubtreeIDs(ctx context.Context, folderID int64, ownerID string) ([]int64, error) {
	var ids []int64
	err := r.store.with(ctx, func(st *state) error {
		root, ok := st.folders[folderID]
		if !ok || !root.Visible() || root.OwnerID != ownerID {
			return nil
		}

		children := make(map[int64][]int64)
		for id, f := range st.folders {
			if f.OwnerID != ownerID || !f.Visible() || f.ParentID == nil {
				continue
			}
			children[*f.ParentID] = append(children[*f.ParentID], id)
		}

		visited := map[int64]bool{folderID: true}
		queue := []int64{folderID}
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			ids = append(ids, current)

			for _, child := range children[current] {
				if !visited[child] {
					visited[child] = true
					queue = append(queue, child)
				}
			}
		}
		return nil
	})
	return ids, err
}

// SoftDeleteByIDs marks the given folders deleted and bumps their
// modification timestamps
func (r *FolderRepository) SoftDeleteByIDs(ctx context.Context, folderIDs []int64, ownerID string) (int64, error) {
	var affected int64
	err := r.store.with(ctx, func(st *state) error {
		now := time.Now().UTC()
		for _, id := range folderIDs {
			f, ok := st.folders[id]
			if !ok || !f.Visible() || f.OwnerID != ownerID {
				continue
			}
			f.Deleted = true
			f.UpdatedAt = now
			st.folders[id] = f
			affected++
		}
		return nil
	})
	return affected, err
}

// HardDeletePurged permanently removes soft-deleted folders whose
// modification timestamp is strictly before the cutoff, across all owners
func (r *FolderRepository) HardDeletePurged(ctx context.Context, cutoff time.Time) (repositories.PurgeResult, error) {
	var result repositories.PurgeResult
	err := r.store.with(ctx, func(st *state) error {
		for id, f := range st.folders {
			if f.Purgeable(cutoff) {
				delete(st.folders, id)
				result.IDs = append(result.IDs, id)
			}
		}
		sort.Slice(result.IDs, func(i, j int) bool { return result.IDs[i] < result.IDs[j] })
		result.Count = int64(len(result.IDs))
		return nil
	})
	return result, err
}

func (r *FolderRepository) list(ctx context.Context, match func(*models.Folder) bool) ([]models.Folder, error) {
	var folders []models.Folder
	err := r.store.with(ctx, func(st *state) error {
		for _, f := range st.folders {
			if f.Visible() && match(&f) {
				folders = append(folders, f)
			}
		}
		sort.Slice(folders, func(i, j int) bool { return folders[i].ID < folders[j].ID })
		return nil
	})
	return folders, err
}
