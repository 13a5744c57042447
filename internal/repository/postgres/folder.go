package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"filecrate/internal/domain"
	"filecrate/internal/domain/models"
	"filecrate/internal/domain/repositories"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new folder and fills in its generated ID
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, parent_id, owner_id, created_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.OwnerID,
		folder.CreatedAt,
		folder.UpdatedAt,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return &domain.FolderNotFoundError{FolderID: derefID(folder.ParentID)}
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// Exists reports whether a visible folder with the ID exists for the owner
func (r *PostgresFolderRepository) Exists(ctx context.Context, folderID int64, ownerID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE id = $1 AND owner_id = $2 AND NOT deleted
		)
	`, r.tables.Folders)

	var exists bool
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, folderID, ownerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check folder exists: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a visible folder
func (r *PostgresFolderRepository) GetByID(ctx context.Context, folderID int64, ownerID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, owner_id, created_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2 AND NOT deleted
	`, r.tables.Folders)

	var folder models.Folder
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, folderID, ownerID).Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.OwnerID,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.FolderNotFoundError{FolderID: folderID}
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// ListAll lists every visible folder of the owner (flat)
func (r *PostgresFolderRepository) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, owner_id, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND NOT deleted
		ORDER BY created_at ASC
	`, r.tables.Folders)

	return r.queryFolders(ctx, query, ownerID)
}

// ListRoot lists visible folders with no parent
func (r *PostgresFolderRepository) ListRoot(ctx context.Context, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, owner_id, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND parent_id IS NULL AND NOT deleted
		ORDER BY name ASC
	`, r.tables.Folders)

	return r.queryFolders(ctx, query, ownerID)
}

// ListChildren lists visible immediate children of a folder
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, folderID int64, ownerID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT id, name, parent_id, owner_id, created_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND parent_id = $2 AND NOT deleted
		ORDER BY name ASC
	`, r.tables.Folders)

	return r.queryFolders(ctx, query, ownerID, folderID)
}

// Rename updates the name and bumps the modification timestamp
func (r *PostgresFolderRepository) Rename(ctx context.Context, folderID int64, newName, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4 AND NOT deleted
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, newName, time.Now().UTC(), folderID, ownerID)
	if err != nil {
		return fmt.Errorf("rename folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.FolderNotFoundError{FolderID: folderID}
	}

	return nil
}

// ListSubtreeIDs enumerates the folder plus all visible descendants using
// a recursive CTE over parent_id edges. The parent/child graph is a forest,
// so the recursion terminates at the tree depth.
func (r *PostgresFolderRepository) ListSubtreeIDs(ctx context.Context, folderID int64, ownerID string) ([]int64, error) {
	query := fmt.Sprintf(`
		WITH RECURSIVE subtree AS (
			SELECT id FROM %s
			WHERE id = $1 AND owner_id = $2 AND NOT deleted
			UNION ALL
			SELECT f.id
			FROM %s f
			JOIN subtree s ON f.parent_id = s.id
			WHERE f.owner_id = $2 AND NOT f.deleted
		)
		SELECT id FROM subtree
	`, r.tables.Folders, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, folderID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list folder subtree: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan folder id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folder ids: %w", err)
	}

	return ids, nil
}

// SoftDeleteByIDs marks the given folders deleted and bumps their
// modification timestamps
func (r *PostgresFolderRepository) SoftDeleteByIDs(ctx context.Context, folderIDs []int64, ownerID string) (int64, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted = TRUE, updated_at = $1
		WHERE id = ANY($2) AND owner_id = $3 AND NOT deleted
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, time.Now().UTC(), folderIDs, ownerID)
	if err != nil {
		return 0, fmt.Errorf("soft delete folders: %w", err)
	}

	return result.RowsAffected(), nil
}

// HardDeletePurged permanently removes soft-deleted folders whose
// modification timestamp is strictly before the cutoff, across all owners
func (r *PostgresFolderRepository) HardDeletePurged(ctx context.Context, cutoff time.Time) (repositories.PurgeResult, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE deleted AND updated_at < $1
		RETURNING id
	`, r.tables.Folders)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, cutoff)
	if err != nil {
		return repositories.PurgeResult{}, fmt.Errorf("purge folders: %w", err)
	}
	defer rows.Close()

	var result repositories.PurgeResult
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return repositories.PurgeResult{}, fmt.Errorf("scan purged folder id: %w", err)
		}
		result.IDs = append(result.IDs, id)
	}

	if err := rows.Err(); err != nil {
		return repositories.PurgeResult{}, fmt.Errorf("iterate purged folder ids: %w", err)
	}

	result.Count = int64(len(result.IDs))
	return result, nil
}

// queryFolders runs a folder select and scans the rows
func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		err := rows.Scan(
			&folder.ID,
			&folder.Name,
			&folder.ParentID,
			&folder.OwnerID,
			&folder.CreatedAt,
			&folder.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}

// derefID returns the pointed-to id, or zero for nil
func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
