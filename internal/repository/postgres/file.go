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

// PostgresFileRepository implements the FileRepository interface
type PostgresFileRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFileRepository creates a new file repository
func NewFileRepository(config *RepositoryConfig) repositories.FileRepository {
	return &PostgresFileRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create persists a new file and fills in its generated ID
func (r *PostgresFileRepository) Create(ctx context.Context, file *models.File) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, content_type, content, size, folder_id, owner_id, uploaded_at, updated_at, deleted)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE)
		RETURNING id, uploaded_at, updated_at
	`, r.tables.Files)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		file.Name,
		file.ContentType,
		file.Content,
		file.Size,
		file.FolderID,
		file.OwnerID,
		file.UploadedAt,
		file.UpdatedAt,
	).Scan(&file.ID, &file.UploadedAt, &file.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return &domain.FolderNotFoundError{FolderID: derefID(file.FolderID)}
		}
		return fmt.Errorf("create file: %w", err)
	}

	return nil
}

// Exists reports whether a visible file with the ID exists for the owner
func (r *PostgresFileRepository) Exists(ctx context.Context, fileID int64, ownerID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE id = $1 AND owner_id = $2 AND NOT deleted
		)
	`, r.tables.Files)

	var exists bool
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, fileID, ownerID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check file exists: %w", err)
	}

	return exists, nil
}

// GetByID retrieves a visible file including its content
func (r *PostgresFileRepository) GetByID(ctx context.Context, fileID int64, ownerID string) (*models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content_type, content, size, folder_id, owner_id, uploaded_at, updated_at
		FROM %s
		WHERE id = $1 AND owner_id = $2 AND NOT deleted
	`, r.tables.Files)

	var file models.File
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, fileID, ownerID).Scan(
		&file.ID,
		&file.Name,
		&file.ContentType,
		&file.Content,
		&file.Size,
		&file.FolderID,
		&file.OwnerID,
		&file.UploadedAt,
		&file.UpdatedAt,
	)

	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.FileNotFoundError{FileID: fileID}
		}
		return nil, fmt.Errorf("get file: %w", err)
	}

	return &file, nil
}

// ListRoot lists visible files outside any folder. Content is not
// fetched on list paths; downloads go through GetByID.
func (r *PostgresFileRepository) ListRoot(ctx context.Context, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content_type, size, folder_id, owner_id, uploaded_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND folder_id IS NULL AND NOT deleted
		ORDER BY name ASC
	`, r.tables.Files)

	return r.queryFiles(ctx, query, ownerID)
}

// ListInFolder lists visible files in a folder (metadata only)
func (r *PostgresFileRepository) ListInFolder(ctx context.Context, folderID int64, ownerID string) ([]models.File, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content_type, size, folder_id, owner_id, uploaded_at, updated_at
		FROM %s
		WHERE owner_id = $1 AND folder_id = $2 AND NOT deleted
		ORDER BY name ASC
	`, r.tables.Files)

	return r.queryFiles(ctx, query, ownerID, folderID)
}

// SoftDelete marks a file deleted and bumps its modification timestamp
func (r *PostgresFileRepository) SoftDelete(ctx context.Context, fileID int64, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted = TRUE, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND NOT deleted
	`, r.tables.Files)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, time.Now().UTC(), fileID, ownerID)
	if err != nil {
		return fmt.Errorf("soft delete file: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.FileNotFoundError{FileID: fileID}
	}

	return nil
}

// SoftDeleteInFolders marks every visible file whose folder is in
// folderIDs deleted. Joins the cascade-delete transaction via context.
func (r *PostgresFileRepository) SoftDeleteInFolders(ctx context.Context, folderIDs []int64, ownerID string) (int64, error) {
	if len(folderIDs) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted = TRUE, updated_at = $1
		WHERE folder_id = ANY($2) AND owner_id = $3 AND NOT deleted
	`, r.tables.Files)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, time.Now().UTC(), folderIDs, ownerID)
	if err != nil {
		return 0, fmt.Errorf("soft delete files in folders: %w", err)
	}

	return result.RowsAffected(), nil
}

// HardDeletePurged permanently removes soft-deleted files whose
// modification timestamp is strictly before the cutoff, across all owners
func (r *PostgresFileRepository) HardDeletePurged(ctx context.Context, cutoff time.Time) (repositories.PurgeResult, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE deleted AND updated_at < $1
		RETURNING id
	`, r.tables.Files)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, cutoff)
	if err != nil {
		return repositories.PurgeResult{}, fmt.Errorf("purge files: %w", err)
	}
	defer rows.Close()

	var result repositories.PurgeResult
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return repositories.PurgeResult{}, fmt.Errorf("scan purged file id: %w", err)
		}
		result.IDs = append(result.IDs, id)
	}

	if err := rows.Err(); err != nil {
		return repositories.PurgeResult{}, fmt.Errorf("iterate purged file ids: %w", err)
	}

	result.Count = int64(len(result.IDs))
	return result, nil
}

// queryFiles runs a metadata select and scans the rows
func (r *PostgresFileRepository) queryFiles(ctx context.Context, query string, args ...interface{}) ([]models.File, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	var files []models.File
	for rows.Next() {
		var file models.File
		err := rows.Scan(
			&file.ID,
			&file.Name,
			&file.ContentType,
			&file.Size,
			&file.FolderID,
			&file.OwnerID,
			&file.UploadedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}

	return files, nil
}
