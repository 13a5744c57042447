package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they don't exist.
// Folder parent edges are self-referencing; the files table references
// folders. Soft-deleted rows stay in place until the retention sweep,
// so the visibility indexes are partial on NOT deleted.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id            TEXT PRIMARY KEY,
				email         TEXT NOT NULL UNIQUE,
				password_hash BYTEA NOT NULL,
				created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
			)
		`, tables.Users),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         BIGSERIAL PRIMARY KEY,
				name       VARCHAR(100) NOT NULL,
				parent_id  BIGINT REFERENCES %s(id),
				owner_id   TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				deleted    BOOLEAN NOT NULL DEFAULT FALSE
			)
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id           BIGSERIAL PRIMARY KEY,
				name         VARCHAR(255) NOT NULL,
				content_type TEXT NOT NULL,
				content      BYTEA NOT NULL,
				size         BIGINT NOT NULL,
				folder_id    BIGINT REFERENCES %s(id),
				owner_id     TEXT NOT NULL,
				uploaded_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
				deleted      BOOLEAN NOT NULL DEFAULT FALSE
			)
		`, tables.Files, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_%s_owner_parent
			ON %s (owner_id, parent_id) WHERE NOT deleted
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_%s_owner_folder
			ON %s (owner_id, folder_id) WHERE NOT deleted
		`, tables.Files, tables.Files),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_%s_purge
			ON %s (updated_at) WHERE deleted
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS idx_%s_purge
			ON %s (updated_at) WHERE deleted
		`, tables.Files, tables.Files),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	return nil
}

// DropTables removes the environment's tables. Used by the seed tool for
// fresh starts; refused for prod by the caller.
func DropTables(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Files),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Folders),
		fmt.Sprintf(`DROP TABLE IF EXISTS %s`, tables.Users),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
	}

	return nil
}
