package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurgeExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	const retentionDays = 30

	deletedFolder := env.mustCreateFolder(t, "expired", nil, "owner-1")
	deletedFile := env.mustUploadFile(t, "expired.txt", &deletedFolder, "owner-1")
	keptFolder := env.mustCreateFolder(t, "kept", nil, "owner-1")
	keptFile := env.mustUploadFile(t, "kept.txt", nil, "owner-1")

	require.NoError(t, env.folders.DeleteFolder(ctx, deletedFolder, "owner-1"))

	cleanup := NewCleanupService(env.folderRepo, env.fileRepo, retentionDays, logger).(*cleanupService)

	t.Run("nothing is old enough yet", func(t *testing.T) {
		report, err := cleanup.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.FoldersPurged)
		assert.Zero(t, report.FilesPurged)
	})

	t.Run("past the retention window everything deleted is purged", func(t *testing.T) {
		cleanup.now = func() time.Time {
			return time.Now().UTC().AddDate(0, 0, retentionDays).Add(time.Hour)
		}

		report, err := cleanup.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), report.FoldersPurged)
		assert.Equal(t, int64(1), report.FilesPurged)
		assert.Equal(t, []int64{deletedFolder}, report.FolderIDs)
		assert.Equal(t, []int64{deletedFile}, report.FileIDs)
	})

	t.Run("live rows are never purged", func(t *testing.T) {
		_, err := env.folders.GetFolder(ctx, keptFolder, "owner-1")
		assert.NoError(t, err)
		_, err = env.files.GetFile(ctx, keptFile, "owner-1")
		assert.NoError(t, err)
	})

	t.Run("a second sweep finds nothing", func(t *testing.T) {
		report, err := cleanup.PurgeExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, report.FoldersPurged)
		assert.Zero(t, report.FilesPurged)
	})
}
