package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filecrate/internal/config"
	"filecrate/internal/domain"
	"filecrate/internal/domain/services"
)

func TestUploadFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folderID := env.mustCreateFolder(t, "docs", nil, "owner-1")

	tests := []struct {
		name    string
		req     services.UploadFileRequest
		wantErr error
	}{
		{
			name: "valid upload into a folder",
			req: services.UploadFileRequest{
				Name:        "report.pdf",
				ContentType: "application/pdf",
				Content:     []byte("%PDF-1.7"),
				FolderID:    &folderID,
				OwnerID:     "owner-1",
			},
		},
		{
			name: "valid upload at the root",
			req: services.UploadFileRequest{
				Name:    "notes.txt",
				Content: []byte("remember the milk"),
				OwnerID: "owner-1",
			},
		},
		{
			name: "empty content",
			req: services.UploadFileRequest{
				Name:    "hollow.txt",
				Content: nil,
				OwnerID: "owner-1",
			},
			wantErr: &domain.EmptyFileError{},
		},
		{
			name: "content over the size cap",
			req: services.UploadFileRequest{
				Name:    "huge.bin",
				Content: make([]byte, config.MaxFileSizeBytes+1),
				OwnerID: "owner-1",
			},
			wantErr: &domain.FileTooLargeError{},
		},
		{
			name: "forbidden character in name",
			req: services.UploadFileRequest{
				Name:    "what?.txt",
				Content: []byte("x"),
				OwnerID: "owner-1",
			},
			wantErr: &domain.InvalidCharactersError{},
		},
		{
			name: "name over the file limit",
			req: services.UploadFileRequest{
				Name:    strings.Repeat("n", config.MaxFileNameLength+1),
				Content: []byte("x"),
				OwnerID: "owner-1",
			},
			wantErr: &domain.NameTooLongError{},
		},
		{
			name: "missing target folder",
			req: services.UploadFileRequest{
				Name:     "lost.txt",
				Content:  []byte("x"),
				FolderID: ptr(9999),
				OwnerID:  "owner-1",
			},
			wantErr: &domain.FolderNotFoundError{},
		},
		{
			name: "another owner's folder",
			req: services.UploadFileRequest{
				Name:     "sneaky.txt",
				Content:  []byte("x"),
				FolderID: &folderID,
				OwnerID:  "owner-2",
			},
			wantErr: &domain.FolderNotFoundError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := env.files.UploadFile(ctx, &tt.req)

			if tt.wantErr != nil {
				require.Error(t, err)
				switch tt.wantErr.(type) {
				case *domain.FolderNotFoundError:
					assert.ErrorIs(t, err, domain.ErrNotFound)
				default:
					assert.ErrorIs(t, err, domain.ErrValidation)
				}
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, view.ID)
			assert.Equal(t, int64(len(tt.req.Content)), view.Size)
		})
	}

	t.Run("content type defaults to octet-stream", func(t *testing.T) {
		view, err := env.files.UploadFile(ctx, &services.UploadFileRequest{
			Name:    "raw.bin",
			Content: []byte{0x01, 0x02},
			OwnerID: "owner-1",
		})
		require.NoError(t, err)
		assert.Equal(t, "application/octet-stream", view.ContentType)
	})
}

func TestDownloadFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	content := []byte("the exact bytes that went in")
	view, err := env.files.UploadFile(ctx, &services.UploadFileRequest{
		Name:        "payload.txt",
		ContentType: "text/plain",
		Content:     content,
		OwnerID:     "owner-1",
	})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		download, err := env.files.DownloadFile(ctx, view.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "payload.txt", download.Name)
		assert.Equal(t, "text/plain", download.ContentType)
		assert.True(t, bytes.Equal(content, download.Content))
	})

	t.Run("another owner cannot download", func(t *testing.T) {
		_, err := env.files.DownloadFile(ctx, view.ID, "owner-2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := env.files.DownloadFile(ctx, 9999, "owner-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestListFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folderID := env.mustCreateFolder(t, "inbox", nil, "owner-1")
	inFolder := env.mustUploadFile(t, "a.txt", &folderID, "owner-1")
	atRoot := env.mustUploadFile(t, "b.txt", nil, "owner-1")
	env.mustUploadFile(t, "other.txt", nil, "owner-2")

	t.Run("root listing excludes foldered and foreign files", func(t *testing.T) {
		files, err := env.files.ListRootFiles(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, atRoot, files[0].ID)
	})

	t.Run("folder listing", func(t *testing.T) {
		files, err := env.files.ListFilesInFolder(ctx, folderID, "owner-1")
		require.NoError(t, err)
		require.Len(t, files, 1)
		assert.Equal(t, inFolder, files[0].ID)
	})

	t.Run("missing folder is not-found, not empty", func(t *testing.T) {
		_, err := env.files.ListFilesInFolder(ctx, 9999, "owner-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteFile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	fileID := env.mustUploadFile(t, "doomed.txt", nil, "owner-1")

	t.Run("another owner cannot delete", func(t *testing.T) {
		err := env.files.DeleteFile(ctx, fileID, "owner-2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("delete hides the file from every read path", func(t *testing.T) {
		require.NoError(t, env.files.DeleteFile(ctx, fileID, "owner-1"))

		_, err := env.files.GetFile(ctx, fileID, "owner-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		files, err := env.files.ListRootFiles(ctx, "owner-1")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("second delete reports not-found", func(t *testing.T) {
		err := env.files.DeleteFile(ctx, fileID, "owner-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
