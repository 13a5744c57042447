package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filecrate/internal/domain"
	"filecrate/internal/domain/repositories"
	"filecrate/internal/domain/services"
	"filecrate/internal/repository/memory"
)

type testEnv struct {
	store      *memory.Store
	folderRepo repositories.FolderRepository
	fileRepo   repositories.FileRepository
	txManager  repositories.TransactionManager
	folders    services.FolderService
	files      services.FileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	folderRepo := memory.NewFolderRepository(store)
	fileRepo := memory.NewFileRepository(store)
	txManager := memory.NewTransactionManager(store)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &testEnv{
		store:      store,
		folderRepo: folderRepo,
		fileRepo:   fileRepo,
		txManager:  txManager,
		folders:    NewFolderService(folderRepo, fileRepo, txManager, logger),
		files:      NewFileService(fileRepo, folderRepo, logger),
	}
}

func (e *testEnv) mustCreateFolder(t *testing.T, name string, parentID *int64, ownerID string) int64 {
	t.Helper()

	view, err := e.folders.CreateFolder(context.Background(), &services.CreateFolderRequest{
		Name:     name,
		ParentID: parentID,
		OwnerID:  ownerID,
	})
	require.NoError(t, err)
	return view.ID
}

func (e *testEnv) mustUploadFile(t *testing.T, name string, folderID *int64, ownerID string) int64 {
	t.Helper()

	view, err := e.files.UploadFile(context.Background(), &services.UploadFileRequest{
		Name:     name,
		Content:  []byte("content of " + name),
		FolderID: folderID,
		OwnerID:  ownerID,
	})
	require.NoError(t, err)
	return view.ID
}

func ptr(id int64) *int64 { return &id }

func TestCreateFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("root folder round trip", func(t *testing.T) {
		created, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
			Name:    "Documents",
			OwnerID: "owner-1",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Nil(t, created.ParentID)

		got, err := env.folders.GetFolder(ctx, created.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "Documents", got.Name)
		assert.Equal(t, created.CreatedAt, got.CreatedAt)
	})

	t.Run("nested under existing parent", func(t *testing.T) {
		parentID := env.mustCreateFolder(t, "Projects", nil, "owner-1")

		child, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
			Name:     "2026",
			ParentID: &parentID,
			OwnerID:  "owner-1",
		})
		require.NoError(t, err)
		require.NotNil(t, child.ParentID)
		assert.Equal(t, parentID, *child.ParentID)
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
			Name:     "orphan",
			ParentID: ptr(9999),
			OwnerID:  "owner-1",
		})
		var notFound *domain.FolderNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, int64(9999), notFound.FolderID)
	})

	t.Run("another owner's parent is invisible", func(t *testing.T) {
		parentID := env.mustCreateFolder(t, "Private", nil, "owner-1")

		_, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
			Name:     "intruder",
			ParentID: &parentID,
			OwnerID:  "owner-2",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
			Name:    "bad|name",
			OwnerID: "owner-1",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("missing owner", func(t *testing.T) {
		_, err := env.folders.CreateFolder(ctx, &services.CreateFolderRequest{
			Name: "nobody",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestListChildren(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	parentID := env.mustCreateFolder(t, "parent", nil, "owner-1")
	aID := env.mustCreateFolder(t, "a", &parentID, "owner-1")
	bID := env.mustCreateFolder(t, "b", &parentID, "owner-1")
	env.mustCreateFolder(t, "unrelated", nil, "owner-1")

	t.Run("lists immediate children only", func(t *testing.T) {
		env.mustCreateFolder(t, "grandchild", &aID, "owner-1")

		children, err := env.folders.ListChildren(ctx, parentID, "owner-1")
		require.NoError(t, err)
		require.Len(t, children, 2)
		assert.Equal(t, aID, children[0].ID)
		assert.Equal(t, bID, children[1].ID)
	})

	t.Run("empty folder lists as empty, not as missing", func(t *testing.T) {
		children, err := env.folders.ListChildren(ctx, bID, "owner-1")
		require.NoError(t, err)
		assert.Empty(t, children)
	})

	t.Run("missing folder is not-found, not empty", func(t *testing.T) {
		_, err := env.folders.ListChildren(ctx, 9999, "owner-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("another owner's folder is not-found", func(t *testing.T) {
		_, err := env.folders.ListChildren(ctx, parentID, "owner-2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRenameFolder(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folderID := env.mustCreateFolder(t, "before", nil, "owner-1")

	t.Run("rename round trip", func(t *testing.T) {
		require.NoError(t, env.folders.RenameFolder(ctx, folderID, "after", "owner-1"))

		got, err := env.folders.GetFolder(ctx, folderID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)
	})

	t.Run("invalid new name leaves the folder untouched", func(t *testing.T) {
		err := env.folders.RenameFolder(ctx, folderID, "a/b", "owner-1")
		assert.ErrorIs(t, err, domain.ErrValidation)

		got, err := env.folders.GetFolder(ctx, folderID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, "after", got.Name)
	})

	t.Run("missing folder", func(t *testing.T) {
		err := env.folders.RenameFolder(ctx, 9999, "whatever", "owner-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("another owner cannot rename", func(t *testing.T) {
		err := env.folders.RenameFolder(ctx, folderID, "stolen", "owner-2")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

// TestDeleteFolderCascade builds a three-level tree with files at every
// level plus an unrelated sibling, deletes the top, and verifies the
// whole subtree disappeared while the sibling survived.
func TestDeleteFolderCascade(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	topID := env.mustCreateFolder(t, "top", nil, "owner-1")
	midID := env.mustCreateFolder(t, "mid", &topID, "owner-1")
	leafID := env.mustCreateFolder(t, "leaf", &midID, "owner-1")
	siblingID := env.mustCreateFolder(t, "sibling", nil, "owner-1")

	topFile := env.mustUploadFile(t, "top.txt", &topID, "owner-1")
	midFile := env.mustUploadFile(t, "mid.txt", &midID, "owner-1")
	leafFile := env.mustUploadFile(t, "leaf.txt", &leafID, "owner-1")
	siblingFile := env.mustUploadFile(t, "sibling.txt", &siblingID, "owner-1")
	rootFile := env.mustUploadFile(t, "loose.txt", nil, "owner-1")

	require.NoError(t, env.folders.DeleteFolder(ctx, topID, "owner-1"))

	t.Run("every folder in the subtree is gone", func(t *testing.T) {
		for _, id := range []int64{topID, midID, leafID} {
			_, err := env.folders.GetFolder(ctx, id, "owner-1")
			assert.ErrorIs(t, err, domain.ErrNotFound, "folder %d should be gone", id)
		}
	})

	t.Run("every file in the subtree is gone", func(t *testing.T) {
		for _, id := range []int64{topFile, midFile, leafFile} {
			_, err := env.files.GetFile(ctx, id, "owner-1")
			assert.ErrorIs(t, err, domain.ErrNotFound, "file %d should be gone", id)
		}
	})

	t.Run("sibling and root file are untouched", func(t *testing.T) {
		_, err := env.folders.GetFolder(ctx, siblingID, "owner-1")
		assert.NoError(t, err)

		_, err = env.files.GetFile(ctx, siblingFile, "owner-1")
		assert.NoError(t, err)

		_, err = env.files.GetFile(ctx, rootFile, "owner-1")
		assert.NoError(t, err)
	})

	t.Run("deleted folder no longer appears at root", func(t *testing.T) {
		roots, err := env.folders.ListRoot(ctx, "owner-1")
		require.NoError(t, err)
		require.Len(t, roots, 1)
		assert.Equal(t, siblingID, roots[0].ID)
	})

	t.Run("second delete reports not-found", func(t *testing.T) {
		err := env.folders.DeleteFolder(ctx, topID, "owner-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteFolderOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	folderID := env.mustCreateFolder(t, "mine", nil, "owner-1")
	fileID := env.mustUploadFile(t, "mine.txt", &folderID, "owner-1")

	err := env.folders.DeleteFolder(ctx, folderID, "owner-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.folders.GetFolder(ctx, folderID, "owner-1")
	assert.NoError(t, err)
	_, err = env.files.GetFile(ctx, fileID, "owner-1")
	assert.NoError(t, err)
}

// failingFileRepo delegates everything except SoftDeleteInFolders, which
// always fails. It stands in for a mid-transaction storage fault.
type failingFileRepo struct {
	repositories.FileRepository
}

var errInjected = errors.New("injected storage failure")

func (r *failingFileRepo) SoftDeleteInFolders(ctx context.Context, folderIDs []int64, ownerID string) (int64, error) {
	return 0, errInjected
}

// TestDeleteFolderAtomicity injects a failure into the file half of the
// cascade and verifies the folder half rolled back with it.
func TestDeleteFolderAtomicity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	topID := env.mustCreateFolder(t, "top", nil, "owner-1")
	childID := env.mustCreateFolder(t, "child", &topID, "owner-1")
	fileID := env.mustUploadFile(t, "doc.txt", &childID, "owner-1")

	faulty := NewFolderService(
		env.folderRepo,
		&failingFileRepo{FileRepository: env.fileRepo},
		env.txManager,
		logger,
	)

	err := faulty.DeleteFolder(ctx, topID, "owner-1")
	require.Error(t, err)

	var txErr *domain.TransactionError
	require.ErrorAs(t, err, &txErr)
	assert.ErrorIs(t, err, errInjected)

	// Nothing was marked deleted, including the folders that the
	// transaction had already touched before the failure.
	for _, id := range []int64{topID, childID} {
		folder, err := env.folders.GetFolder(ctx, id, "owner-1")
		require.NoError(t, err, "folder %d must survive the rollback", id)
		assert.NotZero(t, folder.ID)
	}
	_, err = env.files.GetFile(ctx, fileID, "owner-1")
	assert.NoError(t, err)

	// The untouched service still deletes the same subtree cleanly.
	require.NoError(t, env.folders.DeleteFolder(ctx, topID, "owner-1"))
	_, err = env.folders.GetFolder(ctx, childID, "owner-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestFolderLifecycleScenario walks the end-to-end flow: a nested tree
// with a file, a rename, a cascade delete, and a cross-owner probe.
func TestFolderLifecycleScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	aID := env.mustCreateFolder(t, "A", nil, "user-a")
	bID := env.mustCreateFolder(t, "B", &aID, "user-a")
	fID := env.mustUploadFile(t, "f.txt", &bID, "user-a")

	require.NoError(t, env.folders.RenameFolder(ctx, aID, "A-renamed", "user-a"))

	_, err := env.folders.GetFolder(ctx, aID, "user-b")
	assert.ErrorIs(t, err, domain.ErrNotFound, "other owner must not see the folder")

	require.NoError(t, env.folders.DeleteFolder(ctx, aID, "user-a"))

	_, err = env.folders.GetFolder(ctx, bID, "user-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = env.files.DownloadFile(ctx, fID, "user-a")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
