package media

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

func newTestCoordinator(store storage.BlobStore) *Coordinator {
	return NewCoordinator(store, zap.NewNop().Sugar())
}

func pngFile(name string) storage.File {
	return storage.File{Name: name, ContentType: "image/png", Data: []byte("png-bytes")}
}

func TestRunUploadsAndPersists(t *testing.T) {
	store := storage.NewMemoryStore("https://blobs.test")
	c := newTestCoordinator(store)

	var persisted map[string][]string
	urls, err := c.Run(context.Background(), []Group{
		{Folder: storage.FolderThumbnails, Files: []storage.File{pngFile("thumb.png")}},
		{Folder: storage.FolderImages, Files: []storage.File{pngFile("a.png"), pngFile("b.png")}},
	}, func(_ context.Context, u map[string][]string) error {
		persisted = u
		return nil
	})
	require.NoError(t, err)
	assert.Len(t, urls[storage.FolderThumbnails], 1)
	assert.Len(t, urls[storage.FolderImages], 2)
	assert.Equal(t, urls, persisted)
	assert.Equal(t, 3, store.Len())
}

func TestRunValidatesBeforeAnyUpload(t *testing.T) {
	store := storage.NewMemoryStore("https://blobs.test")
	c := newTestCoordinator(store)

	_, err := c.Run(context.Background(), []Group{
		{Folder: storage.FolderImages, Files: []storage.File{pngFile("ok.png")}},
		{Folder: storage.FolderImages, Files: []storage.File{{Name: "bad.txt", ContentType: "text/plain", Data: []byte("x")}}},
	}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
	assert.Equal(t, 0, store.Len(), "nothing may be uploaded when any file is invalid")
}

func TestRunRollsBackOnPersistFailure(t *testing.T) {
	store := storage.NewMemoryStore("https://blobs.test")
	c := newTestCoordinator(store)

	boom := errors.New("db down")
	_, err := c.Run(context.Background(), []Group{
		{Folder: storage.FolderImages, Files: []storage.File{pngFile("a.png"), pngFile("b.png")}},
	}, func(context.Context, map[string][]string) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len(), "persist failure must remove every uploaded file")
}

func TestRunRollsBackOnMidBatchUploadFailure(t *testing.T) {
	store := storage.NewMemoryStore("https://blobs.test")
	store.UploadErrAfter = 2
	c := newTestCoordinator(store)

	_, err := c.Run(context.Background(), []Group{
		{Folder: storage.FolderImages, Files: []storage.File{pngFile("a.png"), pngFile("b.png"), pngFile("c.png")}},
	}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindUpstream))
	assert.Equal(t, 0, store.Len(), "earlier uploads must be rolled back")
}

func TestRunSurvivesRollbackDeleteFailure(t *testing.T) {
	store := storage.NewMemoryStore("https://blobs.test")
	store.DeleteErr = errors.New("store unreachable")
	c := newTestCoordinator(store)

	boom := errors.New("persist failed")
	_, err := c.Run(context.Background(), []Group{
		{Folder: storage.FolderImages, Files: []storage.File{pngFile("a.png")}},
	}, func(context.Context, map[string][]string) error {
		return boom
	})
	// the original error wins; the failed delete is only logged
	require.ErrorIs(t, err, boom)
}

func TestDeleteIgnoresEmptyURL(t *testing.T) {
	store := storage.NewMemoryStore("https://blobs.test")
	c := newTestCoordinator(store)
	c.Delete(context.Background(), "")
	assert.Equal(t, 0, store.Len())
}
