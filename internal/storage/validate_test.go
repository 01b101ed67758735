package storage

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
)

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name   string
		file   File
		folder string
		ok     bool
	}{
		{"png avatar", File{"a.png", "image/png", []byte("x")}, FolderAvatars, true},
		{"jpeg image", File{"a.jpg", "image/jpeg", []byte("x")}, FolderImages, true},
		{"mp4 video", File{"v.mp4", "video/mp4", []byte("x")}, FolderVideos, true},
		{"pdf document", File{"d.pdf", "application/pdf", []byte("x")}, FolderDocuments, true},
		{"pdf in images", File{"d.pdf", "application/pdf", []byte("x")}, FolderImages, false},
		{"video as avatar", File{"v.mp4", "video/mp4", []byte("x")}, FolderAvatars, false},
		{"empty file", File{"a.png", "image/png", nil}, FolderImages, false},
		{"unknown folder", File{"a.png", "image/png", []byte("x")}, "attachments", false},
		{"oversized image", File{"a.png", "image/png", bytes.Repeat([]byte("x"), maxImageSize+1)}, FolderImages, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFile(tt.file, tt.folder)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument), "want invalid argument, got %v", err)
			}
		})
	}
}

func TestFolderForContentType(t *testing.T) {
	assert.Equal(t, FolderImages, FolderForContentType("image/png"))
	assert.Equal(t, FolderVideos, FolderForContentType("video/mp4"))
	assert.Equal(t, FolderDocuments, FolderForContentType("application/pdf"))
	assert.Equal(t, FolderDocuments, FolderForContentType(""))
}

func TestMemoryStoreSignURL(t *testing.T) {
	m := NewMemoryStore("https://blobs.test")
	url, err := m.Upload(context.Background(), File{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, FolderImages)
	require.NoError(t, err)

	signed, err := m.SignURL(context.Background(), url, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, url, signed)

	_, err = m.SignURL(context.Background(), "https://elsewhere.test/images/a.png", time.Minute)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument))
}

func TestS3StoreSignURLRejectsForeignURL(t *testing.T) {
	s := &S3Store{bucket: "media", region: "ap-southeast-1"}
	_, err := s.SignURL(context.Background(), "https://other-bucket.s3.ap-southeast-1.amazonaws.com/images/a.png", time.Minute)
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidArgument), "foreign urls must fail before any network call")
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore("https://blobs.local")

	url, err := store.Upload(context.Background(), File{"a.png", "image/png", []byte("img")}, FolderImages)
	assert.NoError(t, err)
	assert.True(t, store.Has(url))

	deleted, err := store.Delete(context.Background(), url)
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, store.Has(url))

	// Second delete is a no-op, not an error.
	deleted, err = store.Delete(context.Background(), url)
	assert.NoError(t, err)
	assert.False(t, deleted)

	// Foreign URLs are never deleted.
	deleted, err = store.Delete(context.Background(), "https://elsewhere.example/images/x.png")
	assert.NoError(t, err)
	assert.False(t, deleted)
}
