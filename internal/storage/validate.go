package storage

import (
	"strings"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
)

// Upload folders. Each folder implies a file class with its own allowed
// content types and size cap.
const (
	FolderAvatars    = "avatars"
	FolderThumbnails = "thumbnails"
	FolderImages     = "images"
	FolderVideos     = "videos"
	FolderDocuments  = "documents"
)

const (
	maxImageSize    = 10 << 20
	maxVideoSize    = 100 << 20
	maxDocumentSize = 20 << 20
)

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

var allowedVideoTypes = map[string]bool{
	"video/mp4":       true,
	"video/quicktime": true,
}

var allowedDocumentTypes = map[string]bool{
	"application/pdf": true,
}

// ValidateFile checks content type and size against the folder's rules.
// It runs before any upload so a bad batch is rejected without touching
// the blob store.
func ValidateFile(f File, folder string) error {
	if len(f.Data) == 0 {
		return apperrors.InvalidArgument("file %s is empty", f.Name)
	}
	switch folder {
	case FolderAvatars, FolderThumbnails, FolderImages:
		if !allowedImageTypes[f.ContentType] {
			return apperrors.InvalidArgument("file %s: content type %s is not an allowed image type", f.Name, f.ContentType)
		}
		if len(f.Data) > maxImageSize {
			return apperrors.InvalidArgument("file %s exceeds the %dMB image limit", f.Name, maxImageSize>>20)
		}
	case FolderVideos:
		if !allowedVideoTypes[f.ContentType] {
			return apperrors.InvalidArgument("file %s: content type %s is not an allowed video type", f.Name, f.ContentType)
		}
		if len(f.Data) > maxVideoSize {
			return apperrors.InvalidArgument("file %s exceeds the %dMB video limit", f.Name, maxVideoSize>>20)
		}
	case FolderDocuments:
		if !allowedDocumentTypes[f.ContentType] {
			return apperrors.InvalidArgument("file %s: content type %s is not an allowed document type", f.Name, f.ContentType)
		}
		if len(f.Data) > maxDocumentSize {
			return apperrors.InvalidArgument("file %s exceeds the %dMB document limit", f.Name, maxDocumentSize>>20)
		}
	default:
		return apperrors.InvalidArgument("invalid folder type: %s", folder)
	}
	return nil
}

// ValidateFiles validates a whole batch up front.
func ValidateFiles(files []File, folder string) error {
	for _, f := range files {
		if err := ValidateFile(f, folder); err != nil {
			return err
		}
	}
	return nil
}

// FolderForContentType picks the destination folder for a message
// attachment from its content type. Unknown types go to documents.
func FolderForContentType(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return FolderImages
	case strings.HasPrefix(contentType, "video/"):
		return FolderVideos
	default:
		return FolderDocuments
	}
}
