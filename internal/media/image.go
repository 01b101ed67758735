package media

import (
	"bytes"

	"github.com/disintegration/imaging"

	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

const avatarEdge = 512

// ShrinkAvatar downscales an avatar image so its longest edge does not
// exceed 512 pixels, re-encoding as JPEG. Files that do not decode as an
// image are returned untouched; the upload path validates content types
// separately and shrinking is an optimisation, not a gate.
func ShrinkAvatar(f storage.File) storage.File {
	img, err := imaging.Decode(bytes.NewReader(f.Data))
	if err != nil {
		return f
	}
	b := img.Bounds()
	if b.Dx() <= avatarEdge && b.Dy() <= avatarEdge {
		return f
	}
	resized := imaging.Fit(img, avatarEdge, avatarEdge, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return f
	}
	return storage.File{
		Name:        f.Name,
		ContentType: "image/jpeg",
		Data:        buf.Bytes(),
	}
}
