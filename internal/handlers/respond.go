// Package handlers is the HTTP edge: it decodes requests, calls the
// services and translates their errors to status codes. No business rules
// live here.
package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

func statusOf(err error) int {
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindInvalidArgument:
		return fiber.StatusBadRequest
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindUpstream:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the error response. Internal detail of wrapped upstream
// errors stays in the logs, not in the body.
func fail(c *fiber.Ctx, log *zap.SugaredLogger, err error) error {
	status := statusOf(err)
	if status >= 500 {
		log.Errorw("request failed", "path", c.Path(), "status", status, "error", err)
	}
	msg := "internal error"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		msg = appErr.Msg
	}
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

func ok(c *fiber.Ctx, payload any) error {
	return c.JSON(payload)
}

func created(c *fiber.Ctx, payload any) error {
	return c.Status(fiber.StatusCreated).JSON(payload)
}

// fileFromHeader loads one multipart part into memory.
func fileFromHeader(fh *multipart.FileHeader) (*storage.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.InvalidArgument("reading upload %s", fh.Filename)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperrors.InvalidArgument("reading upload %s", fh.Filename)
	}
	return &storage.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// formFiles loads every part of one multipart field.
func formFiles(c *fiber.Ctx, field string) ([]storage.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	headers := form.File[field]
	files := make([]storage.File, 0, len(headers))
	for _, fh := range headers {
		f, err := fileFromHeader(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, *f)
	}
	return files, nil
}

// formFile loads a single optional part of one multipart field.
func formFile(c *fiber.Ctx, field string) (*storage.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	return fileFromHeader(fh)
}
