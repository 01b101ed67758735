package handlers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/middleware"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/services"
	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

type LandlordHandler struct {
	landlords *services.LandlordService
	log       *zap.SugaredLogger
}

func NewLandlordHandler(landlords *services.LandlordService, log *zap.SugaredLogger) *LandlordHandler {
	return &LandlordHandler{landlords: landlords, log: log}
}

func (h *LandlordHandler) Register(r fiber.Router) {
	r.Get("/landlords/me", h.GetProfile)
	r.Put("/landlords/me", h.UpdateProfile)
	r.Post("/landlords/rooms", h.CreateRoom)
	r.Put("/landlords/rooms/:roomId", h.UpdateRoom)
	r.Delete("/landlords/rooms/:roomId", h.DeleteRoom)
	r.Post("/landlords/rooms/:roomId/media", h.AddRoomMedia)
	r.Delete("/landlords/rooms/:roomId/thumbnail", h.DeleteThumbnail)
	r.Delete("/landlords/rooms/:roomId/images", h.DeleteImages)
	r.Delete("/landlords/rooms/:roomId/videos", h.DeleteVideos)
	r.Delete("/landlords/rooms/:roomId/documents", h.DeleteDocuments)
}

func (h *LandlordHandler) GetProfile(c *fiber.Ctx) error {
	l, err := h.landlords.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, l)
}

func (h *LandlordHandler) UpdateProfile(c *fiber.Ctx) error {
	var form struct {
		Name         *string `json:"name"`
		Phone        *string `json:"phone"`
		Description  *string `json:"description"`
		RemoveAvatar bool    `json:"removeAvatar"`
	}
	if raw := c.FormValue("payload"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed payload"})
		}
	} else if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	avatar, err := formFile(c, "avatar")
	if err != nil {
		return fail(c, h.log, err)
	}
	l, err := h.landlords.UpdateProfile(c.Context(), middleware.UserID(c), services.LandlordProfileUpdate{
		Name:         form.Name,
		Phone:        form.Phone,
		Description:  form.Description,
		RemoveAvatar: form.RemoveAvatar,
		Avatar:       avatar,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, l)
}

type roomForm struct {
	Title             string  `json:"title"`
	Description       string  `json:"description"`
	RentPricePerMonth int64   `json:"rentPricePerMonth"`
	MinimumStayMonths int     `json:"minimumStayMonths"`
	Address           string  `json:"address"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	NumberOfToilets   int     `json:"numberOfToilets"`
	NumberOfBedRooms  int     `json:"numberOfBedRooms"`
	HasWindow         bool    `json:"hasWindow"`
}

// roomMedia pulls the four media fields out of the multipart form.
func roomMedia(c *fiber.Ctx) (thumb *storage.File, images, videos, documents []storage.File, err error) {
	if thumb, err = formFile(c, "thumbnail"); err != nil {
		return
	}
	if images, err = formFiles(c, "images"); err != nil {
		return
	}
	if videos, err = formFiles(c, "videos"); err != nil {
		return
	}
	documents, err = formFiles(c, "documents")
	return
}

func (h *LandlordHandler) CreateRoom(c *fiber.Ctx) error {
	var form roomForm
	if raw := c.FormValue("payload"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &form); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed payload"})
		}
	} else if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	thumb, images, videos, documents, err := roomMedia(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	room, err := h.landlords.CreateRoom(c.Context(), middleware.UserID(c), services.RoomInput{
		Title:             form.Title,
		Description:       form.Description,
		RentPricePerMonth: form.RentPricePerMonth,
		MinimumStayMonths: form.MinimumStayMonths,
		Address:           form.Address,
		Latitude:          form.Latitude,
		Longitude:         form.Longitude,
		NumberOfToilets:   form.NumberOfToilets,
		NumberOfBedRooms:  form.NumberOfBedRooms,
		HasWindow:         form.HasWindow,
		Thumbnail:         thumb,
		Images:            images,
		Videos:            videos,
		Documents:         documents,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, room)
}

func (h *LandlordHandler) UpdateRoom(c *fiber.Ctx) error {
	var form struct {
		Title             *string            `json:"title"`
		Description       *string            `json:"description"`
		RentPricePerMonth *int64             `json:"rentPricePerMonth"`
		MinimumStayMonths *int               `json:"minimumStayMonths"`
		Address           *string            `json:"address"`
		Latitude          *float64           `json:"latitude"`
		Longitude         *float64           `json:"longitude"`
		NumberOfToilets   *int               `json:"numberOfToilets"`
		NumberOfBedRooms  *int               `json:"numberOfBedRooms"`
		HasWindow         *bool              `json:"hasWindow"`
		Status            *models.RoomStatus `json:"status"`
	}
	if err := c.BodyParser(&form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	room, err := h.landlords.UpdateRoom(c.Context(), middleware.UserID(c), c.Params("roomId"), services.RoomUpdate{
		Title:             form.Title,
		Description:       form.Description,
		RentPricePerMonth: form.RentPricePerMonth,
		MinimumStayMonths: form.MinimumStayMonths,
		Address:           form.Address,
		Latitude:          form.Latitude,
		Longitude:         form.Longitude,
		NumberOfToilets:   form.NumberOfToilets,
		NumberOfBedRooms:  form.NumberOfBedRooms,
		HasWindow:         form.HasWindow,
		Status:            form.Status,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, room)
}

func (h *LandlordHandler) DeleteRoom(c *fiber.Ctx) error {
	if err := h.landlords.DeleteRoom(c.Context(), middleware.UserID(c), c.Params("roomId")); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.Map{"status": "deleted"})
}

func (h *LandlordHandler) AddRoomMedia(c *fiber.Ctx) error {
	thumb, images, videos, documents, err := roomMedia(c)
	if err != nil {
		return fail(c, h.log, err)
	}
	room, err := h.landlords.AddRoomMedia(c.Context(), middleware.UserID(c), c.Params("roomId"), services.RoomMediaInput{
		Thumbnail:        thumb,
		ReplaceThumbnail: c.QueryBool("replaceThumbnail"),
		Images:           images,
		Videos:           videos,
		Documents:        documents,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, room)
}

func (h *LandlordHandler) DeleteThumbnail(c *fiber.Ctx) error {
	room, err := h.landlords.DeleteThumbnail(c.Context(), middleware.UserID(c), c.Params("roomId"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, room)
}

func (h *LandlordHandler) DeleteImages(c *fiber.Ctx) error {
	return h.deleteMedia(c, h.landlords.DeleteImages)
}

func (h *LandlordHandler) DeleteVideos(c *fiber.Ctx) error {
	return h.deleteMedia(c, h.landlords.DeleteVideos)
}

func (h *LandlordHandler) DeleteDocuments(c *fiber.Ctx) error {
	return h.deleteMedia(c, h.landlords.DeleteDocuments)
}

func (h *LandlordHandler) deleteMedia(
	c *fiber.Ctx,
	del func(ctx context.Context, landlordID, roomID string, urls []string) (*models.Room, error),
) error {
	var body struct {
		URLs []string `json:"urls"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	room, err := del(c.Context(), middleware.UserID(c), c.Params("roomId"), body.URLs)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, room)
}
