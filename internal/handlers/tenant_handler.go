package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/middleware"
	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/services"
)

type TenantHandler struct {
	tenants *services.TenantService
	swipes  *services.SwipeService
	log     *zap.SugaredLogger
}

func NewTenantHandler(tenants *services.TenantService, swipes *services.SwipeService, log *zap.SugaredLogger) *TenantHandler {
	return &TenantHandler{tenants: tenants, swipes: swipes, log: log}
}

func (h *TenantHandler) Register(r fiber.Router) {
	r.Get("/tenants/me", h.GetProfile)
	r.Put("/tenants/me", h.UpdateProfile)
	r.Get("/tenants/candidates", h.ListCandidates)
	r.Post("/tenants/swipes", h.Swipe)
	r.Get("/tenants/bookmarks", h.ListBookmarks)
	r.Post("/tenants/bookmarks/:roomId", h.Bookmark)
	r.Delete("/tenants/bookmarks/:roomId", h.Unbookmark)
}

func (h *TenantHandler) GetProfile(c *fiber.Ctx) error {
	t, err := h.tenants.GetProfile(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, t)
}

type tenantProfileForm struct {
	Name        *string `json:"name"`
	Phone       *string `json:"phone"`
	Description *string `json:"description"`

	BudgetPerMonth     *int64         `json:"budgetPerMonth"`
	StayLengthMonths   *int           `json:"stayLengthMonths"`
	MoveInDate         *time.Time     `json:"moveInDate"`
	PreferredDistricts *[]string      `json:"preferredDistricts"`
	Age                *int           `json:"age"`
	Gender             *models.Gender `json:"gender"`
	Smoking            *bool          `json:"smoking"`
	Cooking            *bool          `json:"cooking"`
	NeedWindow         *bool          `json:"needWindow"`
	MightShareBedRoom  *bool          `json:"mightShareBedRoom"`
	MightShareToilet   *bool          `json:"mightShareToilet"`
	RemoveAvatar       bool           `json:"removeAvatar"`
}

func (h *TenantHandler) UpdateProfile(c *fiber.Ctx) error {
	var form tenantProfileForm
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

	t, err := h.tenants.UpdateProfile(c.Context(), middleware.UserID(c), services.TenantProfileUpdate{
		Name:               form.Name,
		Phone:              form.Phone,
		Description:        form.Description,
		BudgetPerMonth:     form.BudgetPerMonth,
		StayLengthMonths:   form.StayLengthMonths,
		MoveInDate:         form.MoveInDate,
		PreferredDistricts: form.PreferredDistricts,
		Age:                form.Age,
		Gender:             form.Gender,
		Smoking:            form.Smoking,
		Cooking:            form.Cooking,
		NeedWindow:         form.NeedWindow,
		MightShareBedRoom:  form.MightShareBedRoom,
		MightShareToilet:   form.MightShareToilet,
		RemoveAvatar:       form.RemoveAvatar,
		Avatar:             avatar,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, t)
}

func (h *TenantHandler) ListCandidates(c *fiber.Ctx) error {
	candidates, err := h.swipes.ListCandidates(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, candidates)
}

func (h *TenantHandler) Swipe(c *fiber.Ctx) error {
	var body struct {
		TargetID string             `json:"targetId"`
		Action   models.SwipeAction `json:"action"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	res, err := h.swipes.Swipe(c.Context(), middleware.UserID(c), body.TargetID, body.Action)
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, res)
}

func (h *TenantHandler) ListBookmarks(c *fiber.Ctx) error {
	rooms, err := h.tenants.ListBookmarkedRooms(c.Context(), middleware.UserID(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, rooms)
}

func (h *TenantHandler) Bookmark(c *fiber.Ctx) error {
	b, err := h.tenants.BookmarkRoom(c.Context(), middleware.UserID(c), c.Params("roomId"))
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, b)
}

func (h *TenantHandler) Unbookmark(c *fiber.Ctx) error {
	if err := h.tenants.UnbookmarkRoom(c.Context(), middleware.UserID(c), c.Params("roomId")); err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, fiber.Map{"status": "removed"})
}
