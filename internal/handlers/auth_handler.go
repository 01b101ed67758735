package handlers

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/models"
	"github.com/DuongTranDang1004/SEPM/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
	log  *zap.SugaredLogger
}

func NewAuthHandler(auth *services.AuthService, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func (h *AuthHandler) Register(r fiber.Router) {
	r.Post("/auth/signup", h.Signup)
	r.Post("/auth/login", h.Login)
}

// signupForm mirrors the multipart "payload" part of the signup request.
// The avatar travels as a separate file part.
type signupForm struct {
	Email           string      `json:"email"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirmPassword"`
	Name            string      `json:"name"`
	Phone           string      `json:"phone"`
	Description     string      `json:"description"`
	Role            models.Role `json:"role"`

	BudgetPerMonth     *int64        `json:"budgetPerMonth"`
	StayLengthMonths   *int          `json:"stayLengthMonths"`
	MoveInDate         *time.Time    `json:"moveInDate"`
	PreferredDistricts []string      `json:"preferredDistricts"`
	Age                *int          `json:"age"`
	Gender             models.Gender `json:"gender"`
	Smoking            bool          `json:"smoking"`
	Cooking            bool          `json:"cooking"`
	NeedWindow         bool          `json:"needWindow"`
	MightShareBedRoom  bool          `json:"mightShareBedRoom"`
	MightShareToilet   bool          `json:"mightShareToilet"`
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var form signupForm
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

	res, err := h.auth.Signup(c.Context(), services.SignupInput{
		Email:              form.Email,
		Password:           form.Password,
		ConfirmPassword:    form.ConfirmPassword,
		Name:               form.Name,
		Phone:              form.Phone,
		Description:        form.Description,
		Role:               form.Role,
		Avatar:             avatar,
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
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return created(c, res)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "malformed body"})
	}
	res, err := h.auth.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		return fail(c, h.log, err)
	}
	return ok(c, res)
}
