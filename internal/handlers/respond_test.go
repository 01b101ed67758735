package handlers

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/apperrors"
)

func TestStatusOf(t *testing.T) {
	cases := map[int]error{
		fiber.StatusNotFound:            apperrors.NotFound("x"),
		fiber.StatusConflict:            apperrors.Conflict("x"),
		fiber.StatusBadRequest:          apperrors.InvalidArgument("x"),
		fiber.StatusForbidden:           apperrors.Forbidden("x"),
		fiber.StatusUnauthorized:        apperrors.Unauthorized("x"),
		fiber.StatusBadGateway:          apperrors.Upstream(errors.New("boom"), "x"),
		fiber.StatusInternalServerError: errors.New("plain"),
	}
	for want, err := range cases {
		assert.Equal(t, want, statusOf(err), "error %v", err)
	}
}

func TestFailHidesInternalDetail(t *testing.T) {
	app := fiber.New()
	log := zap.NewNop().Sugar()
	app.Get("/app-error", func(c *fiber.Ctx) error {
		return fail(c, log, apperrors.NotFound("room r-1 not found"))
	})
	app.Get("/plain-error", func(c *fiber.Ctx) error {
		return fail(c, log, errors.New("pg: connection refused on 10.0.0.3"))
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/app-error", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"room r-1 not found"}`, string(body))

	resp, err = app.Test(httptest.NewRequest("GET", "/plain-error", nil))
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"internal error"}`, string(body), "infrastructure detail never reaches the client")
}
