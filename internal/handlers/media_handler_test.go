package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DuongTranDang1004/SEPM/internal/storage"
)

func mediaApp(t *testing.T, publicRead bool) (*fiber.App, string) {
	t.Helper()
	blobs := storage.NewMemoryStore("https://blobs.test")
	stored, err := blobs.Upload(context.Background(),
		storage.File{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, storage.FolderImages)
	require.NoError(t, err)

	app := fiber.New()
	NewMediaHandler(blobs, 10*time.Minute, publicRead, zap.NewNop().Sugar()).Register(app)
	return app, stored
}

func signedURLResp(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestSignedURLPublicBucketReturnsStoredURL(t *testing.T) {
	app, stored := mediaApp(t, true)
	status, body := signedURLResp(t, app, "/media/signed-url?url="+url.QueryEscape(stored))
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, stored, body["url"])
}

func TestSignedURLPrivateBucketSigns(t *testing.T) {
	app, stored := mediaApp(t, false)
	status, body := signedURLResp(t, app, "/media/signed-url?url="+url.QueryEscape(stored))
	assert.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, body["url"])
	assert.EqualValues(t, 600, body["expiresInSeconds"])
}

func TestSignedURLRejectsForeignAndMissingURL(t *testing.T) {
	app, _ := mediaApp(t, false)

	status, _ := signedURLResp(t, app, "/media/signed-url")
	assert.Equal(t, fiber.StatusBadRequest, status)

	foreign := url.QueryEscape("https://elsewhere.test/images/a.png")
	status, _ = signedURLResp(t, app, "/media/signed-url?url="+foreign)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
