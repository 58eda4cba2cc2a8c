package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"warrantyhub/config"
	"warrantyhub/services"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTestConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = config.Default()
	t.Cleanup(func() { config.AppConfig = prev })
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestAdminTokenRoundTrip(t *testing.T) {
	useTestConfig(t)

	token, expires, err := GenerateAdminToken(7, "ops@example.com", "Ops")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), expires, time.Minute)

	identity, err := ParseAdminToken(token)
	require.NoError(t, err)
	assert.Equal(t, AdminIdentity{ID: 7, Email: "ops@example.com", Name: "Ops"}, *identity)
}

func TestParseAdminTokenRejects(t *testing.T) {
	useTestConfig(t)

	sign := func(claims AdminClaims, key string) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}
	past := time.Now().Add(-time.Hour)

	cases := map[string]string{
		"expired": sign(AdminClaims{AdminID: 1, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
		}}, config.AppConfig.JWTKey),
		"wrong key": sign(AdminClaims{AdminID: 1, RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}, "another-secret"),
		"no admin id": sign(AdminClaims{RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}}, config.AppConfig.JWTKey),
		"garbage": "abc.def.ghi",
	}

	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseAdminToken(token)
			assert.Error(t, err)
		})
	}
}

func TestAdminAuthMiddleware(t *testing.T) {
	useTestConfig(t)

	app := fiber.New()
	app.Get("/me", AdminAuthMiddleware, func(c *fiber.Ctx) error {
		identity, ok := CurrentAdmin(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		return c.JSON(identity)
	})

	token, _, err := GenerateAdminToken(3, "a@example.com", "A")
	require.NoError(t, err)

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "a@example.com", decode(t, resp)["email"])
	})

	t.Run("bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("missing", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/me", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		body := decode(t, resp)
		assert.Equal(t, false, body["status"])
		assert.Equal(t, "Not authenticated!", body["error"])
	})

	t.Run("tampered", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: AdminCookieName, Value: token + "x"})
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestSetAndClearAdminCookie(t *testing.T) {
	useTestConfig(t)

	app := fiber.New()
	app.Get("/in", func(c *fiber.Ctx) error {
		SetAdminCookie(c, "tok", time.Now().Add(time.Hour))
		return c.SendStatus(fiber.StatusOK)
	})
	app.Get("/out", func(c *fiber.Ctx) error {
		ClearAdminCookie(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/in", nil), -1)
	require.NoError(t, err)
	require.Len(t, resp.Cookies(), 1)
	cookie := resp.Cookies()[0]
	assert.Equal(t, AdminCookieName, cookie.Name)
	assert.Equal(t, "tok", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/out", nil), -1)
	require.NoError(t, err)
	require.Len(t, resp.Cookies(), 1)
	assert.Empty(t, resp.Cookies()[0].Value)
}

func TestHandleServiceError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{&services.Error{Kind: services.ErrNotFound, Message: "Warranty not found!"}, http.StatusNotFound},
		{&services.Error{Kind: services.ErrActiveClaim, Message: "busy"}, http.StatusBadRequest},
		{&services.Error{Kind: services.ErrConflict, Message: "dup"}, http.StatusConflict},
		{&services.Error{Kind: services.ErrInUse, Message: "used"}, http.StatusConflict},
		{&services.ValidationError{Fields: map[string]string{"email": "Email is invalid!"}}, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", &services.Error{Kind: services.ErrNotFound, Message: "gone"}), http.StatusNotFound},
		{errors.New("database is locked"), http.StatusInternalServerError},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return HandleServiceError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)

			body := decode(t, resp)
			assert.Equal(t, false, body["status"])
			if tc.status == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error!", body["message"])
			}
		})
	}
}

func TestHandleServiceErrorFields(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return HandleServiceError(c, &services.ValidationError{Fields: map[string]string{"status_id": "Invalid claim status!"}})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body := decode(t, resp)
	assert.Equal(t, "Invalid claim status!", body["message"])
	assert.Equal(t, map[string]interface{}{"status_id": "Invalid claim status!"}, body["data"])
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, false, decode(t, resp)["status"])

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error!", decode(t, resp)["error"])
}
