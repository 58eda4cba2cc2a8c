package adminController

import (
	"context"
	"errors"
	"strings"

	"warrantyhub/database"
	"warrantyhub/middleware"
	"warrantyhub/services"
	"warrantyhub/utils"
	adminValidator "warrantyhub/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const otpPurposeAdminLogin = "admin_login"

// SendLoginOTP emails a one-time code to an existing, active admin.
func SendLoginOTP(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*adminValidator.LoginRequest)
	ctx := c.UserContext()

	admin, err := services.FindActiveAdminByEmail(ctx, database.Database.Db, reqData.Email)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	err = utils.OTP.Send(ctx, admin.Email, otpPurposeAdminLogin, func(code string) error {
		return utils.SendAdminOTP(ctx, admin.Email, admin.Name, code, utils.OTP.TTL)
	})
	if err != nil {
		logrus.WithError(err).WithField("admin_id", admin.ID).Error("Failed to send admin OTP")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send OTP, please try again!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent to your email.", nil)
}

// VerifyLogin checks the code and issues the session cookie.
func VerifyLogin(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLogin").(*adminValidator.VerifyRequest)
	ctx := c.UserContext()

	if err := utils.OTP.Verify(ctx, reqData.Email, reqData.OTP); err != nil {
		switch {
		case errors.Is(err, utils.ErrOTPNotFound):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP not found or already used, please request a new one!", nil)
		case errors.Is(err, utils.ErrOTPExpired):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "OTP has expired, please request a new one!", nil)
		case errors.Is(err, utils.ErrOTPInvalid):
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid OTP!", nil)
		default:
			logrus.WithError(err).Error("OTP verification failed")
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to verify OTP!", nil)
		}
	}

	// the admin may have been disabled while the code was in flight
	admin, err := services.FindActiveAdminByEmail(ctx, database.Database.Db, reqData.Email)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	token, expires, err := middleware.GenerateAdminToken(admin.ID, admin.Email, admin.Name)
	if err != nil {
		logrus.WithError(err).Error("Failed to sign admin token")
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create session!", nil)
	}
	middleware.SetAdminCookie(c, token, expires)

	ip := c.IP()
	if forwarded := c.Get(fiber.HeaderXForwardedFor); forwarded != "" {
		ip = strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	login := services.LoginInfo{IPAddress: ip, Device: c.Get(fiber.HeaderUserAgent)}
	if err := services.RecordAdminLogin(context.Background(), database.Database.Db, admin.ID, login); err != nil {
		logrus.WithError(err).WithField("admin_id", admin.ID).Warn("Failed to record last login")
	}

	logrus.WithField("admin_id", admin.ID).Info("Admin logged in")
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"admin":      middleware.AdminIdentity{ID: admin.ID, Email: admin.Email, Name: admin.Name},
		"expires_at": expires,
	})
}

func Logout(c *fiber.Ctx) error {
	middleware.ClearAdminCookie(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out.", nil)
}

// Me returns the identity carried by the session token.
func Me(c *fiber.Ctx) error {
	identity, _ := middleware.CurrentAdmin(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin fetched.", identity)
}
