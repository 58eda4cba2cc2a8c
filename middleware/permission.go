package middleware

import (
	"warrantyhub/database"
	"warrantyhub/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireActiveAdmin re-checks the token's admin against the database. It guards
// routes that manage other admins, so a disabled account cannot keep doing so
// with a still valid token.
func RequireActiveAdmin(c *fiber.Ctx) error {
	identity, ok := CurrentAdmin(c)
	if !ok {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Not authenticated!", nil)
	}

	var admin models.Admin
	err := database.Database.Db.WithContext(c.UserContext()).
		Where("id = ? AND is_deleted = ? AND is_active = ?", identity.ID, false, true).
		First(&admin).Error

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking permissions!", nil)
	}

	return c.Next()
}
