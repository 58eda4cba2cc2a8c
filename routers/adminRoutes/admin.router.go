package adminRoutes

import (
	adminController "warrantyhub/controllers/admin"
	warrantyController "warrantyhub/controllers/warranty"
	"warrantyhub/middleware"
	adminValidator "warrantyhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin")

	adminGroup.Post("/login", adminValidator.Login(), adminController.SendLoginOTP)
	adminGroup.Put("/login", adminValidator.VerifyLogin(), adminController.VerifyLogin)
	adminGroup.Post("/logout", adminController.Logout)

	// public claim tracking, keyed only by the claim id
	adminGroup.Get("/claims/:externalId/history", warrantyController.ClaimHistory)

	adminGroup.Get("/me", middleware.AdminAuthMiddleware, adminController.Me)
	adminGroup.Get("/dashboard", middleware.AdminAuthMiddleware, adminController.Dashboard)

	warranties := adminGroup.Group("/warranties", middleware.AdminAuthMiddleware)
	warranties.Get("/", adminValidator.List(), adminController.ListWarranties)
	warranties.Get("/:externalId", adminController.GetWarranty)
	warranties.Put("/:externalId", adminValidator.UpdateWarrantyDetails(), adminController.UpdateWarrantyDetails)
	warranties.Put("/:externalId/status", adminValidator.UpdateWarrantyStatus(), adminController.UpdateWarrantyStatus)
	warranties.Delete("/:externalId", adminController.DeleteWarranty)

	claims := adminGroup.Group("/claims", middleware.AdminAuthMiddleware)
	claims.Get("/", adminValidator.List(), adminController.ListClaims)
	claims.Get("/:externalId", adminController.GetClaim)
	claims.Put("/:externalId/status", adminValidator.UpdateClaimStatus(), adminController.UpdateClaimStatus)
	claims.Delete("/:externalId", adminController.DeleteClaim)

	warrantyStatuses := adminGroup.Group("/warranty-statuses", middleware.AdminAuthMiddleware)
	warrantyStatuses.Get("/", adminController.ListWarrantyStatuses)
	warrantyStatuses.Post("/", adminValidator.StatusRow(), adminController.CreateWarrantyStatus)
	warrantyStatuses.Put("/:id", adminValidator.IDParam(), adminValidator.StatusRow(), adminController.UpdateWarrantyStatusRow)
	warrantyStatuses.Delete("/:id", adminValidator.IDParam(), adminController.DeleteWarrantyStatus)

	claimStatuses := adminGroup.Group("/claim-statuses", middleware.AdminAuthMiddleware)
	claimStatuses.Get("/", adminController.ListClaimStatuses)
	claimStatuses.Post("/", adminValidator.StatusRow(), adminController.CreateClaimStatus)
	claimStatuses.Put("/:id", adminValidator.IDParam(), adminValidator.StatusRow(), adminController.UpdateClaimStatusRow)
	claimStatuses.Delete("/:id", adminValidator.IDParam(), adminController.DeleteClaimStatus)

	admins := adminGroup.Group("/admins", middleware.AdminAuthMiddleware, middleware.RequireActiveAdmin)
	admins.Get("/", adminController.ListAdmins)
	admins.Post("/", adminValidator.CreateAdmin(), adminController.CreateAdmin)
	admins.Get("/:id/logins", adminValidator.IDParam(), adminValidator.List(), adminController.AdminLogins)
	admins.Put("/:id/active", adminValidator.IDParam(), adminValidator.SetActive(), adminController.SetAdminActive)
}
