package adminController

import (
	"time"

	"warrantyhub/database"
	"warrantyhub/middleware"
	"warrantyhub/services"
	adminValidator "warrantyhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func Dashboard(c *fiber.Ctx) error {
	d, err := services.GetDashboard(c.UserContext(), database.Database.Db, time.Now())
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched.", d)
}

func ListAdmins(c *fiber.Ctx) error {
	admins, err := services.ListAdmins(c.UserContext(), database.Database.Db)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admins fetched.", admins)
}

func CreateAdmin(c *fiber.Ctx) error {
	reqData := c.Locals("validatedAdmin").(*adminValidator.CreateAdminRequest)

	admin, err := services.CreateAdmin(c.UserContext(), database.Database.Db, services.AdminInput{
		Email: reqData.Email,
		Name:  reqData.Name,
	})
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Admin created.", admin)
}

func SetAdminActive(c *fiber.Ctx) error {
	reqData := c.Locals("validatedActive").(*adminValidator.SetActiveRequest)
	actor, _ := middleware.CurrentAdmin(c)

	admin, err := services.SetAdminActive(c.UserContext(), database.Database.Db, actor.ID, c.Locals("id").(uint), *reqData.IsActive)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Admin updated.", admin)
}

// AdminLogins lists the sign-in history of one admin.
func AdminLogins(c *fiber.Ctx) error {
	query := c.Locals("validatedQuery").(*adminValidator.ListQuery)

	page, err := services.ListAdminLogins(c.UserContext(), database.Database.Db, c.Locals("id").(uint), query.Page, query.Limit)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login history fetched.", page)
}
