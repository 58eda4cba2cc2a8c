package adminController

import (
	"warrantyhub/database"
	"warrantyhub/middleware"
	"warrantyhub/services"
	adminValidator "warrantyhub/validators/admin"

	"github.com/gofiber/fiber/v2"
)

func statusInput(c *fiber.Ctx) services.StatusInput {
	reqData := c.Locals("validatedStatusRow").(*adminValidator.StatusRowRequest)
	return services.StatusInput{Name: reqData.Name, Description: reqData.Description}
}

func ListWarrantyStatuses(c *fiber.Ctx) error {
	statuses, err := services.ListWarrantyStatuses(c.UserContext(), database.Database.Db)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty statuses fetched.", statuses)
}

func CreateWarrantyStatus(c *fiber.Ctx) error {
	status, err := services.CreateWarrantyStatus(c.UserContext(), database.Database.Db, statusInput(c))
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Warranty status created.", status)
}

func UpdateWarrantyStatusRow(c *fiber.Ctx) error {
	status, err := services.UpdateWarrantyStatusRow(c.UserContext(), database.Database.Db, c.Locals("id").(uint), statusInput(c))
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty status updated.", status)
}

func DeleteWarrantyStatus(c *fiber.Ctx) error {
	if err := services.DeleteWarrantyStatus(c.UserContext(), database.Database.Db, c.Locals("id").(uint)); err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty status deleted.", nil)
}

func ListClaimStatuses(c *fiber.Ctx) error {
	statuses, err := services.ListClaimStatuses(c.UserContext(), database.Database.Db)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claim statuses fetched.", statuses)
}

func CreateClaimStatus(c *fiber.Ctx) error {
	status, err := services.CreateClaimStatus(c.UserContext(), database.Database.Db, statusInput(c))
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Claim status created.", status)
}

func UpdateClaimStatusRow(c *fiber.Ctx) error {
	status, err := services.UpdateClaimStatusRow(c.UserContext(), database.Database.Db, c.Locals("id").(uint), statusInput(c))
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claim status updated.", status)
}

func DeleteClaimStatus(c *fiber.Ctx) error {
	if err := services.DeleteClaimStatus(c.UserContext(), database.Database.Db, c.Locals("id").(uint)); err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claim status deleted.", nil)
}
