package adminController

import (
	"context"

	"warrantyhub/database"
	"warrantyhub/middleware"
	"warrantyhub/services"
	"warrantyhub/utils"
	adminValidator "warrantyhub/validators/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

func ListWarranties(c *fiber.Ctx) error {
	q := c.Locals("validatedQuery").(*adminValidator.ListQuery)

	page, err := services.ListWarranties(c.UserContext(), database.Database.Db, services.WarrantyFilter{
		Page:     q.Page,
		Limit:    q.Limit,
		StatusID: q.StatusID,
		Search:   q.Search,
		SortBy:   q.SortBy,
		Order:    q.Order,
	})
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranties fetched.", page)
}

func GetWarranty(c *fiber.Ctx) error {
	result, err := services.FindWarrantyByExternalID(c.UserContext(), database.Database.Db, c.Params("externalId"))
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty fetched.", result)
}

func UpdateWarrantyDetails(c *fiber.Ctx) error {
	reqData := c.Locals("validatedDetails").(*adminValidator.WarrantyDetailsRequest)

	warranty, err := services.UpdateWarrantyDetails(c.UserContext(), database.Database.Db, c.Params("externalId"), services.WarrantyDetailsInput{
		CustomerName: reqData.CustomerName,
		Email:        reqData.Email,
		Mobile:       reqData.Mobile,
		Address:      reqData.Address,
		City:         reqData.City,
		Pincode:      reqData.Pincode,
		ProductName:  reqData.ProductName,
		ProductModel: reqData.ProductModel,
	})
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty updated.", fiber.Map{"warranty": warranty})
}

// UpdateWarrantyStatus changes a warranty status and notifies the customer.
func UpdateWarrantyStatus(c *fiber.Ctx) error {
	reqData := c.Locals("validatedStatus").(*adminValidator.WarrantyStatusRequest)
	admin, _ := middleware.CurrentAdmin(c)

	warranty, err := services.UpdateWarrantyStatus(c.UserContext(), database.Database.Db, c.Params("externalId"), reqData.StatusID)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	utils.NotifyBestEffort(utils.NotifyWarrantyStatus,
		logrus.Fields{"warranty_id": warranty.ExternalID, "admin_id": admin.ID},
		func(ctx context.Context) error { return utils.SendWarrantyStatusChanged(ctx, *warranty) })

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty status updated.", fiber.Map{"warranty": warranty})
}

func DeleteWarranty(c *fiber.Ctx) error {
	if err := services.SoftDeleteWarranty(c.UserContext(), database.Database.Db, c.Params("externalId")); err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty deleted.", nil)
}
