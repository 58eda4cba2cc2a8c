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

func ListClaims(c *fiber.Ctx) error {
	q := c.Locals("validatedQuery").(*adminValidator.ListQuery)

	page, err := services.ListClaims(c.UserContext(), database.Database.Db, services.ClaimFilter{
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claims fetched.", page)
}

func GetClaim(c *fiber.Ctx) error {
	claim, err := services.FindClaimByExternalID(c.UserContext(), database.Database.Db, c.Params("externalId"))
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claim fetched.", fiber.Map{"claim": claim})
}

// UpdateClaimStatus records the decision, appends history, cascades to the
// warranty when needed and notifies the customer.
func UpdateClaimStatus(c *fiber.Ctx) error {
	reqData := c.Locals("validatedStatus").(*adminValidator.ClaimStatusRequest)
	admin, _ := middleware.CurrentAdmin(c)

	var changedBy *uint
	if admin.ID != 0 {
		changedBy = &admin.ID
	}

	res, err := services.UpdateClaimStatus(c.UserContext(), database.Database.Db, services.UpdateClaimStatusInput{
		ExternalID: c.Params("externalId"),
		StatusID:   reqData.StatusID,
		AdminNotes: reqData.AdminNotes,
		ChangedBy:  changedBy,
	})
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	utils.NotifyBestEffort(utils.NotifyClaimStatus,
		logrus.Fields{"claim_id": res.Claim.ExternalID, "admin_id": admin.ID},
		func(ctx context.Context) error { return utils.SendClaimStatusChanged(ctx, *res.Claim) })

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claim status updated.", fiber.Map{
		"claim":            res.Claim,
		"warranty_claimed": res.WarrantyClaimed,
	})
}

func DeleteClaim(c *fiber.Ctx) error {
	if err := services.SoftDeleteClaim(c.UserContext(), database.Database.Db, c.Params("externalId")); err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claim deleted.", nil)
}
