package warrantyController

import (
	"context"
	"mime/multipart"

	"warrantyhub/database"
	"warrantyhub/middleware"
	"warrantyhub/models"
	"warrantyhub/services"
	"warrantyhub/utils"
	warrantyValidator "warrantyhub/validators/warranty"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// storeFile uploads fh when present, otherwise keeps the client supplied reference.
// Newly uploaded files are appended to uploaded so they can be removed on failure.
func storeFile(ctx context.Context, fh *multipart.FileHeader, folder string, ref utils.StoredFile, uploaded *[]utils.StoredFile) (utils.StoredFile, error) {
	if fh == nil {
		return ref, nil
	}
	if utils.Storage == nil {
		return utils.StoredFile{}, fiber.NewError(fiber.StatusServiceUnavailable, "File uploads are not configured!")
	}

	stored, err := utils.Storage.Upload(ctx, fh, folder)
	if err != nil {
		return utils.StoredFile{}, err
	}
	*uploaded = append(*uploaded, stored)
	return stored, nil
}

func uploadFailed(c *fiber.Ctx, err error, uploaded []utils.StoredFile) error {
	utils.DeleteFilesBestEffort(context.Background(), uploaded...)
	if fe, ok := err.(*fiber.Error); ok {
		return middleware.JsonResponse(c, fe.Code, false, fe.Message, nil)
	}
	logrus.WithError(err).Error("File upload failed")
	return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to upload file!", nil)
}

// Register stores a new warranty and emails the confirmation.
func Register(c *fiber.Ctx) error {
	payload := c.Locals("validatedWarranty").(*warrantyValidator.RegisterPayload)
	ctx := c.UserContext()

	var uploaded []utils.StoredFile
	invoice, err := storeFile(ctx, payload.Invoice, "invoices",
		utils.StoredFile{URL: payload.InvoiceURL, FileID: payload.InvoiceFileID}, &uploaded)
	if err != nil {
		return uploadFailed(c, err, uploaded)
	}
	card, err := storeFile(ctx, payload.WarrantyCard, "warranty-cards",
		utils.StoredFile{URL: payload.WarrantyCardURL, FileID: payload.WarrantyCardFileID}, &uploaded)
	if err != nil {
		return uploadFailed(c, err, uploaded)
	}

	warranty, err := services.RegisterWarranty(ctx, database.Database.Db, services.RegisterWarrantyInput{
		CustomerName:   payload.CustomerName,
		Email:          payload.Email,
		Mobile:         payload.Mobile,
		Address:        payload.Address,
		City:           payload.City,
		Pincode:        payload.Pincode,
		ProductName:    payload.ProductName,
		ProductModel:   payload.ProductModel,
		PurchaseDate:   payload.PurchaseDateValue,
		PurchasePrice:  payload.PurchasePrice,
		PurchaseSource: payload.PurchaseSource,
		Invoice:        invoice,
		WarrantyCard:   card,
	})
	if err != nil {
		utils.DeleteFilesBestEffort(context.Background(), uploaded...)
		return middleware.HandleServiceError(c, err)
	}

	utils.NotifyBestEffort(utils.NotifyWarrantyRegistered, logrus.Fields{"warranty_id": warranty.ExternalID},
		func(ctx context.Context) error { return utils.SendWarrantyRegistered(ctx, *warranty) })

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Warranty registered successfully.", fiber.Map{
		"warranty_id": warranty.ExternalID,
		"warranty":    warranty,
	})
}

// Search looks a warranty up by its external id and includes the latest claim.
func Search(c *fiber.Ctx) error {
	externalID := c.Locals("externalId").(string)

	result, err := services.FindWarrantyByExternalID(c.UserContext(), database.Database.Db, externalID)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty found.", result)
}

// SearchByEmail lists every warranty registered under an email.
func SearchByEmail(c *fiber.Ctx) error {
	email := c.Locals("email").(string)

	warranties, err := services.FindWarrantiesByEmail(c.UserContext(), database.Database.Db, email)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranties found.", fiber.Map{
		"warranties": warranties,
	})
}

// CreateClaim files a claim and emails the confirmation.
func CreateClaim(c *fiber.Ctx) error {
	payload := c.Locals("validatedClaim").(*warrantyValidator.ClaimPayload)
	ctx := c.UserContext()

	var uploaded []utils.StoredFile
	photo, err := storeFile(ctx, payload.Photo, "claims/photos",
		utils.StoredFile{URL: payload.PhotoURL, FileID: payload.PhotoFileID}, &uploaded)
	if err != nil {
		return uploadFailed(c, err, uploaded)
	}
	video, err := storeFile(ctx, payload.Video, "claims/videos",
		utils.StoredFile{URL: payload.VideoURL, FileID: payload.VideoFileID}, &uploaded)
	if err != nil {
		return uploadFailed(c, err, uploaded)
	}

	claim, err := services.CreateClaim(ctx, database.Database.Db, services.CreateClaimInput{
		WarrantyExternalID: payload.WarrantyID,
		DefectDescription:  payload.DefectDescription,
		Photo:              photo,
		Video:              video,
	})
	if err != nil {
		utils.DeleteFilesBestEffort(context.Background(), uploaded...)
		return middleware.HandleServiceError(c, err)
	}

	if claim.Warranty != nil {
		utils.NotifyBestEffort(utils.NotifyClaimCreated, logrus.Fields{"claim_id": claim.ExternalID},
			func(ctx context.Context) error { return utils.SendClaimCreated(ctx, *claim, *claim.Warranty) })
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Claim submitted successfully.", fiber.Map{
		"claim_external_id": claim.ExternalID,
		"status":            claim.Status.Name,
	})
}

// ClaimHistory returns a claim summary and its status trail.
func ClaimHistory(c *fiber.Ctx) error {
	history, err := services.GetClaimHistory(c.UserContext(), database.Database.Db, c.Params("externalId"))
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Claim history fetched.", history)
}

// Statuses lists the warranty statuses for the public forms.
func Statuses(c *fiber.Ctx) error {
	statuses, err := services.ListWarrantyStatuses(c.UserContext(), database.Database.Db)
	if err != nil {
		return middleware.HandleServiceError(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Warranty statuses fetched.", statuses)
}

func PurchaseSources(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase sources fetched.", models.PurchaseSources)
}
