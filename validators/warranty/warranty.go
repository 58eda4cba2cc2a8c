package warrantyValidator

import (
	"mime/multipart"
	"strings"
	"time"

	"warrantyhub/middleware"
	"warrantyhub/validators"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the registration form. Documents come either as multipart
// files (invoice, warranty_card) or as references to already uploaded files.
type RegisterRequest struct {
	CustomerName       string  `json:"customer_name" form:"customer_name" validate:"required,min=2,max=120"`
	Email              string  `json:"email" form:"email" validate:"required,email"`
	Mobile             string  `json:"mobile" form:"mobile" validate:"required,mobile"`
	Address            string  `json:"address" form:"address" validate:"max=500"`
	City               string  `json:"city" form:"city" validate:"max=80"`
	Pincode            string  `json:"pincode" form:"pincode" validate:"omitempty,numeric,max=10"`
	ProductName        string  `json:"product_name" form:"product_name" validate:"max=160"`
	ProductModel       string  `json:"product_model" form:"product_model" validate:"max=120"`
	PurchaseDate       string  `json:"purchase_date" form:"purchase_date" validate:"required,datetime=2006-01-02"`
	PurchasePrice      float64 `json:"purchase_price" form:"purchase_price" validate:"required,gt=0"`
	PurchaseSource     string  `json:"purchase_source" form:"purchase_source" validate:"required,oneof=online_store marketplace retail_store distributor other"`
	InvoiceURL         string  `json:"invoice_url" form:"invoice_url" validate:"omitempty,url"`
	InvoiceFileID      string  `json:"invoice_file_id" form:"invoice_file_id"`
	WarrantyCardURL    string  `json:"warranty_card_url" form:"warranty_card_url" validate:"omitempty,url"`
	WarrantyCardFileID string  `json:"warranty_card_file_id" form:"warranty_card_file_id"`
}

// RegisterPayload is what the register handler receives in c.Locals("validatedWarranty").
type RegisterPayload struct {
	RegisterRequest
	PurchaseDateValue time.Time
	Invoice           *multipart.FileHeader
	WarrantyCard      *multipart.FileHeader
}

// ClaimRequest is the claim form. photo is required, video is optional.
type ClaimRequest struct {
	WarrantyID        string `json:"warranty_id" form:"warranty_id" validate:"required,max=20"`
	DefectDescription string `json:"defect_description" form:"defect_description" validate:"required,max=2000"`
	PhotoURL          string `json:"photo_url" form:"photo_url" validate:"omitempty,url"`
	PhotoFileID       string `json:"photo_file_id" form:"photo_file_id"`
	VideoURL          string `json:"video_url" form:"video_url" validate:"omitempty,url"`
	VideoFileID       string `json:"video_file_id" form:"video_file_id"`
}

// ClaimPayload is what the claim handler receives in c.Locals("validatedClaim").
type ClaimPayload struct {
	ClaimRequest
	Photo *multipart.FileHeader
	Video *multipart.FileHeader
}

// Register validator middleware
func Register() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(RegisterRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.Email = strings.ToLower(strings.TrimSpace(reqData.Email))
		reqData.Mobile = strings.TrimSpace(reqData.Mobile)
		reqData.PurchaseSource = strings.ToLower(strings.TrimSpace(reqData.PurchaseSource))
		reqData.PurchaseDate = strings.TrimSpace(reqData.PurchaseDate)

		errors := validators.Struct(reqData)

		payload := &RegisterPayload{RegisterRequest: *reqData}
		if _, bad := errors["purchase_date"]; !bad {
			payload.PurchaseDateValue, _ = time.Parse("2006-01-02", reqData.PurchaseDate)
			if payload.PurchaseDateValue.After(time.Now()) {
				errors["purchase_date"] = "Purchase date cannot be in the future!"
			}
		}

		var msg string
		if payload.Invoice, msg = validators.FormFile(c, "invoice", validators.DocumentTypes); msg != "" {
			errors["invoice"] = msg
		} else if payload.Invoice == nil && reqData.InvoiceURL == "" {
			errors["invoice"] = "Invoice document is required!"
		}

		if payload.WarrantyCard, msg = validators.FormFile(c, "warranty_card", validators.DocumentTypes); msg != "" {
			errors["warranty_card"] = msg
		} else if payload.WarrantyCard == nil && reqData.WarrantyCardURL == "" {
			errors["warranty_card"] = "Warranty card document is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedWarranty", payload)
		return c.Next()
	}
}

// Claim validator middleware
func Claim() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ClaimRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		reqData.WarrantyID = strings.ToUpper(strings.TrimSpace(reqData.WarrantyID))
		reqData.DefectDescription = strings.TrimSpace(reqData.DefectDescription)

		errors := validators.Struct(reqData)
		payload := &ClaimPayload{ClaimRequest: *reqData}

		var msg string
		if payload.Photo, msg = validators.FormFile(c, "photo", validators.ImageTypes); msg != "" {
			errors["photo"] = msg
		} else if payload.Photo == nil && reqData.PhotoURL == "" {
			errors["photo"] = "A photo of the defect is required!"
		}

		if payload.Video, msg = validators.FormFile(c, "video", validators.VideoTypes); msg != "" {
			errors["video"] = msg
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedClaim", payload)
		return c.Next()
	}
}

// Search validator middleware
func Search() fiber.Handler {
	return func(c *fiber.Ctx) error {
		externalID := strings.ToUpper(strings.TrimSpace(c.Query("external_id")))
		if externalID == "" {
			return middleware.ValidationErrorResponse(c, map[string]string{"external_id": "Warranty ID is required!"})
		}
		c.Locals("externalId", externalID)
		return c.Next()
	}
}

// SearchByEmail validator middleware
func SearchByEmail() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := struct {
			Email string `json:"email" validate:"required,email"`
		}{Email: strings.ToLower(strings.TrimSpace(c.Query("email")))}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}
		c.Locals("email", reqData.Email)
		return c.Next()
	}
}
