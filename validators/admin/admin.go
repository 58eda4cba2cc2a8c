package adminValidator

import (
	"strings"

	"warrantyhub/middleware"
	"warrantyhub/validators"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type VerifyRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type WarrantyStatusRequest struct {
	StatusID uint `json:"status_id" validate:"required"`
}

// ClaimStatusRequest keeps admin_notes as a pointer: absent leaves notes alone, "" clears them.
type ClaimStatusRequest struct {
	StatusID   uint    `json:"status_id" validate:"required"`
	AdminNotes *string `json:"admin_notes" validate:"omitempty,max=2000"`
}

// WarrantyDetailsRequest edits registration details; absent fields stay unchanged.
type WarrantyDetailsRequest struct {
	CustomerName *string `json:"customer_name" validate:"omitempty,min=2,max=120"`
	Email        *string `json:"email" validate:"omitempty,email"`
	Mobile       *string `json:"mobile" validate:"omitempty,mobile"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
	City         *string `json:"city" validate:"omitempty,max=80"`
	Pincode      *string `json:"pincode" validate:"omitempty,numeric,max=10"`
	ProductName  *string `json:"product_name" validate:"omitempty,max=160"`
	ProductModel *string `json:"product_model" validate:"omitempty,max=120"`
}

type StatusRowRequest struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
}

type CreateAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=2,max=120"`
}

type SetActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// ListQuery is shared by the warranty and claim lists.
type ListQuery struct {
	Page     int    `query:"page" json:"page" validate:"omitempty,min=1"`
	Limit    int    `query:"limit" json:"limit" validate:"omitempty,min=1,max=100"`
	StatusID uint   `query:"status_id" json:"status_id"`
	Search   string `query:"search" json:"search" validate:"max=100"`
	SortBy   string `query:"sort_by" json:"sort_by"`
	Order    string `query:"order" json:"order" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// body parses the JSON body into T, validates it and stores it under key.
func body[T any](key string, normalize func(*T)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if normalize != nil {
			normalize(reqData)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals(key, reqData)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return body("validatedLogin", func(r *LoginRequest) {
		r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	})
}

func VerifyLogin() fiber.Handler {
	return body("validatedLogin", func(r *VerifyRequest) {
		r.Email = strings.ToLower(strings.TrimSpace(r.Email))
		r.OTP = strings.TrimSpace(r.OTP)
	})
}

func UpdateWarrantyStatus() fiber.Handler {
	return body[WarrantyStatusRequest]("validatedStatus", nil)
}

func UpdateWarrantyDetails() fiber.Handler {
	return body[WarrantyDetailsRequest]("validatedDetails", nil)
}

func UpdateClaimStatus() fiber.Handler {
	return body[ClaimStatusRequest]("validatedStatus", nil)
}

func StatusRow() fiber.Handler {
	return body("validatedStatusRow", func(r *StatusRowRequest) {
		r.Name = strings.ToLower(strings.TrimSpace(r.Name))
		r.Description = strings.TrimSpace(r.Description)
	})
}

func CreateAdmin() fiber.Handler {
	return body("validatedAdmin", func(r *CreateAdminRequest) {
		r.Email = strings.ToLower(strings.TrimSpace(r.Email))
		r.Name = strings.TrimSpace(r.Name)
	})
}

func SetActive() fiber.Handler {
	return body[SetActiveRequest]("validatedActive", nil)
}

// List validator middleware
func List() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ListQuery)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		reqData.SortBy = strings.ToLower(strings.TrimSpace(reqData.SortBy))
		reqData.Order = strings.ToLower(strings.TrimSpace(reqData.Order))

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedQuery", reqData)
		return c.Next()
	}
}

// IDParam rejects a non-numeric or zero :id route parameter.
func IDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"id": "Invalid id!"})
		}
		c.Locals("id", uint(id))
		return c.Next()
	}
}
