package validators

import (
	"errors"
	"fmt"
	"mime/multipart"
	"reflect"
	"regexp"
	"strings"

	"warrantyhub/config"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var mobileRx = regexp.MustCompile(`^\+?\d{10,15}$`)

// Validate is the shared struct validator. Field names in messages are the json names.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("mobile", func(fl validator.FieldLevel) bool {
		return mobileRx.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates s and returns a field -> message map, empty when valid.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := Validate.Struct(s)
	if err == nil {
		return errs
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs["body"] = err.Error()
		return errs
	}
	for _, fe := range fieldErrs {
		errs[fe.Field()] = message(fe)
	}
	return errs
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required!", field)
	case "email":
		return "Invalid email!"
	case "mobile":
		return "Invalid mobile number!"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format!", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s!", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must not exceed %s characters!", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters long!", field, fe.Param())
	case "len":
		return fmt.Sprintf("%s must be %s characters long!", field, fe.Param())
	case "numeric":
		return fmt.Sprintf("%s must contain only digits!", field)
	default:
		return fmt.Sprintf("%s is invalid!", field)
	}
}

// IsMultipart reports whether the request carries a multipart form.
func IsMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// File kinds accepted by FormFile.
var (
	DocumentTypes = []string{"image/", "application/pdf"}
	ImageTypes    = []string{"image/"}
	VideoTypes    = []string{"video/"}
)

// FormFile reads an optional multipart file and checks its size and content type.
// It returns nil with no message when the field is absent.
func FormFile(c *fiber.Ctx, field string, allowed []string) (*multipart.FileHeader, string) {
	if !IsMultipart(c) {
		return nil, ""
	}
	file, err := c.FormFile(field)
	if err != nil || file == nil {
		return nil, ""
	}

	maxBytes := int64(config.AppConfig.MaxUploadMB) << 20
	if maxBytes > 0 && file.Size > maxBytes {
		return nil, fmt.Sprintf("%s must be smaller than %d MB!", strings.ReplaceAll(field, "_", " "), config.AppConfig.MaxUploadMB)
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	for _, prefix := range allowed {
		if strings.HasPrefix(contentType, prefix) {
			return file, ""
		}
	}
	return nil, fmt.Sprintf("%s has an unsupported file type!", strings.ReplaceAll(field, "_", " "))
}
