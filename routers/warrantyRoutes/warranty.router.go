package warrantyRoutes

import (
	warrantyController "warrantyhub/controllers/warranty"
	warrantyValidator "warrantyhub/validators/warranty"

	"github.com/gofiber/fiber/v2"
)

func SetupWarrantyRoutes(app *fiber.App) {
	warrantyGroup := app.Group("/warranty")

	warrantyGroup.Post("/register", warrantyValidator.Register(), warrantyController.Register)
	warrantyGroup.Get("/search", warrantyValidator.Search(), warrantyController.Search)
	warrantyGroup.Get("/search-by-email", warrantyValidator.SearchByEmail(), warrantyController.SearchByEmail)
	warrantyGroup.Post("/claim", warrantyValidator.Claim(), warrantyController.CreateClaim)
	warrantyGroup.Get("/statuses", warrantyController.Statuses)
	warrantyGroup.Get("/purchase-sources", warrantyController.PurchaseSources)
}
