package routers

import (
	"time"

	"warrantyhub/config"
	"warrantyhub/middleware"
	"warrantyhub/routers/adminRoutes"
	"warrantyhub/routers/warrantyRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewApp builds the fiber app with the shared middleware and every route.
func NewApp(cfg *config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler,
		BodyLimit:    (cfg.MaxUploadMB*3 + 1) << 20,
		ReadTimeout:  2 * time.Minute,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE",
		AllowHeaders:     "Content-Type,Authorization",
		AllowCredentials: cfg.CORSAllowOrigins != "*",
	}))

	if cfg.AppEnv != "test" {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
		}))
	}
	app.Use(middleware.RequestMetrics)

	if cfg.StorageDriver == "local" || cfg.StorageDriver == "" {
		app.Static("/uploads", cfg.UploadDir)
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", nil)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	warrantyRoutes.SetupWarrantyRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	return app
}
