package main

import (
	"strings"

	"stocktrack-backend/internal/admin"
	"stocktrack-backend/internal/alert"
	"stocktrack-backend/internal/audit"
	"stocktrack-backend/internal/auth"
	"stocktrack-backend/internal/config"
	"stocktrack-backend/internal/database"
	"stocktrack-backend/internal/inventory"
	"stocktrack-backend/internal/logger"
	"stocktrack-backend/internal/models"
	"stocktrack-backend/internal/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log := logger.Must(logger.New())
	defer log.Sync()
	zap.ReplaceGlobals(log)

	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Error("unexpected error", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())
	protected.Post("/auth/logout", auth.LogoutHandler())

	// Admin: stores, users, bulk import
	adminRoutes := protected.Group("/admin")
	adminRoutes.Use(auth.RequireMinRole(models.RoleAdmin))

	adminRoutes.Post("/stores", admin.CreateStoreHandler())
	adminRoutes.Get("/stores", admin.ListStoresHandler())
	adminRoutes.Get("/stores/:id", admin.GetStoreHandler())
	adminRoutes.Put("/stores/:id", admin.UpdateStoreHandler())
	adminRoutes.Delete("/stores/:id", admin.DeleteStoreHandler())

	adminRoutes.Post("/users", admin.CreateUserHandler())
	adminRoutes.Get("/users", admin.ListUsersHandler())
	adminRoutes.Put("/users/:id", admin.UpdateUserHandler())

	// Product master
	protected.Get("/products", inventory.ListProductsHandler())
	protected.Post("/products", auth.RequireMinRole(models.RoleManager), inventory.CreateProductHandler())
	protected.Put("/products/:id", auth.RequireMinRole(models.RoleManager), inventory.UpdateProductHandler())
	protected.Delete("/products/:id", auth.RequireMinRole(models.RoleAdmin), inventory.DeleteProductHandler())
	protected.Post("/products/import", auth.RequireMinRole(models.RoleAdmin), inventory.ImportProductsHandler())

	// Inventories
	protected.Get("/inventories", inventory.ListInventoriesHandler())
	protected.Post("/inventories/mutate", auth.RequireMinRole(models.RoleManager), inventory.MutateInventoryHandler())
	protected.Post("/inventories/allocate", auth.RequireMinRole(models.RoleAdmin), inventory.AllocateInventoryHandler())
	protected.Post("/inventories/import", auth.RequireMinRole(models.RoleAdmin), inventory.ImportInventoriesHandler())
	protected.Put("/inventories/:id", auth.RequireMinRole(models.RoleManager), inventory.EditInventoryHandler())
	protected.Delete("/inventories/:id", auth.RequireMinRole(models.RoleManager), inventory.DeleteInventoryHandler())

	// Audit log viewers
	protected.Get("/audit/inventory-logs", audit.ListInventoryLogsHandler())
	protected.Get("/audit/product-logs", audit.ListProductLogsHandler())

	// Periodic low-stock alerting
	sched := scheduler.New(cfg, database.DB, alert.NewSMTPSender(cfg), log)
	if err := sched.Start(); err != nil {
		log.Fatal("could not start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	log.Info("server listening", zap.String("port", cfg.HTTPPort))
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
