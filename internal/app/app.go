package app

import (
	authsvc "wealthwise-backend/internal/application/auth"
	pfsvc "wealthwise-backend/internal/application/portfolio"
	pricesvc "wealthwise-backend/internal/application/prices"
	txsvc "wealthwise-backend/internal/application/transactions"
	usersvc "wealthwise-backend/internal/application/users"
	"wealthwise-backend/internal/cache"
	"wealthwise-backend/internal/config"
	adminhandlers "wealthwise-backend/internal/interfaces/handlers/admin"
	authhandlers "wealthwise-backend/internal/interfaces/handlers/auth"
	pfhandlers "wealthwise-backend/internal/interfaces/handlers/portfolio"
	pricehandlers "wealthwise-backend/internal/interfaces/handlers/prices"
	txhandlers "wealthwise-backend/internal/interfaces/handlers/transactions"
	userhandlers "wealthwise-backend/internal/interfaces/handlers/users"
	"wealthwise-backend/internal/middleware"
	"wealthwise-backend/internal/scheduler"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all middleware and route registration.
// The scheduler is returned unstarted; the caller owns its lifecycle.
func CreateApp(cfg *config.Config, db *gorm.DB, cacheSvc *cache.Service) (*fiber.App, *scheduler.Scheduler) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	users := &usersvc.Service{DB: db}
	auth := &authsvc.Service{Users: users, Secret: cfg.JWTSecret, TokenExpiry: cfg.TokenExpiry}
	portfolio := &pfsvc.Service{DB: db}
	transactions := &txsvc.Service{DB: db, Portfolio: portfolio}
	prices := &pricesvc.Service{DB: db}
	sched := &scheduler.Scheduler{Prices: prices, Cache: cacheSvc, Interval: cfg.PriceUpdateInterval}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "WealthWise Portfolio Tracker API",
			"version": "1.0.0",
		})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})

	authHandlers := &authhandlers.Handlers{Auth: auth, Users: users}
	authGroup := app.Group("/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", middleware.RequireAuth(auth), authHandlers.Me)

	userHandlers := &userhandlers.Handlers{Service: users}
	userGroup := app.Group("/users")
	userGroup.Post("/create_user", userHandlers.Create)
	userGroup.Get("/:user_id", userHandlers.Get)

	txHandlers := &txhandlers.Handlers{Service: transactions, Cache: cacheSvc}
	txGroup := app.Group("/transactions")
	txGroup.Post("/", txHandlers.Create)
	txGroup.Get("/", txHandlers.List)

	pfHandlers := &pfhandlers.Handlers{Service: portfolio, Users: users, Cache: cacheSvc}
	app.Get("/portfolio-summary", pfHandlers.Summary)

	priceHandlers := &pricehandlers.Handlers{Service: prices}
	priceGroup := app.Group("/prices")
	priceGroup.Get("/", priceHandlers.List)
	priceGroup.Get("/:symbol", priceHandlers.Get)
	priceGroup.Put("/:symbol", priceHandlers.Update)

	adminHandlers := &adminhandlers.Handlers{Scheduler: sched}
	app.Post("/admin/update-prices", adminHandlers.UpdatePrices)

	return app, sched
}
