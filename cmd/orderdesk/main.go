package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/rs/zerolog"

	"orderdesk/internal/config"
	"orderdesk/internal/http/handlers"
	applog "orderdesk/internal/log"
	"orderdesk/internal/notify"
	"orderdesk/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := repos.SeedAdmin(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatal(err)
	}

	var mail notify.Notifier
	if cfg.SMTPAddr != "" {
		mail = notify.NewSMTP(cfg.SMTPAddr, cfg.SMTPFrom)
	} else {
		mail = &notify.Log{Logger: zerolog.New(os.Stdout).With().Timestamp().Logger()}
	}

	deps := handlers.NewDeps(db, cfg, mail)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"Errors": "internal error"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.Authenticate(deps.Auth))

	loginLimiter := limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"Errors": "too many attempts, retry later"})
		},
	})
	ingestLimiter := limiter.New(limiter.Config{Max: 10, Expiration: time.Minute})

	// ---------- Users ----------
	user := app.Group("/user")
	user.Post("/register", deps.UserHandler.Register)
	user.Post("/register/confirm", deps.UserHandler.Confirm)
	user.Post("/login", loginLimiter, deps.UserHandler.Login)
	user.Get("/details", handlers.Require(handlers.IsAuthenticated), deps.UserHandler.Details)
	user.Patch("/details", handlers.Require(handlers.IsAuthenticated), deps.UserHandler.UpdateDetails)

	contacts := user.Group("/contacts", handlers.Require(handlers.IsAuthenticated))
	contacts.Get("/", deps.ContactHandler.List)
	contacts.Post("/", deps.ContactHandler.Create)
	contacts.Put("/:id", deps.ContactHandler.Update)
	contacts.Patch("/:id", deps.ContactHandler.Update)
	contacts.Delete("/:id", deps.ContactHandler.Delete)

	// ---------- Catalog ----------
	app.Get("/categories", deps.CatalogHandler.Categories)
	app.Post("/categories", handlers.Require(handlers.IsAdminOrReadOnly), deps.CatalogHandler.CreateCategory)
	app.Delete("/categories/:id", handlers.Require(handlers.IsAdminOrReadOnly), deps.CatalogHandler.DeleteCategory)
	app.Get("/shops", deps.CatalogHandler.Shops)
	app.Delete("/shops/:id", handlers.Require(handlers.IsAdminOrReadOnly), deps.CatalogHandler.DeleteShop)
	app.Get("/products", deps.CatalogHandler.Products)

	// ---------- Partner ----------
	partner := app.Group("/partner", handlers.Require(handlers.IsAuthenticated, handlers.IsPartner))
	partner.Post("/update", ingestLimiter, deps.PartnerHandler.Update)
	partner.Get("/state", deps.PartnerHandler.State)
	partner.Patch("/state", deps.PartnerHandler.SetState)
	partner.Get("/orders", deps.PartnerHandler.Orders)

	// ---------- Cart & Orders ----------
	cart := user.Group("/cart", handlers.Require(handlers.IsAuthenticated))
	cart.Get("/", deps.CartHandler.List)
	cart.Post("/", deps.CartHandler.Add)
	cart.Patch("/", deps.CartHandler.Update)
	cart.Delete("/", deps.CartHandler.Remove)

	order := user.Group("/order", handlers.Require(handlers.IsAuthenticated))
	order.Get("/", deps.OrderHandler.List)
	order.Post("/", deps.OrderHandler.Place)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"Errors": "not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
