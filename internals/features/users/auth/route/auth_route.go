package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "registrar_portal_backend/internals/features/users/auth/controller"
	rateLimiter "registrar_portal_backend/internals/middlewares"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// Base: /api/auth
	baseAuth := app.Group("/api/auth")

	// 🔓 Public
	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/logout", authController.Logout)
}
