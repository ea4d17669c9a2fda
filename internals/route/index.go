package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/configs"
	authMiddleware "registrar_portal_backend/internals/middlewares/auth"
	routeDetails "registrar_portal_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	// ===================== AUTH BASE =====================
	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db)

	// ===================== GROUPS =====================

	// PUBLIC → no JWT
	log.Println("[INFO] Setting up PUBLIC group...")
	public := app.Group("/api/public")
	routeDetails.RegistrarPublicRoutes(public, db)

	// ===================== PRIVATE (STUDENT) =====================
	log.Println("[INFO] Setting up STUDENT group (Auth + RoleCheck)...")
	student := app.Group("/api/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyStudent(),
	)
	routeDetails.RegistrarStudentRoutes(student, db)

	// ===================== ADMIN =====================
	log.Println("[INFO] Setting up ADMIN group (Auth + RoleCheck)...")
	admin := app.Group("/api/a",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			AllowCookieFallback: true,
		}),
		authMiddleware.OnlyAdmin(),
	)
	routeDetails.RegistrarAdminRoutes(admin, db)

	log.Println("[INFO] All routes registered ✅")
}
