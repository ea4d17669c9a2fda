package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "registrar_portal_backend/internals/features/registrar/students/controller"
)

func StudentRoutes(r fiber.Router, db *gorm.DB) {
	studentController := controller.NewStudentController(db)

	r.Get("/students/me", studentController.GetMyProfile)
}
