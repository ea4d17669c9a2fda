package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "registrar_portal_backend/internals/features/registrar/documents/controller"
)

func DocumentRoutes(r fiber.Router, db *gorm.DB) {
	documentController := controller.NewDocumentController(db)

	r.Get("/documents", documentController.ListDocuments)
}
