package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "registrar_portal_backend/internals/features/registrar/feedback/controller"
)

func FeedbackRoutes(r fiber.Router, db *gorm.DB) {
	feedbackController := controller.NewFeedbackController(db)

	r.Post("/feedback", feedbackController.SubmitFeedback)
}
