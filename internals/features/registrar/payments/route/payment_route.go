package route

import (
	"github.com/gofiber/fiber/v2"

	controller "registrar_portal_backend/internals/features/registrar/payments/controller"
)

func PaymentRoutes(r fiber.Router) {
	paymentController := controller.NewPaymentController()

	// Landing endpoint PayMongo redirects the payer back to.
	r.Get("/payments/return", paymentController.PaymentReturn)
}
