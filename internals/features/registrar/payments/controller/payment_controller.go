package controller

import (
	"github.com/gofiber/fiber/v2"
)

type PaymentController struct{}

func NewPaymentController() *PaymentController {
	return &PaymentController{}
}

// 🟢 PAYMENT RETURN: landing for the gateway's return_url after a redirect
// flow. Confirmation only; the authoritative status lives with the gateway.
func (ctrl *PaymentController) PaymentReturn(c *fiber.Ctx) error {
	requestID := c.Query("request_id")
	paymentIntent := c.Query("payment_intent")

	if requestID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Missing request_id",
		})
	}

	return c.JSON(fiber.Map{
		"status":            "success",
		"message":           "Payment successful! Your document request #" + requestID + " has been paid. We will notify you when your documents are ready for pickup.",
		"request_id":        requestID,
		"payment_reference": paymentIntent,
	})
}
