package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	notifySvc "registrar_portal_backend/internals/features/registrar/notify/service"
	paymentSvc "registrar_portal_backend/internals/features/registrar/payments/service"
	"registrar_portal_backend/internals/features/registrar/requests/dto"
	"registrar_portal_backend/internals/features/registrar/requests/repository"
	"registrar_portal_backend/internals/features/registrar/requests/service"
)

type RequestController struct {
	DB     *gorm.DB
	Submit *service.SubmitService
}

func NewRequestController(db *gorm.DB, gateway paymentSvc.PaymentGateway, sms notifySvc.SmsSender, baseURL, senderName string) *RequestController {
	return &RequestController{
		DB:     db,
		Submit: service.NewSubmitService(repository.NewRequestRepository(db), gateway, sms, baseURL, senderName),
	}
}

// 🟢 SUBMIT REQUEST: validate the cart, persist atomically, then run the
// payment and SMS side effects. The response keeps the flat shape the
// frontend consumes.
func (ctrl *RequestController) SubmitRequest(c *fiber.Ctx) error {
	var body dto.SubmitRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid JSON: " + err.Error(),
		})
	}

	resp, err := ctrl.Submit.Submit(c.UserContext(), &body)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": ve.Message,
			})
		}
		log.Printf("[ERROR] submit failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Error: " + err.Error(),
		})
	}

	return c.JSON(resp)
}
