package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"registrar_portal_backend/internals/features/registrar/notify/dto"
	"registrar_portal_backend/internals/features/registrar/notify/service"
	helper "registrar_portal_backend/internals/helpers"
)

var validate = validator.New()

type SmsController struct {
	Sender     service.SmsSender
	SenderName string
}

func NewSmsController(sender service.SmsSender, senderName string) *SmsController {
	return &SmsController{Sender: sender, SenderName: senderName}
}

// 🟢 SEND SMS: one outbound message through the gateway (staff tooling)
func (ctrl *SmsController) SendSms(c *fiber.Ctx) error {
	var body dto.SendSmsRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Invalid JSON: " + err.Error(),
		})
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	senderName := body.SenderName
	if senderName == "" {
		senderName = ctrl.SenderName
	}

	messageID, err := ctrl.Sender.Send(c.UserContext(), body.PhoneNumber, body.Message, senderName)
	if err != nil {
		status := fiber.StatusBadGateway
		if errors.Is(err, helper.ErrInvalidPhone) {
			status = fiber.StatusBadRequest
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"message": "Failed to send SMS: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"message":    "SMS sent successfully",
		"message_id": messageID,
	})
}
