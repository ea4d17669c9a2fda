package route

import (
	"github.com/gofiber/fiber/v2"

	"registrar_portal_backend/internals/configs"
	controller "registrar_portal_backend/internals/features/registrar/notify/controller"
	service "registrar_portal_backend/internals/features/registrar/notify/service"
	rateLimiter "registrar_portal_backend/internals/middlewares"
)

func SmsRoutes(r fiber.Router) {
	sender := service.NewSemaphoreClient(configs.SemaphoreAPIKey, configs.SemaphoreBaseURL)
	smsController := controller.NewSmsController(sender, configs.SMSSenderName)

	r.Post("/sms/send", rateLimiter.SmsRateLimiter(), smsController.SendSms)
}
