package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/configs"
	notifySvc "registrar_portal_backend/internals/features/registrar/notify/service"
	paymentSvc "registrar_portal_backend/internals/features/registrar/payments/service"
	controller "registrar_portal_backend/internals/features/registrar/requests/controller"
)

// RequestRoutes mounts the document-request endpoints on the student group.
func RequestRoutes(r fiber.Router, db *gorm.DB) {
	gateway := paymentSvc.NewPayMongoClient(configs.PayMongoSecretKey, configs.PayMongoBaseURL)
	sms := notifySvc.NewSemaphoreClient(configs.SemaphoreAPIKey, configs.SemaphoreBaseURL)

	requestController := controller.NewRequestController(db, gateway, sms, configs.AppBaseURL, configs.SMSSenderName)
	historyController := controller.NewHistoryController(db)

	requests := r.Group("/requests")
	requests.Post("/", requestController.SubmitRequest)
	requests.Get("/history", historyController.GetRequestHistory)
	requests.Get("/history/grouped", historyController.GetGroupedHistory)
	requests.Get("/:request_id", historyController.GetRequestDetails)
	requests.Post("/cancel", historyController.CancelRequest)
}
