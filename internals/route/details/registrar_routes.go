package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	documentRoute "registrar_portal_backend/internals/features/registrar/documents/route"
	feedbackRoute "registrar_portal_backend/internals/features/registrar/feedback/route"
	smsRoute "registrar_portal_backend/internals/features/registrar/notify/route"
	paymentRoute "registrar_portal_backend/internals/features/registrar/payments/route"
	requestRoute "registrar_portal_backend/internals/features/registrar/requests/route"
	studentRoute "registrar_portal_backend/internals/features/registrar/students/route"
)

// RegistrarPublicRoutes: no JWT required.
func RegistrarPublicRoutes(public fiber.Router, db *gorm.DB) {
	documentRoute.DocumentRoutes(public, db)
	paymentRoute.PaymentRoutes(public)
}

// RegistrarStudentRoutes: JWT + student role required.
func RegistrarStudentRoutes(student fiber.Router, db *gorm.DB) {
	requestRoute.RequestRoutes(student, db)
	studentRoute.StudentRoutes(student, db)
	feedbackRoute.FeedbackRoutes(student, db)
}

// RegistrarAdminRoutes: JWT + admin role required.
func RegistrarAdminRoutes(admin fiber.Router, db *gorm.DB) {
	smsRoute.SmsRoutes(admin)
}
