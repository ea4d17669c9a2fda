package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/features/registrar/feedback/dto"
	"registrar_portal_backend/internals/features/registrar/feedback/model"
	helper "registrar_portal_backend/internals/helpers"
	authMw "registrar_portal_backend/internals/middlewares/auth"
)

var validate = validator.New()

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// 🟢 SUBMIT FEEDBACK: save one feedback entry for the logged-in student
func (ctrl *FeedbackController) SubmitFeedback(c *fiber.Ctx) error {
	studentID, ok := authMw.StudentID(c)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "All fields are required, and student must be logged in.")
	}

	var body dto.SubmitFeedbackRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.ValidationError(c, err)
	}

	feedback := model.Feedback{
		StudentID:    studentID,
		Email:        body.Email,
		FeedbackType: body.FeedbackType,
		Message:      body.FeedbackMessage,
	}

	if err := ctrl.DB.WithContext(c.UserContext()).Create(&feedback).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Server error: "+err.Error())
	}

	return helper.Success(c, "Feedback submitted successfully!", fiber.Map{
		"feedback_id": feedback.FeedbackID,
	})
}
