package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/features/registrar/students/model"
	helper "registrar_portal_backend/internals/helpers"
	authMw "registrar_portal_backend/internals/middlewares/auth"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

// 🟢 GET MY PROFILE: the logged-in student's record, shaped for the dashboard
func (ctrl *StudentController) GetMyProfile(c *fiber.Ctx) error {
	studentID, ok := authMw.StudentID(c)
	if !ok {
		return helper.Error(c, fiber.StatusUnauthorized, "Student ID missing in session")
	}

	var student model.Student
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("student_id = ?", studentID).
		First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusNotFound, "Student not found")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load student data: "+err.Error())
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data": fiber.Map{
			"student_id":    student.StudentID,
			"full_name":     student.FullName(),
			"first_name":    student.FirstName,
			"middle_name":   student.MiddleName,
			"last_name":     student.LastName,
			"email":         student.Email,
			"contact_no":    student.ContactNo,
			"address":       student.Address,
			"grade_level":   student.GradeLevel,
			"grade_display": gradeDisplay(student.GradeLevel),
			"section":       student.Section,
			"school_year":   student.SchoolYear,
		},
	})
}

func gradeDisplay(level string) string {
	level = strings.TrimSpace(level)
	if level == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(level), "grade") {
		return level
	}
	return "Grade " + level
}
