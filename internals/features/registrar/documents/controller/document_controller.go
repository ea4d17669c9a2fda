package controller

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/features/registrar/documents/model"
	helper "registrar_portal_backend/internals/helpers"
)

type DocumentController struct {
	DB *gorm.DB
}

func NewDocumentController(db *gorm.DB) *DocumentController {
	return &DocumentController{DB: db}
}

// 🟢 LIST DOCUMENTS: the active catalog the request cart is built from
func (ctrl *DocumentController) ListDocuments(c *fiber.Ctx) error {
	var docs []model.Document
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("is_active = ?", true).
		Order("document_id asc").
		Find(&docs).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load document catalog")
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   docs,
		"count":  len(docs),
	})
}
