package controller

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/features/registrar/requests/dto"
	"registrar_portal_backend/internals/features/registrar/requests/repository"
	authMw "registrar_portal_backend/internals/middlewares/auth"
)

var validate = validator.New()

type HistoryController struct {
	Repo *repository.RequestRepository
}

func NewHistoryController(db *gorm.DB) *HistoryController {
	return &HistoryController{Repo: repository.NewRequestRepository(db)}
}

// 🟢 GET REQUEST HISTORY: flat join rows, one per line item, newest first
func (ctrl *HistoryController) GetRequestHistory(c *fiber.Ctx) error {
	studentID, ok := authMw.StudentID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access. Please login.")
	}

	rows, err := ctrl.Repo.HistoryRows(c.UserContext(), studentID)
	if err != nil {
		log.Printf("[ERROR] history query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load request history: " + err.Error(),
			"data":    []dto.HistoryRow{},
		})
	}

	return c.JSON(fiber.Map{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// 🟢 GET GROUPED HISTORY: same rows folded into request → documents groups
func (ctrl *HistoryController) GetGroupedHistory(c *fiber.Ctx) error {
	studentID, ok := authMw.StudentID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access. Please login.")
	}

	rows, err := ctrl.Repo.HistoryRows(c.UserContext(), studentID)
	if err != nil {
		log.Printf("[ERROR] history query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to load request history: " + err.Error(),
		})
	}

	groups := dto.GroupHistoryRows(rows)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   groups,
		"count":  len(groups),
	})
}

// 🟢 GET REQUEST DETAILS: one request with its line items, ownership enforced
// in the query predicate
func (ctrl *HistoryController) GetRequestDetails(c *fiber.Ctx) error {
	studentID, ok := authMw.StudentID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access. Please login.")
	}

	requestID, err := strconv.ParseInt(c.Params("request_id"), 10, 64)
	if err != nil || requestID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request ID",
		})
	}

	rows, err := ctrl.Repo.DetailRows(c.UserContext(), studentID, requestID)
	if errors.Is(err, repository.ErrRequestNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Request not found or access denied",
		})
	}
	if err != nil {
		log.Printf("[ERROR] details query failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Failed to fetch request details: " + err.Error(),
		})
	}

	groups := dto.GroupHistoryRows(rows)
	return c.JSON(fiber.Map{
		"status": "success",
		"data":   groups[0],
	})
}

// 🟢 CANCEL REQUEST: pending only, inside one transaction
func (ctrl *HistoryController) CancelRequest(c *fiber.Ctx) error {
	studentID, ok := authMw.StudentID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized access. Please login.")
	}

	var body dto.CancelRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request ID",
		})
	}
	if err := validate.Struct(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid request ID",
		})
	}

	err := ctrl.Repo.Cancel(c.UserContext(), studentID, body.RequestID)
	var ce *repository.CancelError
	switch {
	case errors.Is(err, repository.ErrRequestNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Request not found",
		})
	case errors.As(err, &ce):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": ce.Reason,
		})
	case err != nil:
		log.Printf("[ERROR] cancel failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Database error: " + err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Request cancelled successfully",
	})
}
