package controller

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"registrar_portal_backend/internals/configs"
	"registrar_portal_backend/internals/constants"
	"registrar_portal_backend/internals/features/users/auth/dto"
	"registrar_portal_backend/internals/features/users/auth/model"
	helper "registrar_portal_backend/internals/helpers"
)

var validate = validator.New()

const accessTokenTTL = 12 * time.Hour

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// 🟢 LOGIN: verify credentials, issue the access token, set the cookie
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var body dto.LoginRequest
	if err := c.BodyParser(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Email and password are required")
	}
	if err := validate.Struct(&body); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Email and password are required")
	}

	var user model.User
	err := ctrl.DB.WithContext(c.UserContext()).
		Where("email = ?", body.Email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error processing login")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(body.Password)) != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid email or password")
	}

	token, err := issueAccessToken(user)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Error processing login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(accessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	welcome := "Welcome Student!"
	redirect := "Student_Dashboard.html"
	if user.Role == constants.RoleAdmin {
		welcome = "Welcome Admin!"
		redirect = "Admin_Dashboard.html"
	}

	return c.JSON(fiber.Map{
		"status":       "success",
		"message":      welcome,
		"role":         user.Role,
		"redirect":     redirect,
		"access_token": token,
	})
}

// 🟢 LOGOUT: drop the cookie
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return helper.Success(c, "Logged out successfully", nil)
}

func issueAccessToken(user model.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.UserID, 10),
		"email": user.Email,
		"role":  user.Role,
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
		"iat":   time.Now().Unix(),
	}
	if user.StudentID != nil {
		claims["student_id"] = *user.StudentID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
