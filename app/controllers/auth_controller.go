package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/mip-institute/mip-backend/app/repository"
	"github.com/mip-institute/mip-backend/internal/pkg/config"
)

// AuthController issues access tokens for admin users.
type AuthController struct {
	users repository.UserRepository
	cfg   config.AuthConfig
}

// NewAuthController creates the auth controller.
func NewAuthController(users repository.UserRepository, cfg config.AuthConfig) *AuthController {
	return &AuthController{users: users, cfg: cfg}
}

// HandleToken exchanges email+password form credentials for a Bearer JWT.
func (ac *AuthController) HandleToken(c *fiber.Ctx) error {
	email := c.FormValue("username")
	password := c.FormValue("password")
	if email == "" || password == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Incorrect email or password"})
	}

	user, err := ac.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Incorrect email or password"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "User lookup failed"})
	}
	if user.Password == "" || !user.CheckPassword(password) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Incorrect email or password"})
	}

	expires := time.Now().Add(time.Duration(ac.cfg.TokenExpireMinutes) * time.Minute)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.Email,
		"role": user.Role,
		"exp":  expires.Unix(),
	})
	signed, err := token.SignedString([]byte(ac.cfg.JWTSecret))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Token signing failed"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token": signed,
		"token_type":   "bearer",
	})
}
