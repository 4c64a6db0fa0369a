package controllers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/mip-institute/mip-backend/internal/pkg/mail"
)

// EmailRequest is the contact-form payload routed to an internal mailbox.
type EmailRequest struct {
	MailType string `json:"mail_type" validate:"required,oneof=hr info"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"max=50"`
	Message  string `json:"message" validate:"max=5000"`
}

// MailController serves the server-to-server contact mail endpoint.
type MailController struct {
	mailer   *mail.Mailer
	messages *mail.Messages
}

// NewMailController creates the mail controller.
func NewMailController(mailer *mail.Mailer, messages *mail.Messages) *MailController {
	return &MailController{mailer: mailer, messages: messages}
}

// HandleSend routes a contact-form submission to the HR or info mailbox.
func (mc *MailController) HandleSend(c *fiber.Ctx) error {
	var req EmailRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}
	if err := validator.New().Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}

	recipient, subject, body, err := mc.messages.ContactMessage(req.MailType, req.Email, req.Name, req.Phone, req.Message)
	if err != nil {
		if errors.Is(err, mail.ErrInvalidMailType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to build email"})
	}

	if err := mc.mailer.Send(recipient, subject, body); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to send email"})
	}

	return c.SendString("Email sent successfully")
}
