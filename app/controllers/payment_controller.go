package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/mip-institute/mip-backend/internal/pkg/payment"
)

// PaymentController receives payment-provider webhooks.
type PaymentController struct {
	intake *payment.Intake
}

// NewPaymentController creates the payment webhook controller.
func NewPaymentController(intake *payment.Intake) *PaymentController {
	return &PaymentController{intake: intake}
}

// HandleNotification is the provider webhook endpoint. The body is
// form-encoded; the response is `{"code": 0}` for acceptance, `{"code": 12}`
// for the amount-mismatch soft reject, HTTP 400 for malformed or
// out-of-scope payloads and HTTP 500 when the confirmation could not be
// scheduled.
func (pc *PaymentController) HandleNotification(c *fiber.Ctx) error {
	notification := payment.Notification{
		TransactionID: c.FormValue("TransactionId"),
		Status:        c.FormValue("Status"),
		Amount:        c.FormValue("Amount"),
		PaymentAmount: c.FormValue("PaymentAmount"),
		Email:         c.FormValue("Email"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	code, err := pc.intake.Handle(ctx, notification)
	if err != nil {
		switch {
		case errors.Is(err, payment.ErrMissingFields):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Missing required fields"})
		case errors.Is(err, payment.ErrUnsupportedStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Unsupported payment status"})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to process payment notification"})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"code": code})
}
