package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2/log"

	"github.com/mip-institute/mip-backend/app/models"
	"github.com/mip-institute/mip-backend/app/repository"
)

// Webhook response codes returned in the body. The provider stops
// redelivering a webhook once it sees any well-formed code, which is why an
// amount mismatch is acknowledged with code 12 instead of an HTTP error.
const (
	CodeAccepted       = 0
	CodeAmountMismatch = 12
)

var (
	ErrMissingFields     = errors.New("missing required webhook fields")
	ErrUnsupportedStatus = errors.New("unsupported payment status")
	ErrScheduling        = errors.New("failed to schedule confirmation")
)

// Notification is the parsed webhook payload.
type Notification struct {
	TransactionID string
	Status        string
	Amount        string
	PaymentAmount string
	Email         string
}

// ConfirmationParams is everything the deferred workflow needs to run.
type ConfirmationParams struct {
	TransactionID string
	Amount        float64
	Email         string
	Subject       string
	Body          string
}

// Scheduler hands a confirmation off to background execution.
type Scheduler interface {
	Schedule(params ConfirmationParams) error
}

// MessageBuilder builds the access notification for a payer.
type MessageBuilder interface {
	AccessMessage(email, firstName, lastName string) (subject, body string)
}

// Intake validates inbound payment webhooks, records the transaction
// idempotently and schedules the confirmation workflow.
type Intake struct {
	users     repository.UserRepository
	txs       repository.TransactionRepository
	locks     Locker
	scheduler Scheduler
	messages  MessageBuilder
}

// NewIntake wires the webhook intake service.
func NewIntake(users repository.UserRepository, txs repository.TransactionRepository, locks Locker, scheduler Scheduler, messages MessageBuilder) *Intake {
	return &Intake{
		users:     users,
		txs:       txs,
		locks:     locks,
		scheduler: scheduler,
		messages:  messages,
	}
}

// Handle runs the synchronous intake pipeline and returns the in-body
// response code. Validation failures and scheduling failures come back as
// errors for the controller to map onto HTTP statuses.
func (s *Intake) Handle(ctx context.Context, n Notification) (int, error) {
	transactionID := strings.TrimSpace(n.TransactionID)
	email := strings.TrimSpace(n.Email)
	rawAmount := strings.TrimSpace(n.Amount)

	if transactionID == "" || rawAmount == "" || email == "" {
		log.Error("payment webhook missing transaction_id, amount or email")
		return 0, ErrMissingFields
	}

	amount, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || amount == 0 {
		log.Errorf("payment webhook has unparseable amount %q", rawAmount)
		return 0, ErrMissingFields
	}

	if !models.IsSupportedWebhookStatus(n.Status) {
		log.Errorf("unsupported payment status %q for transaction %s", n.Status, transactionID)
		return 0, ErrUnsupportedStatus
	}

	// Users are created lazily on first sighting of an email; name fields
	// stay blank until the portal fills them in.
	user, _, err := s.users.GetOrCreateByEmail(email, "", "")
	if err != nil {
		return 0, fmt.Errorf("upsert user: %w", err)
	}

	tx, created, err := s.txs.GetOrCreateByTransactionID(transactionID, user.ID, amount, n.Status)
	if err != nil {
		return 0, fmt.Errorf("upsert transaction: %w", err)
	}

	// The transaction is recorded before the amount comparison so repeated
	// deliveries of a mismatched payload stay idempotent.
	paymentAmount, _ := strconv.ParseFloat(strings.TrimSpace(n.PaymentAmount), 64)
	if amount != paymentAmount {
		log.Errorf("payment amount mismatch for transaction %s: Amount: %v, PaymentAmount: %v",
			transactionID, amount, paymentAmount)
		return CodeAmountMismatch, nil
	}

	// Idempotency guard against duplicate webhook delivery.
	if !created && tx.EmailSent {
		log.Infof("transaction %s already processed", transactionID)
		return CodeAccepted, nil
	}

	// Single writer per transaction id: a concurrent delivery that loses
	// this race is acknowledged without scheduling a second workflow.
	acquired, err := s.locks.Acquire(ctx, transactionID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrScheduling, err)
	}
	if !acquired {
		log.Infof("confirmation already in flight for transaction %s", transactionID)
		return CodeAccepted, nil
	}

	subject, body := s.messages.AccessMessage(email, "", "")

	if err := s.scheduler.Schedule(ConfirmationParams{
		TransactionID: transactionID,
		Amount:        amount,
		Email:         email,
		Subject:       subject,
		Body:          body,
	}); err != nil {
		if releaseErr := s.locks.Release(ctx, transactionID); releaseErr != nil {
			log.Errorf("failed to release confirmation lock for %s: %v", transactionID, releaseErr)
		}
		return 0, fmt.Errorf("%w: %v", ErrScheduling, err)
	}

	return CodeAccepted, nil
}
