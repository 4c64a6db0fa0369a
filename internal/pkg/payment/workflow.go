package payment

import (
	"context"

	"github.com/gofiber/fiber/v2/log"

	"github.com/mip-institute/mip-backend/app/models"
	"github.com/mip-institute/mip-backend/app/repository"
	"github.com/mip-institute/mip-backend/internal/pkg/config"
	"github.com/mip-institute/mip-backend/internal/pkg/events"
)

// Mailer sends the access notification.
type Mailer interface {
	Send(to, subject, body string) error
}

// Workflow is the deferred confirmation task. It re-verifies the
// transaction with the gateway, captures authorized holds, notifies the
// payer and persists the outcome. Every failure is terminal for the
// invocation: a redelivered webhook is the only retry path, and the
// email_sent short-circuit at intake keeps that safe.
type Workflow struct {
	gateway           Gateway
	mailer            Mailer
	txs               repository.TransactionRepository
	locks             Locker
	publisher         *events.Publisher
	completedStrategy string
}

// NewWorkflow wires the confirmation workflow.
func NewWorkflow(gateway Gateway, mailer Mailer, txs repository.TransactionRepository, locks Locker, publisher *events.Publisher, completedStrategy string) *Workflow {
	if completedStrategy == "" {
		completedStrategy = config.CompletedStrategyPersist
	}
	return &Workflow{
		gateway:           gateway,
		mailer:            mailer,
		txs:               txs,
		locks:             locks,
		publisher:         publisher,
		completedStrategy: completedStrategy,
	}
}

// Run executes the confirmation state machine. Outcomes are persisted or
// logged, never returned: the scheduler that ran this has no caller to
// report to.
func (w *Workflow) Run(ctx context.Context, p ConfirmationParams) {
	defer func() {
		if err := w.locks.Release(ctx, p.TransactionID); err != nil {
			log.Errorf("failed to release confirmation lock for %s: %v", p.TransactionID, err)
		}
	}()

	status, err := w.gateway.GetStatus(ctx, p.TransactionID)
	if err != nil {
		log.Errorf("transaction %s status fetch failed: %v", p.TransactionID, err)
		return
	}

	switch status.Model.Status {
	case models.TransactionStatusAuthorized:
		w.confirmAndNotify(ctx, p)
	case models.TransactionStatusCompleted:
		w.handleCompleted(ctx, p)
	default:
		log.Infof("transaction %s is not authorized yet, current status: %s", p.TransactionID, status.Model.Status)
	}
}

// confirmAndNotify captures the hold with the intake-validated amount and
// marks email_sent only after the notification actually went out.
func (w *Workflow) confirmAndNotify(ctx context.Context, p ConfirmationParams) {
	if _, err := w.gateway.Confirm(ctx, p.TransactionID, p.Amount); err != nil {
		log.Errorf("transaction %s was NOT confirmed: %v", p.TransactionID, err)
		return
	}
	log.Infof("transaction %s confirmed", p.TransactionID)

	if err := w.mailer.Send(p.Email, p.Subject, p.Body); err != nil {
		log.Warnf("access email for transaction %s was not sent: %v", p.TransactionID, err)
		return
	}
	log.Infof("access email sent for transaction %s", p.TransactionID)

	if err := w.txs.MarkEmailSent(p.TransactionID); err != nil {
		log.Errorf("failed to mark email sent for transaction %s: %v", p.TransactionID, err)
		return
	}

	w.publisher.Publish(events.PaymentEvent{
		EventType:     events.EventPaymentConfirmed,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Email:         p.Email,
	})
}

// handleCompleted persists the final status. The receipt strategy
// additionally issues a fiscal receipt and sends the access email; the
// default persist strategy records the completion silently.
func (w *Workflow) handleCompleted(ctx context.Context, p ConfirmationParams) {
	if w.completedStrategy == config.CompletedStrategyReceipt {
		if _, err := w.gateway.IssueReceipt(ctx, p.TransactionID, p.Amount, p.Email); err != nil {
			log.Errorf("receipt for transaction %s was NOT issued: %v", p.TransactionID, err)
			return
		}
		if err := w.mailer.Send(p.Email, p.Subject, p.Body); err != nil {
			log.Warnf("access email for transaction %s was not sent: %v", p.TransactionID, err)
		} else if err := w.txs.MarkEmailSent(p.TransactionID); err != nil {
			log.Errorf("failed to mark email sent for transaction %s: %v", p.TransactionID, err)
		}
	}

	log.Infof("transaction %s status is: Completed", p.TransactionID)
	if err := w.txs.SetStatus(p.TransactionID, models.TransactionStatusCompleted); err != nil {
		log.Errorf("failed to persist completed status for transaction %s: %v", p.TransactionID, err)
		return
	}

	w.publisher.Publish(events.PaymentEvent{
		EventType:     events.EventPaymentCompleted,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		Email:         p.Email,
	})
}
