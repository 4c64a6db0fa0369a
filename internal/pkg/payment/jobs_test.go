package payment

import (
	"context"
	"testing"

	"github.com/mip-institute/mip-backend/internal/pkg/config"
	"github.com/mip-institute/mip-backend/internal/pkg/jobqueue"
)

func TestJobHandlerRunsWorkflow(t *testing.T) {
	gateway := &fakeGateway{statusEnvelope: authorizedEnvelope()}
	mailer := &fakeMailer{}
	w, txs, _ := seededWorkflow(gateway, mailer, config.CompletedStrategyPersist)
	handler := NewJobHandler(w)

	payload := jobqueue.PaymentConfirmationPayload{
		TransactionID: "42",
		Amount:        100.00,
		Email:         "a@b.com",
		Subject:       "Access",
		Body:          "Hello",
	}
	job := &jobqueue.Job{
		ID:      "job-1",
		Type:    jobqueue.JobTypePaymentConfirmation,
		Payload: payload.ToMap(),
	}

	if err := handler(context.Background(), job); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if gateway.confirmCalls != 1 || len(mailer.sent) != 1 {
		t.Fatalf("expected workflow to run, confirm=%d mails=%d", gateway.confirmCalls, len(mailer.sent))
	}
	if !txs.rows["42"].EmailSent {
		t.Fatalf("expected email_sent to be true")
	}
}

func TestJobHandlerRejectsBadPayload(t *testing.T) {
	w, _, _ := seededWorkflow(&fakeGateway{statusEnvelope: authorizedEnvelope()}, &fakeMailer{}, config.CompletedStrategyPersist)
	handler := NewJobHandler(w)

	job := &jobqueue.Job{
		ID:      "job-2",
		Type:    jobqueue.JobTypePaymentConfirmation,
		Payload: map[string]interface{}{"amount": "not a number"},
	}

	if err := handler(context.Background(), job); err == nil {
		t.Fatalf("expected error for undecodable payload")
	}
}

func TestQueueSchedulerPayloadShape(t *testing.T) {
	// The scheduler and handler must agree on the payload keys.
	params := ConfirmationParams{
		TransactionID: "42",
		Amount:        100.00,
		Email:         "a@b.com",
		Subject:       "Access",
		Body:          "Hello",
	}
	payload := jobqueue.PaymentConfirmationPayload{
		TransactionID: params.TransactionID,
		Amount:        params.Amount,
		Email:         params.Email,
		Subject:       params.Subject,
		Body:          params.Body,
	}

	restored, err := jobqueue.PaymentConfirmationPayloadFromMap(payload.ToMap())
	if err != nil {
		t.Fatalf("payload did not round trip: %v", err)
	}
	if restored.TransactionID != params.TransactionID || restored.Amount != params.Amount {
		t.Fatalf("payload mismatch: %+v", restored)
	}
}
