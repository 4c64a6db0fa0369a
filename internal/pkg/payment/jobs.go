package payment

import (
	"context"

	"github.com/mip-institute/mip-backend/internal/pkg/jobqueue"
)

// QueueScheduler schedules confirmations on the durable Redis job queue.
type QueueScheduler struct {
	queue *jobqueue.Queue
}

// NewQueueScheduler wraps a job queue as a confirmation Scheduler.
func NewQueueScheduler(queue *jobqueue.Queue) *QueueScheduler {
	return &QueueScheduler{queue: queue}
}

// Schedule enqueues a payment confirmation job.
func (s *QueueScheduler) Schedule(params ConfirmationParams) error {
	payload := jobqueue.PaymentConfirmationPayload{
		TransactionID: params.TransactionID,
		Amount:        params.Amount,
		Email:         params.Email,
		Subject:       params.Subject,
		Body:          params.Body,
	}
	_, err := s.queue.EnqueueJob(jobqueue.JobTypePaymentConfirmation, payload.ToMap())
	return err
}

// NewJobHandler adapts the workflow to the job queue handler signature.
// Workflow outcomes are terminal, so the handler only reports an error for
// an undecodable payload.
func NewJobHandler(workflow *Workflow) jobqueue.Handler {
	return func(ctx context.Context, job *jobqueue.Job) error {
		payload, err := jobqueue.PaymentConfirmationPayloadFromMap(job.Payload)
		if err != nil {
			return err
		}

		workflow.Run(ctx, ConfirmationParams{
			TransactionID: payload.TransactionID,
			Amount:        payload.Amount,
			Email:         payload.Email,
			Subject:       payload.Subject,
			Body:          payload.Body,
		})
		return nil
	}
}
