package models

import "time"

// Transaction statuses as reported by the payment provider. A transaction
// moves Pending -> Authorized -> Completed and never backwards.
const (
	TransactionStatusPending    = "Pending"
	TransactionStatusAuthorized = "Authorized"
	TransactionStatusCompleted  = "Completed"
)

// Transaction is one payment attempt. TransactionID is the provider-supplied
// natural key; a redelivered webhook for the same id must resolve to the
// same row. EmailSent flips false->true at most once, only after a verified
// capture followed by a successful notification.
type Transaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TransactionID string    `gorm:"uniqueIndex;type:varchar(191);not null" json:"transaction_id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	Amount        float64   `gorm:"not null" json:"amount"`
	Status        string    `gorm:"type:varchar(50);not null;default:'Pending'" json:"status"`
	EmailSent     bool      `gorm:"default:false" json:"email_sent"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

// IsSupportedWebhookStatus reports whether a provider-reported status is one
// this service acts on. Declined and other provider statuses are rejected at
// intake.
func IsSupportedWebhookStatus(status string) bool {
	return status == TransactionStatusCompleted || status == TransactionStatusAuthorized
}
