package repository

import (
	"github.com/mip-institute/mip-backend/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	// GetOrCreateByEmail looks a user up by email and creates a blank row
	// when absent. The bool reports whether a new row was inserted; a lost
	// insert race resolves to the concurrently created row.
	GetOrCreateByEmail(email, firstName, lastName string) (*models.User, bool, error)
	Update(user *models.User) error
}

// TransactionRepository defines the interface for payment transaction
// persistence. All mutators commit the single row they touch.
type TransactionRepository interface {
	GetByTransactionID(transactionID string) (*models.Transaction, error)
	// GetOrCreateByTransactionID resolves the provider transaction id to a
	// row, inserting one on first sighting. The bool reports creation.
	GetOrCreateByTransactionID(transactionID string, userID uint, amount float64, status string) (*models.Transaction, bool, error)
	// SetStatus advances the status of an existing transaction. An unknown
	// transaction id is logged as a warning, not returned as an error.
	SetStatus(transactionID, status string) error
	// MarkEmailSent flips the email_sent flag. Same soft-miss handling as
	// SetStatus.
	MarkEmailSent(transactionID string) error
}

// PromoRepository defines the interface for promo administration.
type PromoRepository interface {
	Create(promo *models.Promo) error
	GetByID(id uint) (*models.Promo, error)
	Update(promo *models.Promo) error
	Delete(id uint) error
	List(offset, limit int, search string) ([]models.Promo, error)
	Count() (int64, error)
	GetActive() ([]models.Promo, error)
}

// Repositories bundles all repository implementations
type Repositories struct {
	User        UserRepository
	Transaction TransactionRepository
	Promo       PromoRepository
}
