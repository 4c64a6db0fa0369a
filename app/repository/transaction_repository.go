package repository

import (
	"github.com/gofiber/fiber/v2/log"
	"github.com/mip-institute/mip-backend/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transactionRepository implements the TransactionRepository interface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository instance
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// GetByTransactionID retrieves a transaction by the provider-supplied id
func (r *transactionRepository) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.db.Where("transaction_id = ?", transactionID).First(&tx).Error
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetOrCreateByTransactionID resolves the provider transaction id to a row,
// inserting one on first sighting. The unique index on transaction_id plus
// ON CONFLICT DO NOTHING makes a duplicate webhook delivery land on the
// existing row instead of raising.
func (r *transactionRepository) GetOrCreateByTransactionID(transactionID string, userID uint, amount float64, status string) (*models.Transaction, bool, error) {
	var existing models.Transaction
	err := r.db.Where("transaction_id = ?", transactionID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	row := &models.Transaction{
		TransactionID: transactionID,
		UserID:        userID,
		Amount:        amount,
		Status:        status,
	}
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "transaction_id"}},
		DoNothing: true,
	}).Create(row)
	if tx.Error != nil {
		return nil, false, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Transaction
	if err := r.db.Where("transaction_id = ?", transactionID).First(&stored).Error; err != nil {
		return nil, false, err
	}
	return &stored, created, nil
}

// SetStatus advances the status of an existing transaction. A miss is a soft
// warning: the caller validated the id upstream, so an unknown id here means
// the row disappeared out-of-band and there is nothing useful to raise.
func (r *transactionRepository) SetStatus(transactionID, status string) error {
	tx := r.db.Model(&models.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Update("status", status)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		log.Warnf("transaction %s not found while setting status %s", transactionID, status)
	}
	return nil
}

// MarkEmailSent flips the email_sent flag with the same soft-miss handling
// as SetStatus.
func (r *transactionRepository) MarkEmailSent(transactionID string) error {
	tx := r.db.Model(&models.Transaction{}).
		Where("transaction_id = ?", transactionID).
		Update("email_sent", true)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		log.Warnf("transaction %s not found while marking email sent", transactionID)
	}
	return nil
}
