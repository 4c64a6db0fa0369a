package repository

import (
	"github.com/mip-institute/mip-backend/app/models"
	"gorm.io/gorm"
)

// promoRepository implements the PromoRepository interface
type promoRepository struct {
	db *gorm.DB
}

// NewPromoRepository creates a new promo repository instance
func NewPromoRepository(db *gorm.DB) PromoRepository {
	return &promoRepository{db: db}
}

// Create creates a new promo in the database
func (r *promoRepository) Create(promo *models.Promo) error {
	return r.db.Create(promo).Error
}

// GetByID retrieves a promo by its ID
func (r *promoRepository) GetByID(id uint) (*models.Promo, error) {
	var promo models.Promo
	err := r.db.First(&promo, id).Error
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// Update saves changes to an existing promo
func (r *promoRepository) Update(promo *models.Promo) error {
	return r.db.Save(promo).Error
}

// Delete removes a promo by ID
func (r *promoRepository) Delete(id uint) error {
	return r.db.Delete(&models.Promo{}, id).Error
}

// List returns promos newest first, optionally filtered by a search term
// over name and promo_code.
func (r *promoRepository) List(offset, limit int, search string) ([]models.Promo, error) {
	var promos []models.Promo
	query := r.db.Order("created_at DESC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("name LIKE ? OR promo_code LIKE ?", like, like)
	}
	err := query.Offset(offset).Limit(limit).Find(&promos).Error
	return promos, err
}

// Count returns the total number of promos
func (r *promoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Promo{}).Count(&count).Error
	return count, err
}

// GetActive returns all active promos for the public client endpoint
func (r *promoRepository) GetActive() ([]models.Promo, error) {
	var promos []models.Promo
	err := r.db.Where("is_active = ?", true).Find(&promos).Error
	return promos, err
}
