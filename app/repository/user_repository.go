package repository

import (
	"github.com/mip-institute/mip-backend/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRepository implements the UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository instance
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user in the database
func (r *userRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email address
func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateByEmail resolves an email to a user row, inserting a blank one
// on first sighting. The insert is ON CONFLICT DO NOTHING so a concurrent
// insert for the same email is a benign race: whichever insert loses simply
// re-reads the winner's row.
func (r *userRepository) GetOrCreateByEmail(email, firstName, lastName string) (*models.User, bool, error) {
	var existing models.User
	err := r.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	user := &models.User{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      models.ROLE_USER,
	}
	tx := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(user)
	if tx.Error != nil {
		return nil, false, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.User
	if err := r.db.Where("email = ?", email).First(&stored).Error; err != nil {
		return nil, false, err
	}
	return &stored, created, nil
}

// Update saves changes to an existing user
func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}
