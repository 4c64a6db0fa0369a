package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

// User is a payer identity. Most rows are created lazily from payment
// webhooks and never authenticate; only admins carry a password hash.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;type:varchar(200);not null" json:"email" validate:"required,email,min=5,max=200"`
	FirstName string    `gorm:"type:varchar(150);default:null" json:"first_name"`
	LastName  string    `gorm:"type:varchar(150);default:null" json:"last_name"`
	Password  string    `gorm:"type:text" json:"-"`
	Role      string    `gorm:"type:varchar(50);default:'user'" json:"role" validate:"oneof=user admin"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	Transactions []Transaction `gorm:"foreignKey:UserID" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(bytes), err
}

// CheckPasswordHash compares the given password with the stored hash.
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// CheckPassword verifies if the provided password matches the user's stored password
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}

// SetPassword hashes and sets a new password for the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hashedPassword
	return nil
}

// IsAdmin reports whether the user may access admin endpoints.
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}
