package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// Promo is a promotional code shown to clients. Admins manage the full set;
// the public client endpoint only ever sees active rows.
type Promo struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"type:varchar(200);not null" json:"name" validate:"required,max=200"`
	PromoCode        string    `gorm:"type:varchar(100);not null" json:"promo_code" validate:"required,max=100"`
	RedirectURL      string    `gorm:"type:varchar(500);not null" json:"redirect_url" validate:"required,url,max=500"`
	IsActive         bool      `gorm:"not null;default:true" json:"is_active"`
	ShowStickyBottom bool      `gorm:"not null;default:false" json:"show_sticky_bottom"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Promo) Validate() error {
	v := validator.New()

	return v.Struct(p)
}
