package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromoValidate(t *testing.T) {
	tests := []struct {
		name    string
		promo   Promo
		wantErr bool
	}{
		{"valid promo", Promo{Name: "Spring", PromoCode: "SPRING10", RedirectURL: "https://mip.institute/promo"}, false},
		{"missing name", Promo{PromoCode: "SPRING10", RedirectURL: "https://mip.institute/promo"}, true},
		{"missing code", Promo{Name: "Spring", RedirectURL: "https://mip.institute/promo"}, true},
		{"bad url", Promo{Name: "Spring", PromoCode: "SPRING10", RedirectURL: "not a url"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.promo.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
