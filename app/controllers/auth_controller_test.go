package controllers

import (
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mip-institute/mip-backend/app/models"
	"github.com/mip-institute/mip-backend/internal/pkg/config"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (r *stubUserRepo) Create(user *models.User) error { return nil }

func (r *stubUserRepo) GetByID(id uint) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) GetOrCreateByEmail(email, firstName, lastName string) (*models.User, bool, error) {
	if u, ok := r.users[email]; ok {
		return u, false, nil
	}
	u := &models.User{ID: uint(len(r.users) + 1), Email: email, Role: models.ROLE_USER}
	r.users[email] = u
	return u, true, nil
}

func (r *stubUserRepo) Update(user *models.User) error { return nil }

func newAuthTestApp(t *testing.T) (*fiber.App, *stubUserRepo) {
	t.Helper()

	admin := &models.User{ID: 1, Email: "admin@example.com", Role: models.ROLE_ADMIN}
	require.NoError(t, admin.SetPassword("correct-horse"))
	repo := &stubUserRepo{users: map[string]*models.User{admin.Email: admin}}

	controller := NewAuthController(repo, config.AuthConfig{
		JWTSecret:          "test-secret",
		TokenExpireMinutes: 60,
	})

	app := fiber.New()
	app.Post("/api/auth/token", controller.HandleToken)
	return app, repo
}

func TestHandleTokenIssuesJWT(t *testing.T) {
	app, _ := newAuthTestApp(t)

	form := url.Values{}
	form.Set("username", "admin@example.com")
	form.Set("password", "correct-horse")

	req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "bearer", body.TokenType)

	token, err := jwt.Parse(body.AccessToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "admin@example.com", claims["sub"])
	assert.Equal(t, models.ROLE_ADMIN, claims["role"])

	exp, ok := claims["exp"].(float64)
	require.True(t, ok)
	assert.Greater(t, int64(exp), time.Now().Unix())
}

func TestHandleTokenRejectsBadCredentials(t *testing.T) {
	app, _ := newAuthTestApp(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin@example.com", "wrong"},
		{"unknown user", "nobody@example.com", "correct-horse"},
		{"empty credentials", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			form.Set("username", tt.username)
			form.Set("password", tt.password)

			req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestHandleTokenRejectsPasswordlessUser(t *testing.T) {
	app, repo := newAuthTestApp(t)
	// Webhook-created payers have no password hash and must not authenticate.
	repo.users["payer@example.com"] = &models.User{ID: 2, Email: "payer@example.com", Role: models.ROLE_USER}

	form := url.Values{}
	form.Set("username", "payer@example.com")
	form.Set("password", "")

	req := httptest.NewRequest("POST", "/api/auth/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
