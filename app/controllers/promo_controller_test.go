package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mip-institute/mip-backend/app/models"
)

type stubPromoRepo struct {
	rows   map[uint]*models.Promo
	nextID uint
}

func newStubPromoRepo() *stubPromoRepo {
	return &stubPromoRepo{rows: make(map[uint]*models.Promo)}
}

func (r *stubPromoRepo) Create(promo *models.Promo) error {
	r.nextID++
	promo.ID = r.nextID
	r.rows[promo.ID] = promo
	return nil
}

func (r *stubPromoRepo) GetByID(id uint) (*models.Promo, error) {
	if p, ok := r.rows[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubPromoRepo) Update(promo *models.Promo) error {
	r.rows[promo.ID] = promo
	return nil
}

func (r *stubPromoRepo) Delete(id uint) error {
	delete(r.rows, id)
	return nil
}

func (r *stubPromoRepo) List(offset, limit int, search string) ([]models.Promo, error) {
	out := make([]models.Promo, 0, len(r.rows))
	for _, p := range r.rows {
		if search != "" && !strings.Contains(p.Name, search) && !strings.Contains(p.PromoCode, search) {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubPromoRepo) Count() (int64, error) {
	return int64(len(r.rows)), nil
}

func (r *stubPromoRepo) GetActive() ([]models.Promo, error) {
	out := make([]models.Promo, 0)
	for _, p := range r.rows {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func newPromoTestApp(repo *stubPromoRepo) *fiber.App {
	controller := NewPromoController(repo)

	app := fiber.New()
	admin := app.Group("/api/admin/promo")
	admin.Post("/create", controller.HandleCreate)
	admin.Put("/update/:id", controller.HandleUpdate)
	admin.Delete("/delete/:id", controller.HandleDelete)
	admin.Put("/activate/:id", controller.HandleActivate)
	admin.Get("/promos", controller.HandleList)
	app.Get("/api/clients/promos", controller.HandlePublicList)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, payload interface{}) (int, []byte) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out bytes.Buffer
	_, err = out.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out.Bytes()
}

func TestPromoCreate(t *testing.T) {
	repo := newStubPromoRepo()
	app := newPromoTestApp(repo)

	status, body := doJSON(t, app, "POST", "/api/admin/promo/create", PromoRequest{
		Name:        "Spring",
		PromoCode:   "SPRING10",
		RedirectURL: "https://mip.institute/promo",
		IsActive:    true,
	})
	require.Equal(t, fiber.StatusOK, status, string(body))

	var created models.Promo
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotZero(t, created.ID)
	assert.Equal(t, "SPRING10", created.PromoCode)
	assert.Len(t, repo.rows, 1)
}

func TestPromoCreateValidation(t *testing.T) {
	app := newPromoTestApp(newStubPromoRepo())

	status, _ := doJSON(t, app, "POST", "/api/admin/promo/create", PromoRequest{
		Name:        "Spring",
		PromoCode:   "SPRING10",
		RedirectURL: "not a url",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestPromoUpdate(t *testing.T) {
	repo := newStubPromoRepo()
	repo.Create(&models.Promo{Name: "Old", PromoCode: "OLD", RedirectURL: "https://mip.institute/old", IsActive: true})
	app := newPromoTestApp(repo)

	status, _ := doJSON(t, app, "PUT", "/api/admin/promo/update/1", PromoRequest{
		Name:        "New",
		PromoCode:   "NEW20",
		RedirectURL: "https://mip.institute/new",
	})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "NEW20", repo.rows[1].PromoCode)
	assert.False(t, repo.rows[1].IsActive)
}

func TestPromoUpdateNotFound(t *testing.T) {
	app := newPromoTestApp(newStubPromoRepo())

	status, _ := doJSON(t, app, "PUT", "/api/admin/promo/update/99", PromoRequest{
		Name:        "New",
		PromoCode:   "NEW20",
		RedirectURL: "https://mip.institute/new",
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPromoDelete(t *testing.T) {
	repo := newStubPromoRepo()
	repo.Create(&models.Promo{Name: "Old", PromoCode: "OLD", RedirectURL: "https://mip.institute/old"})
	app := newPromoTestApp(repo)

	status, _ := doJSON(t, app, "DELETE", "/api/admin/promo/delete/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, repo.rows)

	status, _ = doJSON(t, app, "DELETE", "/api/admin/promo/delete/1", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPromoActivateToggles(t *testing.T) {
	repo := newStubPromoRepo()
	repo.Create(&models.Promo{Name: "Old", PromoCode: "OLD", RedirectURL: "https://mip.institute/old", IsActive: true})
	app := newPromoTestApp(repo)

	status, _ := doJSON(t, app, "PUT", "/api/admin/promo/activate/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.False(t, repo.rows[1].IsActive)

	status, _ = doJSON(t, app, "PUT", "/api/admin/promo/activate/1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, repo.rows[1].IsActive)
}

func TestPromoList(t *testing.T) {
	repo := newStubPromoRepo()
	repo.Create(&models.Promo{Name: "Spring", PromoCode: "SPRING10", RedirectURL: "https://mip.institute/spring", IsActive: true})
	repo.Create(&models.Promo{Name: "Winter", PromoCode: "WINTER20", RedirectURL: "https://mip.institute/winter"})
	app := newPromoTestApp(repo)

	status, body := doJSON(t, app, "GET", "/api/admin/promo/promos?page=1&per_page=10", nil)
	require.Equal(t, fiber.StatusOK, status)

	var page PaginationResponse
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, int64(2), page.Count)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.PerPage)
}

func TestPromoPublicListOnlyActive(t *testing.T) {
	repo := newStubPromoRepo()
	repo.Create(&models.Promo{Name: "Spring", PromoCode: "SPRING10", RedirectURL: "https://mip.institute/spring", IsActive: true})
	repo.Create(&models.Promo{Name: "Winter", PromoCode: "WINTER20", RedirectURL: "https://mip.institute/winter"})
	app := newPromoTestApp(repo)

	status, body := doJSON(t, app, "GET", "/api/clients/promos", nil)
	require.Equal(t, fiber.StatusOK, status)

	var promos []models.Promo
	require.NoError(t, json.Unmarshal(body, &promos))
	require.Len(t, promos, 1)
	assert.Equal(t, "SPRING10", promos[0].PromoCode)
}
