package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/mip-institute/mip-backend/app/models"
	"github.com/mip-institute/mip-backend/app/repository"
)

// PromoRequest is the admin create/update payload.
type PromoRequest struct {
	Name             string `json:"name" validate:"required,max=200"`
	PromoCode        string `json:"promo_code" validate:"required,max=100"`
	RedirectURL      string `json:"redirect_url" validate:"required,url,max=500"`
	IsActive         bool   `json:"is_active"`
	ShowStickyBottom bool   `json:"show_sticky_bottom"`
}

// PaginationResponse wraps a paged promo listing.
type PaginationResponse struct {
	Items   []models.Promo `json:"items"`
	Count   int64          `json:"count"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// PromoController serves promo administration and the public promo list.
type PromoController struct {
	promos repository.PromoRepository
}

// NewPromoController creates the promo controller.
func NewPromoController(promos repository.PromoRepository) *PromoController {
	return &PromoController{promos: promos}
}

// HandleCreate creates a promo.
func (pc *PromoController) HandleCreate(c *fiber.Ctx) error {
	var req PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	promo := &models.Promo{
		Name:             req.Name,
		PromoCode:        req.PromoCode,
		RedirectURL:      req.RedirectURL,
		IsActive:         req.IsActive,
		ShowStickyBottom: req.ShowStickyBottom,
	}
	if err := promo.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := pc.promos.Create(promo); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to create promo"})
	}
	return c.Status(fiber.StatusOK).JSON(promo)
}

// HandleUpdate replaces a promo's fields.
func (pc *PromoController) HandleUpdate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid promo id"})
	}

	var req PromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid request body"})
	}

	promo, err := pc.promos.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Promo not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Promo lookup failed"})
	}

	promo.Name = req.Name
	promo.PromoCode = req.PromoCode
	promo.RedirectURL = req.RedirectURL
	promo.IsActive = req.IsActive
	promo.ShowStickyBottom = req.ShowStickyBottom
	if err := promo.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": err.Error()})
	}
	if err := pc.promos.Update(promo); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update promo"})
	}
	return c.Status(fiber.StatusOK).JSON(promo)
}

// HandleDelete removes a promo.
func (pc *PromoController) HandleDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid promo id"})
	}

	if _, err := pc.promos.GetByID(uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Promo not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Promo lookup failed"})
	}
	if err := pc.promos.Delete(uint(id)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to delete promo"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleActivate toggles a promo's active flag.
func (pc *PromoController) HandleActivate(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": "Invalid promo id"})
	}

	promo, err := pc.promos.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Promo not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Promo lookup failed"})
	}

	promo.IsActive = !promo.IsActive
	if err := pc.promos.Update(promo); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to update promo"})
	}
	return c.SendStatus(fiber.StatusOK)
}

// HandleList returns a paginated promo listing for admins.
func (pc *PromoController) HandleList(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	perPage := c.QueryInt("per_page", 10)
	if perPage < 1 {
		perPage = 10
	}
	search := c.Query("search")

	promos, err := pc.promos.List((page-1)*perPage, perPage, search)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to list promos"})
	}
	count, err := pc.promos.Count()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count promos"})
	}

	return c.Status(fiber.StatusOK).JSON(PaginationResponse{
		Items:   promos,
		Count:   count,
		Page:    page,
		PerPage: perPage,
	})
}

// HandlePublicList returns active promos for client systems.
func (pc *PromoController) HandlePublicList(c *fiber.Ctx) error {
	promos, err := pc.promos.GetActive()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to list promos"})
	}
	return c.Status(fiber.StatusOK).JSON(promos)
}
