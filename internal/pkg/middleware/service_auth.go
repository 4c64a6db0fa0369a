package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"

	"github.com/mip-institute/mip-backend/internal/pkg/config"
)

// ServiceAuthMiddleware protects server-to-server endpoints (payment
// webhook, mail send, client promos) with Basic auth credentials shared
// with the calling systems.
func ServiceAuthMiddleware(cfg config.AuthConfig) fiber.Handler {
	return basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.ServiceUsername: cfg.ServicePassword,
		},
	})
}
