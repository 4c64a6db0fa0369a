package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/mip-institute/mip-backend/app/controllers"
	"github.com/mip-institute/mip-backend/internal/pkg/config"
	"github.com/mip-institute/mip-backend/internal/pkg/middleware"
)

// Dependencies carries the constructed controllers and the auth settings
// the route middleware needs.
type Dependencies struct {
	Auth    *controllers.AuthController
	Promo   *controllers.PromoController
	Mail    *controllers.MailController
	Payment *controllers.PaymentController
	AuthCfg config.AuthConfig
}

type ApiRouter struct {
	deps *Dependencies
}

func NewApiRouter(deps *Dependencies) *ApiRouter {
	return &ApiRouter{deps: deps}
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// Admin login
	auth := api.Group("/auth")
	auth.Post("/token", h.deps.Auth.HandleToken)

	// Server-to-server surfaces share Basic auth credentials
	serviceAuth := middleware.ServiceAuthMiddleware(h.deps.AuthCfg)

	transactions := api.Group("/transactions", serviceAuth)
	transactions.Post("/payment-notification", h.deps.Payment.HandleNotification)

	mails := api.Group("/mails", serviceAuth)
	mails.Post("/send", h.deps.Mail.HandleSend)

	clients := api.Group("/clients", serviceAuth)
	clients.Get("/promos", h.deps.Promo.HandlePublicList)

	// Promo administration requires a valid admin JWT
	admin := api.Group("/admin",
		middleware.JWTAuthMiddleware(h.deps.AuthCfg.JWTSecret),
		middleware.AdminRequired(),
	)
	admin.Post("/promo/create", h.deps.Promo.HandleCreate)
	admin.Put("/promo/update/:id", h.deps.Promo.HandleUpdate)
	admin.Delete("/promo/delete/:id", h.deps.Promo.HandleDelete)
	admin.Put("/promo/activate/:id", h.deps.Promo.HandleActivate)
	admin.Get("/promo/promos", h.deps.Promo.HandleList)
}
