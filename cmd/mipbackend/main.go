package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mip-institute/mip-backend/app/controllers"
	"github.com/mip-institute/mip-backend/app/repository"
	"github.com/mip-institute/mip-backend/internal/pkg/cache"
	"github.com/mip-institute/mip-backend/internal/pkg/config"
	"github.com/mip-institute/mip-backend/internal/pkg/database"
	"github.com/mip-institute/mip-backend/internal/pkg/env"
	"github.com/mip-institute/mip-backend/internal/pkg/events"
	"github.com/mip-institute/mip-backend/internal/pkg/jobqueue"
	"github.com/mip-institute/mip-backend/internal/pkg/mail"
	"github.com/mip-institute/mip-backend/internal/pkg/payment"
	"github.com/mip-institute/mip-backend/internal/pkg/router"
)

func main() {
	app, cfg := NewApplication()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Println("Shutting down...")
		jobqueue.GetManager().Stop()
		_ = app.Shutdown()
	}()

	err := app.Listen(fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port))
	log.Fatal(err)
}

func NewApplication() (*fiber.App, *config.Config) {
	env.SetupEnvFile()
	cfg := config.Load()

	database.SetupDatabase(cfg.Database)
	cache.SetupCache(cfg.Cache)

	if err := database.EnsureAdminUser(database.GetDB(), cfg.Auth); err != nil {
		log.Printf("Warning: could not seed admin user: %v", err)
	}

	// Repositories and collaborators
	factory := repository.NewFactory(database.GetDB())
	users := factory.GetUserRepository()
	txs := factory.GetTransactionRepository()
	promos := factory.GetPromoRepository()

	mailer := mail.NewMailer(cfg.SMTP)
	messages := mail.NewMessages(cfg.Mail, cfg.Frontend)
	gateway := payment.NewClient(cfg.Gateway)
	locks := payment.NewRedisLock(cache.GetClient())

	publisher, err := events.NewPublisher(cfg.Kafka)
	if err != nil {
		log.Printf("Warning: could not connect Kafka producer: %v", err)
	}

	// Background confirmation workflow on the durable job queue
	workflow := payment.NewWorkflow(gateway, mailer, txs, locks, publisher, cfg.Gateway.CompletedStrategy)
	manager := jobqueue.GetManager()
	manager.GetQueue().RegisterHandler(jobqueue.JobTypePaymentConfirmation, payment.NewJobHandler(workflow))
	manager.Start()

	scheduler := payment.NewQueueScheduler(manager.GetQueue())
	intake := payment.NewIntake(users, txs, locks, scheduler, messages)

	// init fiber app
	app := fiber.New(fiber.Config{})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			cfg.Auth.ServiceUsername: cfg.Auth.ServicePassword,
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app, &router.Dependencies{
		Auth:    controllers.NewAuthController(users, cfg.Auth),
		Promo:   controllers.NewPromoController(promos),
		Mail:    controllers.NewMailController(mailer, messages),
		Payment: controllers.NewPaymentController(intake),
		AuthCfg: cfg.Auth,
	})

	return app, cfg
}
