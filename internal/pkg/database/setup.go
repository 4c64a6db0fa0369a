package database

import (
	"log"
	"time"

	"github.com/mip-institute/mip-backend/app/models"
	"github.com/mip-institute/mip-backend/internal/pkg/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const maxRetries = 5
const retryDelay = 5 * time.Second

var DB *gorm.DB

// SetupDatabase connects to MySQL with retries and migrates the schema.
func SetupDatabase(cfg config.DatabaseConfig) {
	var err error

	for i := 0; i < maxRetries; i++ {
		DB, err = gorm.Open(mysql.New(mysql.Config{
			DSN:                       cfg.DSN(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		}), &gorm.Config{})
		if err == nil {
			DB.AutoMigrate(
				&models.User{},
				&models.Transaction{},
				&models.Promo{},
			)

			return
		}

		log.Printf("Failed to connect to database (try %d/%d): %v", i+1, maxRetries, err)
		if i < maxRetries-1 {
			log.Printf("Retrying in %v...", retryDelay)
			time.Sleep(retryDelay)
		}
	}

	if err != nil {
		panic(err)
	}
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// EnsureAdminUser seeds the configured admin account if it does not exist
// yet. Runs at startup so the token endpoint always has a valid login.
func EnsureAdminUser(db *gorm.DB, cfg config.AuthConfig) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var existing models.User
	err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	admin := &models.User{
		Email: cfg.AdminEmail,
		Role:  models.ROLE_ADMIN,
	}
	if err := admin.SetPassword(cfg.AdminPassword); err != nil {
		return err
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	log.Printf("Seeded admin user %s", cfg.AdminEmail)
	return nil
}
