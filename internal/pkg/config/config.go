package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mip-institute/mip-backend/internal/pkg/env"
)

// Completed-branch strategies for the confirmation workflow. The persist
// strategy only records the final status; the receipt strategy additionally
// issues a fiscal receipt and sends the access email.
const (
	CompletedStrategyPersist = "persist"
	CompletedStrategyReceipt = "receipt"
)

type AppConfig struct {
	Host string
	Port string
}

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

type CacheConfig struct {
	Host     string
	Port     string
	Password string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Sender   string
}

type GatewayConfig struct {
	PublicID          string
	APISecret         string
	StatusURL         string
	ConfirmURL        string
	ReceiptURL        string
	INN               string
	CompletedStrategy string
}

type AuthConfig struct {
	JWTSecret          string
	TokenExpireMinutes int
	AdminEmail         string
	AdminPassword      string
	ServiceUsername    string
	ServicePassword    string
}

type MailConfig struct {
	HREmail   string
	InfoEmail string
}

type FrontendConfig struct {
	UsersLoginURL string
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Config carries every runtime setting. It is built once at process start
// and handed to each collaborator's constructor instead of being read from
// globals inside them.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Cache    CacheConfig
	SMTP     SMTPConfig
	Gateway  GatewayConfig
	Auth     AuthConfig
	Mail     MailConfig
	Frontend FrontendConfig
	Kafka    KafkaConfig
}

// Load builds the config from the environment (env.SetupEnvFile must have
// run first when a .env file is used).
func Load() *Config {
	return &Config{
		App: AppConfig{
			Host: env.GetEnv("APP_HOST", "localhost"),
			Port: env.GetEnv("APP_PORT", "4000"),
		},
		Database: DatabaseConfig{
			User:     env.GetEnv("DB_USER", "mip"),
			Password: env.GetEnv("DB_PASSWORD", ""),
			Host:     env.GetEnv("DB_HOST", "127.0.0.1"),
			Port:     env.GetEnv("DB_PORT", "3306"),
			Name:     env.GetEnv("DB_NAME", "mip_db"),
		},
		Cache: CacheConfig{
			Host:     env.GetEnv("CACHE_HOST", "localhost"),
			Port:     env.GetEnv("CACHE_PORT", "6379"),
			Password: env.GetEnv("CACHE_PASSWORD", ""),
		},
		SMTP: SMTPConfig{
			Host:     env.GetEnv("SMTP_HOST", "smtp.yandex.ru"),
			Port:     env.GetEnv("SMTP_PORT", "587"),
			Username: env.GetEnv("SMTP_USERNAME", "notify@mip.institute"),
			Password: env.GetEnv("SMTP_PASSWORD", ""),
			Sender:   env.GetEnv("SMTP_SENDER", ""),
		},
		Gateway: GatewayConfig{
			PublicID:          env.GetEnv("CLOUDPAYMENTS_PUBLIC_ID", ""),
			APISecret:         env.GetEnv("CLOUDPAYMENTS_API_SECRET", ""),
			StatusURL:         env.GetEnv("CLOUDPAYMENTS_STATUS_URL", "https://api.cloudpayments.ru/payments/get"),
			ConfirmURL:        env.GetEnv("CLOUDPAYMENTS_CONFIRM_URL", "https://api.cloudpayments.ru/payments/confirm"),
			ReceiptURL:        env.GetEnv("CLOUDPAYMENTS_RECEIPT_URL", "https://api.cloudpayments.ru/kkt/receipt"),
			INN:               env.GetEnv("CLOUDPAYMENTS_MIP_INN", ""),
			CompletedStrategy: env.GetEnv("PAYMENT_COMPLETED_STRATEGY", CompletedStrategyPersist),
		},
		Auth: AuthConfig{
			JWTSecret:          env.GetEnv("JWT_SECRET", ""),
			TokenExpireMinutes: getEnvInt("JWT_EXPIRE_MINUTES", 60),
			AdminEmail:         env.GetEnv("ADMIN_EMAIL", "developers@mip.institute"),
			AdminPassword:      env.GetEnv("ADMIN_PASSWORD", ""),
			ServiceUsername:    env.GetEnv("SERVICE_AUTH_USERNAME", ""),
			ServicePassword:    env.GetEnv("SERVICE_AUTH_PASSWORD", ""),
		},
		Mail: MailConfig{
			HREmail:   env.GetEnv("HR_EMAIL", "hr@mip.institute"),
			InfoEmail: env.GetEnv("INFO_EMAIL", "info@mip.institute"),
		},
		Frontend: FrontendConfig{
			UsersLoginURL: env.GetEnv("USERS_LOGIN_URL", "https://lms.mip.institute/local/ilogin/rlogin.php"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(env.GetEnv("KAFKA_BROKERS", "")),
			Topic:   env.GetEnv("KAFKA_PAYMENT_TOPIC", "payment.events"),
		},
	}
}

// DSN returns the MySQL data source name used by GORM.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// Addr returns the Redis address in host:port form.
func (c CacheConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnvInt(key string, def int) int {
	raw := env.GetEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
