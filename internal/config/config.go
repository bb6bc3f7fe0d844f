package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config carries every runtime setting for the price list service.
type Config struct {
	AppPort        string
	CatalogSource  string // "csv" or "postgres"
	CatalogCSVPath string
	DatabaseDSN    string
	PageSize       int
	AccessPIN      string
	SMTPHost       string
	SMTPPort       int
	SMTPUsername   string
	SMTPPassword   string
	OperatorEmail  string
	LogoURL        string
	RabbitMQURL    string // empty disables quote event publication
	SessionTTL     time.Duration
}

// Load reads configuration from environment variables with defaults
// matching the original deployment. Secrets (SMTP password, access PIN)
// have no defaults and must come from the environment.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("CATALOG_SOURCE", "csv")
	viper.SetDefault("CATALOG_CSV_PATH", "listino_B2B.csv")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("PAGE_SIZE", 50)
	viper.SetDefault("ACCESS_PIN", "")
	viper.SetDefault("SMTP_HOST", "smtp.office365.com")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_USERNAME", "info@el4u.it")
	viper.SetDefault("SMTP_PASSWORD", "")
	viper.SetDefault("OPERATOR_EMAIL", "info@el4u.it")
	viper.SetDefault("LOGO_URL", "https://www.el4u.it/media/logo/stores/3/EL4U_1_4_.png")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SESSION_TTL_MINUTES", 120)
	viper.AutomaticEnv()

	return &Config{
		AppPort:        viper.GetString("APP_PORT"),
		CatalogSource:  viper.GetString("CATALOG_SOURCE"),
		CatalogCSVPath: viper.GetString("CATALOG_CSV_PATH"),
		DatabaseDSN:    viper.GetString("DATABASE_DSN"),
		PageSize:       viper.GetInt("PAGE_SIZE"),
		AccessPIN:      viper.GetString("ACCESS_PIN"),
		SMTPHost:       viper.GetString("SMTP_HOST"),
		SMTPPort:       viper.GetInt("SMTP_PORT"),
		SMTPUsername:   viper.GetString("SMTP_USERNAME"),
		SMTPPassword:   viper.GetString("SMTP_PASSWORD"),
		OperatorEmail:  viper.GetString("OPERATOR_EMAIL"),
		LogoURL:        viper.GetString("LOGO_URL"),
		RabbitMQURL:    viper.GetString("RABBITMQ_URL"),
		SessionTTL:     time.Duration(viper.GetInt("SESSION_TTL_MINUTES")) * time.Minute,
	}
}
