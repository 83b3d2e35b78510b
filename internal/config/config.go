package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/scoopworks/scoopworks/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Deployment DeploymentConfig `validate:"required"`
	Server     ServerConfig     `validate:"required"`
	Postgres   PostgresConfig   `validate:"required"`
	Logging    LoggingConfig    `validate:"required"`
	Billing    BillingConfig    `validate:"required"`
	Cron       CronConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type PostgresConfig struct {
	Host         string `validate:"required"`
	Port         int    `validate:"required"`
	User         string `validate:"required"`
	Password     string
	DBName       string `validate:"required"`
	SSLMode      string `default:"disable"`
	MaxOpenConns int    `default:"10"`
	MaxIdleConns int    `default:"5"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// BillingConfig carries the org-wide billing knobs: invoice numbering
// format, the day of month recurring invoices fall due, and the quote
// surface's initial cleanup fee.
type BillingConfig struct {
	InvoiceNumberPrefix       string `default:"INV"`
	InvoiceNumberSuffixLength int    `default:"5"`
	DueDayOfMonth             int    `default:"15"`
	InitialCleanupFeeCents    int64  `default:"9500"`
	CleanupWaiverDays         int    `default:"30"`
}

// CronConfig holds the shared secret that authenticates scheduled
// invocations. An empty secret disables the cron surface entirely.
type CronConfig struct {
	Secret string
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/scoopworks")

	v.SetEnvPrefix("SCOOPWORKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", types.ModeLocal)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", types.LogLevelInfo)
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.maxopenconns", 10)
	v.SetDefault("postgres.maxidleconns", 5)
	v.SetDefault("billing.invoicenumberprefix", "INV")
	v.SetDefault("billing.invoicenumbersuffixlength", 5)
	v.SetDefault("billing.duedayofmonth", 15)
	v.SetDefault("billing.initialcleanupfeecents", 9500)
	v.SetDefault("billing.cleanupwaiverdays", 30)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Logging:    LoggingConfig{Level: types.LogLevelInfo},
		Billing: BillingConfig{
			InvoiceNumberPrefix:       "INV",
			InvoiceNumberSuffixLength: 5,
			DueDayOfMonth:             15,
			InitialCleanupFeeCents:    9500,
			CleanupWaiverDays:         30,
		},
	}
}

func (c PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"user=%s password=%s dbname=%s host=%s port=%d sslmode=%s",
		c.User,
		c.Password,
		c.DBName,
		c.Host,
		c.Port,
		c.SSLMode,
	)
}
