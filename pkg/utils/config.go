package utils

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// BookingConfig holds the facility policy knobs. OpenTime/CloseTime bound the
// bookable window, CancellationFine is charged when a member's consecutive
// cancellation run reaches CancellationRunThreshold.
type BookingConfig struct {
	OpenTime                 string
	CloseTime                string
	CancellationFine         decimal.Decimal
	CancellationRunThreshold int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("BOOKING_OPEN_TIME", "06:00")
	viper.SetDefault("BOOKING_CLOSE_TIME", "22:00")
	viper.SetDefault("CANCELLATION_FINE", "10.00")
	viper.SetDefault("CANCELLATION_RUN_THRESHOLD", 3)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	fine, err := decimal.NewFromString(viper.GetString("CANCELLATION_FINE"))
	if err != nil {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			OpenTime:                 viper.GetString("BOOKING_OPEN_TIME"),
			CloseTime:                viper.GetString("BOOKING_CLOSE_TIME"),
			CancellationFine:         fine,
			CancellationRunThreshold: viper.GetInt("CANCELLATION_RUN_THRESHOLD"),
		},
	}

	return config, nil
}
