// Package config provides configuration utilities for the application.
package config

import (
	"os"

	"github.com/Veraticus/sheetboard/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads the Sheets configuration with this precedence:
// 1. Viper configuration (config file or SHEETBOARD_ env vars)
// 2. Direct environment variables (GOOGLE_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	config := sheets.DefaultConfig()

	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetString("sheets.service_account_email"); v != "" {
		config.ServiceAccountEmail = v
	}
	if v := viper.GetString("sheets.private_key"); v != "" {
		config.PrivateKey = v
	}
	if v := viper.GetString("sheets.private_key_path"); v != "" {
		data, err := os.ReadFile(expandPath(v))
		if err != nil {
			return nil, err
		}
		config.PrivateKey = string(data)
	}
	if v := viper.GetString("sheets.api_key"); v != "" {
		config.APIKey = v
	}
	if v := viper.GetFloat64("sheets.requests_per_second"); v > 0 {
		config.RequestsPerSecond = v
	}
	if v := viper.GetInt("sheets.retry_attempts"); v > 0 {
		config.RetryAttempts = v
	}

	// Direct environment variables fill whatever viper left empty.
	config.LoadFromEnv()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home + path[1:]
		}
	}
	return os.ExpandEnv(path)
}
