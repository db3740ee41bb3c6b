// Package sheets provides raw HTTP access to the Google Sheets API, covering
// credential management, range reads and writes, and error classification.
package sheets

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// AuthMode selects how requests are authenticated.
type AuthMode int

const (
	// AuthModeServiceAccount signs a JWT and exchanges it for a bearer token.
	// Grants read and write access.
	AuthModeServiceAccount AuthMode = iota
	// AuthModeAPIKey appends a static key as a query parameter. Read-only.
	AuthModeAPIKey
)

func (m AuthMode) String() string {
	if m == AuthModeAPIKey {
		return "api_key"
	}
	return "service_account"
}

// Config holds the configuration for the Sheets client.
type Config struct {
	SpreadsheetID       string
	ServiceAccountEmail string
	PrivateKey          string
	APIKey              string
	BaseURL             string
	TokenURL            string
	Timeout             time.Duration
	RetryAttempts       int
	RetryDelay          time.Duration
	RequestsPerSecond   float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://sheets.googleapis.com/v4/spreadsheets",
		TokenURL:          "https://oauth2.googleapis.com/token",
		Timeout:           30 * time.Second,
		RetryAttempts:     3,
		RetryDelay:        time.Second,
		RequestsPerSecond: 2.0,
	}
}

// LoadFromEnv fills unset fields from direct environment variables.
// Values already present (from a config file) win.
func (c *Config) LoadFromEnv() {
	if c.SpreadsheetID == "" {
		c.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}
	if c.ServiceAccountEmail == "" {
		c.ServiceAccountEmail = os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL")
	}
	if c.PrivateKey == "" {
		c.PrivateKey = os.Getenv("GOOGLE_PRIVATE_KEY")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GOOGLE_SHEETS_API_KEY")
	}
}

// Mode returns the auth mode implied by the configured credentials.
// Service-account credentials win when both are present.
func (c *Config) Mode() AuthMode {
	if c.ServiceAccountEmail != "" && c.PrivateKey != "" {
		return AuthModeServiceAccount
	}
	return AuthModeAPIKey
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return newError(KindConfig, "spreadsheet ID is required")
	}

	hasServiceAccount := c.ServiceAccountEmail != "" && c.PrivateKey != ""
	hasAPIKey := c.APIKey != ""

	if !hasServiceAccount && !hasAPIKey {
		return newError(KindConfig, "no credentials configured: provide a service account email and private key, or an API key")
	}

	if hasServiceAccount {
		if _, err := normalizePrivateKey(c.PrivateKey); err != nil {
			return err
		}
	}

	if c.RetryAttempts < 0 {
		return fmt.Errorf("retry attempts cannot be negative")
	}
	if c.RetryDelay < 0 {
		return fmt.Errorf("retry delay cannot be negative")
	}

	return nil
}

// normalizePrivateKey undoes the mangling that env-var storage applies to
// PEM keys: surrounding quotes and literal backslash-n sequences.
func normalizePrivateKey(raw string) (string, error) {
	key := strings.TrimSpace(raw)
	key = strings.Trim(key, `"'`)
	key = strings.ReplaceAll(key, `\n`, "\n")

	if !strings.Contains(key, "-----BEGIN") || !strings.Contains(key, "-----END") {
		return "", newError(KindAuth, "private key is not PEM encoded (missing BEGIN/END markers)")
	}

	return key, nil
}
