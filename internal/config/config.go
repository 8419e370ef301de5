package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Gateway GatewayConfig
	Logger  LoggerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port        int
	Host        string
	MetricsPort int
}

// GatewayConfig holds PagSeguro gateway configuration.
// It is read-only input to every dispatch; nothing in the call chain
// mutates it.
type GatewayConfig struct {
	Email     string // merchant account e-mail
	PublicKey string // transparent-checkout public key
	Sandbox   bool   // route to the sandbox environment
	Debug     bool   // log full request/response detail

	InvoicePrefix string // prepended to order IDs to build gateway references
	SendOnlyTotal bool   // disclose a single total line instead of per-item decomposition
	Currency      string // ISO currency code, BRL unless the host says otherwise

	// Enabled transparent-checkout methods
	AcceptCreditCard   bool
	AcceptBankTransfer bool
	AcceptTicket       bool

	// Host-facing URLs. PublicURL is the store's public base address; it
	// decides whether callback URLs are routable enough to send at all.
	PublicURL string

	// BaseURL overrides the wire endpoint root, used by tests and by the
	// static mirror deployment.
	BaseURL      string
	StaticMirror bool

	// Platform identification sent on every dispatch
	Platform        string
	PlatformVersion string
	ExtraVersion    string
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level       string // debug, info, warn, error
	Development bool
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnvAsInt("SERVER_PORT", 8080),
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			MetricsPort: getEnvAsInt("METRICS_PORT", 9090),
		},
		Gateway: GatewayConfig{
			Email:     getEnv("PAGSEGURO_EMAIL", ""),
			PublicKey: getEnv("PAGSEGURO_PUBLIC_KEY", ""),
			Sandbox:   getEnvAsBool("PAGSEGURO_SANDBOX", false),
			Debug:     getEnvAsBool("PAGSEGURO_DEBUG", false),

			InvoicePrefix: getEnv("PAGSEGURO_INVOICE_PREFIX", "WC-"),
			SendOnlyTotal: getEnvAsBool("PAGSEGURO_SEND_ONLY_TOTAL", false),
			Currency:      getEnv("PAGSEGURO_CURRENCY", "BRL"),

			AcceptCreditCard:   getEnvAsBool("PAGSEGURO_ACCEPT_CREDIT_CARD", true),
			AcceptBankTransfer: getEnvAsBool("PAGSEGURO_ACCEPT_BANK_TRANSFER", true),
			AcceptTicket:       getEnvAsBool("PAGSEGURO_ACCEPT_TICKET", true),

			PublicURL: getEnv("PUBLIC_URL", "http://localhost:8080"),

			BaseURL:      getEnv("PAGSEGURO_BASE_URL", ""),
			StaticMirror: getEnvAsBool("PAGSEGURO_STATIC_MIRROR", false),

			Platform:        getEnv("PLATFORM_NAME", "WooCommerce"),
			PlatformVersion: getEnv("PLATFORM_VERSION", ""),
			ExtraVersion:    getEnv("EXTRA_VERSION", ""),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOG_LEVEL", "info"),
			Development: getEnvAsBool("LOG_DEVELOPMENT", false),
		},
	}

	// Validate required fields
	if cfg.Gateway.Email == "" {
		return nil, fmt.Errorf("PAGSEGURO_EMAIL is required")
	}
	if cfg.Gateway.PublicKey == "" {
		return nil, fmt.Errorf("PAGSEGURO_PUBLIC_KEY is required")
	}

	return cfg, nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
