package extension

// Config holds the Ledger extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.ledger" or "ledger" keys).
type Config struct {
	// DisableRoutes prevents HTTP route registration.
	DisableRoutes bool `json:"disable_routes" mapstructure:"disable_routes" yaml:"disable_routes"`

	// DisableMigrate prevents auto-migration on start.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// BasePath is the URL prefix for ledger routes (default: "/ledger").
	BasePath string `json:"base_path" mapstructure:"base_path" yaml:"base_path"`

	// Currency is the ISO 4217 code used for new clients and invoices
	// (default: "nzd").
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// DefaultHourlyRateCents is the fallback hourly rate, in minor currency
	// units, applied to clients created without one (default: 8500).
	DefaultHourlyRateCents int64 `json:"default_hourly_rate_cents" mapstructure:"default_hourly_rate_cents" yaml:"default_hourly_rate_cents"`

	// InvoicePrefix is the literal prefix of generated invoice numbers
	// (default: "INV").
	InvoicePrefix string `json:"invoice_prefix" mapstructure:"invoice_prefix" yaml:"invoice_prefix"`

	// PaymentTermsDays is the number of days between an invoice's issue
	// date and its due date (default: 14).
	PaymentTermsDays int `json:"payment_terms_days" mapstructure:"payment_terms_days" yaml:"payment_terms_days"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Currency:               "nzd",
		DefaultHourlyRateCents: 8500,
		InvoicePrefix:          "INV",
		PaymentTermsDays:       14,
	}
}
