package extension

import (
	"time"

	ledger "github.com/worksite/ledger"
	"github.com/worksite/ledger/plugin"
	"github.com/worksite/ledger/store"
)

// Option configures the Ledger Forge extension.
type Option func(*Extension)

// WithStore sets the store for the ledger engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithLedgerOption passes a ledger.Option through to the underlying engine.
func WithLedgerOption(opt ledger.Option) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, opt)
	}
}

// WithPlugin registers a ledger plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.ledgerOpts = append(e.ledgerOpts, ledger.WithPlugin(p))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithDisableRoutes prevents HTTP route registration.
func WithDisableRoutes() Option {
	return func(e *Extension) { e.config.DisableRoutes = true }
}

// WithDisableMigrate prevents auto-migration on start.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithBasePath sets the URL prefix for ledger routes.
func WithBasePath(path string) Option {
	return func(e *Extension) { e.config.BasePath = path }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// WithCurrency sets the currency used for new clients and invoices.
func WithCurrency(code string) Option {
	return func(e *Extension) { e.config.Currency = code }
}

// WithDefaultHourlyRate sets the fallback hourly rate in minor currency units.
func WithDefaultHourlyRate(cents int64) Option {
	return func(e *Extension) { e.config.DefaultHourlyRateCents = cents }
}

// WithInvoicePrefix sets the literal prefix of generated invoice numbers.
func WithInvoicePrefix(prefix string) Option {
	return func(e *Extension) { e.config.InvoicePrefix = prefix }
}

// WithPaymentTerms sets the interval between issue date and due date.
func WithPaymentTerms(d time.Duration) Option {
	return func(e *Extension) {
		e.config.PaymentTermsDays = int(d / (24 * time.Hour))
	}
}
