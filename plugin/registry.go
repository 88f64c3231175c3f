package plugin

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"sync"
	"time"
)

// Registry manages all registered plugins and provides efficient dispatch.
// It uses type-cached discovery for O(1) dispatch performance.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger

	// Type-cached plugin lists for efficient dispatch
	onInit            []OnInit
	onShutdown        []OnShutdown
	onClientCreated   []OnClientCreated
	onClientUpdated   []OnClientUpdated
	onClientDeleted   []OnClientDeleted
	onProjectCreated  []OnProjectCreated
	onProjectUpdated  []OnProjectUpdated
	onProjectDeleted  []OnProjectDeleted
	onEntryLogged     []OnEntryLogged
	onEntryUpdated    []OnEntryUpdated
	onEntryDeleted    []OnEntryDeleted
	onEntriesBilled   []OnEntriesBilled
	onEntriesReleased []OnEntriesReleased
	onInvoiceCreated  []OnInvoiceCreated
	onInvoiceSent     []OnInvoiceSent
	onInvoicePaid     []OnInvoicePaid
	onInvoiceDeleted  []OnInvoiceDeleted
	taxCalculators    []TaxCalculator
	renderers         map[string]DocumentRenderer
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:    slog.Default(),
		renderers: make(map[string]DocumentRenderer),
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// Register adds a plugin to the registry and caches its interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Check for duplicate
	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	// Type-switch to cache interfaces
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
	}
	if v, ok := p.(OnClientCreated); ok {
		r.onClientCreated = append(r.onClientCreated, v)
	}
	if v, ok := p.(OnClientUpdated); ok {
		r.onClientUpdated = append(r.onClientUpdated, v)
	}
	if v, ok := p.(OnClientDeleted); ok {
		r.onClientDeleted = append(r.onClientDeleted, v)
	}
	if v, ok := p.(OnProjectCreated); ok {
		r.onProjectCreated = append(r.onProjectCreated, v)
	}
	if v, ok := p.(OnProjectUpdated); ok {
		r.onProjectUpdated = append(r.onProjectUpdated, v)
	}
	if v, ok := p.(OnProjectDeleted); ok {
		r.onProjectDeleted = append(r.onProjectDeleted, v)
	}
	if v, ok := p.(OnEntryLogged); ok {
		r.onEntryLogged = append(r.onEntryLogged, v)
	}
	if v, ok := p.(OnEntryUpdated); ok {
		r.onEntryUpdated = append(r.onEntryUpdated, v)
	}
	if v, ok := p.(OnEntryDeleted); ok {
		r.onEntryDeleted = append(r.onEntryDeleted, v)
	}
	if v, ok := p.(OnEntriesBilled); ok {
		r.onEntriesBilled = append(r.onEntriesBilled, v)
	}
	if v, ok := p.(OnEntriesReleased); ok {
		r.onEntriesReleased = append(r.onEntriesReleased, v)
	}
	if v, ok := p.(OnInvoiceCreated); ok {
		r.onInvoiceCreated = append(r.onInvoiceCreated, v)
	}
	if v, ok := p.(OnInvoiceSent); ok {
		r.onInvoiceSent = append(r.onInvoiceSent, v)
	}
	if v, ok := p.(OnInvoicePaid); ok {
		r.onInvoicePaid = append(r.onInvoicePaid, v)
	}
	if v, ok := p.(OnInvoiceDeleted); ok {
		r.onInvoiceDeleted = append(r.onInvoiceDeleted, v)
	}
	if v, ok := p.(TaxCalculator); ok {
		r.taxCalculators = append(r.taxCalculators, v)
	}
	if v, ok := p.(DocumentRenderer); ok {
		r.renderers[v.Format()] = v
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", r.getImplementedInterfaces(p),
	)

	return nil
}

// getImplementedInterfaces returns a list of interfaces implemented by the plugin.
func (r *Registry) getImplementedInterfaces(p Plugin) []string {
	var interfaces []string
	v := reflect.TypeOf(p)

	// Check each interface
	checkInterface := func(iface reflect.Type, name string) {
		if v.Implements(iface) {
			interfaces = append(interfaces, name)
		}
	}

	// List all interfaces to check
	checkInterface(reflect.TypeOf((*OnInit)(nil)).Elem(), "OnInit")
	checkInterface(reflect.TypeOf((*OnShutdown)(nil)).Elem(), "OnShutdown")
	checkInterface(reflect.TypeOf((*OnClientCreated)(nil)).Elem(), "OnClientCreated")
	checkInterface(reflect.TypeOf((*OnProjectCreated)(nil)).Elem(), "OnProjectCreated")
	checkInterface(reflect.TypeOf((*OnEntryLogged)(nil)).Elem(), "OnEntryLogged")
	checkInterface(reflect.TypeOf((*OnEntriesBilled)(nil)).Elem(), "OnEntriesBilled")
	checkInterface(reflect.TypeOf((*OnInvoiceCreated)(nil)).Elem(), "OnInvoiceCreated")
	checkInterface(reflect.TypeOf((*OnInvoicePaid)(nil)).Elem(), "OnInvoicePaid")
	checkInterface(reflect.TypeOf((*TaxCalculator)(nil)).Elem(), "TaxCalculator")
	checkInterface(reflect.TypeOf((*DocumentRenderer)(nil)).Elem(), "DocumentRenderer")

	return interfaces
}

// Get returns a plugin by name.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission methods
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, ledger interface{}) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInit(ctx, ledger)
		}); err != nil {
			r.logger.Warn("plugin OnInit failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnShutdown(ctx)
		}); err != nil {
			r.logger.Warn("plugin OnShutdown failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitClientCreated emits a client created event.
func (r *Registry) EmitClientCreated(ctx context.Context, c interface{}) {
	r.mu.RLock()
	plugins := r.onClientCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnClientCreated(ctx, c)
		}); err != nil {
			r.logger.Warn("plugin OnClientCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitClientUpdated emits a client updated event.
func (r *Registry) EmitClientUpdated(ctx context.Context, c interface{}) {
	r.mu.RLock()
	plugins := r.onClientUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnClientUpdated(ctx, c)
		}); err != nil {
			r.logger.Warn("plugin OnClientUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitClientDeleted emits a client deleted event.
func (r *Registry) EmitClientDeleted(ctx context.Context, clientID string) {
	r.mu.RLock()
	plugins := r.onClientDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnClientDeleted(ctx, clientID)
		}); err != nil {
			r.logger.Warn("plugin OnClientDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProjectCreated emits a project created event.
func (r *Registry) EmitProjectCreated(ctx context.Context, proj interface{}) {
	r.mu.RLock()
	plugins := r.onProjectCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProjectCreated(ctx, proj)
		}); err != nil {
			r.logger.Warn("plugin OnProjectCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProjectUpdated emits a project updated event.
func (r *Registry) EmitProjectUpdated(ctx context.Context, proj interface{}) {
	r.mu.RLock()
	plugins := r.onProjectUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProjectUpdated(ctx, proj)
		}); err != nil {
			r.logger.Warn("plugin OnProjectUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitProjectDeleted emits a project deleted event.
func (r *Registry) EmitProjectDeleted(ctx context.Context, projectID string) {
	r.mu.RLock()
	plugins := r.onProjectDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnProjectDeleted(ctx, projectID)
		}); err != nil {
			r.logger.Warn("plugin OnProjectDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntryLogged emits an entry logged event.
func (r *Registry) EmitEntryLogged(ctx context.Context, e interface{}) {
	r.mu.RLock()
	plugins := r.onEntryLogged
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntryLogged(ctx, e)
		}); err != nil {
			r.logger.Warn("plugin OnEntryLogged failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntryUpdated emits an entry updated event.
func (r *Registry) EmitEntryUpdated(ctx context.Context, e interface{}) {
	r.mu.RLock()
	plugins := r.onEntryUpdated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntryUpdated(ctx, e)
		}); err != nil {
			r.logger.Warn("plugin OnEntryUpdated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntryDeleted emits an entry deleted event.
func (r *Registry) EmitEntryDeleted(ctx context.Context, entryID string) {
	r.mu.RLock()
	plugins := r.onEntryDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntryDeleted(ctx, entryID)
		}); err != nil {
			r.logger.Warn("plugin OnEntryDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntriesBilled emits an entries billed event.
func (r *Registry) EmitEntriesBilled(ctx context.Context, invoiceID string, entryIDs []string) {
	r.mu.RLock()
	plugins := r.onEntriesBilled
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntriesBilled(ctx, invoiceID, entryIDs)
		}); err != nil {
			r.logger.Warn("plugin OnEntriesBilled failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitEntriesReleased emits an entries released event.
func (r *Registry) EmitEntriesReleased(ctx context.Context, invoiceID string, entryIDs []string) {
	r.mu.RLock()
	plugins := r.onEntriesReleased
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnEntriesReleased(ctx, invoiceID, entryIDs)
		}); err != nil {
			r.logger.Warn("plugin OnEntriesReleased failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceCreated emits an invoice created event.
func (r *Registry) EmitInvoiceCreated(ctx context.Context, inv interface{}) {
	r.mu.RLock()
	plugins := r.onInvoiceCreated
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceCreated(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceCreated failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceSent emits an invoice sent event.
func (r *Registry) EmitInvoiceSent(ctx context.Context, inv interface{}) {
	r.mu.RLock()
	plugins := r.onInvoiceSent
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceSent(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceSent failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoicePaid emits an invoice paid event.
func (r *Registry) EmitInvoicePaid(ctx context.Context, inv interface{}) {
	r.mu.RLock()
	plugins := r.onInvoicePaid
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoicePaid(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoicePaid failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// EmitInvoiceDeleted emits an invoice deleted event.
func (r *Registry) EmitInvoiceDeleted(ctx context.Context, inv interface{}) {
	r.mu.RLock()
	plugins := r.onInvoiceDeleted
	r.mu.RUnlock()

	for _, p := range plugins {
		if err := r.callWithTimeout(ctx, p.Name(), func() error {
			return p.OnInvoiceDeleted(ctx, inv)
		}); err != nil {
			r.logger.Warn("plugin OnInvoiceDeleted failed",
				"plugin", p.Name(),
				"error", err,
			)
		}
	}
}

// GetTaxCalculators returns all registered tax calculators.
func (r *Registry) GetTaxCalculators() []TaxCalculator {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]TaxCalculator, len(r.taxCalculators))
	copy(result, r.taxCalculators)
	return result
}

// GetRenderer returns a document renderer by format, or nil.
func (r *Registry) GetRenderer(format string) DocumentRenderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.renderers[format]
}

// callWithTimeout calls a plugin function with a timeout.
// Plugins should never block the billing pipeline.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func() error) error {
	done := make(chan error, 1)

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		return fmt.Errorf("plugin timeout: %s", pluginName)
	case <-ctx.Done():
		return ctx.Err()
	}
}
