package audithook

// Action constants for audit events.
const (
	// Client actions
	ActionClientCreated = "client.created"
	ActionClientUpdated = "client.updated"
	ActionClientDeleted = "client.deleted"

	// Project actions
	ActionProjectCreated = "project.created"
	ActionProjectUpdated = "project.updated"
	ActionProjectDeleted = "project.deleted"

	// Timesheet actions
	ActionEntryLogged     = "entry.logged"
	ActionEntryUpdated    = "entry.updated"
	ActionEntryDeleted    = "entry.deleted"
	ActionEntriesBilled   = "entries.billed"
	ActionEntriesReleased = "entries.released"

	// Invoice actions
	ActionInvoiceCreated = "invoice.created"
	ActionInvoiceSent    = "invoice.sent"
	ActionInvoicePaid    = "invoice.paid"
	ActionInvoiceDeleted = "invoice.deleted"
)

// Resource constants for audit events.
const (
	ResourceClient  = "client"
	ResourceProject = "project"
	ResourceEntry   = "entry"
	ResourceInvoice = "invoice"
)

// Category constants for audit events.
const (
	CategoryBilling   = "billing"
	CategoryTimesheet = "timesheet"
	CategoryPayment   = "payment"
)

// Severity levels for audit events.
const (
	SeverityInfo     = "info"
	SeverityWarning  = "warning"
	SeverityError    = "error"
	SeverityCritical = "critical"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomePartial = "partial"
)
