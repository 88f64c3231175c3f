package sqlite

import (
	"encoding/json"
	"time"

	"github.com/xraph/grove"

	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/invoice"
	"github.com/worksite/ledger/project"
	"github.com/worksite/ledger/timesheet"
	"github.com/worksite/ledger/types"
)

// ==================== Client models ====================

type clientModel struct {
	grove.BaseModel `grove:"table:ledger_clients"`

	ID                  string            `grove:"id,pk"`
	Name                string            `grove:"name"`
	Email               string            `grove:"email"`
	Phone               string            `grove:"phone"`
	Address             string            `grove:"address"`
	Status              string            `grove:"status"`
	HourlyRateCents     int64             `grove:"hourly_rate_cents"`
	HourlyRateCurrency  string            `grove:"hourly_rate_currency"`
	TotalBilledCents    int64             `grove:"total_billed_cents"`
	TotalBilledCurrency string            `grove:"total_billed_currency"`
	Metadata            map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt           time.Time         `grove:"created_at"`
	UpdatedAt           time.Time         `grove:"updated_at"`
}

func toClientModel(c *client.Client) *clientModel {
	return &clientModel{
		ID:                  c.ID.String(),
		Name:                c.Name,
		Email:               c.Email,
		Phone:               c.Phone,
		Address:             c.Address,
		Status:              string(c.Status),
		HourlyRateCents:     c.HourlyRate.Amount,
		HourlyRateCurrency:  c.HourlyRate.Currency,
		TotalBilledCents:    c.TotalBilled.Amount,
		TotalBilledCurrency: c.TotalBilled.Currency,
		Metadata:            c.Metadata,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

func fromClientModel(m *clientModel) (*client.Client, error) {
	clientID, err := id.ParseClientID(m.ID)
	if err != nil {
		return nil, err
	}

	return &client.Client{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          clientID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Address:     m.Address,
		Status:      client.Status(m.Status),
		HourlyRate:  types.Money{Amount: m.HourlyRateCents, Currency: m.HourlyRateCurrency},
		TotalBilled: types.Money{Amount: m.TotalBilledCents, Currency: m.TotalBilledCurrency},
		Metadata:    m.Metadata,
	}, nil
}

// ==================== Project models ====================

type projectModel struct {
	grove.BaseModel `grove:"table:ledger_projects"`

	ID                 string            `grove:"id,pk"`
	ClientID           string            `grove:"client_id"`
	Name               string            `grove:"name"`
	Location           string            `grove:"location"`
	Status             string            `grove:"status"`
	Progress           int               `grove:"progress"`
	Deadline           *time.Time        `grove:"deadline"`
	HourlyRateCents    int64             `grove:"hourly_rate_cents"`
	HourlyRateCurrency string            `grove:"hourly_rate_currency"`
	Metadata           map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt          time.Time         `grove:"created_at"`
	UpdatedAt          time.Time         `grove:"updated_at"`
}

func toProjectModel(p *project.Project) *projectModel {
	m := &projectModel{
		ID:        p.ID.String(),
		ClientID:  p.ClientID.String(),
		Name:      p.Name,
		Location:  p.Location,
		Status:    string(p.Status),
		Progress:  p.Progress,
		Deadline:  p.Deadline,
		Metadata:  p.Metadata,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	// Empty currency marks the absence of a rate override.
	if p.HourlyRate != nil {
		m.HourlyRateCents = p.HourlyRate.Amount
		m.HourlyRateCurrency = p.HourlyRate.Currency
	}
	return m
}

func fromProjectModel(m *projectModel) (*project.Project, error) {
	projectID, err := id.ParseProjectID(m.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := id.ParseClientID(m.ClientID)
	if err != nil {
		return nil, err
	}

	var rate *types.Money
	if m.HourlyRateCurrency != "" {
		rate = &types.Money{Amount: m.HourlyRateCents, Currency: m.HourlyRateCurrency}
	}

	return &project.Project{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:         projectID,
		ClientID:   clientID,
		Name:       m.Name,
		Location:   m.Location,
		Status:     project.Status(m.Status),
		Progress:   m.Progress,
		Deadline:   m.Deadline,
		HourlyRate: rate,
		Metadata:   m.Metadata,
	}, nil
}

// ==================== Timesheet entry models ====================

type entryModel struct {
	grove.BaseModel `grove:"table:ledger_time_entries"`

	ID           string            `grove:"id,pk"`
	ClientID     string            `grove:"client_id"`
	ClientName   string            `grove:"client_name"`
	ProjectID    string            `grove:"project_id"`
	ProjectName  string            `grove:"project_name"`
	Date         time.Time         `grove:"date"`
	StartTime    *time.Time        `grove:"start_time"`
	EndTime      *time.Time        `grove:"end_time"`
	CentiHours   int64             `grove:"centi_hours"`
	RateCents    int64             `grove:"rate_cents"`
	RateCurrency string            `grove:"rate_currency"`
	Description  string            `grove:"description"`
	Invoiced     bool              `grove:"invoiced"`
	Metadata     map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt    time.Time         `grove:"created_at"`
	UpdatedAt    time.Time         `grove:"updated_at"`
}

func toEntryModel(e *timesheet.Entry) *entryModel {
	return &entryModel{
		ID:           e.ID.String(),
		ClientID:     e.ClientID.String(),
		ClientName:   e.ClientName,
		ProjectID:    e.ProjectID.String(),
		ProjectName:  e.ProjectName,
		Date:         e.Date,
		StartTime:    e.StartTime,
		EndTime:      e.EndTime,
		CentiHours:   int64(e.Hours),
		RateCents:    e.Rate.Amount,
		RateCurrency: e.Rate.Currency,
		Description:  e.Description,
		Invoiced:     e.Invoiced,
		Metadata:     e.Metadata,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

func fromEntryModel(m *entryModel) (*timesheet.Entry, error) {
	entryID, err := id.ParseEntryID(m.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := id.ParseClientID(m.ClientID)
	if err != nil {
		return nil, err
	}

	var projectID id.ProjectID
	if m.ProjectID != "" {
		projectID, err = id.ParseProjectID(m.ProjectID)
		if err != nil {
			return nil, err
		}
	}

	return &timesheet.Entry{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:          entryID,
		ClientID:    clientID,
		ClientName:  m.ClientName,
		ProjectID:   projectID,
		ProjectName: m.ProjectName,
		Date:        m.Date,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		Hours:       types.Hours(m.CentiHours),
		Rate:        types.Money{Amount: m.RateCents, Currency: m.RateCurrency},
		Description: m.Description,
		Invoiced:    m.Invoiced,
		Metadata:    m.Metadata,
	}, nil
}

// ==================== Invoice models ====================

type invoiceModel struct {
	grove.BaseModel `grove:"table:ledger_invoices"`

	ID            string            `grove:"id,pk"`
	ClientID      string            `grove:"client_id"`
	ClientName    string            `grove:"client_name"`
	Number        string            `grove:"number"`
	Sequence      int64             `grove:"sequence"`
	Status        string            `grove:"status"`
	Currency      string            `grove:"currency"`
	IssueDate     time.Time         `grove:"issue_date"`
	DueDate       time.Time         `grove:"due_date"`
	LineItems     json.RawMessage   `grove:"line_items,type:jsonb"`
	TotalCents    int64             `grove:"total_cents"`
	TotalCurrency string            `grove:"total_currency"`
	Notes         string            `grove:"notes"`
	SentAt        *time.Time        `grove:"sent_at"`
	PaidAt        *time.Time        `grove:"paid_at"`
	Metadata      map[string]string `grove:"metadata,type:jsonb"`
	CreatedAt     time.Time         `grove:"created_at"`
	UpdatedAt     time.Time         `grove:"updated_at"`
}

func toInvoiceModel(inv *invoice.Invoice) *invoiceModel {
	lineItems, _ := json.Marshal(inv.LineItems) //nolint:errcheck // best-effort

	return &invoiceModel{
		ID:            inv.ID.String(),
		ClientID:      inv.ClientID.String(),
		ClientName:    inv.ClientName,
		Number:        inv.Number,
		Sequence:      inv.Sequence,
		Status:        string(inv.Status),
		Currency:      inv.Currency,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		LineItems:     lineItems,
		TotalCents:    inv.Total.Amount,
		TotalCurrency: inv.Total.Currency,
		Notes:         inv.Notes,
		SentAt:        inv.SentAt,
		PaidAt:        inv.PaidAt,
		Metadata:      inv.Metadata,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

func fromInvoiceModel(m *invoiceModel) (*invoice.Invoice, error) {
	invID, err := id.ParseInvoiceID(m.ID)
	if err != nil {
		return nil, err
	}
	clientID, err := id.ParseClientID(m.ClientID)
	if err != nil {
		return nil, err
	}

	var lineItems []invoice.LineItem
	if len(m.LineItems) > 0 {
		_ = json.Unmarshal(m.LineItems, &lineItems) //nolint:errcheck // best-effort
	}

	return &invoice.Invoice{
		Entity: types.Entity{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ID:         invID,
		ClientID:   clientID,
		ClientName: m.ClientName,
		Number:     m.Number,
		Sequence:   m.Sequence,
		Status:     invoice.Status(m.Status),
		Currency:   m.Currency,
		IssueDate:  m.IssueDate,
		DueDate:    m.DueDate,
		LineItems:  lineItems,
		Total:      types.Money{Amount: m.TotalCents, Currency: m.TotalCurrency},
		Notes:      m.Notes,
		SentAt:     m.SentAt,
		PaidAt:     m.PaidAt,
		Metadata:   m.Metadata,
	}, nil
}
