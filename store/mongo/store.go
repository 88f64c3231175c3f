package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/xraph/grove"
	"github.com/xraph/grove/drivers/mongodriver"

	ledger "github.com/worksite/ledger"
	"github.com/worksite/ledger/client"
	"github.com/worksite/ledger/id"
	"github.com/worksite/ledger/invoice"
	"github.com/worksite/ledger/project"
	ledgerstore "github.com/worksite/ledger/store"
	"github.com/worksite/ledger/timesheet"
)

// Collection name constants.
const (
	colClients  = "ledger_clients"
	colProjects = "ledger_projects"
	colEntries  = "ledger_time_entries"
	colInvoices = "ledger_invoices"
	colCounters = "ledger_counters"
)

// invoiceCounter is the ledger_counters document backing invoice numbering.
const invoiceCounter = "invoice_sequence"

// compile-time interface check
var _ ledgerstore.Store = (*Store)(nil)

// Store implements store.Store using MongoDB via Grove ORM.
type Store struct {
	db  *grove.DB
	mdb *mongodriver.MongoDB
}

// New creates a new MongoDB store backed by Grove ORM.
func New(db *grove.DB) *Store {
	return &Store{
		db:  db,
		mdb: mongodriver.Unwrap(db),
	}
}

// DB returns the underlying grove database for direct access.
func (s *Store) DB() *grove.DB { return s.db }

// Migrate creates indexes for all ledger collections.
func (s *Store) Migrate(ctx context.Context) error {
	indexes := migrationIndexes()

	for col, models := range indexes {
		if len(models) == 0 {
			continue
		}
		_, err := s.mdb.Collection(col).Indexes().CreateMany(ctx, models)
		if err != nil {
			return fmt.Errorf("ledger/mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ==================== Client Store ====================

func (s *Store) CreateClient(ctx context.Context, c *client.Client) error {
	m := toClientModel(c)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: create client: %w", err)
	}
	return nil
}

func (s *Store) GetClient(ctx context.Context, clientID id.ClientID) (*client.Client, error) {
	var m clientModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": clientID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrClientNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get client: %w", err)
	}
	return fromClientModel(&m)
}

func (s *Store) ListClients(ctx context.Context, opts client.ListOpts) ([]*client.Client, error) {
	var models []clientModel

	filter := bson.M{}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list clients: %w", err)
	}

	result := make([]*client.Client, len(models))
	for i := range models {
		c, err := fromClientModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = c
	}
	return result, nil
}

func (s *Store) UpdateClient(ctx context.Context, c *client.Client) error {
	m := toClientModel(c)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: update client: %w", err)
	}
	if res.MatchedCount() == 0 {
		return ledger.ErrClientNotFound
	}
	return nil
}

func (s *Store) DeleteClient(ctx context.Context, clientID id.ClientID) error {
	res, err := s.mdb.NewDelete((*clientModel)(nil)).
		Filter(bson.M{"_id": clientID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: delete client: %w", err)
	}
	if res.DeletedCount() == 0 {
		return ledger.ErrClientNotFound
	}
	return nil
}

// ==================== Project Store ====================

func (s *Store) CreateProject(ctx context.Context, p *project.Project) error {
	m := toProjectModel(p)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: create project: %w", err)
	}
	return nil
}

func (s *Store) GetProject(ctx context.Context, projectID id.ProjectID) (*project.Project, error) {
	var m projectModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": projectID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrProjectNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get project: %w", err)
	}
	return fromProjectModel(&m)
}

func (s *Store) ListProjects(ctx context.Context, clientID id.ClientID, opts project.ListOpts) ([]*project.Project, error) {
	var models []projectModel

	filter := bson.M{}
	if !clientID.IsNil() {
		filter["client_id"] = clientID.String()
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "created_at", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list projects: %w", err)
	}

	result := make([]*project.Project, len(models))
	for i := range models {
		p, err := fromProjectModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = p
	}
	return result, nil
}

func (s *Store) UpdateProject(ctx context.Context, p *project.Project) error {
	m := toProjectModel(p)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: update project: %w", err)
	}
	if res.MatchedCount() == 0 {
		return ledger.ErrProjectNotFound
	}
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, projectID id.ProjectID) error {
	res, err := s.mdb.NewDelete((*projectModel)(nil)).
		Filter(bson.M{"_id": projectID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: delete project: %w", err)
	}
	if res.DeletedCount() == 0 {
		return ledger.ErrProjectNotFound
	}
	return nil
}

func (s *Store) CountProjectsByClient(ctx context.Context, clientID id.ClientID) (int64, error) {
	count, err := s.mdb.Collection(colProjects).CountDocuments(ctx, bson.M{"client_id": clientID.String()})
	if err != nil {
		return 0, fmt.Errorf("ledger/mongo: count projects: %w", err)
	}
	return count, nil
}

// ==================== Timesheet Store ====================

func (s *Store) CreateEntry(ctx context.Context, e *timesheet.Entry) error {
	m := toEntryModel(e)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: create entry: %w", err)
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, entryID id.EntryID) (*timesheet.Entry, error) {
	var m entryModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": entryID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrEntryNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get entry: %w", err)
	}
	return fromEntryModel(&m)
}

func (s *Store) ListEntries(ctx context.Context, clientID id.ClientID, opts timesheet.ListOpts) ([]*timesheet.Entry, error) {
	var models []entryModel

	filter := bson.M{}
	if !clientID.IsNil() {
		filter["client_id"] = clientID.String()
	}
	if opts.UnbilledOnly {
		filter["invoiced"] = false
	}
	if !opts.ProjectID.IsNil() {
		filter["project_id"] = opts.ProjectID.String()
	}
	if !opts.Start.IsZero() {
		if _, ok := filter["date"]; !ok {
			filter["date"] = bson.M{}
		}
		if d, ok := filter["date"].(bson.M); ok {
			d["$gte"] = opts.Start
		}
	}
	if !opts.End.IsZero() {
		if _, ok := filter["date"]; !ok {
			filter["date"] = bson.M{}
		}
		if d, ok := filter["date"].(bson.M); ok {
			d["$lte"] = opts.End
		}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list entries: %w", err)
	}

	result := make([]*timesheet.Entry, len(models))
	for i := range models {
		e, err := fromEntryModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = e
	}
	return result, nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *timesheet.Entry) error {
	m := toEntryModel(e)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: update entry: %w", err)
	}
	if res.MatchedCount() == 0 {
		return ledger.ErrEntryNotFound
	}
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, entryID id.EntryID) error {
	res, err := s.mdb.NewDelete((*entryModel)(nil)).
		Filter(bson.M{"_id": entryID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: delete entry: %w", err)
	}
	if res.DeletedCount() == 0 {
		return ledger.ErrEntryNotFound
	}
	return nil
}

func (s *Store) SetEntriesInvoiced(ctx context.Context, entryIDs []id.EntryID, invoiced bool) error {
	if len(entryIDs) == 0 {
		return nil
	}

	ids := make([]string, len(entryIDs))
	for i, entryID := range entryIDs {
		ids[i] = entryID.String()
	}

	res, err := s.mdb.Collection(colEntries).UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"invoiced": invoiced, "updated_at": now()}},
	)
	if err != nil {
		return fmt.Errorf("ledger/mongo: set entries invoiced: %w", err)
	}
	if res.MatchedCount != int64(len(entryIDs)) {
		return ledger.ErrEntryNotFound
	}
	return nil
}

func (s *Store) CountEntriesByClient(ctx context.Context, clientID id.ClientID) (int64, error) {
	count, err := s.mdb.Collection(colEntries).CountDocuments(ctx, bson.M{"client_id": clientID.String()})
	if err != nil {
		return 0, fmt.Errorf("ledger/mongo: count entries: %w", err)
	}
	return count, nil
}

func (s *Store) CountEntriesByProject(ctx context.Context, projectID id.ProjectID) (int64, error) {
	count, err := s.mdb.Collection(colEntries).CountDocuments(ctx, bson.M{"project_id": projectID.String()})
	if err != nil {
		return 0, fmt.Errorf("ledger/mongo: count entries by project: %w", err)
	}
	return count, nil
}

// ==================== Invoice Store ====================

func (s *Store) CreateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m := toInvoiceModel(inv)
	_, err := s.mdb.NewInsert(m).Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: create invoice: %w", err)
	}
	return nil
}

func (s *Store) GetInvoice(ctx context.Context, invID id.InvoiceID) (*invoice.Invoice, error) {
	var m invoiceModel
	err := s.mdb.NewFind(&m).
		Filter(bson.M{"_id": invID.String()}).
		Scan(ctx)
	if err != nil {
		if isNoDocuments(err) {
			return nil, ledger.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("ledger/mongo: get invoice: %w", err)
	}
	return fromInvoiceModel(&m)
}

func (s *Store) ListInvoices(ctx context.Context, clientID id.ClientID, opts invoice.ListOpts) ([]*invoice.Invoice, error) {
	var models []invoiceModel

	filter := bson.M{}
	if !clientID.IsNil() {
		filter["client_id"] = clientID.String()
	}
	if opts.Status != "" {
		filter["status"] = string(opts.Status)
	}
	if !opts.Start.IsZero() {
		if _, ok := filter["issue_date"]; !ok {
			filter["issue_date"] = bson.M{}
		}
		if d, ok := filter["issue_date"].(bson.M); ok {
			d["$gte"] = opts.Start
		}
	}
	if !opts.End.IsZero() {
		if _, ok := filter["issue_date"]; !ok {
			filter["issue_date"] = bson.M{}
		}
		if d, ok := filter["issue_date"].(bson.M); ok {
			d["$lte"] = opts.End
		}
	}

	q := s.mdb.NewFind(&models).
		Filter(filter).
		Sort(bson.D{{Key: "sequence", Value: 1}})

	if opts.Limit > 0 {
		q = q.Limit(int64(opts.Limit))
	}
	if opts.Offset > 0 {
		q = q.Skip(int64(opts.Offset))
	}

	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("ledger/mongo: list invoices: %w", err)
	}

	result := make([]*invoice.Invoice, len(models))
	for i := range models {
		inv, err := fromInvoiceModel(&models[i])
		if err != nil {
			return nil, err
		}
		result[i] = inv
	}
	return result, nil
}

func (s *Store) UpdateInvoice(ctx context.Context, inv *invoice.Invoice) error {
	m := toInvoiceModel(inv)
	m.UpdatedAt = now()

	res, err := s.mdb.NewUpdate(m).
		Filter(bson.M{"_id": m.ID}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: update invoice: %w", err)
	}
	if res.MatchedCount() == 0 {
		return ledger.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) DeleteInvoice(ctx context.Context, invID id.InvoiceID) error {
	res, err := s.mdb.NewDelete((*invoiceModel)(nil)).
		Filter(bson.M{"_id": invID.String()}).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("ledger/mongo: delete invoice: %w", err)
	}
	if res.DeletedCount() == 0 {
		return ledger.ErrInvoiceNotFound
	}
	return nil
}

func (s *Store) CountInvoicesByClient(ctx context.Context, clientID id.ClientID) (int64, error) {
	count, err := s.mdb.Collection(colInvoices).CountDocuments(ctx, bson.M{"client_id": clientID.String()})
	if err != nil {
		return 0, fmt.Errorf("ledger/mongo: count invoices: %w", err)
	}
	return count, nil
}

// NextInvoiceSequence atomically increments and returns the invoice counter.
// The counter only moves forward, including across deleted invoices.
func (s *Store) NextInvoiceSequence(ctx context.Context) (int64, error) {
	var doc counterModel
	err := s.mdb.Collection(colCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": invoiceCounter},
		bson.M{"$inc": bson.M{"value": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("ledger/mongo: next invoice sequence: %w", err)
	}
	return doc.Value, nil
}

// ==================== Helpers ====================

// now returns the current UTC time.
func now() time.Time {
	return time.Now().UTC()
}

// isNoDocuments checks if an error wraps mongo.ErrNoDocuments.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// migrationIndexes returns the index definitions for all ledger collections.
func migrationIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		colClients: {
			{Keys: bson.D{{Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
		colProjects: {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: 1}}},
		},
		colEntries: {
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "invoiced", Value: 1}, {Key: "date", Value: 1}}},
			{Keys: bson.D{{Key: "project_id", Value: 1}}},
		},
		colInvoices: {
			{
				Keys:    bson.D{{Key: "number", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "sequence", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "status", Value: 1}}},
			{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "sequence", Value: 1}}},
		},
	}
}
