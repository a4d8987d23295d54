// Package contacts maps contact book operations onto the CMS REST API.
package contacts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"contacts/internal/cms"
	"contacts/internal/logger"
	"contacts/internal/metrics"
	"contacts/internal/models"
	"contacts/internal/normalizer"
)

// CollectionPath is the CMS collection holding contacts.
const CollectionPath = "/api/contacts"

// Search filters sent when query forwarding is enabled.
const (
	FilterFirst = "filters[$or][0][first][$containsi]"
	FilterLast  = "filters[$or][1][last][$containsi]"
)

// Operation names used in logs and metrics.
const (
	OpList   = "list"
	OpGet    = "get"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Repository errors.
var (
	ErrMissingID = errors.New("contact id is required")
	ErrNotFound  = errors.New("contact not found")
	ErrDecode    = errors.New("unexpected cms response")
)

// Store is the set of contact operations the API and CLI depend on.
type Store interface {
	List(ctx context.Context, query string) ([]models.Contact, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, m models.ContactMutation) (*models.Contact, error)
	Update(ctx context.Context, id string, m models.ContactMutation) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
	SetFavorite(ctx context.Context, id string, favorite bool) (*models.Contact, error)
}

// Ensure Repository implements Store.
var _ Store = (*Repository)(nil)

// Options tunes repository behavior.
type Options struct {
	// ForwardSearch sends the List query to the CMS as first/last name
	// filters. When false the query is accepted and dropped.
	ForwardSearch bool
}

// Repository talks to the CMS through a cms.Client. It holds no state
// between calls.
type Repository struct {
	client    cms.Client
	processor *normalizer.Processor
	logger    *logger.Logger
	metrics   *metrics.Metrics
	opts      Options
}

// NewRepository creates a repository. log and m may be nil.
func NewRepository(client cms.Client, opts Options, log *logger.Logger, m *metrics.Metrics) *Repository {
	if log == nil {
		log = logger.Discard()
	}

	return &Repository{
		client:    client,
		processor: normalizer.NewProcessor(),
		logger:    log.With("component", "contacts"),
		metrics:   m,
		opts:      opts,
	}
}

// List returns every contact the CMS holds, in CMS order. An empty
// collection is an empty non-nil slice.
func (r *Repository) List(ctx context.Context, query string) ([]models.Contact, error) {
	req := &cms.Request{Method: http.MethodGet, Path: CollectionPath}

	if q := strings.TrimSpace(query); q != "" && r.opts.ForwardSearch {
		req.Query = url.Values{FilterFirst: {q}, FilterLast: {q}}
	}

	start := time.Now()

	node, err := r.call(ctx, req)
	if err != nil {
		return nil, r.fail(OpList, start, err, "query", query)
	}

	contacts, err := toContacts(node)
	if err != nil {
		return nil, r.fail(OpList, start, err, "query", query)
	}

	r.succeed(OpList, start)

	return contacts, nil
}

// Get fetches one contact. A 404 or a null record is ErrNotFound.
func (r *Repository) Get(ctx context.Context, id string) (*models.Contact, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	node, err := r.call(ctx, &cms.Request{Method: http.MethodGet, Path: itemPath(id)})
	if err != nil {
		return nil, r.fail(OpGet, start, err, "id", id)
	}

	contact, err := toContact(node)
	if err != nil {
		return nil, r.fail(OpGet, start, err, "id", id)
	}

	r.succeed(OpGet, start)

	return contact, nil
}

// Create stores a new contact and returns it with its id and creation time.
// The id is the one set in m, or assigned by the CMS when m.ID is nil.
func (r *Repository) Create(ctx context.Context, m models.ContactMutation) (*models.Contact, error) {
	start := time.Now()

	node, err := r.call(ctx, &cms.Request{
		Method: http.MethodPost,
		Path:   CollectionPath,
		Body:   cms.Envelope(m),
	})
	if err != nil {
		return nil, r.fail(OpCreate, start, err)
	}

	contact, err := toContact(node)
	if err != nil {
		return nil, r.fail(OpCreate, start, err)
	}

	r.succeed(OpCreate, start)

	return contact, nil
}

// Update replaces the fields set in m and returns the updated contact.
// m.ID is ignored.
func (r *Repository) Update(ctx context.Context, id string, m models.ContactMutation) (*models.Contact, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	m.ID = nil

	start := time.Now()

	node, err := r.call(ctx, &cms.Request{
		Method: http.MethodPut,
		Path:   itemPath(id),
		Body:   cms.Envelope(m),
	})
	if err != nil {
		return nil, r.fail(OpUpdate, start, err, "id", id)
	}

	contact, err := toContact(node)
	if err != nil {
		return nil, r.fail(OpUpdate, start, err, "id", id)
	}

	r.succeed(OpUpdate, start)

	return contact, nil
}

// Delete removes a contact. The response body is ignored.
func (r *Repository) Delete(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}

	start := time.Now()

	if _, err := r.client.Do(ctx, &cms.Request{Method: http.MethodDelete, Path: itemPath(id)}); err != nil {
		return r.fail(OpDelete, start, classify(err), "id", id)
	}

	r.succeed(OpDelete, start)

	return nil
}

// SetFavorite updates only the favorite flag.
func (r *Repository) SetFavorite(ctx context.Context, id string, favorite bool) (*models.Contact, error) {
	return r.Update(ctx, id, models.ContactMutation{Favorite: models.Bool(favorite)})
}

// call performs one request and normalizes the body's data field.
func (r *Repository) call(ctx context.Context, req *cms.Request) (normalizer.Node, error) {
	resp, err := r.client.Do(ctx, req)
	if err != nil {
		return nil, classify(err)
	}

	node, err := r.processor.Process(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return node, nil
}

// fail logs err once, records the outcome and returns err.
func (r *Repository) fail(op string, start time.Time, err error, args ...any) error {
	args = append([]any{"op", op, "error", err}, args...)

	if errors.Is(err, ErrNotFound) {
		r.metrics.ObserveCMS(op, metrics.OutcomeNotFound, start)
		r.logger.Warn("contact not found", args...)

		return err
	}

	r.metrics.ObserveCMS(op, metrics.OutcomeError, start)
	r.logger.Error("cms request failed", args...)

	return err
}

func (r *Repository) succeed(op string, start time.Time) {
	r.metrics.ObserveCMS(op, metrics.OutcomeSuccess, start)
	r.logger.Debug("cms request done", "op", op, "duration", time.Since(start))
}

func classify(err error) error {
	if errors.Is(err, cms.ErrNotFound) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	return err
}

func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}

	return id, nil
}

func itemPath(id string) string {
	return CollectionPath + "/" + url.PathEscape(id)
}
