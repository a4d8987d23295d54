// Package fakecms is an in-memory stand-in for the CMS contacts collection,
// speaking the same REST envelope. It backs local development and tests.
package fakecms

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"contacts/internal/logger"
	"contacts/internal/models"
	"contacts/internal/normalizer"
)

// TimeLayout is the timestamp format the CMS emits.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// Fields lists the writable attributes in response order.
var Fields = []string{"first", "last", "avatar", "twitter", "notes", "favorite"}

// validationError carries a message shown to API clients as is.
type validationError string

func (e validationError) Error() string {
	return string(e)
}

const (
	errMissingData validationError = `Missing "data" payload in the request body`
	errInvalidBody validationError = "Invalid body"
	errDuplicateID validationError = "This attribute must be unique"
)

var (
	orFilter  = regexp.MustCompile(`^filters\[\$or\]\[\d+\]\[(\w+)\]\[\$containsi\]$`)
	andFilter = regexp.MustCompile(`^filters\[(\w+)\]\[\$containsi\]$`)
)

type record struct {
	fields      map[string]any
	createdAt   time.Time
	updatedAt   time.Time
	publishedAt time.Time
	documentID  string
	id          string
	seq         int
	numeric     bool
}

// Server holds the records and serves the REST API.
type Server struct {
	records  map[string]*record
	router   chi.Router
	logger   *logger.Logger
	now      func() time.Time
	mu       sync.Mutex
	nextID   int
	seq      int
	failNext int
}

// Option configures a Server.
type Option func(*Server)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// New creates an empty server. log may be nil.
func New(log *logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.Discard()
	}

	s := &Server{
		records: make(map[string]*record),
		logger:  log.With("component", "fakecms"),
		now:     time.Now,
		nextID:  1,
	}

	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(s.injectFailure)
	r.Get("/api/contacts", s.handleList)
	r.Post("/api/contacts", s.handleCreate)
	r.Get("/api/contacts/{id}", s.handleGet)
	r.Put("/api/contacts/{id}", s.handleUpdate)
	r.Delete("/api/contacts/{id}", s.handleDelete)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowedError", "Method Not Allowed")
	})
	s.router = r

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("fakecms request", "method", r.Method, "path", r.URL.Path)
	s.router.ServeHTTP(w, r)
}

// FailNext makes the next request answer status with an error envelope.
func (s *Server) FailNext(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failNext = status
}

// Seed inserts contacts directly and returns their ids. A mutation whose ID
// is already taken is skipped.
func (s *Server) Seed(ms ...models.ContactMutation) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(ms))

	for _, m := range ms {
		var id string
		if m.ID != nil {
			id = *m.ID
		}

		rec, err := s.insertLocked(mutationFields(m), id)
		if err != nil {
			continue
		}

		ids = append(ids, rec.id)
	}

	return ids
}

// Len returns the number of stored records.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

func (s *Server) injectFailure(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		status := s.failNext
		s.failNext = 0
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, errorName(status), http.StatusText(status))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	or, and := parseFilters(r)

	s.mu.Lock()

	matched := make([]*record, 0, len(s.records))
	for _, rec := range s.records {
		if rec.matches(or, and) {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		al, bl := a.text("last"), b.text("last")

		if al != bl {
			return al < bl
		}

		if !a.createdAt.Equal(b.createdAt) {
			return a.createdAt.Before(b.createdAt)
		}

		return a.seq < b.seq
	})

	data := make(normalizer.Seq, 0, len(matched))
	for _, rec := range matched {
		data = append(data, rec.node())
	}

	s.mu.Unlock()

	writeJSON(w, http.StatusOK, normalizer.ObjectOf(
		"data", data,
		"meta", normalizer.ObjectOf("pagination", normalizer.ObjectOf(
			"page", 1,
			"pageSize", max(len(data), 25),
			"pageCount", 1,
			"total", len(data),
		)),
	))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lookupLocked(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}

	writeRecord(w, http.StatusOK, rec)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	fields, id, err := decodeData(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.insertLocked(fields, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	writeRecord(w, http.StatusOK, rec)
}

// handleUpdate ignores an id in the body; ids never change.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	fields, _, err := decodeData(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "ValidationError", err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lookupLocked(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}

	for k, v := range fields {
		rec.fields[k] = v
	}

	rec.updatedAt = s.now().UTC()

	writeRecord(w, http.StatusOK, rec)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.lookupLocked(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "NotFoundError", "Not Found")
		return
	}

	delete(s.records, rec.id)

	writeRecord(w, http.StatusOK, rec)
}

// insertLocked stores a new record under id, or under the next free
// numeric id when id is empty.
func (s *Server) insertLocked(fields map[string]any, id string) (*record, error) {
	numeric := id == ""

	if numeric {
		for {
			id = strconv.Itoa(s.nextID)
			s.nextID++

			if _, taken := s.records[id]; !taken {
				break
			}
		}
	} else if _, taken := s.records[id]; taken {
		return nil, errDuplicateID
	}

	now := s.now().UTC()
	s.seq++

	rec := &record{
		id:          id,
		seq:         s.seq,
		numeric:     numeric,
		documentID:  uuid.NewString(),
		fields:      map[string]any{},
		createdAt:   now,
		updatedAt:   now,
		publishedAt: now,
	}

	for _, k := range Fields {
		rec.fields[k] = nil
	}

	for k, v := range fields {
		rec.fields[k] = v
	}

	s.records[rec.id] = rec

	return rec, nil
}

func (s *Server) lookupLocked(id string) (*record, bool) {
	rec, ok := s.records[id]
	return rec, ok
}

func (rec *record) text(key string) string {
	v, _ := rec.fields[key].(string)
	return v
}

func (rec *record) matches(or, and map[string]string) bool {
	for field, needle := range and {
		if !containsFold(rec.text(field), needle) {
			return false
		}
	}

	if len(or) == 0 {
		return true
	}

	for field, needle := range or {
		if containsFold(rec.text(field), needle) {
			return true
		}
	}

	return false
}

func (rec *record) node() *normalizer.Object {
	attrs := normalizer.NewObject()
	for _, k := range Fields {
		attrs.Set(k, normalizer.FromValue(rec.fields[k]))
	}

	attrs.Set("createdAt", normalizer.String(rec.createdAt.Format(TimeLayout)))
	attrs.Set("updatedAt", normalizer.String(rec.updatedAt.Format(TimeLayout)))
	attrs.Set("publishedAt", normalizer.String(rec.publishedAt.Format(TimeLayout)))

	var id normalizer.Node = normalizer.String(rec.id)
	if rec.numeric {
		id = normalizer.Number(rec.id)
	}

	return normalizer.ObjectOf(
		"id", id,
		"documentId", rec.documentID,
		"attributes", attrs,
	)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func parseFilters(r *http.Request) (or, and map[string]string) {
	or, and = map[string]string{}, map[string]string{}

	for key, values := range r.URL.Query() {
		if len(values) == 0 || values[0] == "" {
			continue
		}

		if m := orFilter.FindStringSubmatch(key); m != nil {
			or[m[1]] = values[0]
		} else if m := andFilter.FindStringSubmatch(key); m != nil {
			and[m[1]] = values[0]
		}
	}

	return or, and
}

// decodeData reads {"data":{...}} and checks every key and value type. A
// string "id" is returned apart from the fields.
func decodeData(w http.ResponseWriter, r *http.Request) (map[string]any, string, error) {
	var body struct {
		Data map[string]json.RawMessage `json:"data"`
	}

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&body); err != nil {
		return nil, "", errInvalidBody
	}

	if body.Data == nil {
		return nil, "", errMissingData
	}

	var id string

	fields := make(map[string]any, len(body.Data))

	for key, raw := range body.Data {
		switch key {
		case "id":
			if err := json.Unmarshal(raw, &id); err != nil || id == "" {
				return nil, "", validationError("id must be a non-empty `string` type")
			}
		case "first", "last", "avatar", "twitter", "notes":
			var v *string
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, "", validationError(fmt.Sprintf("%s must be a `string` type", key))
			}

			if v == nil {
				fields[key] = nil
			} else {
				fields[key] = *v
			}
		case "favorite":
			var v *bool
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, "", validationError(fmt.Sprintf("%s must be a `boolean` type", key))
			}

			if v == nil {
				fields[key] = nil
			} else {
				fields[key] = *v
			}
		default:
			return nil, "", validationError(fmt.Sprintf("Invalid key %s", key))
		}
	}

	return fields, id, nil
}

func mutationFields(m models.ContactMutation) map[string]any {
	fields := map[string]any{}

	set := func(key string, v *string) {
		if v != nil {
			fields[key] = *v
		}
	}

	set("first", m.First)
	set("last", m.Last)
	set("avatar", m.Avatar)
	set("twitter", m.Twitter)
	set("notes", m.Notes)

	if m.Favorite != nil {
		fields["favorite"] = *m.Favorite
	}

	return fields
}

func errorName(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "ValidationError"
	case http.StatusUnauthorized:
		return "UnauthorizedError"
	case http.StatusForbidden:
		return "ForbiddenError"
	case http.StatusNotFound:
		return "NotFoundError"
	}

	return strings.ReplaceAll(http.StatusText(status), " ", "") + "Error"
}

func writeRecord(w http.ResponseWriter, status int, rec *record) {
	writeJSON(w, status, normalizer.ObjectOf("data", rec.node(), "meta", normalizer.NewObject()))
}

func writeError(w http.ResponseWriter, status int, name, msg string) {
	writeJSON(w, status, normalizer.ObjectOf(
		"data", nil,
		"error", normalizer.ObjectOf(
			"status", status,
			"name", name,
			"message", msg,
			"details", normalizer.NewObject(),
		),
	))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
