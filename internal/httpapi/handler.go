// Package httpapi serves the contact book as a JSON API.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contacts/internal/contacts"
	"contacts/internal/logger"
	"contacts/internal/metrics"
	"contacts/internal/models"
	"contacts/internal/validator"
)

// maxBodyBytes limits request bodies.
const maxBodyBytes = 1 << 20

// Response messages.
const (
	MsgNotFound    = "Not found"
	MsgBadRequest  = "invalid request body"
	MsgUnavailable = "contacts service unavailable"
)

// Repository defines the contact operations the handlers need.
type Repository interface {
	List(ctx context.Context, query string) ([]models.Contact, error)
	Get(ctx context.Context, id string) (*models.Contact, error)
	Create(ctx context.Context, mutation models.ContactMutation) (*models.Contact, error)
	Update(ctx context.Context, id string, mutation models.ContactMutation) (*models.Contact, error)
	Delete(ctx context.Context, id string) error
	SetFavorite(ctx context.Context, id string, favorite bool) (*models.Contact, error)
}

// Handler handles the contact endpoints.
type Handler struct {
	repo      Repository
	validator *validator.ContactValidator
	logger    *logger.Logger
	metrics   *metrics.Metrics
}

// New creates a new Handler. log and m may be nil.
func New(repo Repository, log *logger.Logger, m *metrics.Metrics) *Handler {
	if log == nil {
		log = logger.Discard()
	}

	return &Handler{
		repo:      repo,
		validator: validator.NewContactValidator(),
		logger:    log.With("component", "httpapi"),
		metrics:   m,
	}
}

// Register registers the contact routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{contactId}", h.handleGet)
		r.Put("/{contactId}", h.handleUpdate)
		r.Delete("/{contactId}", h.handleDelete)
		r.Post("/{contactId}/favorite", h.handleFavorite)
	})
}

// NewRouter builds the full API: middleware, health, metrics and contact
// routes. A nil gatherer disables /metrics.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(AccessLog(h.logger, h.metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	h.Register(r)

	return r
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	list, err := h.repo.List(r.Context(), q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse{Contacts: list, Query: q})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	m, err := decodeMutation(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	if result := h.validator.Validate(m); !result.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, formErrorResponse{
			Errors:  result.FieldErrors,
			Message: result.Message,
		})

		return
	}

	c, err := h.repo.Create(r.Context(), m)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	w.Header().Set("Location", "/contacts/"+c.ID)
	writeJSON(w, http.StatusCreated, dataResponse{Data: c})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.repo.Get(r.Context(), chi.URLParam(r, "contactId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// handleUpdate answers 200 with an error descriptor when the update fails so
// the edit form can show the message.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	m, err := decodeMutation(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	c, err := h.repo.Update(r.Context(), chi.URLParam(r, "contactId"), m)
	if errors.Is(err, contacts.ErrMissingID) {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	writeJSON(w, http.StatusOK, contacts.NewUpdateResult(c, err))
}

func (h *Handler) handleFavorite(w http.ResponseWriter, r *http.Request) {
	m, err := decodeMutation(w, r)
	if err != nil || m.Favorite == nil {
		writeError(w, http.StatusBadRequest, MsgBadRequest)
		return
	}

	c, err := h.repo.SetFavorite(r.Context(), chi.URLParam(r, "contactId"), *m.Favorite)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "contactId")); err != nil {
		h.fail(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// fail maps repository errors to statuses. The repository has already
// logged CMS failures.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, contacts.ErrMissingID), errors.Is(err, contacts.ErrNotFound):
		writeError(w, http.StatusNotFound, MsgNotFound)
	default:
		h.logger.Debug("request failed",
			"path", r.URL.Path,
			"request_id", GetRequestID(r.Context()),
			"error", err,
		)
		writeError(w, http.StatusBadGateway, MsgUnavailable)
	}
}

// decodeMutation reads a JSON body, or a url-encoded form as sent by HTML
// forms.
func decodeMutation(w http.ResponseWriter, r *http.Request) (models.ContactMutation, error) {
	var m models.ContactMutation

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return m, err
		}

		return mutationFromForm(r), nil
	}

	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		return m, err
	}

	return m, nil
}

func mutationFromForm(r *http.Request) models.ContactMutation {
	var m models.ContactMutation

	fields := map[string]**string{
		"id":      &m.ID,
		"first":   &m.First,
		"last":    &m.Last,
		"avatar":  &m.Avatar,
		"twitter": &m.Twitter,
		"notes":   &m.Notes,
	}

	for name, dst := range fields {
		if _, ok := r.PostForm[name]; ok {
			*dst = models.String(r.PostForm.Get(name))
		}
	}

	if _, ok := r.PostForm["favorite"]; ok {
		v := strings.TrimSpace(r.PostForm.Get("favorite"))
		fav, err := strconv.ParseBool(v)
		m.Favorite = models.Bool(v == "on" || (err == nil && fav))
	}

	return m
}
