package contacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/cms"
	"contacts/internal/logger"
	"contacts/internal/metrics"
	"contacts/internal/models"
)

var errConnRefused = errors.New("connection refused")

// MockClient implements cms.Client for testing.
type MockClient struct {
	DoFunc func(ctx context.Context, req *cms.Request) (*cms.Response, error)
	calls  atomic.Int32
}

func (m *MockClient) Do(ctx context.Context, req *cms.Request) (*cms.Response, error) {
	m.calls.Add(1)

	if m.DoFunc != nil {
		return m.DoFunc(ctx, req)
	}

	return ok(`{"data":null}`)
}

func (m *MockClient) Calls() int {
	return int(m.calls.Load())
}

func ok(body string) (*cms.Response, error) {
	return &cms.Response{StatusCode: http.StatusOK, Body: []byte(body)}, nil
}

func notFound() (*cms.Response, error) {
	return nil, &cms.APIError{StatusCode: http.StatusNotFound, Name: "NotFoundError", Message: "Not Found"}
}

// newTestRepository returns a repository logging JSON lines into buf.
func newTestRepository(client cms.Client, opts Options) (*Repository, *bytes.Buffer, *metrics.Metrics) {
	var buf bytes.Buffer

	log := logger.New(logger.Options{Writer: &buf, Level: "debug", Format: logger.FormatJSON})
	m := metrics.New(prometheus.NewRegistry())

	return NewRepository(client, opts, log, m), &buf, m
}

func countLevel(buf *bytes.Buffer, level string) int {
	return strings.Count(buf.String(), `"level":"`+level+`"`)
}

const listBody = `{
	"data": [
		{"id": 1, "attributes": {"first": "Shruti", "last": "Kapoor", "twitter": "@shrutikapoor08", "favorite": true, "createdAt": "2024-01-01T00:00:00.000Z"}},
		{"id": 2, "attributes": {"first": "Glenn", "last": "Reyes", "notes": null}}
	],
	"meta": {"pagination": {"page": 1, "pageSize": 25, "pageCount": 1, "total": 2}}
}`

func TestRepository_List(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, CollectionPath, req.Path)
			assert.Empty(t, req.Query, "query must not be forwarded by default")

			return ok(listBody)
		},
	}

	repo, _, m := newTestRepository(client, Options{})

	got, err := repo.List(context.Background(), "shr")
	require.NoError(t, err)

	want := []models.Contact{
		{ID: "1", First: "Shruti", Last: "Kapoor", Twitter: "@shrutikapoor08", Favorite: models.Bool(true), CreatedAt: "2024-01-01T00:00:00.000Z"},
		{ID: "2", First: "Glenn", Last: "Reyes"},
	}
	assert.Equal(t, want, got)
	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CMSRequests.WithLabelValues(OpList, metrics.OutcomeSuccess)))
}

func TestRepository_List_ForwardSearch(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			assert.Equal(t, "ann", req.Query.Get(FilterFirst))
			assert.Equal(t, "ann", req.Query.Get(FilterLast))

			return ok(`{"data":[]}`)
		},
	}

	repo, _, _ := newTestRepository(client, Options{ForwardSearch: true})

	_, err := repo.List(context.Background(), "  ann ")
	require.NoError(t, err)
}

func TestRepository_List_Empty(t *testing.T) {
	repo, _, _ := newTestRepository(&MockClient{
		DoFunc: func(context.Context, *cms.Request) (*cms.Response, error) {
			return ok(`{"data":[],"meta":{}}`)
		},
	}, Options{})

	got, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepository_List_TransportFailure(t *testing.T) {
	client := &MockClient{
		DoFunc: func(context.Context, *cms.Request) (*cms.Response, error) {
			return nil, fmt.Errorf("%w: GET /api/contacts: %w", cms.ErrTransport, errConnRefused)
		},
	}

	repo, buf, m := newTestRepository(client, Options{})

	var (
		got []models.Contact
		err error
	)

	assert.NotPanics(t, func() {
		got, err = repo.List(context.Background(), "")
	})

	assert.Nil(t, got)
	assert.True(t, errors.Is(err, cms.ErrTransport))
	assert.Equal(t, 1, client.Calls())
	assert.Equal(t, 1, countLevel(buf, "ERROR"), "failure must be logged exactly once:\n%s", buf.String())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CMSRequests.WithLabelValues(OpList, metrics.OutcomeError)))
}

func TestRepository_List_MalformedBody(t *testing.T) {
	for _, body := range []string{`<html>oops</html>`, `{"data":{"id":1}}`, `{"data":[1,2]}`, `[]`} {
		repo, buf, _ := newTestRepository(&MockClient{
			DoFunc: func(context.Context, *cms.Request) (*cms.Response, error) {
				return ok(body)
			},
		}, Options{})

		got, err := repo.List(context.Background(), "")
		assert.Nil(t, got, body)
		assert.True(t, errors.Is(err, ErrDecode), "body %s: got %v", body, err)
		assert.Equal(t, 1, countLevel(buf, "ERROR"), body)
	}
}

func TestRepository_Get(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			assert.Equal(t, "/api/contacts/7", req.Path)

			return ok(`{"data":{"id":7,"attributes":{"first":"Kent C.","last":"Dodds","favorite":false}},"meta":{}}`)
		},
	}

	repo, _, _ := newTestRepository(client, Options{})

	got, err := repo.Get(context.Background(), "7")
	require.NoError(t, err)
	assert.Equal(t, &models.Contact{ID: "7", First: "Kent C.", Last: "Dodds", Favorite: models.Bool(false)}, got)
}

func TestRepository_MissingIDDoesNotCallTransport(t *testing.T) {
	client := &MockClient{}
	repo, buf, _ := newTestRepository(client, Options{})
	ctx := context.Background()

	for _, id := range []string{"", "   "} {
		_, err := repo.Get(ctx, id)
		assert.ErrorIs(t, err, ErrMissingID)

		_, err = repo.Update(ctx, id, models.ContactMutation{First: models.String("x")})
		assert.ErrorIs(t, err, ErrMissingID)

		_, err = repo.SetFavorite(ctx, id, true)
		assert.ErrorIs(t, err, ErrMissingID)

		assert.ErrorIs(t, repo.Delete(ctx, id), ErrMissingID)
	}

	assert.Zero(t, client.Calls())
	assert.Zero(t, countLevel(buf, "ERROR"))
}

func TestRepository_Get_NotFound(t *testing.T) {
	tests := map[string]func(context.Context, *cms.Request) (*cms.Response, error){
		"404 status": func(context.Context, *cms.Request) (*cms.Response, error) {
			return notFound()
		},
		"null data": func(context.Context, *cms.Request) (*cms.Response, error) {
			return ok(`{"data":null,"meta":{}}`)
		},
	}

	for name, do := range tests {
		t.Run(name, func(t *testing.T) {
			repo, buf, m := newTestRepository(&MockClient{DoFunc: do}, Options{})

			got, err := repo.Get(context.Background(), "99")
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrNotFound)
			assert.Equal(t, 1, countLevel(buf, "WARN"))
			assert.Zero(t, countLevel(buf, "ERROR"))
			assert.Equal(t, 1.0, testutil.ToFloat64(m.CMSRequests.WithLabelValues(OpGet, metrics.OutcomeNotFound)))
		})
	}
}

func TestRepository_Get_EscapesID(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			assert.Equal(t, "/api/contacts/a%2Fb", req.Path)
			return notFound()
		},
	}

	repo, _, _ := newTestRepository(client, Options{})
	_, _ = repo.Get(context.Background(), "a/b")
	assert.Equal(t, 1, client.Calls())
}

func TestRepository_Create(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, CollectionPath, req.Path)

			body, err := json.Marshal(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"data":{"first":"Jane","last":"Doe","avatar":"https://x/y.jpg","twitter":"@jane"}}`, string(body))

			return ok(`{"data":{"id":"42","attributes":{"first":"Jane","last":"Doe","avatar":"https://x/y.jpg","twitter":"@jane","createdAt":"2024-01-01T00:00:00.000Z"}}}`)
		},
	}

	repo, _, _ := newTestRepository(client, Options{})

	got, err := repo.Create(context.Background(), models.ContactMutation{
		First:   models.String("Jane"),
		Last:    models.String("Doe"),
		Avatar:  models.String("https://x/y.jpg"),
		Twitter: models.String("@jane"),
	})
	require.NoError(t, err)

	assert.Equal(t, &models.Contact{
		ID:        "42",
		First:     "Jane",
		Last:      "Doe",
		Avatar:    "https://x/y.jpg",
		Twitter:   "@jane",
		CreatedAt: "2024-01-01T00:00:00.000Z",
	}, got)
}

func TestRepository_Create_ClientID(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			body, err := json.Marshal(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"data":{"id":"jane-doe","first":"Jane"}}`, string(body))

			return ok(`{"data":{"id":"jane-doe","attributes":{"first":"Jane"}}}`)
		},
	}

	var m models.ContactMutation
	require.NoError(t, json.Unmarshal([]byte(`{"id":"jane-doe","first":"Jane"}`), &m))

	repo, _, _ := newTestRepository(client, Options{})

	got, err := repo.Create(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, "jane-doe", got.ID)
	assert.Equal(t, 1, client.Calls())
}

func TestRepository_Create_ServerError(t *testing.T) {
	repo, buf, _ := newTestRepository(&MockClient{
		DoFunc: func(context.Context, *cms.Request) (*cms.Response, error) {
			return nil, &cms.APIError{StatusCode: http.StatusBadRequest, Name: "ValidationError", Message: "Invalid key foo"}
		},
	}, Options{})

	got, err := repo.Create(context.Background(), models.ContactMutation{})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, cms.ErrUnexpectedStatusCode)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, countLevel(buf, "ERROR"))
}

func TestRepository_Update(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			assert.Equal(t, http.MethodPut, req.Method)
			assert.Equal(t, "/api/contacts/3", req.Path)

			body, err := json.Marshal(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"data":{"notes":"met at the conf"}}`, string(body))

			return ok(`{"data":{"id":3,"attributes":{"first":"Ryan","notes":"met at the conf"}}}`)
		},
	}

	repo, _, _ := newTestRepository(client, Options{})

	got, err := repo.Update(context.Background(), "3", models.ContactMutation{
		ID:    models.String("renamed"),
		Notes: models.String("met at the conf"),
	})
	require.NoError(t, err)
	assert.Equal(t, "met at the conf", got.Notes)
	assert.Equal(t, "Ryan", got.First)
}

func TestRepository_SetFavorite(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			body, err := json.Marshal(req.Body)
			require.NoError(t, err)
			assert.JSONEq(t, `{"data":{"favorite":false}}`, string(body))

			return ok(`{"data":{"id":3,"attributes":{"favorite":false}}}`)
		},
	}

	repo, _, _ := newTestRepository(client, Options{})

	got, err := repo.SetFavorite(context.Background(), "3", false)
	require.NoError(t, err)
	require.NotNil(t, got.Favorite)
	assert.False(t, *got.Favorite)
}

func TestRepository_Delete(t *testing.T) {
	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			assert.Equal(t, http.MethodDelete, req.Method)
			assert.Equal(t, "/api/contacts/5", req.Path)

			return &cms.Response{StatusCode: http.StatusNoContent}, nil
		},
	}

	repo, _, _ := newTestRepository(client, Options{})
	require.NoError(t, repo.Delete(context.Background(), "5"))
}

func TestRepository_Delete_NotFound(t *testing.T) {
	repo, _, _ := newTestRepository(&MockClient{
		DoFunc: func(context.Context, *cms.Request) (*cms.Response, error) {
			return notFound()
		},
	}, Options{})

	err := repo.Delete(context.Background(), "5")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, cms.ErrNotFound)
}

func TestNewRepository_NilLoggerAndMetrics(t *testing.T) {
	repo := NewRepository(&MockClient{
		DoFunc: func(context.Context, *cms.Request) (*cms.Response, error) {
			return nil, cms.ErrTransport
		},
	}, Options{}, nil, nil)

	assert.NotPanics(t, func() {
		_, _ = repo.List(context.Background(), "")
	})
}
