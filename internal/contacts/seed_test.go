package contacts

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/cms"
	"contacts/internal/models"
)

func TestReferenceContacts(t *testing.T) {
	refs := ReferenceContacts()
	require.Len(t, refs, 31)

	for i, m := range refs {
		require.NotNil(t, m.First, "contact %d", i)
		require.NotNil(t, m.Last, "contact %d", i)
		require.NotNil(t, m.Avatar, "contact %d", i)
	}

	assert.Equal(t, "Shruti", *refs[0].First)
	assert.Nil(t, refs[2].Twitter)

	refs[0].First = models.String("changed")
	assert.Equal(t, "Shruti", *ReferenceContacts()[0].First)
}

func TestRepository_Seed(t *testing.T) {
	var (
		inFlight atomic.Int32
		peak     atomic.Int32
		nextID   atomic.Int32
	)

	client := &MockClient{
		DoFunc: func(_ context.Context, req *cms.Request) (*cms.Response, error) {
			n := inFlight.Add(1)
			defer inFlight.Add(-1)

			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}

			time.Sleep(2 * time.Millisecond)

			m := req.Body.(map[string]any)["data"].(models.ContactMutation)
			if m.Last != nil && *m.Last == "Jackson" {
				return nil, &cms.APIError{StatusCode: http.StatusBadRequest, Message: "rejected"}
			}

			return ok(fmt.Sprintf(`{"data":{"id":%d,"attributes":{"first":%q}}}`, nextID.Add(1), *m.First))
		},
	}

	repo, _, m := newTestRepository(client, Options{})

	res := repo.Seed(context.Background(), ReferenceContacts())

	assert.Len(t, res.Created, 30)
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Err(), cms.ErrUnexpectedStatusCode)
	assert.Equal(t, 31, client.Calls())
	assert.LessOrEqual(t, peak.Load(), int32(maxConcurrentSeeds))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.ContactsSeeded))

	// Created keeps input order.
	assert.Equal(t, "Shruti", res.Created[0].First)
	assert.Equal(t, "Glenn", res.Created[1].First)
}

func TestRepository_Seed_CanceledContext(t *testing.T) {
	client := &MockClient{}
	repo, _, _ := newTestRepository(client, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := repo.Seed(ctx, ReferenceContacts()[:3])

	assert.Empty(t, res.Created)
	assert.Len(t, res.Errors, 3)
	assert.True(t, errors.Is(res.Err(), context.Canceled))
	assert.Zero(t, client.Calls())
}

func TestSeedResult_ErrNilWhenClean(t *testing.T) {
	assert.NoError(t, (&SeedResult{}).Err())
}
