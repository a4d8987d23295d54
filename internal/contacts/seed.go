package contacts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"contacts/internal/models"
)

// maxConcurrentSeeds bounds the number of in-flight create calls.
const maxConcurrentSeeds = 5

// SeedResult reports what a Seed run created.
type SeedResult struct {
	// Created holds the created contacts in input order.
	Created []models.Contact
	Errors  []error
}

// Err joins every create failure, or returns nil.
func (s *SeedResult) Err() error {
	return errors.Join(s.Errors...)
}

// Seed creates every mutation, at most five at a time. A failed create does
// not stop the others.
func (r *Repository) Seed(ctx context.Context, batch []models.ContactMutation) *SeedResult {
	created := make([]*models.Contact, len(batch))

	var (
		mu   sync.Mutex
		errs []error
	)

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentSeeds)

	for i, m := range batch {
		i, m := i, m
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("seed %d: %w", i, err))
				mu.Unlock()

				return nil
			}

			c, err := r.Create(ctx, m)
			if err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("seed %d: %w", i, err))
				mu.Unlock()

				return nil
			}

			created[i] = c

			return nil
		})
	}

	_ = g.Wait()

	result := &SeedResult{Errors: errs}
	for _, c := range created {
		if c != nil {
			result.Created = append(result.Created, *c)
		}
	}

	r.metrics.IncrementSeeded(len(result.Created))
	r.logger.Info("seed finished", "created", len(result.Created), "failed", len(errs))

	return result
}
