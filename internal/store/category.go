package store

import (
	"context"
	"strings"

	"cloud.google.com/go/firestore"

	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
)

const categoriesCollection = "categories"

type categoryStore struct {
	client *firestore.Client
}

func NewCategoryStore(client *firestore.Client) *categoryStore {
	return &categoryStore{client: client}
}

func (s *categoryStore) collection() *firestore.CollectionRef {
	return s.client.Collection(categoriesCollection)
}

// Create stores a user category unless that user already has one with the same name.
func (s *categoryStore) Create(ctx context.Context, c *models.Category) error {
	ref := s.collection().Doc(c.CategoryID)
	dup := s.collection().
		Where("userId", "==", c.UserID).
		Where("name", "==", c.Name).
		Limit(1)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		existing, err := tx.Documents(dup).GetAll()
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			return errs.NewAlreadyExistsError("category " + c.Name + " already exists")
		}
		return tx.Create(ref, c)
	})
	if err != nil {
		return passThroughOr(err, "create", "failed to create category")
	}
	return nil
}

// ListByScope returns the categories stored under userID, which is either a user id or
// models.DefaultScope.
func (s *categoryStore) ListByScope(ctx context.Context, userID string) ([]*models.Category, error) {
	docs, err := s.collection().Where("userId", "==", userID).Documents(ctx).GetAll()
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to list categories", err)
	}
	out := make([]*models.Category, 0, len(docs))
	for _, d := range docs {
		var c models.Category
		if err := d.DataTo(&c); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse category data", err)
		}
		c.CategoryID = d.Ref.ID
		out = append(out, &c)
	}
	return out, nil
}

// SeedDefaults upserts the shared categories under ids derived from their names, so running it
// again overwrites rather than duplicates.
func (s *categoryStore) SeedDefaults(ctx context.Context, defaults []models.Category) (int, error) {
	bw := s.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(defaults))

	for _, c := range defaults {
		c.UserID = models.DefaultScope
		job, err := bw.Set(s.collection().Doc(DefaultCategoryID(c.Name)), c)
		if err != nil {
			bw.End()
			return 0, errs.NewDatabaseError("create", "failed to queue default category", err)
		}
		jobs = append(jobs, job)
	}

	bw.End()
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return 0, errs.NewDatabaseError("create", "failed to seed default category", err)
		}
	}
	return len(jobs), nil
}

func DefaultCategoryID(name string) string {
	return "default-" + strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
