package services

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/GregMSThompson/budget-backend/internal/dto"
	"github.com/GregMSThompson/budget-backend/internal/errs"
	"github.com/GregMSThompson/budget-backend/internal/models"
	"github.com/GregMSThompson/budget-backend/pkg/logger"
)

type categoryStore interface {
	Create(ctx context.Context, c *models.Category) error
	ListByScope(ctx context.Context, userID string) ([]*models.Category, error)
}

type categoryService struct {
	store categoryStore
}

func NewCategoryService(store categoryStore) *categoryService {
	return &categoryService{store: store}
}

func (s *categoryService) AddCategory(ctx context.Context, uid string, req dto.AddCategoryRequest) (*models.Category, error) {
	if uid == models.DefaultScope {
		return nil, errs.NewPermissionError("the shared category scope cannot be written through the API")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" || req.Icon == "" || req.Color == "" {
		return nil, errs.NewValidationError("name, icon, and color are required fields")
	}
	if n := utf8.RuneCountInString(name); n < 2 || n > 50 {
		return nil, errs.NewValidationError("category name must be between 2 and 50 characters")
	}
	typ := models.TransactionExpense
	if req.Type != "" {
		typ = models.TransactionType(req.Type)
		if !typ.Valid() {
			return nil, errs.NewValidationError("type must be either EXPENSE or INCOME")
		}
	}

	c := &models.Category{
		CategoryID: uuid.New().String(),
		UserID:     uid,
		Name:       name,
		Icon:       req.Icon,
		Color:      req.Color,
		Type:       typ,
		CreatedAt:  time.Now(),
	}
	if err := s.store.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("category added", "category_id", c.CategoryID, "name", name)
	return c, nil
}

// ListCategories returns the shared categories followed by the user's own. A caller whose uid
// collides with the shared scope only sees the shared categories.
func (s *categoryService) ListCategories(ctx context.Context, uid string) ([]*models.Category, error) {
	var defaults, own []*models.Category

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defaults, err = s.store.ListByScope(gctx, models.DefaultScope)
		return err
	})
	if uid != models.DefaultScope {
		g.Go(func() error {
			var err error
			own, err = s.store.ListByScope(gctx, uid)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return append(defaults, own...), nil
}
