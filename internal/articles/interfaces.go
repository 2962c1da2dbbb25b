package articles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	"github.com/vestiplan/vestiplan-backend/pkg/pagination"
)

// Repository defines persistence operations for article rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	FindByID(ctx context.Context, userID, articleID uuid.UUID) (*models.Article, error)
	List(ctx context.Context, userID uuid.UUID, params pagination.Params, filters ListFilters) ([]models.Article, string, error)
	ListByStatuses(ctx context.Context, userID uuid.UUID, statuses ...enums.ArticleStatus) ([]models.Article, error)
	Save(ctx context.Context, article *models.Article) (*models.Article, error)
	UpdateFields(ctx context.Context, articleID uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, articleID uuid.UUID) error
}

// ListFilters narrows article listings.
type ListFilters struct {
	Status *enums.ArticleStatus
}

// Publisher is the marketplace publishing port. The stub implementation
// lives in internal/publisher.
type Publisher interface {
	PublishArticle(ctx context.Context, article *models.Article) error
}
