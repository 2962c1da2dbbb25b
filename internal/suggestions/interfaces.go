package suggestions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

// Repository defines persistence operations for suggestion rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, suggestion *models.SellingSuggestion) (*models.SellingSuggestion, error)
	FindByID(ctx context.Context, userID, suggestionID uuid.UUID) (*models.SellingSuggestion, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SellingSuggestion, error)
	SuggestedArticleIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
	UpdateStatus(ctx context.Context, suggestionID uuid.UUID, status enums.SuggestionStatus) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
