package suggestions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

// Create inserts a new suggestion row.
func (r *repository) Create(ctx context.Context, suggestion *models.SellingSuggestion) (*models.SellingSuggestion, error) {
	if err := r.db.WithContext(ctx).Create(suggestion).Error; err != nil {
		return nil, err
	}
	return suggestion, nil
}

// FindByID loads a suggestion scoped to its owner.
func (r *repository) FindByID(ctx context.Context, userID, suggestionID uuid.UUID) (*models.SellingSuggestion, error) {
	var suggestion models.SellingSuggestion
	if err := r.db.WithContext(ctx).
		First(&suggestion, "id = ? AND user_id = ?", suggestionID, userID).
		Error; err != nil {
		return nil, err
	}
	return &suggestion, nil
}

// ListByUser returns the user's suggestions with their articles preloaded,
// pending first, then by priority, then newest first.
func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SellingSuggestion, error) {
	var rows []models.SellingSuggestion
	err := r.db.WithContext(ctx).
		Preload("Article").
		Where("user_id = ?", userID).
		Order("CASE status WHEN 'pending' THEN 0 ELSE 1 END").
		Order("CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END").
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// SuggestedArticleIDs returns every article id that already has a
// suggestion row, whatever its status.
func (r *repository) SuggestedArticleIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&models.SellingSuggestion{}).
		Where("user_id = ?", userID).
		Pluck("article_id", &ids).
		Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// UpdateStatus moves one suggestion to the given workflow state.
func (r *repository) UpdateStatus(ctx context.Context, suggestionID uuid.UUID, status enums.SuggestionStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.SellingSuggestion{}).
		Where("id = ?", suggestionID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
