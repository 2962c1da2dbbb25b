package articles

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	"github.com/vestiplan/vestiplan-backend/pkg/pagination"
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

// Create inserts a new article row.
func (r *repository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	if err := r.db.WithContext(ctx).Create(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// FindByID loads an article scoped to its owner.
func (r *repository) FindByID(ctx context.Context, userID, articleID uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).
		First(&article, "id = ? AND user_id = ?", articleID, userID).
		Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// List returns a cursor-paginated page of the user's articles, newest first.
func (r *repository) List(ctx context.Context, userID uuid.UUID, params pagination.Params, filters ListFilters) ([]models.Article, string, error) {
	pageSize := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, "", err
	}

	qb := r.db.WithContext(ctx).
		Where("user_id = ?", userID)

	if filters.Status != nil {
		qb = qb.Where("status = ?", *filters.Status)
	}
	if cursor != nil {
		qb = qb.Where("(created_at < ?) OR (created_at = ? AND id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Article
	if err := qb.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limitWithBuffer).
		Find(&rows).
		Error; err != nil {
		return nil, "", err
	}

	nextCursor := ""
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return rows, nextCursor, nil
}

// ListByStatuses returns every article of the user in any of the given states.
func (r *repository) ListByStatuses(ctx context.Context, userID uuid.UUID, statuses ...enums.ArticleStatus) ([]models.Article, error) {
	var rows []models.Article
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status IN ?", userID, statuses).
		Order("created_at DESC").
		Find(&rows).
		Error
	return rows, err
}

// Save persists the full article row.
func (r *repository) Save(ctx context.Context, article *models.Article) (*models.Article, error) {
	if err := r.db.WithContext(ctx).Save(article).Error; err != nil {
		return nil, err
	}
	return article, nil
}

// UpdateFields applies a partial column update to one article.
func (r *repository) UpdateFields(ctx context.Context, articleID uuid.UUID, updates map[string]any) error {
	result := r.db.WithContext(ctx).
		Model(&models.Article{}).
		Where("id = ?", articleID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the article; suggestion rows follow via the FK cascade.
func (r *repository) Delete(ctx context.Context, articleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", articleID).
		Delete(&models.Article{}).
		Error
}
