package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

// SellingSuggestion is a planner recommendation for one article.
// At most one suggestion exists per article, enforced by a unique
// index so regeneration never duplicates rows.
type SellingSuggestion struct {
	ID            uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID        uuid.UUID                `gorm:"column:user_id;type:uuid;not null"`
	ArticleID     uuid.UUID                `gorm:"column:article_id;type:uuid;not null;uniqueIndex:uq_selling_suggestions_article_id"`
	Article       *Article                 `gorm:"foreignKey:ArticleID;constraint:OnDelete:CASCADE"`
	SuggestedDate time.Time                `gorm:"column:suggested_date;not null"`
	Priority      enums.SuggestionPriority `gorm:"column:priority;not null"`
	Reason        string                   `gorm:"column:reason;not null"`
	Status        enums.SuggestionStatus   `gorm:"column:status;not null;default:pending"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
