package suggestions

import (
	"time"

	"github.com/google/uuid"

	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
)

// SuggestionDTO represents one planner recommendation returned to clients.
type SuggestionDTO struct {
	ID            uuid.UUID `json:"id"`
	ArticleID     uuid.UUID `json:"article_id"`
	ArticleTitle  string    `json:"article_title,omitempty"`
	SuggestedDate time.Time `json:"suggested_date"`
	Priority      string    `json:"priority"`
	Reason        string    `json:"reason"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// GenerateResult reports a generation run.
type GenerateResult struct {
	Generated int    `json:"generated"`
	Message   string `json:"message"`
}

// NewSuggestionDTO builds a DTO from the persisted model.
func NewSuggestionDTO(suggestion *models.SellingSuggestion) *SuggestionDTO {
	dto := &SuggestionDTO{
		ID:            suggestion.ID,
		ArticleID:     suggestion.ArticleID,
		SuggestedDate: suggestion.SuggestedDate,
		Priority:      string(suggestion.Priority),
		Reason:        suggestion.Reason,
		Status:        string(suggestion.Status),
		CreatedAt:     suggestion.CreatedAt,
	}
	if suggestion.Article != nil {
		dto.ArticleTitle = suggestion.Article.Title
	}
	return dto
}
