package suggestions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/internal/articles"
	"github.com/vestiplan/vestiplan-backend/pkg/db"
	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
)

const uniqueArticleConstraint = "uq_selling_suggestions_article_id"

// Service exposes the selling suggestion workflow.
type Service interface {
	Generate(ctx context.Context, userID uuid.UUID) (*GenerateResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]SuggestionDTO, error)
	Accept(ctx context.Context, userID, suggestionID uuid.UUID) (*SuggestionDTO, error)
	Reject(ctx context.Context, userID, suggestionID uuid.UUID) (*SuggestionDTO, error)
}

type service struct {
	repo     Repository
	articles articles.Repository
	tx       txRunner
	now      func() time.Time
}

// NewService constructs a suggestion service instance.
func NewService(repo Repository, articleRepo articles.Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("suggestion repository required")
	}
	if articleRepo == nil {
		return nil, fmt.Errorf("article repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{
		repo:     repo,
		articles: articleRepo,
		tx:       tx,
		now:      time.Now,
	}, nil
}

// Generate scores the user's draft and ready articles and inserts pending
// suggestions for those that have none yet. Runs are idempotent: an article
// with any existing suggestion row is skipped regardless of its status.
func (s *service) Generate(ctx context.Context, userID uuid.UUID) (*GenerateResult, error) {
	plannable, err := s.articles.ListByStatuses(ctx, userID, enums.ArticleStatusDraft, enums.ArticleStatusReady)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list plannable articles")
	}
	if len(plannable) == 0 {
		return &GenerateResult{Generated: 0, Message: "nothing to plan"}, nil
	}

	existing, err := s.repo.SuggestedArticleIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load suggested article ids")
	}

	now := s.now()
	generated := 0
	var insertErrs error
	for i := range plannable {
		article := &plannable[i]
		if _, seen := existing[article.ID]; seen {
			continue
		}

		plan := PlanForSeason(article.Season, now)
		suggestion := &models.SellingSuggestion{
			UserID:        userID,
			ArticleID:     article.ID,
			SuggestedDate: plan.SuggestedDate,
			Priority:      plan.Priority,
			Reason:        plan.Reason,
			Status:        enums.SuggestionStatusPending,
		}
		if _, err := s.repo.Create(ctx, suggestion); err != nil {
			// A concurrent run won the unique index; treat as a skip.
			if db.IsUniqueViolation(err, uniqueArticleConstraint) {
				continue
			}
			insertErrs = multierr.Append(insertErrs, fmt.Errorf("article %s: %w", article.ID, err))
			continue
		}
		generated++
	}

	if insertErrs != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, insertErrs, "db: insert suggestions")
	}

	message := fmt.Sprintf("%d suggestions generated", generated)
	if generated == 0 {
		message = "nothing to plan"
	}
	return &GenerateResult{Generated: generated, Message: message}, nil
}

// List returns the user's suggestions ordered for the planner view.
func (s *service) List(ctx context.Context, userID uuid.UUID) ([]SuggestionDTO, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list suggestions")
	}
	dtos := make([]SuggestionDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewSuggestionDTO(&rows[i]))
	}
	return dtos, nil
}

// Accept schedules the article at the suggested date and marks the
// suggestion accepted, atomically. Any failure rolls both writes back.
func (s *service) Accept(ctx context.Context, userID, suggestionID uuid.UUID) (*SuggestionDTO, error) {
	suggestion, err := s.loadPending(ctx, userID, suggestionID)
	if err != nil {
		return nil, err
	}

	if err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		articleRepo := s.articles.WithTx(tx)
		if _, err := articleRepo.FindByID(ctx, userID, suggestion.ArticleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "article no longer exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load article")
		}
		if err := articleRepo.UpdateFields(ctx, suggestion.ArticleID, map[string]any{
			"status":        enums.ArticleStatusScheduled,
			"scheduled_for": suggestion.SuggestedDate,
		}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: schedule article")
		}
		if err := s.repo.WithTx(tx).UpdateStatus(ctx, suggestion.ID, enums.SuggestionStatusAccepted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: accept suggestion")
		}
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "accept suggestion")
	}

	suggestion.Status = enums.SuggestionStatusAccepted
	return NewSuggestionDTO(suggestion), nil
}

// Reject moves a pending suggestion to its terminal rejected state.
func (s *service) Reject(ctx context.Context, userID, suggestionID uuid.UUID) (*SuggestionDTO, error) {
	suggestion, err := s.loadPending(ctx, userID, suggestionID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, suggestion.ID, enums.SuggestionStatusRejected); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reject suggestion")
	}
	suggestion.Status = enums.SuggestionStatusRejected
	return NewSuggestionDTO(suggestion), nil
}

func (s *service) loadPending(ctx context.Context, userID, suggestionID uuid.UUID) (*models.SellingSuggestion, error) {
	suggestion, err := s.repo.FindByID(ctx, userID, suggestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "suggestion not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load suggestion")
	}
	if suggestion.Status != enums.SuggestionStatusPending {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "suggestion is no longer pending")
	}
	return suggestion, nil
}
