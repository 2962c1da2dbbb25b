package suggestions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/internal/articles"
	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
	"github.com/vestiplan/vestiplan-backend/pkg/pagination"
)

type stubSuggestionsRepo struct {
	suggestions map[uuid.UUID]*models.SellingSuggestion
	create      func(ctx context.Context, suggestion *models.SellingSuggestion) (*models.SellingSuggestion, error)
}

func newStubSuggestionsRepo() *stubSuggestionsRepo {
	return &stubSuggestionsRepo{suggestions: make(map[uuid.UUID]*models.SellingSuggestion)}
}

func (s *stubSuggestionsRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubSuggestionsRepo) Create(ctx context.Context, suggestion *models.SellingSuggestion) (*models.SellingSuggestion, error) {
	if s.create != nil {
		return s.create(ctx, suggestion)
	}
	for _, existing := range s.suggestions {
		if existing.ArticleID == suggestion.ArticleID {
			return nil, errors.New(`duplicate key value violates unique constraint "uq_selling_suggestions_article_id"`)
		}
	}
	if suggestion.ID == uuid.Nil {
		suggestion.ID = uuid.New()
	}
	suggestion.CreatedAt = time.Now()
	s.suggestions[suggestion.ID] = suggestion
	return suggestion, nil
}

func (s *stubSuggestionsRepo) FindByID(ctx context.Context, userID, suggestionID uuid.UUID) (*models.SellingSuggestion, error) {
	suggestion, ok := s.suggestions[suggestionID]
	if !ok || suggestion.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *suggestion
	return &clone, nil
}

func (s *stubSuggestionsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.SellingSuggestion, error) {
	var rows []models.SellingSuggestion
	for _, suggestion := range s.suggestions {
		if suggestion.UserID == userID {
			rows = append(rows, *suggestion)
		}
	}
	return rows, nil
}

func (s *stubSuggestionsRepo) SuggestedArticleIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	set := make(map[uuid.UUID]struct{})
	for _, suggestion := range s.suggestions {
		if suggestion.UserID == userID {
			set[suggestion.ArticleID] = struct{}{}
		}
	}
	return set, nil
}

func (s *stubSuggestionsRepo) UpdateStatus(ctx context.Context, suggestionID uuid.UUID, status enums.SuggestionStatus) error {
	suggestion, ok := s.suggestions[suggestionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	suggestion.Status = status
	return nil
}

type stubArticleRepo struct {
	articles     map[uuid.UUID]*models.Article
	fieldUpdates map[uuid.UUID]map[string]any
	findErr      error
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{
		articles:     make(map[uuid.UUID]*models.Article),
		fieldUpdates: make(map[uuid.UUID]map[string]any),
	}
}

func (s *stubArticleRepo) WithTx(tx *gorm.DB) articles.Repository {
	return s
}

func (s *stubArticleRepo) Create(ctx context.Context, article *models.Article) (*models.Article, error) {
	panic("not implemented")
}

func (s *stubArticleRepo) FindByID(ctx context.Context, userID, articleID uuid.UUID) (*models.Article, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	article, ok := s.articles[articleID]
	if !ok || article.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *article
	return &clone, nil
}

func (s *stubArticleRepo) List(ctx context.Context, userID uuid.UUID, params pagination.Params, filters articles.ListFilters) ([]models.Article, string, error) {
	panic("not implemented")
}

func (s *stubArticleRepo) ListByStatuses(ctx context.Context, userID uuid.UUID, statuses ...enums.ArticleStatus) ([]models.Article, error) {
	var rows []models.Article
	for _, article := range s.articles {
		if article.UserID != userID {
			continue
		}
		for _, status := range statuses {
			if article.Status == status {
				rows = append(rows, *article)
				break
			}
		}
	}
	return rows, nil
}

func (s *stubArticleRepo) Save(ctx context.Context, article *models.Article) (*models.Article, error) {
	panic("not implemented")
}

func (s *stubArticleRepo) UpdateFields(ctx context.Context, articleID uuid.UUID, updates map[string]any) error {
	if _, ok := s.articles[articleID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.fieldUpdates[articleID] = updates
	return nil
}

func (s *stubArticleRepo) Delete(ctx context.Context, articleID uuid.UUID) error {
	delete(s.articles, articleID)
	return nil
}

type fakeTxRunner struct{}

func (fakeTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newSuggestionService(t *testing.T, repo Repository, articleRepo articles.Repository) Service {
	t.Helper()
	svc, err := NewService(repo, articleRepo, fakeTxRunner{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedPlannableArticle(repo *stubArticleRepo, userID uuid.UUID, season enums.Season) *models.Article {
	article := &models.Article{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        "Pull en laine",
		MainCategory: "Femmes",
		Subcategory:  "Pulls, sweats & hoodies",
		Price:        decimal.NewFromInt(15),
		Season:       season,
		Status:       enums.ArticleStatusDraft,
	}
	repo.articles[article.ID] = article
	return article
}

func TestGenerateIsIdempotent(t *testing.T) {
	suggRepo := newStubSuggestionsRepo()
	articleRepo := newStubArticleRepo()
	svc := newSuggestionService(t, suggRepo, articleRepo)
	userID := uuid.New()
	seedPlannableArticle(articleRepo, userID, enums.SeasonWinter)
	seedPlannableArticle(articleRepo, userID, enums.SeasonAllSeasons)

	first, err := svc.Generate(context.Background(), userID)
	if err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	if first.Generated != 2 {
		t.Fatalf("expected 2 suggestions, got %d", first.Generated)
	}

	// Flip one suggestion into a non-pending state; the existence check is
	// status-agnostic so the second run must still skip it.
	for id := range suggRepo.suggestions {
		if err := suggRepo.UpdateStatus(context.Background(), id, enums.SuggestionStatusRejected); err != nil {
			t.Fatalf("update status: %v", err)
		}
		break
	}

	second, err := svc.Generate(context.Background(), userID)
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if second.Generated != 0 {
		t.Fatalf("second run must insert nothing, got %d", second.Generated)
	}
}

func TestGenerateNothingToPlan(t *testing.T) {
	svc := newSuggestionService(t, newStubSuggestionsRepo(), newStubArticleRepo())

	result, err := svc.Generate(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if result.Generated != 0 || result.Message != "nothing to plan" {
		t.Fatalf("expected empty outcome, got %+v", result)
	}
}

func TestGenerateToleratesUniqueViolations(t *testing.T) {
	suggRepo := newStubSuggestionsRepo()
	articleRepo := newStubArticleRepo()
	svc := newSuggestionService(t, suggRepo, articleRepo)
	userID := uuid.New()
	seedPlannableArticle(articleRepo, userID, enums.SeasonSummer)

	// Simulate a concurrent run winning the unique index on every insert.
	suggRepo.create = func(ctx context.Context, suggestion *models.SellingSuggestion) (*models.SellingSuggestion, error) {
		return nil, errors.New(`duplicate key value violates unique constraint "uq_selling_suggestions_article_id"`)
	}

	result, err := svc.Generate(context.Background(), userID)
	if err != nil {
		t.Fatalf("unique violations must not fail the run: %v", err)
	}
	if result.Generated != 0 {
		t.Fatalf("conflicted inserts count as skips, got %d", result.Generated)
	}
}

func TestGenerateAggregatesInsertFailures(t *testing.T) {
	suggRepo := newStubSuggestionsRepo()
	articleRepo := newStubArticleRepo()
	svc := newSuggestionService(t, suggRepo, articleRepo)
	userID := uuid.New()
	seedPlannableArticle(articleRepo, userID, enums.SeasonSummer)

	suggRepo.create = func(ctx context.Context, suggestion *models.SellingSuggestion) (*models.SellingSuggestion, error) {
		return nil, errors.New("connection reset")
	}

	_, err := svc.Generate(context.Background(), userID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestAcceptSchedulesArticle(t *testing.T) {
	suggRepo := newStubSuggestionsRepo()
	articleRepo := newStubArticleRepo()
	svc := newSuggestionService(t, suggRepo, articleRepo)
	userID := uuid.New()
	article := seedPlannableArticle(articleRepo, userID, enums.SeasonWinter)

	suggestedDate := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	suggestion := &models.SellingSuggestion{
		ID:            uuid.New(),
		UserID:        userID,
		ArticleID:     article.ID,
		SuggestedDate: suggestedDate,
		Priority:      enums.SuggestionPriorityLow,
		Reason:        "Winter items - best selling window is September to October",
		Status:        enums.SuggestionStatusPending,
	}
	suggRepo.suggestions[suggestion.ID] = suggestion

	dto, err := svc.Accept(context.Background(), userID, suggestion.ID)
	if err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if dto.Status != string(enums.SuggestionStatusAccepted) {
		t.Fatalf("expected accepted, got %s", dto.Status)
	}

	updates := articleRepo.fieldUpdates[article.ID]
	if updates == nil {
		t.Fatalf("article must be scheduled")
	}
	if updates["status"] != enums.ArticleStatusScheduled {
		t.Fatalf("expected scheduled status, got %v", updates["status"])
	}
	if updates["scheduled_for"] != suggestedDate {
		t.Fatalf("expected scheduled_for %v, got %v", suggestedDate, updates["scheduled_for"])
	}
	if suggRepo.suggestions[suggestion.ID].Status != enums.SuggestionStatusAccepted {
		t.Fatalf("suggestion row must be accepted")
	}
}

func TestAcceptFailsWhenArticleDeleted(t *testing.T) {
	suggRepo := newStubSuggestionsRepo()
	articleRepo := newStubArticleRepo()
	svc := newSuggestionService(t, suggRepo, articleRepo)
	userID := uuid.New()

	suggestion := &models.SellingSuggestion{
		ID:            uuid.New(),
		UserID:        userID,
		ArticleID:     uuid.New(), // article never existed / already deleted
		SuggestedDate: time.Now(),
		Priority:      enums.SuggestionPriorityHigh,
		Reason:        "All-season item - can be listed right away",
		Status:        enums.SuggestionStatusPending,
	}
	suggRepo.suggestions[suggestion.ID] = suggestion

	_, err := svc.Accept(context.Background(), userID, suggestion.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
	if suggRepo.suggestions[suggestion.ID].Status != enums.SuggestionStatusPending {
		t.Fatalf("suggestion must stay pending when accept fails")
	}
	if len(articleRepo.fieldUpdates) != 0 {
		t.Fatalf("no article mutation may be committed")
	}
}

func TestRejectRequiresPending(t *testing.T) {
	suggRepo := newStubSuggestionsRepo()
	articleRepo := newStubArticleRepo()
	svc := newSuggestionService(t, suggRepo, articleRepo)
	userID := uuid.New()

	suggestion := &models.SellingSuggestion{
		ID:            uuid.New(),
		UserID:        userID,
		ArticleID:     uuid.New(),
		SuggestedDate: time.Now(),
		Priority:      enums.SuggestionPriorityMedium,
		Reason:        "Autumn items - best selling window is July to August",
		Status:        enums.SuggestionStatusAccepted,
	}
	suggRepo.suggestions[suggestion.ID] = suggestion

	if _, err := svc.Reject(context.Background(), userID, suggestion.ID); pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict on non-pending suggestion, got %v", err)
	}

	pending := &models.SellingSuggestion{
		ID:            uuid.New(),
		UserID:        userID,
		ArticleID:     uuid.New(),
		SuggestedDate: time.Now(),
		Priority:      enums.SuggestionPriorityMedium,
		Reason:        "Autumn items - best selling window is July to August",
		Status:        enums.SuggestionStatusPending,
	}
	suggRepo.suggestions[pending.ID] = pending

	dto, err := svc.Reject(context.Background(), userID, pending.ID)
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if dto.Status != string(enums.SuggestionStatusRejected) {
		t.Fatalf("expected rejected, got %s", dto.Status)
	}
}
