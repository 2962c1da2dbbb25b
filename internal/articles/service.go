package articles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
	"github.com/vestiplan/vestiplan-backend/pkg/pagination"
)

// copyTitleSuffix marks duplicated listings.
const copyTitleSuffix = " (Copie)"

// Service exposes article lifecycle operations.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, input CreateArticleInput) (*ArticleDTO, error)
	Get(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDTO, error)
	List(ctx context.Context, userID uuid.UUID, input ListArticlesInput) (*ArticleListResult, error)
	Update(ctx context.Context, userID, articleID uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error)
	ChangeStatus(ctx context.Context, userID, articleID uuid.UUID, status enums.ArticleStatus, scheduledFor *time.Time) (*ArticleDTO, error)
	Schedule(ctx context.Context, userID, articleID uuid.UUID, date time.Time) (*ArticleDTO, error)
	Publish(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDTO, error)
	Duplicate(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDTO, error)
	MarkSold(ctx context.Context, userID, articleID uuid.UUID, input MarkSoldInput) (*ArticleDTO, error)
	Delete(ctx context.Context, userID, articleID uuid.UUID) error
}

// CreateArticleInput holds the validated payload to create an article.
type CreateArticleInput struct {
	Title           string
	Description     *string
	Brand           *string
	Size            *string
	Color           *string
	Material        *string
	Condition       *enums.ArticleCondition
	MainCategory    string
	Subcategory     string
	ItemCategory    *string
	Photos          []string
	Price           decimal.Decimal
	ActualValue     *decimal.Decimal
	Season          enums.Season
	SuggestedPeriod *string
	Status          enums.ArticleStatus
}

// UpdateArticleInput holds optional mutation values for an article.
type UpdateArticleInput struct {
	Title           *string
	Description     *string
	Brand           *string
	Size            *string
	Color           *string
	Material        *string
	Condition       *enums.ArticleCondition
	MainCategory    *string
	Subcategory     *string
	ItemCategory    *string
	Photos          *[]string
	Price           *decimal.Decimal
	ActualValue     *decimal.Decimal
	Season          *enums.Season
	SuggestedPeriod *string
	Status          *enums.ArticleStatus
	ScheduledFor    *time.Time
}

// ListArticlesInput narrows and paginates listings.
type ListArticlesInput struct {
	Pagination pagination.Params
	Status     *enums.ArticleStatus
}

// MarkSoldInput captures the sale record.
type MarkSoldInput struct {
	SoldPrice    decimal.Decimal
	SoldAt       time.Time
	Platform     string
	Fees         decimal.Decimal
	ShippingCost decimal.Decimal
	BuyerName    *string
	SaleNotes    *string
}

type service struct {
	repo      Repository
	publisher Publisher
	now       func() time.Time
}

// NewService constructs an article service instance.
func NewService(repo Repository, publisher Publisher) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("article repository required")
	}
	if publisher == nil {
		return nil, fmt.Errorf("publisher required")
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}, nil
}

// Create validates and inserts a new draft (or ready) article.
func (s *service) Create(ctx context.Context, userID uuid.UUID, input CreateArticleInput) (*ArticleDTO, error) {
	if err := validateCoreFields(input.Title, input.MainCategory, input.Subcategory, input.Price); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = enums.ArticleStatusDraft
	}
	if status != enums.ArticleStatusDraft && status != enums.ArticleStatusReady {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "new articles start as draft or ready").
			WithDetails(map[string]string{"status": "must be draft or ready"})
	}

	season := input.Season
	if season == "" {
		season = enums.SeasonUndefined
	}

	article := &models.Article{
		UserID:          userID,
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		Brand:           input.Brand,
		Size:            input.Size,
		Color:           input.Color,
		Material:        input.Material,
		Condition:       input.Condition,
		MainCategory:    strings.TrimSpace(input.MainCategory),
		Subcategory:     strings.TrimSpace(input.Subcategory),
		ItemCategory:    input.ItemCategory,
		Photos:          append([]string{}, input.Photos...),
		Price:           input.Price,
		ActualValue:     input.ActualValue,
		Season:          season,
		SuggestedPeriod: input.SuggestedPeriod,
		Status:          status,
	}

	created, err := s.repo.Create(ctx, article)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert article")
	}
	return NewArticleDTO(created), nil
}

// Get loads a single article owned by the user.
func (s *service) Get(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDTO, error) {
	article, err := s.loadOwned(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}
	return NewArticleDTO(article), nil
}

// List returns a page of the user's articles.
func (s *service) List(ctx context.Context, userID uuid.UUID, input ListArticlesInput) (*ArticleListResult, error) {
	rows, nextCursor, err := s.repo.List(ctx, userID, input.Pagination, ListFilters{Status: input.Status})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list articles")
	}

	dtos := make([]ArticleDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *NewArticleDTO(&rows[i]))
	}
	return &ArticleListResult{Articles: dtos, NextCursor: nextCursor}, nil
}

// Update applies field mutations and optionally a status transition.
func (s *service) Update(ctx context.Context, userID, articleID uuid.UUID, input UpdateArticleInput) (*ArticleDTO, error) {
	article, err := s.loadOwned(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}
	if article.Status == enums.ArticleStatusSold {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sold articles cannot be updated").
			WithDetails(map[string]string{"status": "article is sold"})
	}

	applyUpdateToArticle(article, input)

	if err := validateCoreFields(article.Title, article.MainCategory, article.Subcategory, article.Price); err != nil {
		return nil, err
	}

	if input.Status != nil {
		if err := applyTransition(article, *input.Status, input.ScheduledFor, s.now()); err != nil {
			return nil, err
		}
	}

	saved, err := s.repo.Save(ctx, article)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update article")
	}
	return NewArticleDTO(saved), nil
}

// ChangeStatus performs a manual lifecycle transition.
func (s *service) ChangeStatus(ctx context.Context, userID, articleID uuid.UUID, status enums.ArticleStatus, scheduledFor *time.Time) (*ArticleDTO, error) {
	article, err := s.loadOwned(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}

	if err := applyTransition(article, status, scheduledFor, s.now()); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"status":        article.Status,
		"scheduled_for": article.ScheduledFor,
		"published_at":  article.PublishedAt,
	}
	if err := s.repo.UpdateFields(ctx, article.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: change article status")
	}
	return NewArticleDTO(article), nil
}

// Schedule moves the article to scheduled at the given date.
func (s *service) Schedule(ctx context.Context, userID, articleID uuid.UUID, date time.Time) (*ArticleDTO, error) {
	return s.ChangeStatus(ctx, userID, articleID, enums.ArticleStatusScheduled, &date)
}

// Publish pushes the article through the marketplace port, then flips it
// to published. Port failure leaves the row untouched.
func (s *service) Publish(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDTO, error) {
	article, err := s.loadOwned(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}
	if article.Status == enums.ArticleStatusSold {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sold articles cannot be published").
			WithDetails(map[string]string{"status": "article is sold"})
	}

	if err := s.publisher.PublishArticle(ctx, article); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeCollaborator, err, "marketplace publish")
	}

	publishedAt := s.now()
	article.Status = enums.ArticleStatusPublished
	article.ScheduledFor = nil
	article.PublishedAt = &publishedAt

	updates := map[string]any{
		"status":        article.Status,
		"scheduled_for": nil,
		"published_at":  article.PublishedAt,
	}
	if err := s.repo.UpdateFields(ctx, article.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: publish article")
	}
	return NewArticleDTO(article), nil
}

// Duplicate copies the listing into a fresh draft with a copy marker.
func (s *service) Duplicate(ctx context.Context, userID, articleID uuid.UUID) (*ArticleDTO, error) {
	source, err := s.loadOwned(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}

	clone := &models.Article{
		UserID:          source.UserID,
		Title:           source.Title + copyTitleSuffix,
		Description:     source.Description,
		Brand:           source.Brand,
		Size:            source.Size,
		Color:           source.Color,
		Material:        source.Material,
		Condition:       source.Condition,
		MainCategory:    source.MainCategory,
		Subcategory:     source.Subcategory,
		ItemCategory:    source.ItemCategory,
		Photos:          append([]string{}, source.Photos...),
		Price:           source.Price,
		ActualValue:     source.ActualValue,
		Season:          source.Season,
		SuggestedPeriod: source.SuggestedPeriod,
		Status:          enums.ArticleStatusDraft,
	}

	created, err := s.repo.Create(ctx, clone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: duplicate article")
	}
	return NewArticleDTO(created), nil
}

// MarkSold records the sale and computes the net profit.
func (s *service) MarkSold(ctx context.Context, userID, articleID uuid.UUID, input MarkSoldInput) (*ArticleDTO, error) {
	if err := validateSale(input); err != nil {
		return nil, err
	}

	article, err := s.loadOwned(ctx, userID, articleID)
	if err != nil {
		return nil, err
	}
	if article.Status == enums.ArticleStatusSold {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "article is already sold")
	}

	costBasis := decimal.Zero
	if article.ActualValue != nil {
		costBasis = *article.ActualValue
	}
	netProfit := input.SoldPrice.Sub(costBasis).Sub(input.Fees).Sub(input.ShippingCost)

	soldAt := input.SoldAt
	article.Status = enums.ArticleStatusSold
	article.ScheduledFor = nil
	article.SoldAt = &soldAt
	article.SoldPrice = &input.SoldPrice
	article.Platform = &input.Platform
	article.Fees = &input.Fees
	article.ShippingCost = &input.ShippingCost
	article.BuyerName = input.BuyerName
	article.SaleNotes = input.SaleNotes
	article.NetProfit = &netProfit

	updates := map[string]any{
		"status":        article.Status,
		"scheduled_for": nil,
		"sold_at":       article.SoldAt,
		"sold_price":    article.SoldPrice,
		"platform":      article.Platform,
		"fees":          article.Fees,
		"shipping_cost": article.ShippingCost,
		"buyer_name":    article.BuyerName,
		"sale_notes":    article.SaleNotes,
		"net_profit":    article.NetProfit,
	}
	if err := s.repo.UpdateFields(ctx, article.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: mark article sold")
	}
	return NewArticleDTO(article), nil
}

// Delete removes the article; FK cascade takes its suggestions along.
func (s *service) Delete(ctx context.Context, userID, articleID uuid.UUID) error {
	if _, err := s.loadOwned(ctx, userID, articleID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, articleID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete article")
	}
	return nil
}

func (s *service) loadOwned(ctx context.Context, userID, articleID uuid.UUID) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, userID, articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "article not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load article")
	}
	return article, nil
}

// applyTransition mutates the article in memory according to the lifecycle
// rules. Any target other than scheduled clears scheduled_for.
func applyTransition(article *models.Article, status enums.ArticleStatus, scheduledFor *time.Time, now time.Time) error {
	if !status.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid article status %q", status)).
			WithDetails(map[string]string{"status": "unknown status"})
	}
	if status == enums.ArticleStatusSold {
		return pkgerrors.New(pkgerrors.CodeValidation, "sold is only reachable by recording a sale").
			WithDetails(map[string]string{"status": "use the sold endpoint"})
	}
	if article.Status == enums.ArticleStatusSold {
		return pkgerrors.New(pkgerrors.CodeValidation, "sold articles cannot transition").
			WithDetails(map[string]string{"status": "article is sold"})
	}

	switch status {
	case enums.ArticleStatusScheduled:
		if scheduledFor == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "scheduled_for is required to schedule").
				WithDetails(map[string]string{"scheduled_for": "required"})
		}
		article.ScheduledFor = scheduledFor
	case enums.ArticleStatusPublished:
		publishedAt := now
		article.ScheduledFor = nil
		article.PublishedAt = &publishedAt
	default:
		article.ScheduledFor = nil
	}
	article.Status = status
	return nil
}

func validateCoreFields(title, mainCategory, subcategory string, price decimal.Decimal) error {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(mainCategory) == "" {
		fields["main_category"] = "main category is required"
	}
	if strings.TrimSpace(subcategory) == "" {
		fields["subcategory"] = "subcategory is required"
	}
	if !price.IsPositive() {
		fields["price"] = "price must be greater than zero"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid article fields").WithDetails(fields)
	}
	return nil
}

func validateSale(input MarkSoldInput) error {
	fields := map[string]string{}
	if !input.SoldPrice.IsPositive() {
		fields["sold_price"] = "sold price must be greater than zero"
	}
	if input.SoldAt.IsZero() {
		fields["sold_at"] = "sold at is required"
	}
	if strings.TrimSpace(input.Platform) == "" {
		fields["platform"] = "platform is required"
	}
	if input.Fees.IsNegative() {
		fields["fees"] = "fees must be non-negative"
	}
	if input.ShippingCost.IsNegative() {
		fields["shipping_cost"] = "shipping cost must be non-negative"
	}
	if len(fields) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid sale record").WithDetails(fields)
	}
	return nil
}

func applyUpdateToArticle(article *models.Article, input UpdateArticleInput) {
	if input.Title != nil {
		article.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		article.Description = input.Description
	}
	if input.Brand != nil {
		article.Brand = input.Brand
	}
	if input.Size != nil {
		article.Size = input.Size
	}
	if input.Color != nil {
		article.Color = input.Color
	}
	if input.Material != nil {
		article.Material = input.Material
	}
	if input.Condition != nil {
		article.Condition = input.Condition
	}
	if input.MainCategory != nil {
		article.MainCategory = strings.TrimSpace(*input.MainCategory)
	}
	if input.Subcategory != nil {
		article.Subcategory = strings.TrimSpace(*input.Subcategory)
	}
	if input.ItemCategory != nil {
		article.ItemCategory = input.ItemCategory
	}
	if input.Photos != nil {
		article.Photos = append([]string(nil), *input.Photos...)
	}
	if input.Price != nil {
		article.Price = *input.Price
	}
	if input.ActualValue != nil {
		article.ActualValue = input.ActualValue
	}
	if input.Season != nil {
		article.Season = *input.Season
	}
	if input.SuggestedPeriod != nil {
		article.SuggestedPeriod = input.SuggestedPeriod
	}
}
