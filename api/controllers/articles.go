package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vestiplan/vestiplan-backend/api/middleware"
	"github.com/vestiplan/vestiplan-backend/api/responses"
	"github.com/vestiplan/vestiplan-backend/api/validators"
	articlesvc "github.com/vestiplan/vestiplan-backend/internal/articles"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
	"github.com/vestiplan/vestiplan-backend/pkg/logger"
	"github.com/vestiplan/vestiplan-backend/pkg/pagination"
)

// CreateArticle handles POST /v1/articles.
func CreateArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createArticleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		article, err := svc.Create(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, article)
	}
}

// GetArticle handles GET /v1/articles/{id}.
func GetArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		article, err := svc.Get(r.Context(), userID, articleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, article)
	}
}

// ListArticles handles GET /v1/articles with optional status filter and
// cursor pagination.
func ListArticles(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := authedUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := articlesvc.ListArticlesInput{
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			},
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, parseErr := enums.ParseArticleStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			input.Status = &status
		}

		result, err := svc.List(r.Context(), userID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// UpdateArticle handles PUT /v1/articles/{id}.
func UpdateArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateArticleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		article, err := svc.Update(r.Context(), userID, articleID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, article)
	}
}

// DeleteArticle handles DELETE /v1/articles/{id}.
func DeleteArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, articleID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// DuplicateArticle handles POST /v1/articles/{id}/duplicate.
func DuplicateArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		article, err := svc.Duplicate(r.Context(), userID, articleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, article)
	}
}

// ChangeArticleStatus handles POST /v1/articles/{id}/status.
func ChangeArticleStatus(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload changeStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseArticleStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		article, err := svc.ChangeStatus(r.Context(), userID, articleID, status, payload.ScheduledFor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, article)
	}
}

// ScheduleArticle handles POST /v1/articles/{id}/schedule.
func ScheduleArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload scheduleArticleRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		article, err := svc.Schedule(r.Context(), userID, articleID, payload.ScheduledFor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, article)
	}
}

// PublishArticle handles POST /v1/articles/{id}/publish.
func PublishArticle(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		article, err := svc.Publish(r.Context(), userID, articleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, article)
	}
}

// MarkArticleSold handles POST /v1/articles/{id}/sold.
func MarkArticleSold(svc articlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, articleID, err := authedUserAndArticle(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload markSoldRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		article, err := svc.MarkSold(r.Context(), userID, articleID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, article)
	}
}

type createArticleRequest struct {
	Title           string   `json:"title" validate:"required"`
	Description     *string  `json:"description,omitempty"`
	Brand           *string  `json:"brand,omitempty"`
	Size            *string  `json:"size,omitempty"`
	Color           *string  `json:"color,omitempty"`
	Material        *string  `json:"material,omitempty"`
	Condition       *string  `json:"condition,omitempty"`
	MainCategory    string   `json:"main_category" validate:"required"`
	Subcategory     string   `json:"subcategory" validate:"required"`
	ItemCategory    *string  `json:"item_category,omitempty"`
	Photos          []string `json:"photos,omitempty"`
	Price           string   `json:"price" validate:"required"`
	ActualValue     *string  `json:"actual_value,omitempty"`
	Season          *string  `json:"season,omitempty"`
	SuggestedPeriod *string  `json:"suggested_period,omitempty"`
	Status          *string  `json:"status,omitempty"`
}

func (r createArticleRequest) toInput() (articlesvc.CreateArticleInput, error) {
	price, err := parseMoney(r.Price, "price")
	if err != nil {
		return articlesvc.CreateArticleInput{}, err
	}

	input := articlesvc.CreateArticleInput{
		Title:           strings.TrimSpace(r.Title),
		Description:     r.Description,
		Brand:           r.Brand,
		Size:            r.Size,
		Color:           r.Color,
		Material:        r.Material,
		MainCategory:    strings.TrimSpace(r.MainCategory),
		Subcategory:     strings.TrimSpace(r.Subcategory),
		ItemCategory:    r.ItemCategory,
		Photos:          r.Photos,
		Price:           price,
		SuggestedPeriod: r.SuggestedPeriod,
	}

	if r.ActualValue != nil {
		value, parseErr := parseMoney(*r.ActualValue, "actual_value")
		if parseErr != nil {
			return articlesvc.CreateArticleInput{}, parseErr
		}
		input.ActualValue = &value
	}
	if r.Condition != nil {
		condition, parseErr := enums.ParseArticleCondition(strings.TrimSpace(*r.Condition))
		if parseErr != nil {
			return articlesvc.CreateArticleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid condition")
		}
		input.Condition = &condition
	}
	if r.Season != nil {
		season, parseErr := enums.ParseSeason(strings.TrimSpace(*r.Season))
		if parseErr != nil {
			return articlesvc.CreateArticleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid season")
		}
		input.Season = season
	}
	if r.Status != nil {
		status, parseErr := enums.ParseArticleStatus(strings.TrimSpace(*r.Status))
		if parseErr != nil {
			return articlesvc.CreateArticleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status")
		}
		input.Status = status
	}

	return input, nil
}

type updateArticleRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Brand           *string    `json:"brand,omitempty"`
	Size            *string    `json:"size,omitempty"`
	Color           *string    `json:"color,omitempty"`
	Material        *string    `json:"material,omitempty"`
	Condition       *string    `json:"condition,omitempty"`
	MainCategory    *string    `json:"main_category,omitempty"`
	Subcategory     *string    `json:"subcategory,omitempty"`
	ItemCategory    *string    `json:"item_category,omitempty"`
	Photos          *[]string  `json:"photos,omitempty"`
	Price           *string    `json:"price,omitempty"`
	ActualValue     *string    `json:"actual_value,omitempty"`
	Season          *string    `json:"season,omitempty"`
	SuggestedPeriod *string    `json:"suggested_period,omitempty"`
	Status          *string    `json:"status,omitempty"`
	ScheduledFor    *time.Time `json:"scheduled_for,omitempty"`
}

func (r updateArticleRequest) toInput() (articlesvc.UpdateArticleInput, error) {
	input := articlesvc.UpdateArticleInput{
		Title:           r.Title,
		Description:     r.Description,
		Brand:           r.Brand,
		Size:            r.Size,
		Color:           r.Color,
		Material:        r.Material,
		MainCategory:    r.MainCategory,
		Subcategory:     r.Subcategory,
		ItemCategory:    r.ItemCategory,
		Photos:          r.Photos,
		SuggestedPeriod: r.SuggestedPeriod,
		ScheduledFor:    r.ScheduledFor,
	}

	if r.Price != nil {
		price, err := parseMoney(*r.Price, "price")
		if err != nil {
			return articlesvc.UpdateArticleInput{}, err
		}
		input.Price = &price
	}
	if r.ActualValue != nil {
		value, err := parseMoney(*r.ActualValue, "actual_value")
		if err != nil {
			return articlesvc.UpdateArticleInput{}, err
		}
		input.ActualValue = &value
	}
	if r.Condition != nil {
		condition, err := enums.ParseArticleCondition(strings.TrimSpace(*r.Condition))
		if err != nil {
			return articlesvc.UpdateArticleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid condition")
		}
		input.Condition = &condition
	}
	if r.Season != nil {
		season, err := enums.ParseSeason(strings.TrimSpace(*r.Season))
		if err != nil {
			return articlesvc.UpdateArticleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid season")
		}
		input.Season = &season
	}
	if r.Status != nil {
		status, err := enums.ParseArticleStatus(strings.TrimSpace(*r.Status))
		if err != nil {
			return articlesvc.UpdateArticleInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status")
		}
		input.Status = &status
	}

	return input, nil
}

type changeStatusRequest struct {
	Status       string     `json:"status" validate:"required"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
}

type scheduleArticleRequest struct {
	ScheduledFor time.Time `json:"scheduled_for" validate:"required"`
}

type markSoldRequest struct {
	SoldPrice    string     `json:"sold_price" validate:"required"`
	SoldAt       *time.Time `json:"sold_at,omitempty"`
	Platform     string     `json:"platform" validate:"required"`
	Fees         *string    `json:"fees,omitempty"`
	ShippingCost *string    `json:"shipping_cost,omitempty"`
	BuyerName    *string    `json:"buyer_name,omitempty"`
	SaleNotes    *string    `json:"sale_notes,omitempty"`
}

func (r markSoldRequest) toInput() (articlesvc.MarkSoldInput, error) {
	soldPrice, err := parseMoney(r.SoldPrice, "sold_price")
	if err != nil {
		return articlesvc.MarkSoldInput{}, err
	}

	input := articlesvc.MarkSoldInput{
		SoldPrice: soldPrice,
		Platform:  strings.TrimSpace(r.Platform),
		BuyerName: r.BuyerName,
		SaleNotes: r.SaleNotes,
	}

	input.SoldAt = time.Now().UTC()
	if r.SoldAt != nil {
		input.SoldAt = *r.SoldAt
	}
	if r.Fees != nil {
		fees, parseErr := parseMoney(*r.Fees, "fees")
		if parseErr != nil {
			return articlesvc.MarkSoldInput{}, parseErr
		}
		input.Fees = fees
	}
	if r.ShippingCost != nil {
		shipping, parseErr := parseMoney(*r.ShippingCost, "shipping_cost")
		if parseErr != nil {
			return articlesvc.MarkSoldInput{}, parseErr
		}
		input.ShippingCost = shipping
	}

	return input, nil
}

func parseMoney(raw, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid amount").
			WithDetails(map[string]string{field: "must be a decimal number"})
	}
	return value, nil
}

func authedUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user context missing")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user id")
	}
	return userID, nil
}

func authedUserAndArticle(r *http.Request) (uuid.UUID, uuid.UUID, error) {
	userID, err := authedUserID(r)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}
	articleID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid article id")
	}
	return userID, articleID, nil
}
