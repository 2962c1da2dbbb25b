package articles

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
)

// ArticleDTO represents the listing payload returned to clients.
type ArticleDTO struct {
	ID              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     *string    `json:"description,omitempty"`
	Brand           *string    `json:"brand,omitempty"`
	Size            *string    `json:"size,omitempty"`
	Color           *string    `json:"color,omitempty"`
	Material        *string    `json:"material,omitempty"`
	Condition       *string    `json:"condition,omitempty"`
	MainCategory    string     `json:"main_category"`
	Subcategory     string     `json:"subcategory"`
	ItemCategory    *string    `json:"item_category,omitempty"`
	Photos          []string   `json:"photos"`
	Price           string     `json:"price"`
	ActualValue     *string    `json:"actual_value,omitempty"`
	Season          string     `json:"season"`
	SuggestedPeriod *string    `json:"suggested_period,omitempty"`
	Status          string     `json:"status"`
	ScheduledFor    *time.Time `json:"scheduled_for,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	Sale            *SaleDTO   `json:"sale,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// SaleDTO carries the sale cluster once an article is sold.
type SaleDTO struct {
	SoldAt       *time.Time `json:"sold_at,omitempty"`
	SoldPrice    *string    `json:"sold_price,omitempty"`
	Platform     *string    `json:"platform,omitempty"`
	Fees         *string    `json:"fees,omitempty"`
	ShippingCost *string    `json:"shipping_cost,omitempty"`
	BuyerName    *string    `json:"buyer_name,omitempty"`
	SaleNotes    *string    `json:"sale_notes,omitempty"`
	NetProfit    *string    `json:"net_profit,omitempty"`
}

// ArticleListResult wraps a page of articles plus the next cursor.
type ArticleListResult struct {
	Articles   []ArticleDTO `json:"articles"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewArticleDTO builds a DTO from the persisted model.
func NewArticleDTO(article *models.Article) *ArticleDTO {
	dto := &ArticleDTO{
		ID:              article.ID,
		Title:           article.Title,
		Description:     article.Description,
		Brand:           article.Brand,
		Size:            article.Size,
		Color:           article.Color,
		Material:        article.Material,
		MainCategory:    article.MainCategory,
		Subcategory:     article.Subcategory,
		ItemCategory:    article.ItemCategory,
		Photos:          append([]string{}, article.Photos...),
		Price:           article.Price.StringFixed(2),
		ActualValue:     decimalPtrString(article.ActualValue),
		Season:          string(article.Season),
		SuggestedPeriod: article.SuggestedPeriod,
		Status:          string(article.Status),
		ScheduledFor:    article.ScheduledFor,
		PublishedAt:     article.PublishedAt,
		CreatedAt:       article.CreatedAt,
		UpdatedAt:       article.UpdatedAt,
	}
	if article.Condition != nil {
		condition := string(*article.Condition)
		dto.Condition = &condition
	}

	if article.SoldAt != nil || article.SoldPrice != nil {
		dto.Sale = &SaleDTO{
			SoldAt:       article.SoldAt,
			SoldPrice:    decimalPtrString(article.SoldPrice),
			Platform:     article.Platform,
			Fees:         decimalPtrString(article.Fees),
			ShippingCost: decimalPtrString(article.ShippingCost),
			BuyerName:    article.BuyerName,
			SaleNotes:    article.SaleNotes,
			NetProfit:    decimalPtrString(article.NetProfit),
		}
	}
	return dto
}

func decimalPtrString(value *decimal.Decimal) *string {
	if value == nil {
		return nil
	}
	s := value.StringFixed(2)
	return &s
}
