package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

// Article represents a single resale listing owned by a user.
// Sale columns stay NULL until the article is marked sold.
type Article struct {
	ID              uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID          uuid.UUID               `gorm:"column:user_id;type:uuid;not null"`
	Title           string                  `gorm:"column:title;not null"`
	Description     *string                 `gorm:"column:description"`
	Brand           *string                 `gorm:"column:brand"`
	Size            *string                 `gorm:"column:size"`
	Color           *string                 `gorm:"column:color"`
	Material        *string                 `gorm:"column:material"`
	Condition       *enums.ArticleCondition `gorm:"column:condition"`
	MainCategory    string                  `gorm:"column:main_category;not null"`
	Subcategory     string                  `gorm:"column:subcategory;not null"`
	ItemCategory    *string                 `gorm:"column:item_category"`
	Photos          pq.StringArray          `gorm:"column:photos;type:text[];not null;default:ARRAY[]::text[]"`
	Price           decimal.Decimal         `gorm:"column:price;type:numeric(12,2);not null"`
	ActualValue     *decimal.Decimal        `gorm:"column:actual_value;type:numeric(12,2)"`
	Season          enums.Season            `gorm:"column:season;not null;default:undefined"`
	SuggestedPeriod *string                 `gorm:"column:suggested_period"`
	Status          enums.ArticleStatus     `gorm:"column:status;not null;default:draft"`
	ScheduledFor    *time.Time              `gorm:"column:scheduled_for"`
	PublishedAt     *time.Time              `gorm:"column:published_at"`
	SoldAt          *time.Time              `gorm:"column:sold_at"`
	SoldPrice       *decimal.Decimal        `gorm:"column:sold_price;type:numeric(12,2)"`
	Platform        *string                 `gorm:"column:platform"`
	Fees            *decimal.Decimal        `gorm:"column:fees;type:numeric(12,2)"`
	ShippingCost    *decimal.Decimal        `gorm:"column:shipping_cost;type:numeric(12,2)"`
	BuyerName       *string                 `gorm:"column:buyer_name"`
	SaleNotes       *string                 `gorm:"column:sale_notes"`
	NetProfit       *decimal.Decimal        `gorm:"column:net_profit;type:numeric(12,2)"`
	CreatedAt       time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
