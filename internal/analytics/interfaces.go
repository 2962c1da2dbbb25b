package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

// StatusCounts maps article statuses to how many listings hold each one.
type StatusCounts map[enums.ArticleStatus]int64

// SaleTotals aggregates the sale columns of sold articles.
type SaleTotals struct {
	SoldCount int64
	Revenue   decimal.Decimal
	Fees      decimal.Decimal
	Shipping  decimal.Decimal
	NetProfit decimal.Decimal
}

// Repository reads aggregates off the articles table. Listing counts
// filter on created_at, sale figures on sold_at.
type Repository interface {
	CountByStatus(ctx context.Context, userID uuid.UUID, since *time.Time) (StatusCounts, error)
	SaleTotals(ctx context.Context, userID uuid.UUID, since *time.Time) (SaleTotals, error)
}
