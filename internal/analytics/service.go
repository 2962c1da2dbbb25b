package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
)

// RangeAll covers the whole account history and is the default.
const RangeAll = "all"

var rangeDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
}

// SalesReportDTO is the aggregate view served by /v1/analytics/sales.
// Money fields render with two decimals.
type SalesReportDTO struct {
	Range            string           `json:"range"`
	TotalArticles    int64            `json:"total_articles"`
	CountsByStatus   map[string]int64 `json:"counts_by_status"`
	SoldCount        int64            `json:"sold_count"`
	Revenue          string           `json:"revenue"`
	TotalFees        string           `json:"total_fees"`
	TotalShipping    string           `json:"total_shipping"`
	NetProfit        string           `json:"net_profit"`
	AverageSalePrice string           `json:"average_sale_price"`
	ConversionRate   float64          `json:"conversion_rate"`
}

// Service computes read-only sales metrics per user.
type Service interface {
	SalesReport(ctx context.Context, userID uuid.UUID, rangeKey string) (*SalesReportDTO, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

// NewService wires the analytics service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo, now: time.Now}, nil
}

// SalesReport aggregates listing counts and sale figures over the given
// range. Listing counts filter on created_at, sale figures on sold_at.
func (s *service) SalesReport(ctx context.Context, userID uuid.UUID, rangeKey string) (*SalesReportDTO, error) {
	since, normalized, err := s.resolveRange(rangeKey)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountByStatus(ctx, userID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count articles by status")
	}
	totals, err := s.repo.SaleTotals(ctx, userID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate sale totals")
	}

	var totalArticles int64
	countsByStatus := make(map[string]int64, len(counts))
	for status, total := range counts {
		totalArticles += total
		countsByStatus[status.String()] = total
	}

	averageSalePrice := decimal.Zero
	if totals.SoldCount > 0 {
		averageSalePrice = totals.Revenue.DivRound(decimal.NewFromInt(totals.SoldCount), 2)
	}

	// Conversion counts every listing that reached a selling channel.
	listed := counts[enums.ArticleStatusPublished] +
		counts[enums.ArticleStatusScheduled] +
		counts[enums.ArticleStatusSold]
	conversionRate := 0.0
	if listed > 0 {
		conversionRate = decimal.NewFromInt(counts[enums.ArticleStatusSold]).
			Div(decimal.NewFromInt(listed)).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			InexactFloat64()
	}

	return &SalesReportDTO{
		Range:            normalized,
		TotalArticles:    totalArticles,
		CountsByStatus:   countsByStatus,
		SoldCount:        totals.SoldCount,
		Revenue:          totals.Revenue.StringFixed(2),
		TotalFees:        totals.Fees.StringFixed(2),
		TotalShipping:    totals.Shipping.StringFixed(2),
		NetProfit:        totals.NetProfit.StringFixed(2),
		AverageSalePrice: averageSalePrice.StringFixed(2),
		ConversionRate:   conversionRate,
	}, nil
}

func (s *service) resolveRange(rangeKey string) (*time.Time, string, error) {
	if rangeKey == "" || rangeKey == RangeAll {
		return nil, RangeAll, nil
	}
	days, ok := rangeDays[rangeKey]
	if !ok {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "unknown analytics range").
			WithDetails(map[string]string{"range": "must be one of 7d, 30d, 90d, all"})
	}
	since := s.now().AddDate(0, 0, -days)
	return &since, rangeKey, nil
}
