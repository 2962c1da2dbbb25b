package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vestiplan/vestiplan-backend/internal/repo"
	"github.com/vestiplan/vestiplan-backend/pkg/db/models"
	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

type repository struct {
	repo.Base
}

// NewRepository wires the analytics reads onto a gorm handle.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) CountByStatus(ctx context.Context, userID uuid.UUID, since *time.Time) (StatusCounts, error) {
	var rows []struct {
		Status enums.ArticleStatus
		Total  int64
	}

	query := r.DB(ctx).
		Model(&models.Article{}).
		Select("status, count(*) AS total").
		Where("user_id = ?", userID)
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}
	if err := query.Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(StatusCounts, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (r *repository) SaleTotals(ctx context.Context, userID uuid.UUID, since *time.Time) (SaleTotals, error) {
	var row struct {
		SoldCount int64
		Revenue   decimal.Decimal
		Fees      decimal.Decimal
		Shipping  decimal.Decimal
		NetProfit decimal.Decimal
	}

	query := r.DB(ctx).
		Model(&models.Article{}).
		Select(`count(*) AS sold_count,
			coalesce(sum(sold_price), 0) AS revenue,
			coalesce(sum(fees), 0) AS fees,
			coalesce(sum(shipping_cost), 0) AS shipping,
			coalesce(sum(net_profit), 0) AS net_profit`).
		Where("user_id = ? AND sold_at IS NOT NULL", userID)
	if since != nil {
		query = query.Where("sold_at >= ?", *since)
	}
	if err := query.Scan(&row).Error; err != nil {
		return SaleTotals{}, err
	}

	return SaleTotals{
		SoldCount: row.SoldCount,
		Revenue:   row.Revenue,
		Fees:      row.Fees,
		Shipping:  row.Shipping,
		NetProfit: row.NetProfit,
	}, nil
}
