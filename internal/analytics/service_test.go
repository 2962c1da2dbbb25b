package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
	pkgerrors "github.com/vestiplan/vestiplan-backend/pkg/errors"
)

type stubAnalyticsRepo struct {
	counts StatusCounts
	totals SaleTotals

	countsErr error
	totalsErr error

	lastCountSince *time.Time
	lastSaleSince  *time.Time
}

func (s *stubAnalyticsRepo) CountByStatus(ctx context.Context, userID uuid.UUID, since *time.Time) (StatusCounts, error) {
	s.lastCountSince = since
	if s.countsErr != nil {
		return nil, s.countsErr
	}
	return s.counts, nil
}

func (s *stubAnalyticsRepo) SaleTotals(ctx context.Context, userID uuid.UUID, since *time.Time) (SaleTotals, error) {
	s.lastSaleSince = since
	if s.totalsErr != nil {
		return SaleTotals{}, s.totalsErr
	}
	return s.totals, nil
}

func newReporter(t *testing.T, repo Repository) *service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	reporter := svc.(*service)
	reporter.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return reporter
}

func TestSalesReportAggregates(t *testing.T) {
	repo := &stubAnalyticsRepo{
		counts: StatusCounts{
			enums.ArticleStatusDraft:     4,
			enums.ArticleStatusPublished: 3,
			enums.ArticleStatusScheduled: 2,
			enums.ArticleStatusSold:      5,
		},
		totals: SaleTotals{
			SoldCount: 5,
			Revenue:   decimal.RequireFromString("125.50"),
			Fees:      decimal.RequireFromString("12.00"),
			Shipping:  decimal.RequireFromString("18.25"),
			NetProfit: decimal.RequireFromString("60.75"),
		},
	}
	svc := newReporter(t, repo)

	report, err := svc.SalesReport(context.Background(), uuid.New(), "30d")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if report.Range != "30d" {
		t.Fatalf("range mismatch: %s", report.Range)
	}
	if report.TotalArticles != 14 {
		t.Fatalf("expected 14 articles total, got %d", report.TotalArticles)
	}
	if report.CountsByStatus["draft"] != 4 || report.CountsByStatus["sold"] != 5 {
		t.Fatalf("status counts mismatch: %+v", report.CountsByStatus)
	}
	if report.Revenue != "125.50" || report.TotalFees != "12.00" || report.TotalShipping != "18.25" {
		t.Fatalf("money totals mismatch: %+v", report)
	}
	if report.NetProfit != "60.75" {
		t.Fatalf("net profit mismatch: %s", report.NetProfit)
	}
	if report.AverageSalePrice != "25.10" {
		t.Fatalf("average sale price mismatch: %s", report.AverageSalePrice)
	}
	// 5 sold out of 10 listed.
	if report.ConversionRate != 50 {
		t.Fatalf("conversion rate mismatch: %v", report.ConversionRate)
	}

	wantSince := time.Date(2026, time.February, 13, 12, 0, 0, 0, time.UTC)
	if repo.lastCountSince == nil || !repo.lastCountSince.Equal(wantSince) {
		t.Fatalf("count filter mismatch: %v", repo.lastCountSince)
	}
	if repo.lastSaleSince == nil || !repo.lastSaleSince.Equal(wantSince) {
		t.Fatalf("sale filter mismatch: %v", repo.lastSaleSince)
	}
}

func TestSalesReportEmptyAccount(t *testing.T) {
	svc := newReporter(t, &stubAnalyticsRepo{counts: StatusCounts{}})

	report, err := svc.SalesReport(context.Background(), uuid.New(), "")
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	if report.Range != RangeAll {
		t.Fatalf("empty range should default to all, got %s", report.Range)
	}
	if report.TotalArticles != 0 || report.SoldCount != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if report.Revenue != "0.00" || report.AverageSalePrice != "0.00" {
		t.Fatalf("zero money must render as 0.00: %+v", report)
	}
	if report.ConversionRate != 0 {
		t.Fatalf("conversion rate must be 0 without listings, got %v", report.ConversionRate)
	}
}

func TestSalesReportAllRangeSkipsFilter(t *testing.T) {
	repo := &stubAnalyticsRepo{counts: StatusCounts{}}
	svc := newReporter(t, repo)

	if _, err := svc.SalesReport(context.Background(), uuid.New(), "all"); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	if repo.lastCountSince != nil || repo.lastSaleSince != nil {
		t.Fatalf("all range must not filter by date")
	}
}

func TestSalesReportRejectsUnknownRange(t *testing.T) {
	svc := newReporter(t, &stubAnalyticsRepo{counts: StatusCounts{}})

	_, err := svc.SalesReport(context.Background(), uuid.New(), "14d")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields, ok := typed.Details().(map[string]string)
	if !ok || fields["range"] == "" {
		t.Fatalf("expected range detail, got %+v", typed.Details())
	}
}

func TestSalesReportWrapsRepoFailure(t *testing.T) {
	svc := newReporter(t, &stubAnalyticsRepo{countsErr: errors.New("connection reset")})

	_, err := svc.SalesReport(context.Background(), uuid.New(), "7d")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
