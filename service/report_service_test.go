package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine-backoffice/models"
)

var reportNow = time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC)

func storedQuote(id string, status models.QuoteStatus, at time.Time, cost, sale string, qty int, shipping string) models.Quote {
	q := models.Quote{
		ID:        id,
		CreatedAt: at,
		Status:    status,
		Lines: []models.LineItem{{
			ItemKind:               models.ItemKindProduct,
			ItemID:                 1,
			Quantity:               qty,
			UnitCostAtCapture:      d(cost),
			UnitSalePriceAtCapture: d(sale),
		}},
		ShippingAmount: d(shipping),
		DiscountAmount: d("0"),
	}
	q.GrandTotal = q.ComputeGrandTotal()
	return q
}

func newReportFixture(t *testing.T, quotes ...models.Quote) (*memStore, *ReportService) {
	t.Helper()
	store := newMemStore()
	for _, q := range quotes {
		require.NoError(t, memQuotes{store}.Create(context.Background(), &q))
	}
	svc := NewReportService(memQuotes{store}, memProducts{store}, memGoals{store}, time.UTC)
	svc.now = func() time.Time { return reportNow }
	return store, svc
}

func octoberQuotes() []models.Quote {
	broken := storedQuote("broken", models.QuoteStatusConverted, time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC), "10", "20", 1, "0")
	broken.Defects = []string{models.MissingField(models.ColumnGrandTotal)}

	return []models.Quote{
		// today: sales 50, profit 20
		storedQuote("today", models.QuoteStatusConverted, time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC), "15", "25", 2, "0"),
		// earlier this month: sales 105, profit 65
		storedQuote("early", models.QuoteStatusConverted, time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC), "20", "50", 2, "5"),
		storedQuote("p1", models.QuoteStatusPending, time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC), "10", "20", 1, "0"),
		storedQuote("p2", models.QuoteStatusPending, time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC), "10", "20", 1, "0"),
		storedQuote("cancelled", models.QuoteStatusCancelled, time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC), "10", "20", 1, "0"),
		// previous month: sales 60, profit 30
		storedQuote("sept", models.QuoteStatusConverted, time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC), "10", "20", 3, "0"),
		broken,
	}
}

func TestDashboard(t *testing.T) {
	store, svc := newReportFixture(t, octoberQuotes()...)
	store.seedProduct("Coleira", "COL-1", "10", "0", nil)
	store.seedProduct("Guia", "GUI-1", "10", "0", nil)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, d("155").Equal(dash.MonthSales), dash.MonthSales.String())
	assert.True(t, d("85").Equal(dash.MonthProfit), dash.MonthProfit.String())
	assert.Equal(t, 2, dash.PendingQuotes)
	assert.Equal(t, 2, dash.TotalProducts)
	assert.Equal(t, 1, dash.SkippedQuotes)
	require.Len(t, dash.RecentPending, 2)
	assert.Equal(t, "p1", dash.RecentPending[0].ID)
}

func TestDashboard_RecentPendingLimit(t *testing.T) {
	var quotes []models.Quote
	for i := 1; i <= 7; i++ {
		quotes = append(quotes, storedQuote(fmt.Sprintf("p%d", i), models.QuoteStatusPending, time.Date(2026, 10, i, 9, 0, 0, 0, time.UTC), "1", "2", 1, "0"))
	}
	_, svc := newReportFixture(t, quotes...)

	dash, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, dash.PendingQuotes)
	require.Len(t, dash.RecentPending, 5)
	assert.Equal(t, "p7", dash.RecentPending[0].ID)
	assert.Equal(t, "p3", dash.RecentPending[4].ID)
}

func TestFinanceStats(t *testing.T) {
	_, svc := newReportFixture(t, octoberQuotes()...)
	_, err := svc.SaveGoal(context.Background(), &models.SaveGoalRequest{SalesTarget: d("310"), ProfitTarget: d("0")})
	require.NoError(t, err)

	stats, err := svc.FinanceStats(context.Background())
	require.NoError(t, err)

	assert.True(t, d("50").Equal(stats.TodaySales), stats.TodaySales.String())
	assert.True(t, d("155").Equal(stats.MonthSales.Current))
	assert.True(t, d("50").Equal(stats.MonthSales.ProgressPercent), stats.MonthSales.ProgressPercent.String())
	// A zero target reports zero progress
	assert.True(t, stats.MonthProfit.ProgressPercent.IsZero())
	assert.Equal(t, 1, stats.SkippedQuotes)
}

func TestSaveGoal_RejectsNegative(t *testing.T) {
	_, svc := newReportFixture(t)
	_, err := svc.SaveGoal(context.Background(), &models.SaveGoalRequest{SalesTarget: d("-1"), ProfitTarget: d("0")})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	goal, err := svc.Goal(context.Background())
	require.NoError(t, err)
	assert.True(t, goal.SalesTarget.IsZero())
}

func TestReport_SalesAndProfit(t *testing.T) {
	_, svc := newReportFixture(t, octoberQuotes()...)

	for _, kind := range []models.ReportKind{models.ReportKindSales, models.ReportKindProfit} {
		report, err := svc.Report(context.Background(), kind)
		require.NoError(t, err)
		assert.Equal(t, kind, report.Kind)
		assert.Contains(t, report.Title, "outubro/2026")

		summary, ok := report.Body.(models.PeriodSummary)
		require.True(t, ok)
		assert.True(t, d("155").Equal(summary.GrossSales))
		assert.True(t, d("85").Equal(summary.Profit))
		assert.Len(t, summary.Skipped, 1)
	}
}

func TestReport_Growth(t *testing.T) {
	_, svc := newReportFixture(t, octoberQuotes()...)

	report, err := svc.Report(context.Background(), models.ReportKindGrowth)
	require.NoError(t, err)
	assert.Equal(t, "Relatório de Crescimento - outubro/2026 vs setembro/2026", report.Title)

	cmp, ok := report.Body.(models.PeriodComparison)
	require.True(t, ok)
	assert.True(t, d("60").Equal(cmp.Previous.GrossSales))
	// (155 - 60) / 60 * 100
	assert.True(t, d("158.33").Equal(cmp.SalesGrowth.Percent.Round(2)), cmp.SalesGrowth.Percent.String())
	assert.Equal(t, 1, cmp.SalesGrowth.Sign)
	assert.False(t, cmp.SalesGrowth.Infinite)
}

func TestReport_GrowthFromEmptyMonthIsInfinite(t *testing.T) {
	_, svc := newReportFixture(t,
		storedQuote("now", models.QuoteStatusConverted, time.Date(2026, 10, 2, 9, 0, 0, 0, time.UTC), "10", "20", 1, "0"),
	)

	report, err := svc.Report(context.Background(), models.ReportKindGrowth)
	require.NoError(t, err)
	cmp := report.Body.(models.PeriodComparison)
	assert.True(t, cmp.SalesGrowth.Infinite)
	assert.Equal(t, 1, cmp.SalesGrowth.Sign)
}

func TestMonthlyClose_PreviousMonth(t *testing.T) {
	_, svc := newReportFixture(t, octoberQuotes()...)

	closure, err := svc.MonthlyClose(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), closure.PeriodStart)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), closure.PeriodEnd)
	assert.True(t, d("60").Equal(closure.GrossSales))
	assert.Equal(t, 2, closure.TotalQuotes)
	assert.Equal(t, 1, closure.ConvertedQuotes)
	assert.True(t, d("50").Equal(closure.ConversionRatePercent))

	report, err := svc.Report(context.Background(), models.ReportKindMonthlyClose)
	require.NoError(t, err)
	assert.Equal(t, "Fechamento Mensal - setembro/2026", report.Title)
}

func TestReport_UnknownKind(t *testing.T) {
	_, svc := newReportFixture(t)
	_, err := svc.Report(context.Background(), models.ReportKind("weekly"))
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
