package service

import (
	"context"
	"fmt"
	"time"

	"vitrine-backoffice/finance"
	"vitrine-backoffice/models"
	"vitrine-backoffice/repository"
)

const recentPendingLimit = 5

var monthNamesPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// monthLabel formats a month the way report titles show it, e.g. "outubro/2026"
func monthLabel(t time.Time) string {
	return fmt.Sprintf("%s/%d", monthNamesPT[t.Month()-1], t.Year())
}

// ReportService assembles dashboard, finance and report views from stored quotes.
// Day and month boundaries are taken in the configured location.
type ReportService struct {
	quotes   repository.QuoteRepositoryInterface
	products repository.ProductRepositoryInterface
	goals    repository.GoalRepositoryInterface
	loc      *time.Location
	now      func() time.Time
}

// NewReportService creates a new ReportService
func NewReportService(
	quotes repository.QuoteRepositoryInterface,
	products repository.ProductRepositoryInterface,
	goals repository.GoalRepositoryInterface,
	loc *time.Location,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		quotes:   quotes,
		products: products,
		goals:    goals,
		loc:      loc,
		now:      time.Now,
	}
}

func (s *ReportService) quotesIn(ctx context.Context, start, end time.Time) ([]models.Quote, error) {
	return s.quotes.List(ctx, repository.QuoteFilter{From: &start, To: &end})
}

func logSkipped(funcName string, skipped []models.SkippedQuote) {
	for _, sq := range skipped {
		logger.WithField("quoteId", sq.QuoteID).Warnf("⚠️ %s: skipping malformed quote: %s", funcName, sq.Reason)
	}
}

// Dashboard returns the month's converted sales and profit, the pending quote count,
// the product count and the most recent pending quotes
func (s *ReportService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	start, end := finance.MonthBounds(s.now(), s.loc)

	monthQuotes, err := s.quotesIn(ctx, start, end)
	if err != nil {
		return nil, err
	}
	totals, err := finance.Aggregate(monthQuotes, start, end)
	if err != nil {
		return nil, err
	}
	logSkipped("Dashboard", totals.Skipped)

	pending := models.QuoteStatusPending
	pendingQuotes, err := s.quotes.List(ctx, repository.QuoteFilter{Status: &pending})
	if err != nil {
		return nil, err
	}

	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}

	recent := pendingQuotes
	if len(recent) > recentPendingLimit {
		recent = recent[:recentPendingLimit]
	}

	return &models.Dashboard{
		MonthSales:    totals.GrossSales,
		MonthProfit:   totals.Profit,
		PendingQuotes: len(pendingQuotes),
		TotalProducts: len(products),
		RecentPending: recent,
		SkippedQuotes: totals.SkippedCount(),
	}, nil
}

// FinanceStats returns today's sales and the month's sales and profit against the goal
func (s *ReportService) FinanceStats(ctx context.Context) (*models.FinanceStats, error) {
	now := s.now()
	monthStart, monthEnd := finance.MonthBounds(now, s.loc)
	dayStart, dayEnd := finance.DayBounds(now, s.loc)

	monthQuotes, err := s.quotesIn(ctx, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	month, err := finance.Aggregate(monthQuotes, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}
	today, err := finance.Aggregate(monthQuotes, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	logSkipped("FinanceStats", month.Skipped)

	goal, err := s.goals.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &models.FinanceStats{
		TodaySales: today.GrossSales,
		MonthSales: models.GoalMetric{
			Current:         month.GrossSales,
			Target:          goal.SalesTarget,
			ProgressPercent: finance.GoalProgress(month.GrossSales, goal.SalesTarget),
		},
		MonthProfit: models.GoalMetric{
			Current:         month.Profit,
			Target:          goal.ProfitTarget,
			ProgressPercent: finance.GoalProgress(month.Profit, goal.ProfitTarget),
		},
		SkippedQuotes: month.SkippedCount(),
	}, nil
}

// monthSummary aggregates converted quotes of the month containing t
func (s *ReportService) monthSummary(ctx context.Context, t time.Time) (models.PeriodSummary, error) {
	start, end := finance.MonthBounds(t, s.loc)
	quotes, err := s.quotesIn(ctx, start, end)
	if err != nil {
		return models.PeriodSummary{}, err
	}
	summary, err := finance.Summarize(quotes, start, end)
	if err != nil {
		return models.PeriodSummary{}, err
	}
	logSkipped("Report", summary.Skipped)
	return summary, nil
}

// Report builds the sales, profit or growth report for the current month, or the
// monthly close of the previous month
func (s *ReportService) Report(ctx context.Context, kind models.ReportKind) (*models.Report, error) {
	now := s.now()
	local := now.In(s.loc)

	switch kind {
	case models.ReportKindSales, models.ReportKindProfit:
		summary, err := s.monthSummary(ctx, now)
		if err != nil {
			return nil, err
		}
		title := "Relatório de Vendas"
		if kind == models.ReportKindProfit {
			title = "Relatório de Lucros"
		}
		return &models.Report{
			Title:       fmt.Sprintf("%s - %s", title, monthLabel(local)),
			Kind:        kind,
			GeneratedAt: local,
			Body:        summary,
		}, nil

	case models.ReportKindGrowth:
		current, err := s.monthSummary(ctx, now)
		if err != nil {
			return nil, err
		}
		prevStart, _ := finance.PreviousMonthBounds(now, s.loc)
		previous, err := s.monthSummary(ctx, prevStart)
		if err != nil {
			return nil, err
		}
		return &models.Report{
			Title:       fmt.Sprintf("Relatório de Crescimento - %s vs %s", monthLabel(local), monthLabel(prevStart)),
			Kind:        kind,
			GeneratedAt: local,
			Body:        finance.Compare(current, previous),
		}, nil

	case models.ReportKindMonthlyClose:
		closure, err := s.MonthlyClose(ctx)
		if err != nil {
			return nil, err
		}
		return &models.Report{
			Title:       fmt.Sprintf("Fechamento Mensal - %s", monthLabel(closure.PeriodStart)),
			Kind:        kind,
			GeneratedAt: local,
			Body:        closure,
		}, nil
	}

	return nil, fmt.Errorf("%w: unknown report %q", models.ErrInvalidInput, kind)
}

// MonthlyClose summarizes the previous calendar month
func (s *ReportService) MonthlyClose(ctx context.Context) (*models.Closure, error) {
	start, end := finance.PreviousMonthBounds(s.now(), s.loc)
	logger.Infof("📊 MonthlyClose: period %s - %s", start.Format(time.DateOnly), end.Format(time.DateOnly))

	quotes, err := s.quotesIn(ctx, start, end)
	if err != nil {
		return nil, err
	}
	closure, err := finance.MonthlyClose(quotes, start, end)
	if err != nil {
		return nil, err
	}
	logSkipped("MonthlyClose", closure.Skipped)
	return &closure, nil
}

// Goal returns the current financial goal
func (s *ReportService) Goal(ctx context.Context) (*models.FinancialGoal, error) {
	return s.goals.Get(ctx)
}

// SaveGoal validates and stores the financial goal
func (s *ReportService) SaveGoal(ctx context.Context, req *models.SaveGoalRequest) (*models.FinancialGoal, error) {
	goal := models.FinancialGoal{SalesTarget: req.SalesTarget, ProfitTarget: req.ProfitTarget}
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	return s.goals.Save(ctx, goal)
}
