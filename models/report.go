package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// SkippedQuote identifies a quote left out of a total because of a data-quality defect
type SkippedQuote struct {
	QuoteID string `json:"quoteId"`
	Reason  string `json:"reason"`
}

// Totals is the (gross sales, profit) reduction of a set of quotes
type Totals struct {
	GrossSales decimal.Decimal `json:"grossSales"`
	Profit     decimal.Decimal `json:"profit"`
	Quotes     int             `json:"quotes"` // quotes that contributed to the totals
	Skipped    []SkippedQuote  `json:"skipped,omitempty"`
}

// SkippedCount is the number of quotes excluded for data-quality reasons
func (t Totals) SkippedCount() int {
	return len(t.Skipped)
}

// Growth is a period-over-period change. When the previous period is zero and the
// current one is positive the change is infinite; Percent is then meaningless and is
// serialized as null so it can never be mistaken for a real percentage.
type Growth struct {
	Percent  decimal.Decimal `json:"percent"`
	Infinite bool            `json:"infinite"`
	Sign     int             `json:"sign"` // -1, 0 or +1
}

// MarshalJSON renders the infinite sentinel with a null percent
func (g Growth) MarshalJSON() ([]byte, error) {
	type wire struct {
		Percent  *decimal.Decimal `json:"percent"`
		Infinite bool             `json:"infinite"`
		Sign     int              `json:"sign"`
	}
	w := wire{Infinite: g.Infinite, Sign: g.Sign}
	if !g.Infinite {
		p := g.Percent
		w.Percent = &p
	}
	return json.Marshal(w)
}

// Closure is the monthly close summary of a period
type Closure struct {
	PeriodStart           time.Time       `json:"periodStart"`
	PeriodEnd             time.Time       `json:"periodEnd"`
	GrossSales            decimal.Decimal `json:"grossSales"`
	Profit                decimal.Decimal `json:"profit"`
	TotalQuotes           int             `json:"totalQuotes"`
	ConvertedQuotes       int             `json:"convertedQuotes"`
	ConversionRatePercent decimal.Decimal `json:"conversionRatePercent"`
	Skipped               []SkippedQuote  `json:"skipped,omitempty"`
}

// ReportKind names the report payloads exposed to the UI
type ReportKind string

const (
	ReportKindSales        ReportKind = "sales"
	ReportKindProfit       ReportKind = "profit"
	ReportKindGrowth       ReportKind = "growth"
	ReportKindMonthlyClose ReportKind = "monthly-close"
)

// Report is a titled report payload. Body holds raw numbers; formatting is left to the UI.
// Example response:
// {
//   "title": "Relatório de Vendas - outubro/2026",
//   "kind": "sales",
//   "generatedAt": "2026-10-18T10:30:00-03:00",
//   "body": {"periodStart": "...", "grossSales": "1250.5", "profit": "410.2", "averageMarginPercent": "32.8"}
// }
type Report struct {
	Title       string     `json:"title"`
	Kind        ReportKind `json:"kind"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Body        any        `json:"body"`
}

// PeriodSummary is the body of the sales and profit reports
type PeriodSummary struct {
	PeriodStart          time.Time       `json:"periodStart"`
	PeriodEnd            time.Time       `json:"periodEnd"`
	GrossSales           decimal.Decimal `json:"grossSales"`
	Profit               decimal.Decimal `json:"profit"`
	AverageMarginPercent decimal.Decimal `json:"averageMarginPercent"`
	Skipped              []SkippedQuote  `json:"skipped,omitempty"`
}

// PeriodComparison is the body of the growth report
type PeriodComparison struct {
	Current      PeriodSummary `json:"current"`
	Previous     PeriodSummary `json:"previous"`
	SalesGrowth  Growth        `json:"salesGrowth"`
	ProfitGrowth Growth        `json:"profitGrowth"`
}

// Dashboard is the landing page summary
type Dashboard struct {
	MonthSales    decimal.Decimal `json:"monthSales"`
	MonthProfit   decimal.Decimal `json:"monthProfit"`
	PendingQuotes int             `json:"pendingQuotes"`
	TotalProducts int             `json:"totalProducts"`
	RecentPending []Quote         `json:"recentPending"`
	SkippedQuotes int             `json:"skippedQuotes"`
}

// GoalMetric is an amount with its target and progress
type GoalMetric struct {
	Current         decimal.Decimal `json:"current"`
	Target          decimal.Decimal `json:"target"`
	ProgressPercent decimal.Decimal `json:"progressPercent"`
}

// FinanceStats is the financial page summary
type FinanceStats struct {
	TodaySales    decimal.Decimal `json:"todaySales"`
	MonthSales    GoalMetric      `json:"monthSales"`
	MonthProfit   GoalMetric      `json:"monthProfit"`
	SkippedQuotes int             `json:"skippedQuotes"`
}
