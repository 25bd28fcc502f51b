package finance

import (
	"time"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
)

var hundred = decimal.NewFromInt(100)

// GoalProgress returns current as a percentage of target. A zero target means no goal
// was set, which yields 0 rather than an infinite progress.
func GoalProgress(current, target decimal.Decimal) decimal.Decimal {
	if target.IsZero() {
		return decimal.Zero
	}
	return current.Div(target).Mul(hundred)
}

// PeriodOverPeriodGrowth compares two period values. Growth from zero to a positive
// value is the explicit infinite sentinel; from zero to zero (or below) it is 0.
func PeriodOverPeriodGrowth(current, previous decimal.Decimal) models.Growth {
	if previous.IsZero() {
		if current.IsPositive() {
			return models.Growth{Infinite: true, Sign: 1}
		}
		return models.Growth{Percent: decimal.Zero}
	}
	pct := current.Sub(previous).Div(previous.Abs()).Mul(hundred)
	return models.Growth{Percent: pct, Sign: pct.Sign()}
}

// AverageMargin is profit as a percentage of gross sales, 0 when there were no sales
func AverageMargin(grossSales, profit decimal.Decimal) decimal.Decimal {
	if grossSales.IsZero() {
		return decimal.Zero
	}
	return profit.Div(grossSales).Mul(hundred)
}

// Summarize aggregates converted quotes in [start, end) into a report body
func Summarize(quotes []models.Quote, start, end time.Time) (models.PeriodSummary, error) {
	totals, err := Aggregate(quotes, start, end)
	if err != nil {
		return models.PeriodSummary{}, err
	}
	return models.PeriodSummary{
		PeriodStart:          start,
		PeriodEnd:            end,
		GrossSales:           totals.GrossSales,
		Profit:               totals.Profit,
		AverageMarginPercent: AverageMargin(totals.GrossSales, totals.Profit),
		Skipped:              totals.Skipped,
	}, nil
}

// Compare builds the current vs previous period comparison
func Compare(current, previous models.PeriodSummary) models.PeriodComparison {
	return models.PeriodComparison{
		Current:      current,
		Previous:     previous,
		SalesGrowth:  PeriodOverPeriodGrowth(current.GrossSales, previous.GrossSales),
		ProfitGrowth: PeriodOverPeriodGrowth(current.Profit, previous.Profit),
	}
}

// MonthlyClose summarizes the quotes created in [start, end): converted sales and
// profit, how many quotes were generated and how many converted.
func MonthlyClose(quotes []models.Quote, start, end time.Time) (models.Closure, error) {
	totals, err := Aggregate(quotes, start, end)
	if err != nil {
		return models.Closure{}, err
	}

	total, converted := 0, 0
	for _, q := range quotes {
		if q.CreatedAt.IsZero() || !inRange(q.CreatedAt, start, end) {
			continue
		}
		total++
		if q.Status == models.QuoteStatusConverted {
			converted++
		}
	}

	rate := decimal.Zero
	if total > 0 {
		rate = decimal.NewFromInt(int64(converted)).Div(decimal.NewFromInt(int64(total))).Mul(hundred)
	}

	return models.Closure{
		PeriodStart:           start,
		PeriodEnd:             end,
		GrossSales:            totals.GrossSales,
		Profit:                totals.Profit,
		TotalQuotes:           total,
		ConvertedQuotes:       converted,
		ConversionRatePercent: rate,
		Skipped:               totals.Skipped,
	}, nil
}
