// Package finance reduces historical quotes into sales and profit figures and builds
// the comparisons shown on the dashboard, the financial page and the reports.
//
// Everything here is a pure function over values passed in: quotes are read through
// their captured fields only and no catalog record is ever consulted.
package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
)

// Aggregate totals converted quotes created in [start, end)
func Aggregate(quotes []models.Quote, start, end time.Time) (models.Totals, error) {
	return AggregateByStatus(quotes, start, end, models.QuoteStatusConverted)
}

// AggregateByStatus totals quotes with the given status created in [start, end).
// Gross sales is the sum of the stored grand totals; profit is the sum of captured line
// margins plus shipping minus discount. Quotes that fail validation are skipped and
// listed in Totals.Skipped.
func AggregateByStatus(quotes []models.Quote, start, end time.Time, status models.QuoteStatus) (models.Totals, error) {
	if err := checkRange(start, end); err != nil {
		return models.Totals{}, err
	}
	if !status.Valid() {
		return models.Totals{}, fmt.Errorf("%w: unknown status filter %q", models.ErrInvalidInput, status)
	}

	totals := models.Totals{GrossSales: decimal.Zero, Profit: decimal.Zero}
	for _, q := range quotes {
		if err := q.Validate(); err != nil {
			if mayMatch(q, start, end, status) {
				totals.Skipped = append(totals.Skipped, models.SkippedQuote{QuoteID: q.ID, Reason: err.Error()})
			}
			continue
		}
		if q.Status != status || !inRange(q.CreatedAt, start, end) {
			continue
		}
		totals.GrossSales = totals.GrossSales.Add(q.GrandTotal)
		totals.Profit = totals.Profit.Add(q.Profit())
		totals.Quotes++
	}
	return totals, nil
}

func checkRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: date range bounds are required", models.ErrInvalidInput)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: range end %s is before start %s", models.ErrInvalidInput, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return nil
}

// mayMatch reports whether a defective quote could belong to the query. An unreadable
// status or date counts as a possible match so the defect is surfaced.
func mayMatch(q models.Quote, start, end time.Time, status models.QuoteStatus) bool {
	statusOK := q.Status == status || !q.Status.Valid()
	dateOK := q.CreatedAt.IsZero() || inRange(q.CreatedAt, start, end)
	return statusOK && dateOK
}

// inRange reports start <= t < end
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}
