package finance

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine-backoffice/models"
)

func TestGoalProgress(t *testing.T) {
	tests := []struct {
		current, target, want string
	}{
		{"50", "100", "50"},
		{"150", "100", "150"},
		{"0", "100", "0"},
		{"123.45", "0", "0"},
		{"-10", "0", "0"},
		{"-25", "100", "-25"},
	}
	for _, tt := range tests {
		assertDecimal(t, tt.want, GoalProgress(d(tt.current), d(tt.target)))
	}
}

func TestPeriodOverPeriodGrowth(t *testing.T) {
	inf := PeriodOverPeriodGrowth(d("100"), decimal.Zero)
	assert.True(t, inf.Infinite)
	assert.Equal(t, 1, inf.Sign)

	zero := PeriodOverPeriodGrowth(decimal.Zero, decimal.Zero)
	assert.False(t, zero.Infinite)
	assert.Equal(t, 0, zero.Sign)
	assert.True(t, zero.Percent.IsZero())

	negFromZero := PeriodOverPeriodGrowth(d("-30"), decimal.Zero)
	assert.False(t, negFromZero.Infinite)
	assert.True(t, negFromZero.Percent.IsZero())

	tests := []struct {
		current, previous, want string
		sign                    int
	}{
		{"150", "100", "50", 1},
		{"50", "100", "-50", -1},
		{"100", "100", "0", 0},
		{"-50", "-100", "50", 1},
		{"-150", "-100", "-50", -1},
		{"20", "-20", "200", 1},
	}
	for _, tt := range tests {
		g := PeriodOverPeriodGrowth(d(tt.current), d(tt.previous))
		assert.False(t, g.Infinite)
		assertDecimal(t, tt.want, g.Percent)
		assert.Equal(t, tt.sign, g.Sign, "current=%s previous=%s", tt.current, tt.previous)
	}
}

func TestGrowthJSON_DistinguishesSentinel(t *testing.T) {
	raw, err := json.Marshal(PeriodOverPeriodGrowth(d("100"), decimal.Zero))
	require.NoError(t, err)
	assert.JSONEq(t, `{"percent": null, "infinite": true, "sign": 1}`, string(raw))

	raw, err = json.Marshal(PeriodOverPeriodGrowth(d("150"), d("100")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"percent": "50", "infinite": false, "sign": 1}`, string(raw))
}

func TestAverageMargin(t *testing.T) {
	assertDecimal(t, "0", AverageMargin(decimal.Zero, d("10")))
	assertDecimal(t, "25", AverageMargin(d("200"), d("50")))
}

func TestMonthlyClose(t *testing.T) {
	quotes := []models.Quote{
		quote("a", models.QuoteStatusConverted, octStart.Add(time.Hour), "50.00", "100.00", "5.00", "2.00"),
		quote("b", models.QuoteStatusConverted, octStart.Add(2*time.Hour), "20.00", "50.00", "0", "0"),
		quote("c", models.QuoteStatusPending, octStart.Add(3*time.Hour), "20.00", "50.00", "0", "0"),
		quote("d", models.QuoteStatusCancelled, octStart.Add(4*time.Hour), "20.00", "50.00", "0", "0"),
		quote("e", models.QuoteStatusConverted, novStart, "20.00", "50.00", "0", "0"),
	}

	closure, err := MonthlyClose(quotes, octStart, novStart)
	require.NoError(t, err)

	assertDecimal(t, "153.00", closure.GrossSales)
	assertDecimal(t, "83.00", closure.Profit)
	assert.Equal(t, 4, closure.TotalQuotes)
	assert.Equal(t, 2, closure.ConvertedQuotes)
	assertDecimal(t, "50", closure.ConversionRatePercent)
	assert.Equal(t, octStart, closure.PeriodStart)
	assert.Equal(t, novStart, closure.PeriodEnd)
}

func TestMonthlyClose_NoQuotes(t *testing.T) {
	closure, err := MonthlyClose(nil, octStart, novStart)
	require.NoError(t, err)
	assert.Zero(t, closure.TotalQuotes)
	assert.True(t, closure.ConversionRatePercent.IsZero())

	_, err = MonthlyClose(nil, novStart, octStart)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestSummarizeAndCompare(t *testing.T) {
	sepStart := octStart.AddDate(0, -1, 0)
	quotes := []models.Quote{
		quote("sep", models.QuoteStatusConverted, sepStart.Add(time.Hour), "10", "60", "0", "0"),
		quote("oct", models.QuoteStatusConverted, octStart.Add(time.Hour), "10", "90", "0", "0"),
	}

	current, err := Summarize(quotes, octStart, novStart)
	require.NoError(t, err)
	previous, err := Summarize(quotes, sepStart, octStart)
	require.NoError(t, err)

	assertDecimal(t, "90", current.GrossSales)
	assertDecimal(t, "80", current.Profit)

	cmp := Compare(current, previous)
	assertDecimal(t, "50", cmp.SalesGrowth.Percent)
	assertDecimal(t, "60", cmp.ProfitGrowth.Percent)

	empty, err := Summarize(nil, sepStart, octStart)
	require.NoError(t, err)
	assert.True(t, empty.AverageMarginPercent.IsZero())
	assert.True(t, Compare(current, empty).SalesGrowth.Infinite)
}

func TestPeriodBounds(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	now := time.Date(2026, time.January, 15, 14, 30, 0, 0, loc)

	start, end := MonthBounds(now, loc)
	assert.Equal(t, time.Date(2026, time.January, 1, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, time.February, 1, 0, 0, 0, 0, loc), end)

	prevStart, prevEnd := PreviousMonthBounds(now, loc)
	assert.Equal(t, time.Date(2025, time.December, 1, 0, 0, 0, 0, loc), prevStart)
	assert.Equal(t, start, prevEnd)

	dayStart, dayEnd := DayBounds(now, loc)
	assert.Equal(t, time.Date(2026, time.January, 15, 0, 0, 0, 0, loc), dayStart)
	assert.Equal(t, time.Date(2026, time.January, 16, 0, 0, 0, 0, loc), dayEnd)

	// 02:00 UTC on the 1st is still the previous day in São Paulo
	utc := time.Date(2026, time.March, 1, 2, 0, 0, 0, time.UTC)
	start, _ = MonthBounds(utc, loc)
	assert.Equal(t, time.February, start.Month())
}
