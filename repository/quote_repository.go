package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/db"
	"vitrine-backoffice/models"
)

// QuoteRepository handles database operations for quotes and their captured lines
type QuoteRepository struct{}

// NewQuoteRepository creates a new QuoteRepository
func NewQuoteRepository() *QuoteRepository {
	return &QuoteRepository{}
}

// Ensure QuoteRepository implements QuoteRepositoryInterface
var _ QuoteRepositoryInterface = (*QuoteRepository)(nil)

// Create persists a quote and its lines in one transaction. Columns the quote records
// as missing are stored as NULL so they read back as the same defects.
func (r *QuoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	logger.Infof("📥 CreateQuote: id=%s, lines=%d, grandTotal=%s", quote.ID, len(quote.Lines), quote.GrandTotal.StringFixed(2))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Errorf("❌ CreateQuote: Error starting transaction: %v", err)
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var createdAt sql.NullTime
	if !quote.CreatedAt.IsZero() {
		createdAt = sql.NullTime{Time: quote.CreatedAt, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO quotes (id, created_at, status, customer_name, customer_phone, channel, shipping, discount, grand_total, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9, NULLIF($10, ''))
	`,
		quote.ID,
		createdAt,
		string(quote.Status),
		quote.CustomerName,
		quote.CustomerPhone,
		quote.Channel,
		nullableAmount(quote, models.ColumnShipping, quote.ShippingAmount),
		nullableAmount(quote, models.ColumnDiscount, quote.DiscountAmount),
		nullableAmount(quote, models.ColumnGrandTotal, quote.GrandTotal),
		quote.Notes,
	)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return fmt.Errorf("%w: quote %s already exists", models.ErrInvalidInput, quote.ID)
		}
		logger.Errorf("❌ CreateQuote: Error inserting quote: %v", err)
		return fmt.Errorf("failed to create quote: %w", err)
	}

	for i, line := range quote.Lines {
		var qty sql.NullInt64
		if !quote.HasMissing(models.LineColumn(i, models.ColumnQuantity)) {
			qty = sql.NullInt64{Int64: int64(line.Quantity), Valid: true}
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO quote_lines (quote_id, position, item_kind, item_id, description, quantity, unit_cost, unit_sale_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
			quote.ID,
			i,
			string(line.ItemKind),
			line.ItemID,
			line.Description,
			qty,
			nullableAmount(quote, models.LineColumn(i, models.ColumnUnitCost), line.UnitCostAtCapture),
			nullableAmount(quote, models.LineColumn(i, models.ColumnUnitSalePrice), line.UnitSalePriceAtCapture),
		)
		if err != nil {
			logger.Errorf("❌ CreateQuote: Error inserting line %d: %v", i+1, err)
			return fmt.Errorf("failed to create quote line: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Errorf("❌ CreateQuote: Error committing transaction: %v", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Infof("✅ CreateQuote: Successfully created quote id=%s", quote.ID)
	return nil
}

const quoteColumns = `id, created_at, status, COALESCE(customer_name, ''), COALESCE(customer_phone, ''),
	COALESCE(channel, ''), shipping, discount, grand_total, COALESCE(notes, '')`

// quoteRow is a quotes row as scanned, before NULL columns are turned into defects
type quoteRow struct {
	ID            string
	CreatedAt     sql.NullTime
	Status        string
	CustomerName  string
	CustomerPhone string
	Channel       string
	Shipping      decimal.NullDecimal
	Discount      decimal.NullDecimal
	GrandTotal    decimal.NullDecimal
	Notes         string
}

func scanQuote(row rowScanner) (*models.Quote, error) {
	var qr quoteRow
	err := row.Scan(
		&qr.ID,
		&qr.CreatedAt,
		&qr.Status,
		&qr.CustomerName,
		&qr.CustomerPhone,
		&qr.Channel,
		&qr.Shipping,
		&qr.Discount,
		&qr.GrandTotal,
		&qr.Notes,
	)
	if err != nil {
		return nil, err
	}
	return qr.toQuote(), nil
}

func (qr quoteRow) toQuote() *models.Quote {
	q := &models.Quote{
		ID:            qr.ID,
		CustomerName:  qr.CustomerName,
		CustomerPhone: qr.CustomerPhone,
		Channel:       qr.Channel,
		Notes:         qr.Notes,
		Lines:         []models.LineItem{},
	}

	// Unknown statuses are kept verbatim; Validate reports them
	q.Status = models.QuoteStatus(qr.Status)
	if parsed, err := models.ParseQuoteStatus(qr.Status); err == nil {
		q.Status = parsed
	}

	if qr.CreatedAt.Valid {
		q.CreatedAt = qr.CreatedAt.Time
	} else {
		q.Defects = append(q.Defects, models.MissingField(models.ColumnCreatedAt))
	}
	q.ShippingAmount = readAmount(q, models.ColumnShipping, qr.Shipping)
	q.DiscountAmount = readAmount(q, models.ColumnDiscount, qr.Discount)
	q.GrandTotal = readAmount(q, models.ColumnGrandTotal, qr.GrandTotal)
	return q
}

// lineRow is a quote_lines row as scanned
type lineRow struct {
	QuoteID     string
	Kind        string
	ItemID      int64
	Description string
	Quantity    sql.NullInt64
	UnitCost    decimal.NullDecimal
	UnitPrice   decimal.NullDecimal
}

// appendLine adds the row as the next line of q, recording NULL columns as defects
func appendLine(q *models.Quote, lr lineRow) {
	i := len(q.Lines)
	line := models.LineItem{
		ItemKind:    models.ItemKind(lr.Kind),
		ItemID:      lr.ItemID,
		Description: lr.Description,
	}
	if lr.Quantity.Valid {
		line.Quantity = int(lr.Quantity.Int64)
	} else {
		q.Defects = append(q.Defects, models.MissingField(models.LineColumn(i, models.ColumnQuantity)))
	}
	line.UnitCostAtCapture = readAmount(q, models.LineColumn(i, models.ColumnUnitCost), lr.UnitCost)
	line.UnitSalePriceAtCapture = readAmount(q, models.LineColumn(i, models.ColumnUnitSalePrice), lr.UnitPrice)
	q.Lines = append(q.Lines, line)
}

// GetByID retrieves a quote with its lines
func (r *QuoteRepository) GetByID(ctx context.Context, id string) (*models.Quote, error) {
	quote, err := scanQuote(db.DB.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warnf("❌ GetQuote: Quote not found: id=%s", id)
			return nil, fmt.Errorf("%w: quote %s", models.ErrNotFound, id)
		}
		logger.Errorf("❌ GetQuote: Error fetching quote: %v", err)
		return nil, fmt.Errorf("failed to fetch quote: %w", err)
	}

	if err := r.attachLines(ctx, []*models.Quote{quote}); err != nil {
		return nil, err
	}
	return quote, nil
}

// List retrieves quotes newest first. With a date range, quotes without a creation date
// are returned as well so that totals can report them as skipped.
func (r *QuoteRepository) List(ctx context.Context, filter QuoteFilter) ([]models.Quote, error) {
	logger.Debugf("📋 ListQuotes: from=%v, to=%v, status=%v", filter.From, filter.To, filter.Status)

	var conditions []string
	var args []any

	if filter.From != nil || filter.To != nil {
		var rangeConds []string
		if filter.From != nil {
			args = append(args, *filter.From)
			rangeConds = append(rangeConds, fmt.Sprintf("created_at >= $%d", len(args)))
		}
		if filter.To != nil {
			args = append(args, *filter.To)
			rangeConds = append(rangeConds, fmt.Sprintf("created_at < $%d", len(args)))
		}
		conditions = append(conditions, "(created_at IS NULL OR ("+strings.Join(rangeConds, " AND ")+"))")
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + quoteColumns + ` FROM quotes`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC NULLS LAST, id ASC"

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Errorf("❌ ListQuotes: Error querying quotes: %v", err)
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer rows.Close()

	var ptrs []*models.Quote
	for rows.Next() {
		quote, err := scanQuote(rows)
		if err != nil {
			logger.Errorf("❌ ListQuotes: Error scanning quote: %v", err)
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		ptrs = append(ptrs, quote)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}

	if err := r.attachLines(ctx, ptrs); err != nil {
		return nil, err
	}

	quotes := make([]models.Quote, 0, len(ptrs))
	for _, q := range ptrs {
		quotes = append(quotes, *q)
	}
	logger.Debugf("✅ ListQuotes: Found %d quotes", len(quotes))
	return quotes, nil
}

// attachLines loads the captured lines of the given quotes in one query
func (r *QuoteRepository) attachLines(ctx context.Context, quotes []*models.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	byID := make(map[string]*models.Quote, len(quotes))
	ids := make([]string, 0, len(quotes))
	for _, q := range quotes {
		byID[q.ID] = q
		ids = append(ids, q.ID)
	}

	rows, err := db.DB.QueryContext(ctx, `
		SELECT quote_id, item_kind, item_id, description, quantity, unit_cost, unit_sale_price
		FROM quote_lines
		WHERE quote_id = ANY($1)
		ORDER BY quote_id ASC, position ASC
	`, ids)
	if err != nil {
		logger.Errorf("❌ QuoteLines: Error fetching lines: %v", err)
		return fmt.Errorf("failed to fetch quote lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var lr lineRow
		if err := rows.Scan(&lr.QuoteID, &lr.Kind, &lr.ItemID, &lr.Description, &lr.Quantity, &lr.UnitCost, &lr.UnitPrice); err != nil {
			return fmt.Errorf("failed to scan quote line: %w", err)
		}
		if q, ok := byID[lr.QuoteID]; ok {
			appendLine(q, lr)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate quote lines: %w", err)
	}
	return nil
}

// UpdateStatus changes the status of a quote. Amounts and lines are never touched.
func (r *QuoteRepository) UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) (*models.Quote, error) {
	logger.Infof("🔄 UpdateQuoteStatus: id=%s, status=%s", id, status)

	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}

	result, err := db.DB.ExecContext(ctx, `UPDATE quotes SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		logger.Errorf("❌ UpdateQuoteStatus: Error updating status: %v", err)
		return nil, fmt.Errorf("failed to update quote status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: quote %s", models.ErrNotFound, id)
	}

	logger.Infof("✅ UpdateQuoteStatus: quote id=%s is now %s", id, status)
	return r.GetByID(ctx, id)
}

// Delete removes a quote and its lines
func (r *QuoteRepository) Delete(ctx context.Context, id string) error {
	logger.Infof("🗑️ DeleteQuote: id=%s", id)

	result, err := db.DB.ExecContext(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		logger.Errorf("❌ DeleteQuote: Error deleting quote: %v", err)
		return fmt.Errorf("failed to delete quote: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: quote %s", models.ErrNotFound, id)
	}

	logger.Infof("✅ DeleteQuote: Deleted quote id=%s", id)
	return nil
}
