package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
	"vitrine-backoffice/pricing"
	"vitrine-backoffice/repository"
	"vitrine-backoffice/utils"
)

// ImportService loads the browser app's JSON export into the database. Amount strings
// are parsed once here; values that cannot be parsed are stored as missing so the
// totals report the affected quotes instead of counting them as zero.
type ImportService struct {
	engine    *pricing.Engine
	products  repository.ProductRepositoryInterface
	kits      repository.KitRepositoryInterface
	quotes    repository.QuoteRepositoryInterface
	goals     repository.GoalRepositoryInterface
	suppliers repository.SupplierRepositoryInterface
	loc       *time.Location // zone of export dates written without an offset
}

// NewImportService creates a new ImportService
func NewImportService(
	engine *pricing.Engine,
	products repository.ProductRepositoryInterface,
	kits repository.KitRepositoryInterface,
	quotes repository.QuoteRepositoryInterface,
	goals repository.GoalRepositoryInterface,
	suppliers repository.SupplierRepositoryInterface,
	loc *time.Location,
) *ImportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ImportService{
		engine:    engine,
		products:  products,
		kits:      kits,
		quotes:    quotes,
		goals:     goals,
		suppliers: suppliers,
		loc:       loc,
	}
}

// Import stores every record it can and reports the rest in ImportResult.Errors
func (s *ImportService) Import(ctx context.Context, dump *models.LegacyDump) (*models.ImportResult, error) {
	logger.Infof("📥 LegacyImport: produtos=%d, kits=%d, cotacoes=%d", len(dump.Produtos), len(dump.Kits), len(dump.Cotacoes))

	result := &models.ImportResult{}
	fail := func(format string, args ...any) {
		msg := fmt.Sprintf(format, args...)
		logger.Warnf("⚠️ LegacyImport: %s", msg)
		result.Errors = append(result.Errors, msg)
	}

	// Suppliers first: the registry lists them and products may name unlisted ones
	names := append([]string(nil), dump.Fornecedores...)
	for _, lp := range dump.Produtos {
		names = append(names, lp.Fornecedor)
	}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		if _, err := s.suppliers.Create(ctx, name); err != nil {
			if !errors.Is(err, models.ErrInvalidInput) {
				fail("fornecedor %s: %v", name, err)
			}
			continue
		}
		result.SuppliersImported++
	}

	// legacy product id -> new product id
	productIDs := make(map[string]int64, len(dump.Produtos))
	for _, lp := range dump.Produtos {
		req, err := legacyProductRequest(lp)
		if err != nil {
			fail("produto %s: %v", lp.ID, err)
			continue
		}
		product, err := s.products.Create(ctx, req)
		if err != nil {
			fail("produto %s: %v", lp.ID, err)
			continue
		}
		productIDs[lp.ID.String()] = product.ID
		result.ProductsImported++

		if err := s.importPricing(ctx, lp.PricingConfig, product.Pricing, func(p models.PricingInput) error {
			return s.products.UpdatePricing(ctx, product.ID, p)
		}); err != nil {
			fail("produto %s pricing: %v", lp.ID, err)
		}
	}

	kitIDs := make(map[string]int64, len(dump.Kits))
	for _, lk := range dump.Kits {
		req, missing := legacyKitRequest(lk, productIDs)
		for _, m := range missing {
			fail("kit %s: produto %s não importado", lk.ID, m)
		}
		if len(req.Components) == 0 {
			fail("kit %s: sem produtos", lk.ID)
			continue
		}
		kit, err := s.kits.Create(ctx, req)
		if err != nil {
			fail("kit %s: %v", lk.ID, err)
			continue
		}
		kitIDs[lk.ID.String()] = kit.ID
		result.KitsImported++

		if err := s.importPricing(ctx, lk.PricingConfig, kit.Pricing, func(p models.PricingInput) error {
			return s.kits.UpdatePricing(ctx, kit.ID, p)
		}); err != nil {
			fail("kit %s pricing: %v", lk.ID, err)
		}
	}

	for _, lq := range dump.Cotacoes {
		quote := ConvertLegacyQuote(lq, productIDs, kitIDs, s.loc)
		if err := s.quotes.Create(ctx, &quote); err != nil {
			fail("cotação %s: %v", lq.ID, err)
			continue
		}
		result.QuotesImported++
		if len(quote.Defects) > 0 {
			result.QuotesWithDefects++
			logger.WithField("quoteId", quote.ID).Warnf("⚠️ LegacyImport: stored with defects: %s", strings.Join(quote.Defects, "; "))
		}
	}

	if g := dump.MetasFinanceiras; g != nil {
		if _, err := s.goals.Save(ctx, models.FinancialGoal{SalesTarget: g.Vendas, ProfitTarget: g.Lucro}); err != nil {
			fail("metas: %v", err)
		} else {
			result.GoalImported = true
		}
	}

	logger.Infof("✅ LegacyImport: suppliers=%d, products=%d, kits=%d, quotes=%d (%d with defects), errors=%d",
		result.SuppliersImported, result.ProductsImported, result.KitsImported, result.QuotesImported, result.QuotesWithDefects, len(result.Errors))
	return result, nil
}

// importPricing keeps the channels the catalog knows and drops the rest
func (s *ImportService) importPricing(ctx context.Context, config map[string]decimal.Decimal, current models.PricingInput, save func(models.PricingInput) error) error {
	if len(config) == 0 {
		return nil
	}

	known := make(map[string]decimal.Decimal, len(config))
	var unknown []string
	for key, profit := range config {
		if _, err := s.engine.Catalog().Get(key); err != nil {
			unknown = append(unknown, key)
			continue
		}
		known[key] = profit
	}

	if len(known) > 0 {
		updated, err := s.engine.WithDesiredProfits(current, known)
		if err != nil {
			return err
		}
		if err := save(updated); err != nil {
			return err
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: canais desconhecidos %s", models.ErrNotFound, strings.Join(unknown, ", "))
	}
	return nil
}

func legacyProductRequest(lp models.LegacyProduct) (*models.CreateProductRequest, error) {
	req := &models.CreateProductRequest{
		Name:     strings.TrimSpace(lp.Nome),
		SKU:      strings.TrimSpace(lp.SKU),
		Supplier: strings.TrimSpace(lp.Fornecedor),
		Cost:     lp.Custo.Decimal,
		Picking:  lp.Picking.Decimal,
	}
	if !lp.Custo.Valid {
		return nil, fmt.Errorf("%w: custo ausente", models.ErrInvalidInput)
	}
	if !lp.Picking.Valid {
		req.Picking = decimal.Zero
	}
	if req.SKU == "" {
		req.SKU = "LEGACY-" + lp.ID.String()
	}
	if req.Name == "" {
		req.Name = req.SKU
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return req, nil
}

// legacyKitRequest counts one component unit per product copy in the kit
func legacyKitRequest(lk models.LegacyKit, productIDs map[string]int64) (*models.CreateKitRequest, []string) {
	req := &models.CreateKitRequest{Name: strings.TrimSpace(lk.Nome)}
	if req.Name == "" {
		req.Name = "Kit " + lk.ID.String()
	}

	var missing []string
	position := make(map[int64]int)
	for _, lp := range lk.Produtos {
		id, ok := productIDs[lp.ID.String()]
		if !ok {
			missing = append(missing, lp.ID.String())
			continue
		}
		if i, seen := position[id]; seen {
			req.Components[i].Quantity++
			continue
		}
		position[id] = len(req.Components)
		req.Components = append(req.Components, models.KitComponent{ProductID: id, Quantity: 1})
	}
	return req, missing
}

// legacyTimeLayouts are the date formats the export is known to contain
var legacyTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"2006-01-02",
}

// parseLegacyTime reads dates without an offset as wall-clock time in loc
func parseLegacyTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range legacyTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ConvertLegacyQuote maps an exported quote to the quote model. Nothing is recomputed:
// the exported total is kept as the grand total. Unusable fields become defects.
// Dates without an offset are taken as wall-clock time in loc.
func ConvertLegacyQuote(lq models.LegacyQuote, productIDs, kitIDs map[string]int64, loc *time.Location) models.Quote {
	if loc == nil {
		loc = time.UTC
	}
	q := models.Quote{
		ID:            strings.TrimSpace(lq.ID),
		CustomerName:  strings.TrimSpace(lq.Cliente),
		CustomerPhone: strings.TrimSpace(lq.Telefone),
		Notes:         strings.TrimSpace(lq.Local),
		Lines:         make([]models.LineItem, 0, len(lq.Itens)),
	}
	if q.ID == "" {
		q.ID = "LEGACY-" + uuid.NewString()
	}
	missing := func(column string) {
		q.Defects = append(q.Defects, models.MissingField(column))
	}

	if t, ok := parseLegacyTime(lq.DataGeracao, loc); ok {
		q.CreatedAt = t
	} else {
		missing(models.ColumnCreatedAt)
	}

	if status, err := models.ParseQuoteStatus(lq.Status); err == nil {
		q.Status = status
	} else {
		// Kept verbatim so the totals report it
		q.Status = models.QuoteStatus(strings.TrimSpace(lq.Status))
		q.Defects = append(q.Defects, fmt.Sprintf("unknown status %q", lq.Status))
	}

	if v, err := utils.ParseBRL(lq.TotalGeral); err == nil {
		q.GrandTotal = v
	} else {
		missing(models.ColumnGrandTotal)
	}
	q.ShippingAmount = legacyOptionalAmount(lq.Frete, models.ColumnShipping, missing)
	q.DiscountAmount = legacyOptionalAmount(lq.Descontos, models.ColumnDiscount, missing)

	for i, it := range lq.Itens {
		line := models.LineItem{
			ItemKind:    models.ItemKindProduct,
			Description: strings.TrimSpace(it.Nome),
		}
		if it.CustoTotal.Valid {
			line.ItemKind = models.ItemKindKit
			line.ItemID = kitIDs[it.ID.String()]
		} else {
			line.ItemID = productIDs[it.ID.String()]
		}
		if it.SKU != "" {
			line.Description = fmt.Sprintf("%s (%s)", line.Description, it.SKU)
		}

		if it.Quantidade != nil {
			line.Quantity = *it.Quantidade
		} else {
			missing(models.LineColumn(i, models.ColumnQuantity))
		}

		switch {
		case it.Custo.Valid:
			line.UnitCostAtCapture = it.Custo.Decimal
		case it.CustoTotal.Valid:
			line.UnitCostAtCapture = it.CustoTotal.Decimal
		default:
			missing(models.LineColumn(i, models.ColumnUnitCost))
		}

		if it.PrecoVenda.Valid {
			line.UnitSalePriceAtCapture = it.PrecoVenda.Decimal
		} else {
			missing(models.LineColumn(i, models.ColumnUnitSalePrice))
		}

		q.Lines = append(q.Lines, line)
	}

	return q
}

// legacyOptionalAmount reads shipping or discount; an empty string means none
func legacyOptionalAmount(s, column string, missing func(string)) decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero
	}
	v, err := utils.ParseBRL(s)
	if err != nil {
		missing(column)
		return decimal.Zero
	}
	return v
}
