package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
	"vitrine-backoffice/pricing"
	"vitrine-backoffice/repository"
)

// PricingService builds per-channel pricing sheets for products and kits and stores
// the seller's desired profits
type PricingService struct {
	engine   *pricing.Engine
	products repository.ProductRepositoryInterface
	kits     repository.KitRepositoryInterface
}

// NewPricingService creates a new PricingService
func NewPricingService(engine *pricing.Engine, products repository.ProductRepositoryInterface, kits repository.KitRepositoryInterface) *PricingService {
	return &PricingService{engine: engine, products: products, kits: kits}
}

// Channels returns the configured sales channels in display order
func (s *PricingService) Channels() []models.ChannelConfig {
	return s.engine.Catalog().All()
}

// ProductSheet prices a product on every channel
func (s *PricingService) ProductSheet(ctx context.Context, id int64) (*models.PricingSheet, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.sheet(models.ItemKindProduct, product.ID, product.Name, product.CostBasis(), product.Pricing)
}

// KitSheet prices a kit on every channel from the current cost of its components
func (s *PricingService) KitSheet(ctx context.Context, id int64) (*models.PricingSheet, error) {
	kit, cost, err := s.kitWithCost(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.sheet(models.ItemKindKit, kit.ID, kit.Name, cost, kit.Pricing)
}

// SaveProductPricing merges the given channel profits into the product's configuration
func (s *PricingService) SaveProductPricing(ctx context.Context, id int64, profits map[string]decimal.Decimal) (*models.PricingSheet, error) {
	logger.Infof("💰 SaveProductPricing: product id=%d, channels=%d", id, len(profits))

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.engine.WithDesiredProfits(product.Pricing, profits)
	if err != nil {
		logger.Warnf("❌ SaveProductPricing: %v", err)
		return nil, err
	}
	if err := s.products.UpdatePricing(ctx, id, updated); err != nil {
		return nil, err
	}

	logger.Infof("✅ SaveProductPricing: product id=%d saved", id)
	return s.sheet(models.ItemKindProduct, product.ID, product.Name, product.CostBasis(), updated)
}

// SaveKitPricing merges the given channel profits into the kit's configuration
func (s *PricingService) SaveKitPricing(ctx context.Context, id int64, profits map[string]decimal.Decimal) (*models.PricingSheet, error) {
	logger.Infof("💰 SaveKitPricing: kit id=%d, channels=%d", id, len(profits))

	kit, cost, err := s.kitWithCost(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.engine.WithDesiredProfits(kit.Pricing, profits)
	if err != nil {
		logger.Warnf("❌ SaveKitPricing: %v", err)
		return nil, err
	}
	if err := s.kits.UpdatePricing(ctx, id, updated); err != nil {
		return nil, err
	}

	logger.Infof("✅ SaveKitPricing: kit id=%d saved", id)
	return s.sheet(models.ItemKindKit, kit.ID, kit.Name, cost, updated)
}

// Simulate evaluates a what-if sale price on one channel
func (s *PricingService) Simulate(req models.SimulatePriceRequest) (models.PricingResult, error) {
	return s.engine.Simulate(req.CostBasis, req.SalePrice, req.Channel)
}

func (s *PricingService) sheet(kind models.ItemKind, id int64, name string, cost decimal.Decimal, input models.PricingInput) (*models.PricingSheet, error) {
	rows, err := s.engine.Evaluate(cost, input)
	if err != nil {
		return nil, fmt.Errorf("failed to price %s %d: %w", kind, id, err)
	}
	return &models.PricingSheet{
		ItemKind:  kind,
		ItemID:    id,
		Name:      name,
		CostBasis: cost,
		Channels:  rows,
	}, nil
}

func (s *PricingService) kitWithCost(ctx context.Context, id int64) (*models.Kit, decimal.Decimal, error) {
	kit, err := s.kits.GetByID(ctx, id)
	if err != nil {
		return nil, decimal.Zero, err
	}
	products, err := productIndex(ctx, s.products)
	if err != nil {
		return nil, decimal.Zero, err
	}
	cost, err := kit.CostBasis(products)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return kit, cost, nil
}

// productIndex loads every product keyed by ID
func productIndex(ctx context.Context, repo repository.ProductRepositoryInterface) (map[int64]models.Product, error) {
	products, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(map[int64]models.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index, nil
}
