package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/config"
	"vitrine-backoffice/models"
	"vitrine-backoffice/repository"
)

var logger = config.GetLogger()

// CatalogService handles the product and kit catalog and the supplier registry
type CatalogService struct {
	products  repository.ProductRepositoryInterface
	kits      repository.KitRepositoryInterface
	suppliers repository.SupplierRepositoryInterface
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(
	products repository.ProductRepositoryInterface,
	kits repository.KitRepositoryInterface,
	suppliers repository.SupplierRepositoryInterface,
) *CatalogService {
	return &CatalogService{products: products, kits: kits, suppliers: suppliers}
}

// KitView is a kit with its component products and current cost basis
type KitView struct {
	models.Kit
	SKU       string           `json:"sku"`
	CostBasis decimal.Decimal  `json:"costBasis"`
	Products  []models.Product `json:"products"`
}

// CreateProduct validates and stores a new product
func (s *CatalogService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if err := s.checkProduct(ctx, req); err != nil {
		return nil, err
	}
	return s.products.Create(ctx, req)
}

// UpdateProduct replaces a product's catalog fields. Pricing stays as configured, and
// quotes already generated keep the cost and price they captured.
func (s *CatalogService) UpdateProduct(ctx context.Context, id int64, req *models.CreateProductRequest) (*models.Product, error) {
	if err := s.checkProduct(ctx, req); err != nil {
		return nil, err
	}
	return s.products.Update(ctx, id, req)
}

// checkProduct validates the request and that its supplier, when given, is registered
func (s *CatalogService) checkProduct(ctx context.Context, req *models.CreateProductRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	supplier := strings.TrimSpace(req.Supplier)
	if supplier == "" {
		return nil
	}
	exists, err := s.suppliers.Exists(ctx, supplier)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: supplier %q is not registered", models.ErrInvalidInput, supplier)
	}
	return nil
}

// GetProduct returns one product
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts returns every product
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.List(ctx)
}

// DeleteProduct removes a product; it disappears from every kit that contained it.
// Quotes are unaffected because their lines hold captured values.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int64) error {
	logger.Infof("🗑️ DeleteProduct: id=%d", id)
	return s.products.Delete(ctx, id)
}

func validateKitRequest(req *models.CreateKitRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: kit name is required", models.ErrInvalidInput)
	}
	if len(req.Components) == 0 {
		return fmt.Errorf("%w: a kit needs at least one component", models.ErrInvalidInput)
	}
	for _, c := range req.Components {
		if c.Quantity <= 0 {
			return fmt.Errorf("%w: component %d has non-positive quantity", models.ErrInvalidInput, c.ProductID)
		}
	}
	return nil
}

// CreateKit stores a kit after checking every component exists
func (s *CatalogService) CreateKit(ctx context.Context, req *models.CreateKitRequest) (*KitView, error) {
	if err := validateKitRequest(req); err != nil {
		return nil, err
	}

	kit, err := s.kits.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.kitView(ctx, kit)
}

// UpdateKit renames a kit and replaces its components; its pricing is kept
func (s *CatalogService) UpdateKit(ctx context.Context, id int64, req *models.CreateKitRequest) (*KitView, error) {
	if err := validateKitRequest(req); err != nil {
		return nil, err
	}

	kit, err := s.kits.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return s.kitView(ctx, kit)
}

// DeleteKit removes a kit
func (s *CatalogService) DeleteKit(ctx context.Context, id int64) error {
	return s.kits.Delete(ctx, id)
}

// GetKit returns a kit with its components resolved
func (s *CatalogService) GetKit(ctx context.Context, id int64) (*KitView, error) {
	kit, err := s.kits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.kitView(ctx, kit)
}

// ListKits returns every kit with its components resolved
func (s *CatalogService) ListKits(ctx context.Context) ([]KitView, error) {
	kits, err := s.kits.List(ctx)
	if err != nil {
		return nil, err
	}
	index, err := productIndex(ctx, s.products)
	if err != nil {
		return nil, err
	}

	views := make([]KitView, 0, len(kits))
	for i := range kits {
		view, err := buildKitView(&kits[i], index)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *CatalogService) kitView(ctx context.Context, kit *models.Kit) (*KitView, error) {
	index, err := productIndex(ctx, s.products)
	if err != nil {
		return nil, err
	}
	return buildKitView(kit, index)
}

func buildKitView(kit *models.Kit, index map[int64]models.Product) (*KitView, error) {
	cost, err := kit.CostBasis(index)
	if err != nil {
		return nil, err
	}

	view := &KitView{
		Kit:       *kit,
		SKU:       kit.SKU(),
		CostBasis: cost.Round(2),
		Products:  make([]models.Product, 0, len(kit.Components)),
	}
	for _, c := range kit.Components {
		view.Products = append(view.Products, index[c.ProductID])
	}
	return view, nil
}

// ListSuppliers returns the supplier registry
func (s *CatalogService) ListSuppliers(ctx context.Context) ([]models.Supplier, error) {
	return s.suppliers.List(ctx)
}

// AddSupplier registers a supplier name
func (s *CatalogService) AddSupplier(ctx context.Context, req *models.CreateSupplierRequest) (*models.Supplier, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: supplier name is required", models.ErrInvalidInput)
	}
	return s.suppliers.Create(ctx, name)
}

// RemoveSupplier deletes a supplier that no product refers to
func (s *CatalogService) RemoveSupplier(ctx context.Context, name string) error {
	products, err := s.products.List(ctx)
	if err != nil {
		return err
	}
	for _, p := range products {
		if p.Supplier == name {
			logger.Warnf("❌ RemoveSupplier: %s still has products (e.g. %s)", name, p.SKU)
			return fmt.Errorf("%w: supplier %s still has products", models.ErrInvalidInput, name)
		}
	}
	return s.suppliers.Delete(ctx, name)
}
