package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"vitrine-backoffice/db"
	"vitrine-backoffice/models"
)

// ProductRepository handles database operations for products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

const productColumns = `id, name, sku, COALESCE(supplier, ''), cost, picking, pricing, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var p models.Product
	var rawPricing []byte
	var createdAt time.Time

	if err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Supplier, &p.Cost, &p.Picking, &rawPricing, &createdAt); err != nil {
		return nil, err
	}

	pricing, err := decodePricing(rawPricing)
	if err != nil {
		return nil, err
	}
	p.Pricing = pricing
	p.CreatedAt = createdAt.Format(time.RFC3339)
	return &p, nil
}

// Create inserts a new product with an empty pricing configuration
func (r *ProductRepository) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	logger.Infof("📦 CreateProduct: sku=%s, name=%s", req.SKU, req.Name)

	query := `
		INSERT INTO products (name, sku, supplier, cost, picking)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)
		RETURNING ` + productColumns

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.SKU),
		strings.TrimSpace(req.Supplier),
		req.Cost,
		req.Picking,
	))
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			logger.Warnf("❌ CreateProduct: SKU already exists: %s", req.SKU)
			return nil, fmt.Errorf("%w: sku %s already exists", models.ErrInvalidInput, req.SKU)
		}
		logger.Errorf("❌ CreateProduct: Error inserting product: %v", err)
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	logger.Infof("✅ CreateProduct: Successfully created product id=%d", product.ID)
	return product, nil
}

// GetByID retrieves a product by ID
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warnf("❌ GetProduct: Product not found: id=%d", id)
			return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
		}
		logger.Errorf("❌ GetProduct: Error fetching product: %v", err)
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return product, nil
}

// List retrieves every product ordered by name
func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name ASC, id ASC`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		logger.Errorf("❌ ListProducts: Error querying products: %v", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			logger.Errorf("❌ ListProducts: Error scanning product: %v", err)
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate products: %w", err)
	}

	logger.Debugf("✅ ListProducts: Found %d products", len(products))
	return products, nil
}

// Update replaces the catalog fields of a product. Its pricing configuration is kept.
func (r *ProductRepository) Update(ctx context.Context, id int64, req *models.CreateProductRequest) (*models.Product, error) {
	logger.Infof("📦 UpdateProduct: id=%d, sku=%s", id, req.SKU)

	query := `
		UPDATE products
		SET name = $1, sku = $2, supplier = NULLIF($3, ''), cost = $4, picking = $5
		WHERE id = $6
		RETURNING ` + productColumns

	product, err := scanProduct(db.DB.QueryRowContext(ctx, query,
		strings.TrimSpace(req.Name),
		strings.TrimSpace(req.SKU),
		strings.TrimSpace(req.Supplier),
		req.Cost,
		req.Picking,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warnf("❌ UpdateProduct: Product not found: id=%d", id)
			return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
		}
		if strings.Contains(err.Error(), "duplicate key") {
			logger.Warnf("❌ UpdateProduct: SKU already exists: %s", req.SKU)
			return nil, fmt.Errorf("%w: sku %s already exists", models.ErrInvalidInput, req.SKU)
		}
		logger.Errorf("❌ UpdateProduct: Error updating product: %v", err)
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	logger.Infof("✅ UpdateProduct: Successfully updated product id=%d", id)
	return product, nil
}

// Delete removes a product. Its kit memberships go with it (ON DELETE CASCADE);
// quotes keep their captured lines.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	logger.Infof("🗑️ DeleteProduct: id=%d", id)

	result, err := db.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		logger.Errorf("❌ DeleteProduct: Error deleting product: %v", err)
		return fmt.Errorf("failed to delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}

	logger.Infof("✅ DeleteProduct: Deleted product id=%d", id)
	return nil
}

// UpdatePricing replaces the desired-profit configuration of a product
func (r *ProductRepository) UpdatePricing(ctx context.Context, id int64, pricing models.PricingInput) error {
	logger.Infof("💰 UpdateProductPricing: id=%d, channels=%d", id, len(pricing.DesiredProfit))

	raw, err := encodePricing(pricing)
	if err != nil {
		return err
	}

	result, err := db.DB.ExecContext(ctx, `UPDATE products SET pricing = $1 WHERE id = $2`, raw, id)
	if err != nil {
		logger.Errorf("❌ UpdateProductPricing: Error updating pricing: %v", err)
		return fmt.Errorf("failed to update product pricing: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	return nil
}
