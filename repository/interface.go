package repository

import (
	"context"
	"time"

	"vitrine-backoffice/models"
)

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	List(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, id int64, req *models.CreateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
	UpdatePricing(ctx context.Context, id int64, pricing models.PricingInput) error
}

// KitRepositoryInterface defines the contract for kit repository operations
type KitRepositoryInterface interface {
	Create(ctx context.Context, req *models.CreateKitRequest) (*models.Kit, error)
	GetByID(ctx context.Context, id int64) (*models.Kit, error)
	List(ctx context.Context) ([]models.Kit, error)
	Update(ctx context.Context, id int64, req *models.CreateKitRequest) (*models.Kit, error)
	Delete(ctx context.Context, id int64) error
	UpdatePricing(ctx context.Context, id int64, pricing models.PricingInput) error
}

// QuoteFilter represents optional filter parameters for listing quotes.
// When both From and To are set the range is half-open [From, To).
type QuoteFilter struct {
	From   *time.Time
	To     *time.Time
	Status *models.QuoteStatus
}

// QuoteRepositoryInterface defines the contract for quote repository operations
type QuoteRepositoryInterface interface {
	Create(ctx context.Context, quote *models.Quote) error
	GetByID(ctx context.Context, id string) (*models.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]models.Quote, error)
	UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) (*models.Quote, error)
	Delete(ctx context.Context, id string) error
}

// GoalRepositoryInterface defines the contract for the financial goal record
type GoalRepositoryInterface interface {
	Get(ctx context.Context) (*models.FinancialGoal, error)
	Save(ctx context.Context, goal models.FinancialGoal) (*models.FinancialGoal, error)
}

// SupplierRepositoryInterface defines the contract for the supplier registry
type SupplierRepositoryInterface interface {
	List(ctx context.Context) ([]models.Supplier, error)
	Create(ctx context.Context, name string) (*models.Supplier, error)
	Exists(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, name string) error
}
