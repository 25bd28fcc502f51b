package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"vitrine-backoffice/models"
	"vitrine-backoffice/pricing"
	"vitrine-backoffice/repository"
)

// memStore backs the in-memory repositories used by the service tests
type memStore struct {
	nextProductID int64
	nextKitID     int64
	products      map[int64]models.Product
	kits          map[int64]models.Kit
	quotes        map[string]models.Quote
	suppliers     map[string]models.Supplier
	goal          *models.FinancialGoal
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[int64]models.Product{},
		kits:      map[int64]models.Kit{},
		quotes:    map[string]models.Quote{},
		suppliers: map[string]models.Supplier{},
	}
}

type memProducts struct{ s *memStore }
type memKits struct{ s *memStore }
type memQuotes struct{ s *memStore }
type memGoals struct{ s *memStore }
type memSuppliers struct{ s *memStore }

var (
	_ repository.ProductRepositoryInterface  = memProducts{}
	_ repository.KitRepositoryInterface      = memKits{}
	_ repository.QuoteRepositoryInterface    = memQuotes{}
	_ repository.GoalRepositoryInterface     = memGoals{}
	_ repository.SupplierRepositoryInterface = memSuppliers{}
)

func (r memProducts) Create(_ context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == req.SKU {
			return nil, fmt.Errorf("%w: sku %s already exists", models.ErrInvalidInput, req.SKU)
		}
	}
	r.s.nextProductID++
	p := models.Product{
		ID:       r.s.nextProductID,
		Name:     req.Name,
		SKU:      req.SKU,
		Supplier: req.Supplier,
		Cost:     req.Cost,
		Picking:  req.Picking,
		Pricing:  models.PricingInput{DesiredProfit: map[string]decimal.Decimal{}},
	}
	r.s.products[p.ID] = p
	return &p, nil
}

func (r memProducts) GetByID(_ context.Context, id int64) (*models.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	p.Pricing = p.Pricing.Clone()
	return &p, nil
}

func (r memProducts) List(_ context.Context) ([]models.Product, error) {
	out := make([]models.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p.Pricing = p.Pricing.Clone()
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memProducts) Update(_ context.Context, id int64, req *models.CreateProductRequest) (*models.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	for _, other := range r.s.products {
		if other.ID != id && other.SKU == req.SKU {
			return nil, fmt.Errorf("%w: sku %s already exists", models.ErrInvalidInput, req.SKU)
		}
	}
	p.Name = req.Name
	p.SKU = req.SKU
	p.Supplier = req.Supplier
	p.Cost = req.Cost
	p.Picking = req.Picking
	r.s.products[id] = p
	p.Pricing = p.Pricing.Clone()
	return &p, nil
}

func (r memProducts) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.products[id]; !ok {
		return fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	delete(r.s.products, id)
	for kid, k := range r.s.kits {
		kept := k.Components[:0:0]
		for _, c := range k.Components {
			if c.ProductID != id {
				kept = append(kept, c)
			}
		}
		k.Components = kept
		r.s.kits[kid] = k
	}
	return nil
}

func (r memProducts) UpdatePricing(_ context.Context, id int64, pricing models.PricingInput) error {
	p, ok := r.s.products[id]
	if !ok {
		return fmt.Errorf("%w: product %d", models.ErrNotFound, id)
	}
	p.Pricing = pricing.Clone()
	r.s.products[id] = p
	return nil
}

func (r memKits) Create(_ context.Context, req *models.CreateKitRequest) (*models.Kit, error) {
	for _, c := range req.Components {
		if _, ok := r.s.products[c.ProductID]; !ok {
			return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, c.ProductID)
		}
	}
	r.s.nextKitID++
	k := models.Kit{
		ID:         r.s.nextKitID,
		Name:       req.Name,
		Components: append([]models.KitComponent(nil), req.Components...),
		Pricing:    models.PricingInput{DesiredProfit: map[string]decimal.Decimal{}},
	}
	r.s.kits[k.ID] = k
	return &k, nil
}

func (r memKits) GetByID(_ context.Context, id int64) (*models.Kit, error) {
	k, ok := r.s.kits[id]
	if !ok {
		return nil, fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
	}
	k.Pricing = k.Pricing.Clone()
	k.Components = append([]models.KitComponent(nil), k.Components...)
	return &k, nil
}

func (r memKits) List(ctx context.Context) ([]models.Kit, error) {
	out := make([]models.Kit, 0, len(r.s.kits))
	for id := range r.s.kits {
		k, _ := r.GetByID(ctx, id)
		out = append(out, *k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memKits) Update(ctx context.Context, id int64, req *models.CreateKitRequest) (*models.Kit, error) {
	k, ok := r.s.kits[id]
	if !ok {
		return nil, fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
	}
	for _, c := range req.Components {
		if _, ok := r.s.products[c.ProductID]; !ok {
			return nil, fmt.Errorf("%w: product %d", models.ErrNotFound, c.ProductID)
		}
	}
	k.Name = req.Name
	k.Components = append([]models.KitComponent(nil), req.Components...)
	r.s.kits[id] = k
	return r.GetByID(ctx, id)
}

func (r memKits) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.kits[id]; !ok {
		return fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
	}
	delete(r.s.kits, id)
	return nil
}

func (r memKits) UpdatePricing(_ context.Context, id int64, pricing models.PricingInput) error {
	k, ok := r.s.kits[id]
	if !ok {
		return fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
	}
	k.Pricing = pricing.Clone()
	r.s.kits[id] = k
	return nil
}

func copyQuote(q models.Quote) models.Quote {
	q.Lines = append([]models.LineItem(nil), q.Lines...)
	q.Defects = append([]string(nil), q.Defects...)
	return q
}

func (r memQuotes) Create(_ context.Context, quote *models.Quote) error {
	if _, ok := r.s.quotes[quote.ID]; ok {
		return fmt.Errorf("%w: quote %s already exists", models.ErrInvalidInput, quote.ID)
	}
	r.s.quotes[quote.ID] = copyQuote(*quote)
	return nil
}

func (r memQuotes) GetByID(_ context.Context, id string) (*models.Quote, error) {
	q, ok := r.s.quotes[id]
	if !ok {
		return nil, fmt.Errorf("%w: quote %s", models.ErrNotFound, id)
	}
	q = copyQuote(q)
	return &q, nil
}

// List mirrors the SQL filter: undated quotes are kept when a range is given
func (r memQuotes) List(_ context.Context, filter repository.QuoteFilter) ([]models.Quote, error) {
	var out []models.Quote
	for _, q := range r.s.quotes {
		if filter.Status != nil && q.Status != *filter.Status {
			continue
		}
		if !q.CreatedAt.IsZero() {
			if filter.From != nil && q.CreatedAt.Before(*filter.From) {
				continue
			}
			if filter.To != nil && !q.CreatedAt.Before(*filter.To) {
				continue
			}
		}
		out = append(out, copyQuote(q))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r memQuotes) UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) (*models.Quote, error) {
	q, ok := r.s.quotes[id]
	if !ok {
		return nil, fmt.Errorf("%w: quote %s", models.ErrNotFound, id)
	}
	q.Status = status
	r.s.quotes[id] = q
	return r.GetByID(ctx, id)
}

func (r memQuotes) Delete(_ context.Context, id string) error {
	if _, ok := r.s.quotes[id]; !ok {
		return fmt.Errorf("%w: quote %s", models.ErrNotFound, id)
	}
	delete(r.s.quotes, id)
	return nil
}

func (r memSuppliers) List(_ context.Context) ([]models.Supplier, error) {
	out := make([]models.Supplier, 0, len(r.s.suppliers))
	for _, sup := range r.s.suppliers {
		out = append(out, sup)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memSuppliers) Create(_ context.Context, name string) (*models.Supplier, error) {
	if _, ok := r.s.suppliers[name]; ok {
		return nil, fmt.Errorf("%w: supplier %s already exists", models.ErrInvalidInput, name)
	}
	sup := models.Supplier{Name: name}
	r.s.suppliers[name] = sup
	return &sup, nil
}

func (r memSuppliers) Exists(_ context.Context, name string) (bool, error) {
	_, ok := r.s.suppliers[name]
	return ok, nil
}

func (r memSuppliers) Delete(_ context.Context, name string) error {
	if _, ok := r.s.suppliers[name]; !ok {
		return fmt.Errorf("%w: supplier %s", models.ErrNotFound, name)
	}
	delete(r.s.suppliers, name)
	return nil
}

func (r memGoals) Get(_ context.Context) (*models.FinancialGoal, error) {
	if r.s.goal == nil {
		return &models.FinancialGoal{}, nil
	}
	g := *r.s.goal
	return &g, nil
}

func (r memGoals) Save(_ context.Context, goal models.FinancialGoal) (*models.FinancialGoal, error) {
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	goal.UpdatedAt = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC).Format(time.RFC3339)
	r.s.goal = &goal
	g := goal
	return &g, nil
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func defaultEngine() *pricing.Engine {
	catalog, err := pricing.NewChannelCatalog(pricing.DefaultChannels()...)
	if err != nil {
		panic(err)
	}
	return pricing.NewEngine(catalog)
}

// seedProduct stores a product directly, bypassing request validation
func (s *memStore) seedProduct(name, sku, cost, picking string, profits map[string]string) models.Product {
	s.nextProductID++
	p := models.Product{
		ID:      s.nextProductID,
		Name:    name,
		SKU:     sku,
		Cost:    d(cost),
		Picking: d(picking),
		Pricing: models.PricingInput{DesiredProfit: map[string]decimal.Decimal{}},
	}
	for k, v := range profits {
		p.Pricing.DesiredProfit[k] = d(v)
	}
	s.products[p.ID] = p
	return p
}
