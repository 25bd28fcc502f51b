package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vitrine-backoffice/db"
	"vitrine-backoffice/models"
)

// SupplierRepository handles database operations for the supplier registry
type SupplierRepository struct{}

// NewSupplierRepository creates a new SupplierRepository
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{}
}

// Ensure SupplierRepository implements SupplierRepositoryInterface
var _ SupplierRepositoryInterface = (*SupplierRepository)(nil)

// List retrieves every supplier ordered by name
func (r *SupplierRepository) List(ctx context.Context) ([]models.Supplier, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT name, created_at FROM suppliers ORDER BY name ASC`)
	if err != nil {
		logger.Errorf("❌ ListSuppliers: Error querying suppliers: %v", err)
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	defer rows.Close()

	suppliers := []models.Supplier{}
	for rows.Next() {
		var s models.Supplier
		var createdAt time.Time
		if err := rows.Scan(&s.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		s.CreatedAt = createdAt.Format(time.RFC3339)
		suppliers = append(suppliers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate suppliers: %w", err)
	}
	return suppliers, nil
}

// Create registers a supplier name
func (r *SupplierRepository) Create(ctx context.Context, name string) (*models.Supplier, error) {
	logger.Infof("🏭 CreateSupplier: name=%s", name)

	var s models.Supplier
	var createdAt time.Time
	err := db.DB.QueryRowContext(ctx,
		`INSERT INTO suppliers (name) VALUES ($1) RETURNING name, created_at`, name,
	).Scan(&s.Name, &createdAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			logger.Warnf("❌ CreateSupplier: Supplier already exists: %s", name)
			return nil, fmt.Errorf("%w: supplier %s already exists", models.ErrInvalidInput, name)
		}
		logger.Errorf("❌ CreateSupplier: Error inserting supplier: %v", err)
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	s.CreatedAt = createdAt.Format(time.RFC3339)
	return &s, nil
}

// Exists reports whether a supplier name is registered
func (r *SupplierRepository) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	if err := db.DB.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM suppliers WHERE name = $1)`, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check supplier: %w", err)
	}
	return exists, nil
}

// Delete removes a supplier name from the registry
func (r *SupplierRepository) Delete(ctx context.Context, name string) error {
	logger.Infof("🗑️ DeleteSupplier: name=%s", name)

	result, err := db.DB.ExecContext(ctx, `DELETE FROM suppliers WHERE name = $1`, name)
	if err != nil {
		logger.Errorf("❌ DeleteSupplier: Error deleting supplier: %v", err)
		return fmt.Errorf("failed to delete supplier: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: supplier %s", models.ErrNotFound, name)
	}
	return nil
}
