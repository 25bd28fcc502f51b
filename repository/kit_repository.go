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

// KitRepository handles database operations for kits and their components
type KitRepository struct{}

// NewKitRepository creates a new KitRepository
func NewKitRepository() *KitRepository {
	return &KitRepository{}
}

// Ensure KitRepository implements KitRepositoryInterface
var _ KitRepositoryInterface = (*KitRepository)(nil)

// Create inserts a kit and its components atomically
func (r *KitRepository) Create(ctx context.Context, req *models.CreateKitRequest) (*models.Kit, error) {
	logger.Infof("📦 CreateKit: name=%s, components=%d", req.Name, len(req.Components))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Errorf("❌ CreateKit: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	var kit models.Kit
	var rawPricing []byte
	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		`INSERT INTO kits (name) VALUES ($1) RETURNING id, name, pricing, created_at`,
		strings.TrimSpace(req.Name),
	).Scan(&kit.ID, &kit.Name, &rawPricing, &createdAt)
	if err != nil {
		logger.Errorf("❌ CreateKit: Error inserting kit: %v", err)
		return nil, fmt.Errorf("failed to create kit: %w", err)
	}

	if err := insertComponents(ctx, tx, kit.ID, req.Components); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Errorf("❌ CreateKit: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	created, err := r.GetByID(ctx, kit.ID)
	if err != nil {
		return nil, err
	}

	logger.Infof("✅ CreateKit: Successfully created kit id=%d", kit.ID)
	return created, nil
}

// insertComponents adds components to a kit inside tx after checking each product exists.
// Repeated products are merged into one component.
func insertComponents(ctx context.Context, tx *sql.Tx, kitID int64, components []models.KitComponent) error {
	for _, c := range components {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, c.ProductID).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check product: %w", err)
		}
		if !exists {
			logger.Warnf("❌ KitComponents: Product not found: id=%d", c.ProductID)
			return fmt.Errorf("%w: product %d", models.ErrNotFound, c.ProductID)
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO kit_components (kit_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (kit_id, product_id)
			DO UPDATE SET quantity = kit_components.quantity + EXCLUDED.quantity
		`, kitID, c.ProductID, c.Quantity)
		if err != nil {
			logger.Errorf("❌ KitComponents: Error inserting component: %v", err)
			return fmt.Errorf("failed to add kit component: %w", err)
		}
	}
	return nil
}

// Update renames a kit and replaces its components. The pricing configuration is kept.
func (r *KitRepository) Update(ctx context.Context, id int64, req *models.CreateKitRequest) (*models.Kit, error) {
	logger.Infof("📦 UpdateKit: id=%d, components=%d", id, len(req.Components))

	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		logger.Errorf("❌ UpdateKit: Error starting transaction: %v", err)
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `UPDATE kits SET name = $1 WHERE id = $2`, strings.TrimSpace(req.Name), id)
	if err != nil {
		logger.Errorf("❌ UpdateKit: Error updating kit: %v", err)
		return nil, fmt.Errorf("failed to update kit: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM kit_components WHERE kit_id = $1`, id); err != nil {
		logger.Errorf("❌ UpdateKit: Error clearing components: %v", err)
		return nil, fmt.Errorf("failed to clear kit components: %w", err)
	}
	if err := insertComponents(ctx, tx, id, req.Components); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		logger.Errorf("❌ UpdateKit: Error committing transaction: %v", err)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Infof("✅ UpdateKit: Successfully updated kit id=%d", id)
	return r.GetByID(ctx, id)
}

// Delete removes a kit and its components. Quotes keep their captured lines.
func (r *KitRepository) Delete(ctx context.Context, id int64) error {
	logger.Infof("🗑️ DeleteKit: id=%d", id)

	result, err := db.DB.ExecContext(ctx, `DELETE FROM kits WHERE id = $1`, id)
	if err != nil {
		logger.Errorf("❌ DeleteKit: Error deleting kit: %v", err)
		return fmt.Errorf("failed to delete kit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
	}

	logger.Infof("✅ DeleteKit: Deleted kit id=%d", id)
	return nil
}

// GetByID retrieves a kit with its current components
func (r *KitRepository) GetByID(ctx context.Context, id int64) (*models.Kit, error) {
	var kit models.Kit
	var rawPricing []byte
	var createdAt time.Time

	err := db.DB.QueryRowContext(ctx,
		`SELECT id, name, pricing, created_at FROM kits WHERE id = $1`, id,
	).Scan(&kit.ID, &kit.Name, &rawPricing, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Warnf("❌ GetKit: Kit not found: id=%d", id)
			return nil, fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
		}
		logger.Errorf("❌ GetKit: Error fetching kit: %v", err)
		return nil, fmt.Errorf("failed to fetch kit: %w", err)
	}

	if kit.Pricing, err = decodePricing(rawPricing); err != nil {
		return nil, err
	}
	kit.CreatedAt = createdAt.Format(time.RFC3339)

	components, err := r.components(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	kit.Components = components[id]
	if kit.Components == nil {
		kit.Components = []models.KitComponent{}
	}
	return &kit, nil
}

// List retrieves every kit with its components
func (r *KitRepository) List(ctx context.Context) ([]models.Kit, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT id, name, pricing, created_at FROM kits ORDER BY name ASC, id ASC`)
	if err != nil {
		logger.Errorf("❌ ListKits: Error querying kits: %v", err)
		return nil, fmt.Errorf("failed to list kits: %w", err)
	}
	defer rows.Close()

	kits := []models.Kit{}
	var ids []int64
	for rows.Next() {
		var kit models.Kit
		var rawPricing []byte
		var createdAt time.Time
		if err := rows.Scan(&kit.ID, &kit.Name, &rawPricing, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan kit: %w", err)
		}
		if kit.Pricing, err = decodePricing(rawPricing); err != nil {
			return nil, err
		}
		kit.CreatedAt = createdAt.Format(time.RFC3339)
		kits = append(kits, kit)
		ids = append(ids, kit.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kits: %w", err)
	}

	components, err := r.components(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range kits {
		kits[i].Components = components[kits[i].ID]
		if kits[i].Components == nil {
			kits[i].Components = []models.KitComponent{}
		}
	}
	return kits, nil
}

// components loads the components of the given kits, keyed by kit ID
func (r *KitRepository) components(ctx context.Context, kitIDs []int64) (map[int64][]models.KitComponent, error) {
	out := make(map[int64][]models.KitComponent, len(kitIDs))
	if len(kitIDs) == 0 {
		return out, nil
	}

	rows, err := db.DB.QueryContext(ctx, `
		SELECT kit_id, product_id, quantity
		FROM kit_components
		WHERE kit_id = ANY($1)
		ORDER BY kit_id ASC, product_id ASC
	`, kitIDs)
	if err != nil {
		logger.Errorf("❌ KitComponents: Error querying components: %v", err)
		return nil, fmt.Errorf("failed to fetch kit components: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kitID int64
		var c models.KitComponent
		if err := rows.Scan(&kitID, &c.ProductID, &c.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan kit component: %w", err)
		}
		out[kitID] = append(out[kitID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate kit components: %w", err)
	}
	return out, nil
}

// UpdatePricing replaces the desired-profit configuration of a kit
func (r *KitRepository) UpdatePricing(ctx context.Context, id int64, pricing models.PricingInput) error {
	logger.Infof("💰 UpdateKitPricing: id=%d, channels=%d", id, len(pricing.DesiredProfit))

	raw, err := encodePricing(pricing)
	if err != nil {
		return err
	}

	result, err := db.DB.ExecContext(ctx, `UPDATE kits SET pricing = $1 WHERE id = $2`, raw, id)
	if err != nil {
		logger.Errorf("❌ UpdateKitPricing: Error updating pricing: %v", err)
		return fmt.Errorf("failed to update kit pricing: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: kit %d", models.ErrNotFound, id)
	}
	return nil
}
