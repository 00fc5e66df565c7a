package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

const inventoryColumns = `id, name, quantity, unit_cost, expiration_date, created_at, updated_at`

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		id, err := nextID(ctx, tx, idgen.PrefixInventory)
		if err != nil {
			return err
		}
		item.ID = id
		item.CreatedAt = time.Now()
		item.UpdatedAt = item.CreatedAt

		_, err = tx.ExecContext(ctx, `
			INSERT INTO inventory_items (`+inventoryColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`,
			item.ID,
			item.Name,
			item.Quantity,
			item.UnitCost,
			item.ExpirationDate,
			item.CreatedAt,
			item.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create inventory item: %w", err)
		}
		return nil
	})
}

func (r *inventoryRepository) Get(ctx context.Context, id string) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := r.db.GetContext(ctx, &item,
		`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return nil, notFoundOr(err, "inventory item", id)
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]*model.InventoryItem, error) {
	items := make([]*model.InventoryItem, 0)
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+inventoryColumns+` FROM inventory_items ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (r *inventoryRepository) Mutate(ctx context.Context, id string, fn func(*model.InventoryItem) error) (*model.InventoryItem, error) {
	var item model.InventoryItem
	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &item,
			`SELECT `+inventoryColumns+` FROM inventory_items WHERE id = $1 FOR UPDATE`, id)
		if err != nil {
			return notFoundOr(err, "inventory item", id)
		}

		if err := fn(&item); err != nil {
			return err
		}
		item.UpdatedAt = time.Now()

		_, err = tx.ExecContext(ctx, `
			UPDATE inventory_items SET quantity = $1, updated_at = $2 WHERE id = $3
		`, item.Quantity, item.UpdatedAt, id)
		if err != nil {
			return fmt.Errorf("failed to update inventory item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}
