package memory

import (
	"context"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/idgen"
)

type inventoryRepository struct {
	store *Store
}

func NewInventoryRepository(store *Store) repository.InventoryRepository {
	return &inventoryRepository{store: store}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	s := r.store
	s.muInventory.Lock()
	defer s.muInventory.Unlock()

	item.ID = s.ids.Next(idgen.PrefixInventory)
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt

	s.inventory[item.ID] = clone(item)
	s.inventoryOrder = append(s.inventoryOrder, item.ID)
	return nil
}

func (r *inventoryRepository) Get(ctx context.Context, id string) (*model.InventoryItem, error) {
	s := r.store
	s.muInventory.RLock()
	defer s.muInventory.RUnlock()

	item, ok := s.inventory[id]
	if !ok {
		return nil, errors.NotFound("inventory item", id)
	}
	return clone(item), nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]*model.InventoryItem, error) {
	s := r.store
	s.muInventory.RLock()
	defer s.muInventory.RUnlock()

	items := make([]*model.InventoryItem, 0, len(s.inventoryOrder))
	for _, id := range s.inventoryOrder {
		items = append(items, clone(s.inventory[id]))
	}
	return items, nil
}

func (r *inventoryRepository) Mutate(ctx context.Context, id string, fn func(*model.InventoryItem) error) (*model.InventoryItem, error) {
	s := r.store
	s.muInventory.Lock()
	defer s.muInventory.Unlock()

	current, ok := s.inventory[id]
	if !ok {
		return nil, errors.NotFound("inventory item", id)
	}

	next := clone(current)
	if err := fn(next); err != nil {
		return nil, err
	}
	next.UpdatedAt = time.Now()

	s.inventory[id] = next
	return clone(next), nil
}
