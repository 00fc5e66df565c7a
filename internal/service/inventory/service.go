package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-api/internal/model"
	"github.com/jwalitptl/hospital-api/internal/repository"
	"github.com/jwalitptl/hospital-api/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-api/pkg/errors"
	"github.com/jwalitptl/hospital-api/pkg/messaging"
)

// DefaultLowStockThreshold applies when a low-stock query names no
// threshold. Items strictly below it count as low stock.
const DefaultLowStockThreshold = 10

type Service struct {
	repo   repository.InventoryRepository
	events *event.Service
}

func NewService(repo repository.InventoryRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) CreateItem(ctx context.Context, req *model.CreateInventoryItemRequest) (*model.InventoryItem, error) {
	item := &model.InventoryItem{
		Name:           req.Name,
		Quantity:       *req.Quantity,
		UnitCost:       req.UnitCost,
		ExpirationDate: req.ExpirationDate,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.events.Emit(ctx, messaging.EventCreated, "inventory_item", item.ID, item)
	return item, nil
}

func (s *Service) GetItem(ctx context.Context, id string) (*model.InventoryItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListItems(ctx context.Context) ([]*model.InventoryItem, error) {
	return s.repo.List(ctx)
}

// ConsumeItem decrements an item's quantity. Consuming more than is on
// hand is rejected with a conflict and leaves the quantity untouched.
func (s *Service) ConsumeItem(ctx context.Context, id string, quantity int) (*model.InventoryItem, error) {
	if quantity <= 0 {
		return nil, apperrors.Validation("quantity", "quantity must be positive")
	}

	item, err := s.repo.Mutate(ctx, id, func(i *model.InventoryItem) error {
		if i.Quantity < quantity {
			return apperrors.Conflict(fmt.Sprintf("insufficient stock: %d on hand, %d requested", i.Quantity, quantity))
		}
		i.Quantity -= quantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Emit(ctx, messaging.EventInventoryConsumed, "inventory_item", item.ID, item)
	return item, nil
}

// LowStock lists items with quantity strictly below the threshold.
func (s *Service) LowStock(ctx context.Context, threshold int) ([]*model.InventoryItem, error) {
	if threshold < 0 {
		return nil, apperrors.Validation("threshold", "threshold must not be negative")
	}

	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	low := make([]*model.InventoryItem, 0)
	for _, i := range items {
		if i.Quantity < threshold {
			low = append(low, i)
		}
	}
	return low, nil
}

// Expired lists items whose expiration date is before now's date.
// Dates are ISO strings, so lexical order is chronological order.
func (s *Service) Expired(ctx context.Context, now time.Time) ([]*model.InventoryItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	today := now.Format("2006-01-02")
	expired := make([]*model.InventoryItem, 0)
	for _, i := range items {
		if i.ExpirationDate < today {
			expired = append(expired, i)
		}
	}
	return expired, nil
}
