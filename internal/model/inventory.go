package model

import "time"

type InventoryItem struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Quantity       int       `db:"quantity" json:"quantity"`
	UnitCost       float64   `db:"unit_cost" json:"unit_cost"`
	ExpirationDate string    `db:"expiration_date" json:"expiration_date"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Value is the item's total value, always computed, never stored.
func (i *InventoryItem) Value() float64 {
	return float64(i.Quantity) * i.UnitCost
}

type CreateInventoryItemRequest struct {
	Name           string  `json:"name" binding:"required"`
	Quantity       *int    `json:"quantity" binding:"required,gte=0"`
	UnitCost       float64 `json:"unit_cost" binding:"gte=0"`
	ExpirationDate string  `json:"expiration_date" binding:"required,datetime=2006-01-02"`
}

type ConsumeInventoryRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}
