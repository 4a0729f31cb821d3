// Package cartrepo provides data transfer objects and mapping functions for
// cart persistence. Cart editing lives outside the fulfillment core; this
// repository only reads a customer's cart at checkout and clears it after.
package cartrepo

import (
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartDTO represents the database structure for cart rows. Every registered
// customer has exactly one cart.
type CartDTO struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;uniqueIndex"`
	CachedTotal decimal.Decimal `gorm:"type:numeric(14,2)"`

	Items []CartItemDTO `gorm:"foreignKey:CartID;references:ID"`
}

// TableName specifies the database table name for cart entities.
func (CartDTO) TableName() string {
	return "carts"
}

// CartItemDTO represents one persisted cart position with the price captured
// when the item entered the cart.
type CartItemDTO struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	CartID     uuid.UUID       `gorm:"type:uuid;index"`
	ProductID  uuid.UUID       `gorm:"type:uuid"`
	Quantity   int
	PriceAtAdd decimal.Decimal `gorm:"type:numeric(14,2)"`
}

// TableName specifies the database table name for cart items.
func (CartItemDTO) TableName() string {
	return "cart_items"
}

// toDomain converts a database DTO to a cart aggregate.
func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]cart.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		productID, itemErr := kernel.UUIDFromBytes(itemDTO.ProductID[:])
		if itemErr != nil {
			return nil, itemErr
		}
		priceAtAdd, itemErr := kernel.NewMoney(itemDTO.PriceAtAdd)
		if itemErr != nil {
			return nil, itemErr
		}
		item, itemErr := cart.NewItem(productID, itemDTO.Quantity, priceAtAdd)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	cachedTotal, err := kernel.NewMoney(dto.CachedTotal)
	if err != nil {
		return nil, err
	}

	return cart.NewCart(id, customerID, items, cachedTotal)
}
