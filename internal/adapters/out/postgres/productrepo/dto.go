// Package productrepo provides data transfer objects and mapping functions
// for product persistence. The fulfillment core only touches the columns it
// owns: stock is mutated under row locks, everything else is read as-is.
package productrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/product"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductDTO represents the database structure for product rows.
type ProductDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string
	Price        decimal.Decimal `gorm:"type:numeric(14,2)"`
	Stock        int
	Active       bool
	BuildToOrder bool
}

// TableName specifies the database table name for product entities.
func (ProductDTO) TableName() string {
	return "products"
}

// fromDomain converts a product aggregate to its database representation.
func fromDomain(aggregate *product.Product) ProductDTO {
	return ProductDTO{
		ID:           aggregate.ID().Bytes(),
		Name:         aggregate.Name(),
		Price:        aggregate.Price().Amount(),
		Stock:        aggregate.Stock(),
		Active:       aggregate.IsActive(),
		BuildToOrder: aggregate.IsBuildToOrder(),
	}
}

// toDomain converts a database DTO to a product aggregate.
func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(id, dto.Name, price, dto.Stock, dto.Active, dto.BuildToOrder)
}
