// Package accountrepo provides read-only access to account rows. Account
// management is owned by the identity system upstream; the fulfillment core
// only resolves an actor's role.
package accountrepo

import (
	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AccountDTO represents the database structure for account rows.
type AccountDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username string    `gorm:"uniqueIndex"`
	Role     string
}

// TableName specifies the database table name for account entities.
func (AccountDTO) TableName() string {
	return "accounts"
}

// toDomain converts a database DTO to an account.
func toDomain(dto AccountDTO) (*account.Account, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	role, err := account.RoleFromString(dto.Role)
	if err != nil {
		return nil, err
	}

	return account.NewAccount(id, dto.Username, role)
}
