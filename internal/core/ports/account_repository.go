package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/account"
	"fulfillment/internal/core/domain/model/kernel"
)

// AccountRepository defines the read contract for accounts.
// Accounts are owned by an identity system upstream; the fulfillment
// engine only needs to resolve an actor's role when gating transitions.
type AccountRepository interface {
	// Get retrieves an account by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*account.Account, error)
}
