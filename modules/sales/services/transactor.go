package services

import (
	"context"

	"github.com/google/uuid"
)

// Transactor scopes one logical operation to a single atomic transaction
// and serializes concurrent work on one order. The pg implementation lives
// in infrastructure/persistence.
type Transactor interface {
	InTx(ctx context.Context, fn func(context.Context) error) error
	LockOrder(ctx context.Context, orderID uuid.UUID) error
}
