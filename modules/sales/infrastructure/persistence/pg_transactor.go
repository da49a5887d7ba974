package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/services"
	"github.com/kraftedge/oms/pkg/composables"
)

// PgTransactor runs service units of work inside a pgx transaction taken
// from the request context's pool.
type PgTransactor struct{}

func NewTransactor() services.Transactor {
	return &PgTransactor{}
}

func (t *PgTransactor) InTx(ctx context.Context, fn func(context.Context) error) error {
	return composables.InTx(ctx, fn)
}

func (t *PgTransactor) LockOrder(ctx context.Context, orderID uuid.UUID) error {
	return composables.LockOrder(ctx, orderID)
}
