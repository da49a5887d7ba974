package persistence

import (
	"context"
	"errors"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/infrastructure/persistence/models"
	"github.com/kraftedge/oms/pkg/composables"
)

const orderColumns = `id, order_no, sold_to, sales_org, payment_term, status, latest_item_no, is_new, created_at, updated_at`

type PgOrderRepository struct{}

func NewOrderRepository() order.Repository {
	return &PgOrderRepository{}
}

func (r *PgOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

func (r *PgOrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_no = $1`, orderNo)
}

func (r *PgOrderRepository) getOne(ctx context.Context, query string, arg interface{}) (*order.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	var row models.Order
	if err := tx.QueryRow(ctx, query, arg).Scan(
		&row.ID,
		&row.OrderNo,
		&row.SoldTo,
		&row.SalesOrg,
		&row.PaymentTerm,
		&row.Status,
		&row.LatestItemNo,
		&row.IsNew,
		&row.CreatedAt,
		&row.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, err
	}
	return toDomainOrder(&row)
}

func (r *PgOrderRepository) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	row := toDBOrder(o)
	now := time.Now()
	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, order_no, sold_to, sales_org, payment_term, status, latest_item_no, is_new, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		row.ID,
		row.OrderNo,
		row.SoldTo,
		row.SalesOrg,
		row.PaymentTerm,
		row.Status,
		row.LatestItemNo,
		row.IsNew,
		now,
		now,
	); err != nil {
		return nil, gerrors.Wrap(err, "failed to create order")
	}
	return r.GetByID(ctx, o.ID())
}

func (r *PgOrderRepository) Update(ctx context.Context, o *order.Order) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	row := toDBOrder(o)
	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET sold_to = $2, sales_org = $3, payment_term = $4, status = $5,
		    latest_item_no = $6, is_new = $7, updated_at = $8
		WHERE id = $1`,
		row.ID,
		row.SoldTo,
		row.SalesOrg,
		row.PaymentTerm,
		row.Status,
		row.LatestItemNo,
		row.IsNew,
		time.Now(),
	)
	if err != nil {
		return gerrors.Wrap(err, "failed to update order")
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}
