package persistence

import (
	"context"
	"fmt"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/infrastructure/persistence/models"
	"github.com/kraftedge/oms/pkg/composables"
	"github.com/kraftedge/oms/pkg/repo"
)

const lineColumns = `id, order_id, item_no, material_code, material_service, material_production,
	unit, quantity, original_quantity, assigned_quantity, confirm_quantity,
	bom_flag, parent_item_no, status, reject_reason, request_date, confirmed_date,
	plant, ship_to, purchase_order_no, net_price, net_weight, unit_price,
	texts, draft, created_at, updated_at`

const lineColumnCount = 27

// updatableLineColumns is the column set written by a full UpdateMany; the
// identity columns and created_at never change after insert.
var updatableLineColumns = []order.LineField{
	order.QuantityField,
	order.AssignedField,
	order.ConfirmQtyField,
	order.StatusField,
	order.RejectReasonField,
	order.ConfirmedDateField,
	order.PlantField,
	order.ParentField,
	order.PriceField,
	order.WeightField,
	order.UnitPriceField,
	order.TextsField,
}

type PgLineRepository struct{}

func NewLineRepository() order.LineRepository {
	return &PgLineRepository{}
}

func (r *PgLineRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.OrderLine, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+lineColumns+`
		FROM order_lines
		WHERE order_id = $1
		ORDER BY CAST(item_no AS integer)`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*order.OrderLine
	for rows.Next() {
		line, err := scanLine(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, line)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (r *PgLineRepository) FindDistinctByItemNo(ctx context.Context, orderID uuid.UUID) (map[string]*order.OrderLine, error) {
	lines, err := r.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	byItemNo := make(map[string]*order.OrderLine, len(lines))
	for _, l := range lines {
		byItemNo[l.ItemNo()] = l
	}
	return byItemNo, nil
}

func (r *PgLineRepository) CreateMany(ctx context.Context, lines []*order.OrderLine) ([]*order.OrderLine, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	args := make([]interface{}, 0, len(lines)*lineColumnCount)
	created := make([]*order.OrderLine, 0, len(lines))
	for _, l := range lines {
		row, err := toDBOrderLine(l)
		if err != nil {
			return nil, err
		}
		id := uuid.New()
		row.ID = id.String()
		args = append(args,
			row.ID, row.OrderID, row.ItemNo, row.MaterialCode, row.MaterialService, row.MaterialProduction,
			row.Unit, row.Quantity, row.OriginalQuantity, row.AssignedQuantity, row.ConfirmQuantity,
			row.BOMFlag, row.ParentItemNo, row.Status, row.RejectReason, row.RequestDate, row.ConfirmedDate,
			row.Plant, row.ShipTo, row.PurchaseOrderNo, row.NetPrice, row.NetWeight, row.UnitPrice,
			row.Texts, row.Draft, now, now,
		)
		row.CreatedAt = now
		row.UpdatedAt = now
		persisted, err := toDomainOrderLine(row)
		if err != nil {
			return nil, err
		}
		created = append(created, persisted)
	}

	query := `INSERT INTO order_lines (` + lineColumns + `) VALUES ` +
		repo.BatchPlaceholders(1, len(lines), lineColumnCount)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, gerrors.Wrap(err, "failed to create order lines")
	}
	return created, nil
}

func (r *PgLineRepository) UpdateMany(ctx context.Context, lines []*order.OrderLine, fields []order.LineField) error {
	if len(lines) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	if fields == nil {
		fields = updatableLineColumns
	}

	for _, l := range lines {
		row, err := toDBOrderLine(l)
		if err != nil {
			return err
		}

		sets := make([]string, 0, len(fields)+1)
		args := []interface{}{row.ID}
		for _, field := range fields {
			value, ok := lineFieldValue(row, field)
			if !ok {
				return gerrors.Errorf("unknown line field %q", field)
			}
			args = append(args, value)
			sets = append(sets, fmt.Sprintf("%s = $%d", field, len(args)))
		}
		args = append(args, time.Now())
		sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)))

		query := `UPDATE order_lines SET ` + strings.Join(sets, ", ") + ` WHERE id = $1`
		tag, err := tx.Exec(ctx, query, args...)
		if err != nil {
			return gerrors.Wrap(err, "failed to update order line")
		}
		if tag.RowsAffected() == 0 {
			return order.ErrLineNotFound.WithTemplateData(map[string]string{"itemNo": l.ItemNo()})
		}
	}
	return nil
}

func (r *PgLineRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	// Deleting a kit parent removes its components with it.
	tag, err := tx.Exec(ctx, `
		DELETE FROM order_lines
		WHERE id = ANY($1)
		   OR (order_id, parent_item_no) IN (
			SELECT order_id, item_no FROM order_lines WHERE id = ANY($1)
		)`, ids)
	if err != nil {
		return 0, gerrors.Wrap(err, "failed to delete order lines")
	}
	return int(tag.RowsAffected()), nil
}

func (r *PgLineRepository) LatestItemNo(ctx context.Context, orderID uuid.UUID) (int, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}

	var latest int
	if err := tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(item_no AS integer)), 0)
		FROM order_lines
		WHERE order_id = $1`,
		orderID,
	).Scan(&latest); err != nil {
		return 0, err
	}
	return latest, nil
}

func scanLine(scan func(dest ...any) error) (*order.OrderLine, error) {
	var row models.OrderLine
	if err := scan(
		&row.ID, &row.OrderID, &row.ItemNo, &row.MaterialCode, &row.MaterialService, &row.MaterialProduction,
		&row.Unit, &row.Quantity, &row.OriginalQuantity, &row.AssignedQuantity, &row.ConfirmQuantity,
		&row.BOMFlag, &row.ParentItemNo, &row.Status, &row.RejectReason, &row.RequestDate, &row.ConfirmedDate,
		&row.Plant, &row.ShipTo, &row.PurchaseOrderNo, &row.NetPrice, &row.NetWeight, &row.UnitPrice,
		&row.Texts, &row.Draft, &row.CreatedAt, &row.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return toDomainOrderLine(&row)
}

func lineFieldValue(row *models.OrderLine, field order.LineField) (interface{}, bool) {
	switch field {
	case order.QuantityField:
		return row.Quantity, true
	case order.AssignedField:
		return row.AssignedQuantity, true
	case order.ConfirmQtyField:
		return row.ConfirmQuantity, true
	case order.StatusField:
		return row.Status, true
	case order.RejectReasonField:
		return row.RejectReason, true
	case order.ConfirmedDateField:
		return row.ConfirmedDate, true
	case order.PlantField:
		return row.Plant, true
	case order.ParentField:
		return row.ParentItemNo, true
	case order.PriceField:
		return row.NetPrice, true
	case order.WeightField:
		return row.NetWeight, true
	case order.UnitPriceField:
		return row.UnitPrice, true
	case order.TextsField:
		return row.Texts, true
	default:
		return nil, false
	}
}
