package persistence

import (
	"context"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/domain/entities/confirmation"
	"github.com/kraftedge/oms/modules/sales/infrastructure/persistence/models"
	"github.com/kraftedge/oms/pkg/composables"
)

type PgConfirmationRepository struct{}

func NewConfirmationRepository() confirmation.Repository {
	return &PgConfirmationRepository{}
}

func (r *PgConfirmationRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (map[string]confirmation.Record, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT order_id, item_no, plant, confirm_date, bom_material_ref, updated_at
		FROM order_item_confirmations
		WHERE order_id = $1`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := map[string]confirmation.Record{}
	for rows.Next() {
		var row models.Confirmation
		if err := rows.Scan(&row.OrderID, &row.ItemNo, &row.Plant, &row.ConfirmDate, &row.BOMMaterialRef, &row.UpdatedAt); err != nil {
			return nil, err
		}
		rec, err := toDomainConfirmation(&row)
		if err != nil {
			return nil, err
		}
		records[rec.ItemNo] = rec
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *PgConfirmationRepository) UpsertMany(ctx context.Context, records []confirmation.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}

	for _, rec := range records {
		row := toDBConfirmation(rec)
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_item_confirmations (order_id, item_no, plant, confirm_date, bom_material_ref, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (order_id, item_no)
			DO UPDATE SET plant = EXCLUDED.plant,
			              confirm_date = EXCLUDED.confirm_date,
			              bom_material_ref = EXCLUDED.bom_material_ref,
			              updated_at = EXCLUDED.updated_at`,
			row.OrderID,
			row.ItemNo,
			row.Plant,
			row.ConfirmDate,
			row.BOMMaterialRef,
			time.Now(),
		); err != nil {
			return gerrors.Wrap(err, "failed to upsert confirmation record")
		}
	}
	return nil
}
