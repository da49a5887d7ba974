package services

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/pkg/eventbus"
)

// SyncService folds an authoritative order-system snapshot onto the local
// store: upserts and deletes lines, relinks BOM parents and recomputes the
// order status. Local drafts survive a sync even when absent from the
// snapshot.
type SyncService struct {
	tx     Transactor
	orders order.Repository
	lines  order.LineRepository
	bus    eventbus.EventBus
}

func NewSyncService(tx Transactor, orders order.Repository, lines order.LineRepository, bus eventbus.EventBus) *SyncService {
	return &SyncService{tx: tx, orders: orders, lines: lines, bus: bus}
}

// Sync reconciles one snapshot. orderID may be nil for snapshots of orders
// not seen before; the order is then resolved by order number or created.
func (s *SyncService) Sync(ctx context.Context, orderID *uuid.UUID, snap order.OrderSnapshot) (*order.Order, error) {
	var synced *order.Order
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		o, err := s.resolveOrder(txCtx, orderID, snap)
		if err != nil {
			return err
		}
		if err := s.tx.LockOrder(txCtx, o.ID()); err != nil {
			return err
		}
		synced, err = s.sync(txCtx, o, snap)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(&OrderSyncedEvent{
		OrderID: synced.ID(),
		OrderNo: synced.OrderNo(),
		Status:  synced.Status(),
	})
	return synced, nil
}

func (s *SyncService) resolveOrder(ctx context.Context, orderID *uuid.UUID, snap order.OrderSnapshot) (*order.Order, error) {
	if orderID != nil {
		return s.orders.GetByID(ctx, *orderID)
	}
	o, err := s.orders.GetByOrderNo(ctx, snap.OrderNo)
	if err == nil {
		return o, nil
	}
	if !errors.Is(err, order.ErrNotFound) {
		return nil, err
	}
	return s.orders.Create(ctx, order.New(snap.OrderNo, snap.SoldTo, snap.SalesOrg, snap.PaymentTerm))
}

func (s *SyncService) sync(ctx context.Context, o *order.Order, snap order.OrderSnapshot) (*order.Order, error) {
	existing, err := s.lines.FindDistinctByItemNo(ctx, o.ID())
	if err != nil {
		return nil, err
	}

	tally := order.StatusTally{}
	seen := make(map[string]bool, len(snap.Lines))
	toCreate := make([]*order.OrderLine, 0)
	toUpdate := make([]*order.OrderLine, 0, len(existing))
	maxItemNo := 0

	for _, snapLine := range snap.Lines {
		itemNo := order.NormalizeItemNo(snapLine.ItemNo)
		seen[itemNo] = true
		if v := order.ItemNoValue(itemNo); v > maxItemNo {
			maxItemNo = v
		}

		if local, ok := existing[itemNo]; ok {
			status := order.DeriveItemStatus(snapLine, local.Status(), &tally)
			local.ApplySnapshot(snapLine)
			local.SetStatus(status)
			local.MarkSubmitted()
			toUpdate = append(toUpdate, local)
			continue
		}

		created := order.NewLine(o.ID(), itemNo, order.Material{
			Code:       snapLine.Material,
			IsService:  snapLine.ServiceMaterial,
			Production: snapLine.Production,
		}, snapLine.Quantity, snapLine.Unit,
			order.WithShipTo(snapLine.ShipTo),
			order.WithRequestDate(snapLine.RequestDate),
		)
		created.SetPurchaseOrderNo(snapLine.PurchaseOrderNo)
		created.ApplySnapshot(snapLine)
		created.SetStatus(order.DeriveItemStatus(snapLine, created.Status(), &tally))
		toCreate = append(toCreate, created)
	}

	// Lines the snapshot no longer carries are gone remotely. Drop them
	// locally, except drafts still awaiting submission: a stale read must
	// not wipe unsaved work. Deleting a kit parent cascades to its
	// components at the store level.
	toDelete := make([]uuid.UUID, 0)
	for itemNo, local := range existing {
		if !seen[itemNo] && !local.IsDraft() {
			toDelete = append(toDelete, local.ID())
		}
	}

	// Relink BOM parents from the rebuilt adjacency and roll component
	// prices and weights up onto their kit lines.
	tree := order.BuildBOMTree(order.SnapshotBOMSources(snap.Lines))
	kept := append(append([]*order.OrderLine{}, toUpdate...), toCreate...)
	for _, l := range kept {
		if parentNo, ok := tree.Parent(l.ItemNo()); ok {
			l.SetParentItemNo(parentNo)
		}
	}
	tree.AggregateParents(kept)

	if len(toUpdate) > 0 {
		if err := s.lines.UpdateMany(ctx, toUpdate, nil); err != nil {
			return nil, errors.Wrap(err, "updating synced lines")
		}
	}
	if len(toCreate) > 0 {
		if _, err := s.lines.CreateMany(ctx, toCreate); err != nil {
			return nil, errors.Wrap(err, "creating snapshot lines")
		}
	}
	if len(toDelete) > 0 {
		if _, err := s.lines.DeleteMany(ctx, toDelete); err != nil {
			return nil, errors.Wrap(err, "deleting vanished lines")
		}
	}

	o.SetStatus(order.DeriveOrderStatus(tally, len(snap.Lines)))
	o.AdvanceLatestItemNo(maxItemNo)
	o.MarkSynced()
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "updating order")
	}
	return o, nil
}
