package services_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/domain/entities/confirmation"
	"github.com/kraftedge/oms/modules/sales/services"
)

type passthroughTx struct {
	lockCalls int
}

func (t *passthroughTx) InTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (t *passthroughTx) LockOrder(ctx context.Context, orderID uuid.UUID) error {
	t.lockCalls++
	return nil
}

type memOrderRepo struct {
	byID map[uuid.UUID]*order.Order
}

func newMemOrderRepo(orders ...*order.Order) *memOrderRepo {
	r := &memOrderRepo{byID: map[uuid.UUID]*order.Order{}}
	for _, o := range orders {
		r.byID[o.ID()] = o
	}
	return r
}

func (r *memOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (r *memOrderRepo) GetByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	for _, o := range r.byID {
		if o.OrderNo() == orderNo {
			return o, nil
		}
	}
	return nil, order.ErrNotFound
}

func (r *memOrderRepo) Create(ctx context.Context, o *order.Order) (*order.Order, error) {
	r.byID[o.ID()] = o
	return o, nil
}

func (r *memOrderRepo) Update(ctx context.Context, o *order.Order) error {
	r.byID[o.ID()] = o
	return nil
}

type memLineRepo struct {
	lines       []*order.OrderLine
	updateCalls [][]order.LineField
	deleted     []uuid.UUID
}

func newMemLineRepo(lines ...*order.OrderLine) *memLineRepo {
	r := &memLineRepo{}
	_, _ = r.CreateMany(context.Background(), lines)
	return r
}

func (r *memLineRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]*order.OrderLine, error) {
	out := make([]*order.OrderLine, 0, len(r.lines))
	for _, l := range r.lines {
		if l.OrderID() == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *memLineRepo) FindDistinctByItemNo(ctx context.Context, orderID uuid.UUID) (map[string]*order.OrderLine, error) {
	out := map[string]*order.OrderLine{}
	for _, l := range r.lines {
		if l.OrderID() == orderID {
			out[l.ItemNo()] = l
		}
	}
	return out, nil
}

func (r *memLineRepo) CreateMany(ctx context.Context, lines []*order.OrderLine) ([]*order.OrderLine, error) {
	created := make([]*order.OrderLine, 0, len(lines))
	for _, l := range lines {
		persisted := order.HydrateLine(
			uuid.New(), l.OrderID(), l.ItemNo(), l.Material(), l.Unit(),
			l.Quantity(), l.OriginalQuantity(), l.AssignedQuantity(), l.ConfirmQuantity(),
			l.BOMFlag(), l.ParentItemNo(), l.Status(), l.RejectReason(),
			l.RequestDate(), l.ConfirmedDate(), l.Plant(), l.ShipTo(),
			l.PurchaseOrderNo(), l.NetPrice(), l.NetWeight(), l.UnitPrice(),
			l.Texts(), l.IsDraft(), l.CreatedAt(), l.UpdatedAt(),
		)
		r.lines = append(r.lines, persisted)
		created = append(created, persisted)
	}
	return created, nil
}

func (r *memLineRepo) UpdateMany(ctx context.Context, lines []*order.OrderLine, fields []order.LineField) error {
	r.updateCalls = append(r.updateCalls, fields)
	return nil
}

func (r *memLineRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	r.deleted = append(r.deleted, ids...)
	byID := map[uuid.UUID]bool{}
	for _, id := range ids {
		byID[id] = true
	}
	kept := r.lines[:0]
	for _, l := range r.lines {
		if !byID[l.ID()] {
			kept = append(kept, l)
		}
	}
	r.lines = kept
	return len(ids), nil
}

func (r *memLineRepo) LatestItemNo(ctx context.Context, orderID uuid.UUID) (int, error) {
	max := 0
	for _, l := range r.lines {
		if l.OrderID() == orderID {
			if v := order.ItemNoValue(l.ItemNo()); v > max {
				max = v
			}
		}
	}
	return max, nil
}

func (r *memLineRepo) byItemNo(itemNo string) *order.OrderLine {
	for _, l := range r.lines {
		if l.ItemNo() == order.NormalizeItemNo(itemNo) {
			return l
		}
	}
	return nil
}

type memConfirmationRepo struct {
	records map[string]confirmation.Record
}

func newMemConfirmationRepo() *memConfirmationRepo {
	return &memConfirmationRepo{records: map[string]confirmation.Record{}}
}

func (r *memConfirmationRepo) FindByOrder(ctx context.Context, orderID uuid.UUID) (map[string]confirmation.Record, error) {
	out := map[string]confirmation.Record{}
	for itemNo, rec := range r.records {
		if rec.OrderID == orderID {
			out[itemNo] = rec
		}
	}
	return out, nil
}

func (r *memConfirmationRepo) UpsertMany(ctx context.Context, records []confirmation.Record) error {
	for _, rec := range records {
		r.records[rec.ItemNo] = rec
	}
	return nil
}

type fakePlanner struct {
	requests  []services.PlanningRequest
	responses []services.PlanningResponse
	err       error
}

func (p *fakePlanner) Confirm(ctx context.Context, req services.PlanningRequest) (services.PlanningResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return services.PlanningResponse{}, p.err
	}
	if len(p.responses) == 0 {
		return services.PlanningResponse{Message: services.PlanningSuccess}, nil
	}
	resp := p.responses[0]
	if len(p.responses) > 1 {
		p.responses = p.responses[1:]
	}
	return resp, nil
}
