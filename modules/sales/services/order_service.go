package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/domain/entities/confirmation"
)

// OrderView is the read-side aggregate: lines in item-number order with the
// latest confirmation record overlaid, so re-reads always show the newest
// confirmed date and plant independent of later line edits.
type OrderView struct {
	Order *order.Order
	Lines []*order.OrderLine
}

type OrderService struct {
	orders        order.Repository
	lines         order.LineRepository
	confirmations confirmation.Repository
	gateway       OrderGateway
	sync          *SyncService
}

func NewOrderService(
	orders order.Repository,
	lines order.LineRepository,
	confirmations confirmation.Repository,
	gateway OrderGateway,
	sync *SyncService,
) *OrderService {
	return &OrderService{
		orders:        orders,
		lines:         lines,
		confirmations: confirmations,
		gateway:       gateway,
		sync:          sync,
	}
}

func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	lines, err := s.lines.FindByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	records, err := s.confirmations.FindByOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, l := range lines {
		if rec, ok := records[l.ItemNo()]; ok {
			l.SetConfirmedDate(rec.ConfirmDate)
			if rec.Plant != "" {
				l.SetPlant(rec.Plant)
			}
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		return order.LessItemNo(lines[i].ItemNo(), lines[j].ItemNo())
	})

	tree := order.BuildBOMTree(order.LineBOMSources(lines))
	tree.AggregateParents(lines)

	return &OrderView{Order: o, Lines: lines}, nil
}

// RefreshFromRemote pulls the authoritative snapshot from the order system
// and syncs it. The remote is the source of truth for statuses and
// confirmed quantities.
func (s *OrderService) RefreshFromRemote(ctx context.Context, orderNo string) (*order.Order, error) {
	snap, err := s.gateway.FetchSnapshot(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	return s.sync.Sync(ctx, nil, snap)
}
