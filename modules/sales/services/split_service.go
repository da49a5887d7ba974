package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/pkg/eventbus"
)

// SplitTarget describes one new line to carve out of the original.
// Material selects the source within a BOM group; empty means the origin
// line itself. ItemNo is allocated from the order counter when absent.
type SplitTarget struct {
	ItemNo        string
	Material      string
	Quantity      decimal.Decimal
	Texts         order.Texts
	ConfirmedDate time.Time
	Plant         string
}

type SplitResult struct {
	Order    *order.Order
	NewLines []*order.OrderLine
	Messages []ConfirmationMessage
	Mismatch bool
}

var splitEnabledStatuses = map[order.ItemStatus]bool{
	order.ItemStatusCreated:         true,
	order.ItemStatusPartialDelivery: true,
}

// SplitService validates and executes order-line splits. All store
// mutations for one split happen in a single transaction; a validation
// failure anywhere leaves the store untouched.
type SplitService struct {
	tx       Transactor
	orders   order.Repository
	lines    order.LineRepository
	planning *PlanningService
	bus      eventbus.EventBus
}

func NewSplitService(
	tx Transactor,
	orders order.Repository,
	lines order.LineRepository,
	planning *PlanningService,
	bus eventbus.EventBus,
) *SplitService {
	return &SplitService{
		tx:       tx,
		orders:   orders,
		lines:    lines,
		planning: planning,
		bus:      bus,
	}
}

// splitDisabled reports the hard disables that apply to every line in a
// split, components included.
func splitDisabled(l *order.OrderLine) bool {
	if l.PurchaseOrderNo() != "" {
		return true
	}
	if l.Material().IsService {
		return true
	}
	return l.Status() == order.ItemStatusCompleteDelivery || l.Status() == order.ItemStatusCancelled
}

func splitEligible(l *order.OrderLine) bool {
	if splitDisabled(l) {
		return false
	}
	if !splitEnabledStatuses[l.Status()] {
		return false
	}
	return l.AssignedQuantity().IsPositive()
}

// Split divides the line identified by itemNo (or its whole BOM group when
// the line is a kit parent) across the targets. The original's residual
// quantity and confirmation fields are not recomputed locally; the planning
// reconciliation run at the end of the same transaction fills them.
func (s *SplitService) Split(
	ctx context.Context,
	orderID uuid.UUID,
	itemNo string,
	targets []SplitTarget,
) (*SplitResult, error) {
	var result *SplitResult
	err := s.tx.InTx(ctx, func(txCtx context.Context) error {
		var err error
		result, err = s.split(txCtx, orderID, order.NormalizeItemNo(itemNo), targets)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(&LinesSplitEvent{
		OrderID:  result.Order.ID(),
		ItemNo:   itemNo,
		NewLines: len(result.NewLines),
	})
	if result.Mismatch {
		s.bus.Publish(&ConfirmationMismatchEvent{OrderID: result.Order.ID(), Items: len(result.Messages)})
	}
	return result, nil
}

func (s *SplitService) split(ctx context.Context, orderID uuid.UUID, itemNo string, targets []SplitTarget) (*SplitResult, error) {
	if err := s.tx.LockOrder(ctx, orderID); err != nil {
		return nil, err
	}

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.IsCashPayment() {
		return nil, order.ErrCashOrderNotSplittable
	}

	lines, err := s.lines.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	byItemNo := make(map[string]*order.OrderLine, len(lines))
	for _, l := range lines {
		byItemNo[l.ItemNo()] = l
	}
	origin, ok := byItemNo[itemNo]
	if !ok {
		return nil, order.ErrLineNotFound.WithTemplateData(map[string]string{"itemNo": itemNo})
	}

	tree := order.BuildBOMTree(order.LineBOMSources(lines))
	if err := s.validate(o, origin, byItemNo, tree, targets); err != nil {
		return nil, err
	}

	newLines := s.buildLines(o, origin, byItemNo, targets)
	created, err := s.lines.CreateMany(ctx, newLines)
	if err != nil {
		return nil, err
	}
	if err := s.linkParents(ctx, origin, created); err != nil {
		return nil, err
	}
	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	all := append(append([]*order.OrderLine{}, lines...), created...)
	messages, mismatch, err := s.planning.Reconcile(ctx, o, all)
	if err != nil {
		return nil, err
	}

	return &SplitResult{
		Order:    o,
		NewLines: created,
		Messages: messages,
		Mismatch: mismatch,
	}, nil
}

func (s *SplitService) validate(
	o *order.Order,
	origin *order.OrderLine,
	byItemNo map[string]*order.OrderLine,
	tree *order.BOMTree,
	targets []SplitTarget,
) error {
	itemData := map[string]string{"itemNo": origin.ItemNo()}

	// Components are never split on their own: their quantities are bound
	// to the parent's bill-of-materials ratio.
	if origin.IsBOMComponent() {
		return order.ErrLineNotSplittable.WithTemplateData(itemData)
	}
	if !splitEligible(origin) {
		return order.ErrLineNotSplittable.WithTemplateData(itemData)
	}
	for _, childNo := range tree.Children(origin.ItemNo()) {
		child, ok := byItemNo[childNo]
		if !ok {
			continue
		}
		if splitDisabled(child) {
			return order.ErrLineNotSplittable.WithTemplateData(map[string]string{"itemNo": childNo})
		}
	}

	if origin.Quantity().IsZero() {
		return order.ErrOriginalQuantityZero.WithTemplateData(itemData)
	}

	// Every target needs a positive quantity, component targets included;
	// conservation is checked against the origin's targets only.
	sum := decimal.Zero
	for _, t := range targets {
		if !t.Quantity.IsPositive() {
			return order.ErrSplitQuantityZero.WithTemplateData(itemData)
		}
		if t.Material != "" && t.Material != origin.Material().Code {
			continue
		}
		sum = sum.Add(t.Quantity)
	}
	if sum.IsZero() {
		return order.ErrSplitQuantityZero.WithTemplateData(itemData)
	}

	assigned := origin.AssignedQuantity()
	if sum.GreaterThan(assigned) {
		return order.ErrExceedingOriginal.WithTemplateData(itemData)
	}
	// A partially-consuming split must not exhaust the assigned quantity:
	// the original would keep a nonzero requested quantity with nothing
	// visibly assigned to it. Consuming the entire original is fine.
	if sum.Equal(assigned) && !sum.Equal(origin.Quantity()) {
		return order.ErrExceedingOriginal.WithTemplateData(itemData)
	}
	return nil
}

// buildLines creates the unpersisted split copies. For BOM groups each
// target picks its source component by material code; text fields fall
// back target → BOM parent → source line.
func (s *SplitService) buildLines(
	o *order.Order,
	origin *order.OrderLine,
	byItemNo map[string]*order.OrderLine,
	targets []SplitTarget,
) []*order.OrderLine {
	sourceByMaterial := map[string]*order.OrderLine{origin.Material().Code: origin}
	for _, l := range byItemNo {
		if l.IsBOMComponent() && l.ParentItemNo() == origin.ItemNo() {
			sourceByMaterial[l.Material().Code] = l
		}
	}

	newLines := make([]*order.OrderLine, 0, len(targets))
	maxItemNo := 0
	for _, t := range targets {
		source := origin
		if t.Material != "" {
			if match, ok := sourceByMaterial[t.Material]; ok {
				source = match
			}
		}

		itemNo := order.NormalizeItemNo(t.ItemNo)
		if itemNo == "" {
			itemNo = o.NextItemNo()
		}
		if v := order.ItemNoValue(itemNo); v > maxItemNo {
			maxItemNo = v
		}

		texts := t.Texts
		if source.IsBOMComponent() {
			if parent, ok := byItemNo[source.ParentItemNo()]; ok {
				texts = texts.Merge(parent.Texts())
			}
		}
		line := source.SplitCopy(itemNo, t.Quantity, texts)
		if !t.ConfirmedDate.IsZero() {
			line.SetConfirmedDate(t.ConfirmedDate)
		}
		if t.Plant != "" {
			line.SetPlant(t.Plant)
		}
		newLines = append(newLines, line)
	}
	o.AdvanceLatestItemNo(maxItemNo)
	return newLines
}

// linkParents is the second phase of a BOM-group split: component copies
// must reference the parent's own split line, not the original parent.
// Components created before any parent copy keep the original parent.
func (s *SplitService) linkParents(ctx context.Context, origin *order.OrderLine, created []*order.OrderLine) error {
	if !origin.IsBOMParent() {
		return nil
	}

	relinked := make([]*order.OrderLine, 0, len(created))
	currentParent := origin.ItemNo()
	for _, l := range created {
		if l.Material().Code == origin.Material().Code {
			currentParent = l.ItemNo()
			continue
		}
		if l.IsBOMComponent() && l.ParentItemNo() != currentParent {
			l.SetParentItemNo(currentParent)
			relinked = append(relinked, l)
		}
	}
	if len(relinked) == 0 {
		return nil
	}
	return s.lines.UpdateMany(ctx, relinked, []order.LineField{order.ParentField})
}
