package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"

	"github.com/kraftedge/oms/modules/sales/domain/aggregates/order"
	"github.com/kraftedge/oms/modules/sales/domain/entities/confirmation"
	"github.com/kraftedge/oms/pkg/composables"
)

// PlanningService folds capacity-planning confirmations back onto order
// lines, bubbling each result up the BOM parent chain at most once.
type PlanningService struct {
	planner       Planner
	lines         order.LineRepository
	confirmations confirmation.Repository
	sender        string
}

func NewPlanningService(
	planner Planner,
	lines order.LineRepository,
	confirmations confirmation.Repository,
	sender string,
) *PlanningService {
	return &PlanningService{
		planner:       planner,
		lines:         lines,
		confirmations: confirmations,
		sender:        sender,
	}
}

// requiresPlanning selects lines worth a planning call: administrative and
// aggregation-only lines (service materials, unproduced lines, kit parents
// whose components carry the production) are skipped.
func requiresPlanning(l *order.OrderLine) bool {
	if l.Material().IsService {
		return false
	}
	if l.Material().Production == order.NotProduced {
		return false
	}
	if l.IsBOMParent() && l.Material().Production != order.Produced {
		return false
	}
	return true
}

// Reconcile batches every planning-relevant line into one request and folds
// the response back onto the lines and their BOM parents. The returned
// mismatch flag is set when any confirmed date differs from its requested
// date. Must run inside the caller's transaction: line updates and
// confirmation records are persisted here.
func (s *PlanningService) Reconcile(
	ctx context.Context,
	o *order.Order,
	lines []*order.OrderLine,
) ([]ConfirmationMessage, bool, error) {
	selected := make([]*order.OrderLine, 0, len(lines))
	for _, l := range lines {
		if requiresPlanning(l) {
			selected = append(selected, l)
		}
	}
	if len(selected) == 0 {
		return nil, false, nil
	}

	resp, err := s.planner.Confirm(ctx, s.buildRequest(o, selected))
	if err != nil {
		return nil, false, errors.Wrap(err, "planning call failed")
	}
	if resp.Message != PlanningSuccess {
		composables.UseLogger(ctx).
			WithField("message", resp.Message).
			Warn("planning returned non-success, nothing to reconcile")
		return nil, false, nil
	}

	messages, mismatch, touched, records := s.fold(o, lines, resp.OrderItems)

	if len(touched) > 0 {
		if err := s.lines.UpdateMany(ctx, touched, []order.LineField{
			order.ConfirmedDateField,
			order.PlantField,
		}); err != nil {
			return nil, false, errors.Wrap(err, "persisting confirmed dates")
		}
	}
	if len(records) > 0 {
		if err := s.confirmations.UpsertMany(ctx, records); err != nil {
			return nil, false, errors.Wrap(err, "upserting confirmation records")
		}
	}

	return messages, mismatch, nil
}

func (s *PlanningService) buildRequest(o *order.Order, selected []*order.OrderLine) PlanningRequest {
	requestType := PlanningRequestChange
	if o.IsNew() {
		requestType = PlanningRequestNew
	}
	req := PlanningRequest{
		Sender: s.sender,
		Header: PlanningHeader{
			RequestType: requestType,
			SalesOrg:    o.SalesOrg(),
			SoldTo:      o.SoldTo(),
			TempOrSONo:  o.OrderNo(),
		},
	}
	for _, l := range selected {
		item := PlanningRequestItem{
			ItemNo:       order.PadItemNo(l.ItemNo()),
			MaterialCode: l.Material().Code,
			Quantity:     l.Quantity(),
			Unit:         l.Unit(),
			ShipTo:       l.ShipTo(),
			RequestDate:  l.RequestDate(),
			IsNew:        l.IsDraft(),
			ForceFlag:    !o.IsNew(),
			Plant:        l.Plant(),
		}
		if l.IsBOMComponent() {
			item.BOMParentRef = order.PadItemNo(l.ParentItemNo())
		}
		req.Items = append(req.Items, item)
	}
	return req
}

// fold walks the response items with an explicit worklist and a visited
// set: each item number is processed at most once per pass, and a BOM
// parent inherits the first child's confirm/plant data. Messages come back
// in child-before-parent order.
func (s *PlanningService) fold(
	o *order.Order,
	lines []*order.OrderLine,
	items []PlanningResponseItem,
) ([]ConfirmationMessage, bool, []*order.OrderLine, []confirmation.Record) {
	byItemNo := make(map[string]*order.OrderLine, len(lines))
	for _, l := range lines {
		byItemNo[l.ItemNo()] = l
	}

	messages := make([]ConfirmationMessage, 0, len(items))
	touched := make([]*order.OrderLine, 0, len(items))
	records := make([]confirmation.Record, 0, len(items))
	visited := make(map[string]bool, len(items))
	mismatch := false

	for _, item := range items {
		work := []PlanningResponseItem{item}
		for len(work) > 0 {
			cur := work[len(work)-1]
			work = work[:len(work)-1]

			itemNo := order.NormalizeItemNo(cur.ItemNo)
			if visited[itemNo] {
				continue
			}
			line, ok := byItemNo[itemNo]
			if !ok {
				continue
			}
			visited[itemNo] = true

			line.SetConfirmedDate(cur.ConfirmDate)
			if cur.Plant != "" {
				line.SetPlant(cur.Plant)
			}
			touched = append(touched, line)
			records = append(records, confirmation.Record{
				OrderID:        o.ID(),
				ItemNo:         itemNo,
				Plant:          cur.Plant,
				ConfirmDate:    cur.ConfirmDate,
				BOMMaterialRef: cur.BOMMaterialRef,
			})

			requestDate := line.RequestDate()
			datesAgree := sameDay(cur.ConfirmDate, requestDate)

			// Brand-new orders whose dates already agree need no message
			// and no parent bubbling.
			if o.IsNew() && datesAgree {
				continue
			}
			if !datesAgree {
				mismatch = true
			}

			msg := ConfirmationMessage{
				ItemNo:      itemNo,
				Material:    line.Material().Code,
				Quantity:    line.Quantity(),
				Unit:        line.Unit(),
				RequestDate: requestDate,
				ConfirmDate: cur.ConfirmDate,
				Plant:       line.Plant(),
				ShowInPopup: !datesAgree,
			}
			if line.IsBOMComponent() {
				msg.ParentItemNo = line.ParentItemNo()
				if parent, ok := byItemNo[line.ParentItemNo()]; ok {
					msg.ParentBOM = order.PadItemNo(parent.ItemNo()) + "/" + parent.Material().Code
				}
			}
			messages = append(messages, msg)

			// The parent inherits the child's planning result, once per
			// pass regardless of how many siblings mismatched.
			if parentNo := line.ParentItemNo(); parentNo != "" && !visited[parentNo] {
				work = append(work, PlanningResponseItem{
					ItemNo:         parentNo,
					ConfirmDate:    cur.ConfirmDate,
					Plant:          cur.Plant,
					BOMMaterialRef: cur.BOMMaterialRef,
				})
			}
		}
	}

	return messages, mismatch, touched, records
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
