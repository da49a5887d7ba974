package order

import (
	"sort"

	"github.com/shopspring/decimal"
)

// BOMTree is the explicit parent→children adjacency over item numbers,
// built once per operation from a flat line collection. Lines keep only a
// parent back-reference; ownership edges live here.
type BOMTree struct {
	children map[string][]string
	parents  map[string]string
}

// BOMSource is the minimal shape the tree builder needs; both LineSnapshot
// and *OrderLine satisfy it via the adapters below.
type BOMSource struct {
	ItemNo       string
	BOMFlag      bool
	ParentItemNo string
}

func SnapshotBOMSources(lines []LineSnapshot) []BOMSource {
	out := make([]BOMSource, 0, len(lines))
	for _, l := range lines {
		out = append(out, BOMSource{
			ItemNo:       NormalizeItemNo(l.ItemNo),
			BOMFlag:      l.BOMFlag,
			ParentItemNo: NormalizeItemNo(l.ParentItemNo),
		})
	}
	return out
}

func LineBOMSources(lines []*OrderLine) []BOMSource {
	out := make([]BOMSource, 0, len(lines))
	for _, l := range lines {
		out = append(out, BOMSource{
			ItemNo:       l.ItemNo(),
			BOMFlag:      l.BOMFlag(),
			ParentItemNo: l.ParentItemNo(),
		})
	}
	return out
}

// BuildBOMTree builds the adjacency. A line is a child iff it is
// BOM-flagged and declares a parent; every other line (parents and
// standalone lines alike) is present with an empty child list. Children
// are ordered numerically by item number.
func BuildBOMTree(sources []BOMSource) *BOMTree {
	t := &BOMTree{
		children: make(map[string][]string, len(sources)),
		parents:  make(map[string]string),
	}
	for _, s := range sources {
		if _, ok := t.children[s.ItemNo]; !ok {
			t.children[s.ItemNo] = []string{}
		}
		if s.BOMFlag && s.ParentItemNo != "" {
			t.children[s.ParentItemNo] = append(t.children[s.ParentItemNo], s.ItemNo)
			t.parents[s.ItemNo] = s.ParentItemNo
		}
	}
	for parent := range t.children {
		kids := t.children[parent]
		sort.Slice(kids, func(i, j int) bool { return LessItemNo(kids[i], kids[j]) })
	}
	return t
}

// Children returns the ordered child item numbers, empty for standalone
// and leaf lines.
func (t *BOMTree) Children(itemNo string) []string {
	return t.children[NormalizeItemNo(itemNo)]
}

// Parent returns the owning item number and whether the line is a
// component.
func (t *BOMTree) Parent(itemNo string) (string, bool) {
	p, ok := t.parents[NormalizeItemNo(itemNo)]
	return p, ok
}

func (t *BOMTree) IsComponent(itemNo string) bool {
	_, ok := t.Parent(itemNo)
	return ok
}

// AggregateParents sets each parent line's net price and weight to the sum
// over its non-rejected children and recomputes the parent's per-unit price
// as aggregated net price divided by parent quantity. The parent's own
// stored values do not enter the sum, so re-aggregating already aggregated
// lines yields the same result.
func (t *BOMTree) AggregateParents(lines []*OrderLine) {
	byItemNo := make(map[string]*OrderLine, len(lines))
	for _, l := range lines {
		byItemNo[l.ItemNo()] = l
	}

	for _, parent := range lines {
		kids := t.Children(parent.ItemNo())
		if len(kids) == 0 {
			continue
		}
		netPrice := decimal.Zero
		netWeight := decimal.Zero
		for _, itemNo := range kids {
			child, ok := byItemNo[itemNo]
			if !ok || child.Status() == ItemStatusCancelled {
				continue
			}
			netPrice = netPrice.Add(child.NetPrice())
			netWeight = netWeight.Add(child.NetWeight())
		}
		unitPrice := parent.UnitPrice()
		if !parent.Quantity().IsZero() {
			unitPrice = netPrice.Div(parent.Quantity())
		}
		parent.SetAggregates(netPrice, netWeight, unitPrice)
	}
}
