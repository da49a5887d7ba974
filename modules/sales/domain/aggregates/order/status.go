package order

// Processing codes used by the external order system.
const (
	ProcessingOpen     = "A"
	ProcessingPartial  = "B"
	ProcessingComplete = "C"

	// RejectReasonCancelled is the fixed reject code that distinguishes a
	// cancelled item from a completed one: both report overall status C.
	RejectReasonCancelled = "93"
)

// StatusTally is the running per-order count of terminal line states.
type StatusTally struct {
	Cancelled int
	Partial   int
	Completed int
}

// DeriveItemStatus maps one snapshot line onto its lifecycle status and
// updates the tally. The rules are ordered: cancellation first, then
// delivery progress (only meaningful when the delivery code has caught up
// with the overall code), then creation. Anything else keeps the
// previously stored status.
func DeriveItemStatus(snap LineSnapshot, prev ItemStatus, tally *StatusTally) ItemStatus {
	switch {
	case snap.OverallStatus == ProcessingComplete && snap.RejectReason == RejectReasonCancelled:
		tally.Cancelled++
		return ItemStatusCancelled
	case snap.DeliveryStatus == snap.OverallStatus && snap.OverallStatus == ProcessingPartial:
		tally.Partial++
		return ItemStatusPartialDelivery
	case snap.DeliveryStatus == snap.OverallStatus && snap.OverallStatus == ProcessingComplete:
		tally.Completed++
		return ItemStatusCompleteDelivery
	case snap.OverallStatus == "" || snap.OverallStatus == ProcessingOpen:
		return ItemStatusCreated
	default:
		return prev
	}
}

// DeriveOrderStatus collapses the tally into the order-level status.
// Cancellation of everything dominates; any partial delivery keeps the
// whole order partial even when every other line is complete.
func DeriveOrderStatus(tally StatusTally, total int) Status {
	switch {
	case total > 0 && tally.Cancelled >= total:
		return StatusCancelled
	case tally.Partial > 0:
		return StatusPartialDelivery
	case total > 0 && tally.Completed+tally.Cancelled >= total:
		return StatusCompleteDelivery
	default:
		return StatusReceived
	}
}
