package order

import "github.com/kraftedge/oms/pkg/serrors"

var (
	ErrNotFound     = serrors.NewError("SALES_ORDER_NOT_FOUND", "order not found", "Sales.Order.NotFound")
	ErrLineNotFound = serrors.NewError("SALES_LINE_NOT_FOUND", "order line not found", "Sales.Line.NotFound")

	ErrCashOrderNotSplittable = serrors.NewError("SALES_SPLIT_CASH_ORDER", "cash orders cannot be split", "Sales.Split.CashOrder")
	ErrLineNotSplittable      = serrors.NewError("SALES_SPLIT_INELIGIBLE", "cannot split line", "Sales.Split.Ineligible")
	ErrOriginalQuantityZero   = serrors.NewError("SALES_SPLIT_ORIGINAL_ZERO", "original quantity cannot be 0", "Sales.Split.OriginalZero")
	ErrSplitQuantityZero      = serrors.NewError("SALES_SPLIT_QUANTITY_ZERO", "split quantity cannot be 0", "Sales.Split.QuantityZero")
	ErrExceedingOriginal      = serrors.NewError("SALES_SPLIT_EXCEEDS_ORIGINAL", "exceeding the original quantity", "Sales.Split.ExceedsOriginal")
)
