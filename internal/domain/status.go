package domain

// Order lifecycle. An order is created pending and settles exactly once.
type OrderStatus string

const (
	OrderPending OrderStatus = "pending"
	OrderPaid    OrderStatus = "paid"
	OrderFailed  OrderStatus = "failed"
)

var validNext = map[OrderStatus]map[OrderStatus]bool{
	OrderPending: {OrderPaid: true, OrderFailed: true},
	OrderPaid:    {},
	OrderFailed:  {},
}

func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Processor payment_status sentinels as PayFast sends them. Anything else is
// an intermediate status and causes no transition.
const (
	PaymentComplete  = "COMPLETE"
	PaymentFailed    = "FAILED"
	PaymentCancelled = "CANCELLED"
)

// Admission workflow states.
const (
	AdmissionUnpaid = "unpaid"
	AdmissionPaid   = "paid"
	AdmissionNew    = "new"
)
