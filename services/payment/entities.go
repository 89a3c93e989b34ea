package main

// User represents one credit ledger record, persisted as the hash user:{user_id}.
type User struct {
	UserID int64 `json:"user_id"`
	Credit int64 `json:"credit"`
}

// OrderPayment is the slice of an order record this service reads and writes:
// the paid flag it owns during Pay/Cancel, plus the total used for refunds.
type OrderPayment struct {
	Paid      bool
	TotalCost int64
}

const (
	fieldCredit    = "credit"
	fieldPaid      = "paid"
	fieldTotalCost = "total_cost"
)

// userIDCounter is the key holding the sequential user id allocator.
const userIDCounter = "user_id"

func userKey(userID string) string {
	return "user:" + userID
}

func orderKey(orderID string) string {
	return "order:" + orderID
}
