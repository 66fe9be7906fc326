package iou

// CheckResult captures any non-error abci result
// to make sure people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human readable data, reported on the results of the check.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to
	// perform.
	GasAllocated int64
	// GasPayment is the total fees for this tx (or other source of
	// payment).
	GasPayment int64
}

// DeliverResult captures any non-error abci result
// to make sure people use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created
	// entity.
	Data []byte
	// Log is human readable data, reported on the results of the
	// delivery.
	Log string
	// GasUsed is the units of work performed by this transaction.
	GasUsed int64
}
