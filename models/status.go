package models

// Review lifecycle for every request kind. Support requests use responded as
// their terminal state; everything else ends in approved or rejected.
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusResponded = "responded"
)
