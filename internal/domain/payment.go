package domain

// PaymentAttempt is the ephemeral record of one trip through the gateway.
// The transaction id is assigned server-side and only becomes known from
// the callback parameters; the attempt is consumed exactly once by the
// reconciler and discarded after a terminal state is reached.
type PaymentAttempt struct {
	TransactionID string
	PlanID        string
	Amount        string
	BillingCycle  BillingCycle
	RawParams     map[string]string
}

// PaymentSummary is the confirmed transaction detail returned by the
// server after verification, kept only for display.
type PaymentSummary struct {
	TransactionID string
	PlanName      string
	Amount        string
}
