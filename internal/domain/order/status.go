package order

// Status represents the business status of an order. It is the single source
// of truth for workflow progress; the displayed step is always projected from
// it and never persisted separately.
type Status string

const (
	StatusDraft              Status = "DRAFT"
	StatusPendingApproval    Status = "PENDING_APPROVAL"
	StatusApproved           Status = "APPROVED"
	StatusShippingInstructed Status = "SHIPPING_INSTRUCTED"
	StatusShipped            Status = "SHIPPED"
	StatusInvoiced           Status = "INVOICED"
	StatusPaid               Status = "PAID"
	StatusCancelled          Status = "CANCELLED"
)

// statusRank orders the statuses along the workflow progression. CANCELLED is
// deliberately absent: a cancelled order is not "at or beyond" anything.
var statusRank = map[Status]int{
	StatusDraft:              0,
	StatusPendingApproval:    1,
	StatusApproved:           2,
	StatusShippingInstructed: 3,
	StatusShipped:            4,
	StatusInvoiced:           5,
	StatusPaid:               6,
}

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusApproved, StatusShippingInstructed,
		StatusShipped, StatusInvoiced, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// AtLeast reports whether s is at or beyond target in workflow progression
// order. Either side being CANCELLED (or unknown) yields false.
func (s Status) AtLeast(target Status) bool {
	sr, ok1 := statusRank[s]
	tr, ok2 := statusRank[target]
	return ok1 && ok2 && sr >= tr
}

// CanTransitionTo checks if the status can transition to the target status
// through a workflow action. Manual status edits bypass this check.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusDraft:
		return target == StatusPendingApproval || target == StatusCancelled
	case StatusPendingApproval:
		return target == StatusApproved || target == StatusCancelled
	case StatusApproved:
		return target == StatusShippingInstructed || target == StatusCancelled
	case StatusShippingInstructed:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusInvoiced
	case StatusInvoiced:
		return target == StatusPaid
	case StatusPaid, StatusCancelled:
		return false // Terminal states
	}
	return false
}
