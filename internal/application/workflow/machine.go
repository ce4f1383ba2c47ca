package workflow

import (
	"time"

	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/shared"
)

// Step is one stage of the order workflow. The persisted order status is the
// single source of truth; the step is always recomputed from it and never
// stored, so the displayed position cannot diverge from the backend state.
type Step string

const (
	StepEntry               Step = "entry"
	StepApproval            Step = "approval"
	StepConfirmation        Step = "confirmation"
	StepShippingInstruction Step = "shipping_instruction"
	StepShipping            Step = "shipping"
	StepInvoicing           Step = "invoicing"
	StepHistory             Step = "history"
)

// SubStep is the finer cursor position inside the entry step only
type SubStep string

const (
	SubStepCustomer SubStep = "customer"
	SubStepProducts SubStep = "products"
	SubStepShipping SubStep = "shipping"
	SubStepReview   SubStep = "review"
)

var stepSequence = []Step{
	StepEntry,
	StepApproval,
	StepConfirmation,
	StepShippingInstruction,
	StepShipping,
	StepInvoicing,
	StepHistory,
}

var entrySubSteps = []SubStep{
	SubStepCustomer,
	SubStepProducts,
	SubStepShipping,
	SubStepReview,
}

// stepLabels maps machine keys to the display labels persisted in journal
// records. Keys outside the step sequence belong to manual journal actions.
var stepLabels = map[string]string{
	string(StepEntry):               "Order Entry",
	string(StepApproval):            "Approval",
	string(StepConfirmation):        "Confirmation",
	string(StepShippingInstruction): "Shipping Instruction",
	string(StepShipping):            "Shipping",
	string(StepInvoicing):           "Invoicing",
	string(StepHistory):             "History",
	"status_change":                 "Status Change",
	"note":                          "Note",
}

// LabelFor returns the display label for a journal step key, falling back to
// the key itself for unknown steps.
func LabelFor(step string) string {
	if label, ok := stepLabels[step]; ok {
		return label
	}
	return step
}

// Label returns the step's display label
func (s Step) Label() string { return LabelFor(string(s)) }

// Next returns the step after s in the workflow sequence; history is terminal
func (s Step) Next() Step {
	for idx, step := range stepSequence {
		if step == s && idx < len(stepSequence)-1 {
			return stepSequence[idx+1]
		}
	}
	return StepHistory
}

// Extension bag keys for step-local working fields that are not promoted to
// top-level order columns.
const (
	keyApprovalNotes        = "approvalNotes"
	keyCreditCheckPassed    = "creditCheckPassed"
	keyInventoryConfirmed   = "inventoryConfirmed"
	keyPriceApproved        = "priceApproved"
	keyApprovedAt           = "approvedAt"
	keyConfirmedAt          = "confirmedAt"
	keyShippingInstructions = "shippingInstructions"
	keyRequestedShipDate    = "requestedShipDate"
	keyTrackingNumber       = "trackingNumber"
)

// stepTarget is the status each transition step produces. Confirmation and
// history are absent: confirmation persists working fields without a status
// change, and history has no transition of its own.
var stepTarget = map[Step]order.Status{
	StepEntry:               order.StatusPendingApproval,
	StepApproval:            order.StatusApproved,
	StepShippingInstruction: order.StatusShippingInstructed,
	StepShipping:            order.StatusShipped,
	StepInvoicing:           order.StatusInvoiced,
}

// StepForStatus projects a persisted status onto the step to display when
// resuming an order. The entry sub-step is chosen by how much of entry is
// already filled in.
func StepForStatus(o *order.Order) (Step, SubStep) {
	switch o.Status {
	case order.StatusDraft:
		return StepEntry, entrySubStepFor(o)
	case order.StatusPendingApproval:
		return StepApproval, ""
	case order.StatusApproved:
		return StepConfirmation, ""
	case order.StatusShippingInstructed:
		return StepShipping, ""
	case order.StatusShipped:
		return StepInvoicing, ""
	case order.StatusInvoiced, order.StatusPaid:
		return StepHistory, ""
	default:
		return StepHistory, ""
	}
}

func entrySubStepFor(o *order.Order) SubStep {
	switch {
	case !o.HasCustomer():
		return SubStepCustomer
	case !o.HasItems():
		return SubStepProducts
	case !o.HasAddresses():
		return SubStepShipping
	default:
		return SubStepReview
	}
}

// IsStepCompleted reports whether a step is done for the given order: its
// status is at or beyond the status the step produces. History is always
// completed; confirmation is completed once shipping has been instructed or
// the confirmation timestamp is in the bag. The predicate is monotonic in
// status progression, which is what makes completed steps safely navigable
// in read-only review.
func IsStepCompleted(o *order.Order, step Step) bool {
	switch step {
	case StepHistory:
		return true
	case StepConfirmation:
		if o.Status.AtLeast(order.StatusShippingInstructed) {
			return true
		}
		return o.Status.AtLeast(order.StatusApproved) && o.Extension.GetString(keyConfirmedAt) != ""
	default:
		target, ok := stepTarget[step]
		if !ok {
			return false
		}
		return o.Status.AtLeast(target)
	}
}

// WorkingSet holds step-local fields the user fills in before a transition
// persists them. Bag-backed fields are hydrated on resume so a reloaded
// session shows what was already saved.
type WorkingSet struct {
	ApprovalNotes        string
	CreditCheckPassed    bool
	InventoryConfirmed   bool
	PriceApproved        bool
	ShippingInstructions string
	RequestedShipDate    *time.Time
	ShipDate             *time.Time
	TrackingNumber       string
	InvoiceNumber        string
	InvoiceDate          *time.Time
}

// HydrateWorkingSet rebuilds the working set from a persisted order: bag keys
// for step-local fields, top-level columns for ship and invoice data.
func HydrateWorkingSet(o *order.Order) WorkingSet {
	ws := WorkingSet{
		ApprovalNotes:        o.Extension.GetString(keyApprovalNotes),
		CreditCheckPassed:    o.Extension.GetBool(keyCreditCheckPassed),
		InventoryConfirmed:   o.Extension.GetBool(keyInventoryConfirmed),
		PriceApproved:        o.Extension.GetBool(keyPriceApproved),
		ShippingInstructions: o.Extension.GetString(keyShippingInstructions),
		TrackingNumber:       o.Extension.GetString(keyTrackingNumber),
		InvoiceNumber:        o.InvoiceNumber,
	}
	if raw := o.Extension.GetString(keyRequestedShipDate); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			ws.RequestedShipDate = &t
		}
	}
	if o.ShipDate != nil {
		t := *o.ShipDate
		ws.ShipDate = &t
	}
	if o.InvoiceDate != nil {
		t := *o.InvoiceDate
		ws.InvoiceDate = &t
	}
	return ws
}

// CanProceed validates the step-local advance predicate. A nil return means
// the step's primary action may run; a validation error never reaches the
// store.
func CanProceed(o *order.Order, ws WorkingSet, step Step, subStep SubStep) error {
	switch step {
	case StepEntry:
		switch subStep {
		case SubStepCustomer:
			if !o.HasCustomer() {
				return shared.NewDomainError("VALIDATION_FAILED", "Select a customer before continuing")
			}
		case SubStepProducts:
			if !o.HasItems() {
				return shared.NewDomainError("VALIDATION_FAILED", "Add at least one line item before continuing")
			}
		case SubStepShipping:
			if !o.HasAddresses() {
				return shared.NewDomainError("VALIDATION_FAILED", "Both shipping and billing addresses are required")
			}
		case SubStepReview:
			// review is always allowed to complete
		}
		return nil
	case StepApproval:
		if !ws.CreditCheckPassed || !ws.InventoryConfirmed || !ws.PriceApproved {
			return shared.NewDomainError("VALIDATION_FAILED", "Credit check, inventory confirmation and price approval are all required")
		}
		return nil
	case StepConfirmation:
		return nil
	case StepShippingInstruction:
		if ws.RequestedShipDate == nil {
			return shared.NewDomainError("VALIDATION_FAILED", "Requested ship date is required")
		}
		return nil
	case StepShipping:
		if ws.ShipDate == nil {
			return shared.NewDomainError("VALIDATION_FAILED", "Actual ship date is required")
		}
		return nil
	case StepInvoicing:
		if ws.InvoiceNumber == "" || ws.InvoiceDate == nil {
			return shared.NewDomainError("VALIDATION_FAILED", "Invoice number and invoice date are both required")
		}
		return nil
	default:
		return shared.NewDomainError("INVALID_STATE", "No action is available on this step")
	}
}
