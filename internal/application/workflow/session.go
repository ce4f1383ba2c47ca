package workflow

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edge/client/internal/domain/order"
	"github.com/edge/client/internal/domain/partner"
	"github.com/edge/client/internal/domain/shared"
)

// Session drives one order through the workflow. It exclusively owns its
// in-memory order value; other views hold independent copies synchronized
// through the live update reconciler. Transitions are strictly sequential
// within a session: each action completes, including its audit append,
// before the next one runs.
type Session struct {
	mu sync.Mutex

	id     string
	editID string

	orders    order.Gateway
	customers partner.CustomerGateway
	drafts    *DraftManager
	journal   *Journal
	logger    *zap.Logger

	ord     *order.Order
	step    Step
	subStep SubStep
	working WorkingSet
	started bool
	closed  bool
}

// NewSession creates a workflow session. editID, when non-empty, names an
// existing order to edit; that order is never subject to draft cleanup.
func NewSession(orders order.Gateway, customers partner.CustomerGateway, drafts *DraftManager, journal *Journal, logger *zap.Logger, editID string) *Session {
	return &Session{
		id:        uuid.New().String(),
		editID:    editID,
		orders:    orders,
		customers: customers,
		drafts:    drafts,
		journal:   journal,
		logger:    logger,
	}
}

// ID returns the session identifier used by the draft creation guard
func (s *Session) ID() string { return s.id }

// Start resolves the session's order (adopt by id, adopt existing draft, or
// create a new draft), projects the step to display from the persisted
// status, and hydrates step-local working fields from the order.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return shared.NewDomainError("INVALID_STATE", "Session is already started")
	}

	ord, err := s.drafts.Resolve(ctx, s.id, s.editID)
	if err != nil {
		return err
	}
	s.adopt(ord)
	s.started = true

	s.logger.Info("workflow session started",
		zap.String("session_id", s.id),
		zap.String("order_id", ord.ID),
		zap.String("status", string(ord.Status)),
		zap.String("step", string(s.step)))
	return nil
}

// adopt replaces the session's order and recomputes everything derived from
// it. Callers hold s.mu.
func (s *Session) adopt(ord *order.Order) {
	s.ord = ord
	s.step, s.subStep = StepForStatus(ord)
	s.working = HydrateWorkingSet(ord)
}

func (s *Session) ensureActive() error {
	if !s.started {
		return shared.NewDomainError("INVALID_STATE", "Session is not started")
	}
	if s.closed || s.ord == nil {
		return shared.NewDomainError("INVALID_STATE", "Session is closed")
	}
	return nil
}

// Order returns a copy of the session's current order snapshot
func (s *Session) Order() *order.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ord == nil {
		return nil
	}
	return s.ord.Clone()
}

// Step returns the currently displayed step
func (s *Session) Step() Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.step
}

// SubStep returns the entry cursor position; empty outside the entry step
func (s *Session) SubStep() SubStep {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subStep
}

// Working returns the current step-local working fields
func (s *Session) Working() WorkingSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.working
}

// IsCompleted reports whether a step is completed for the session's order
func (s *Session) IsCompleted(step Step) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ord == nil {
		return false
	}
	return IsStepCompleted(s.ord, step)
}

// Records returns the audit journal newest-first for display
func (s *Session) Records() []order.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ord == nil {
		return nil
	}
	history := s.ord.History()
	out := make([]order.Record, len(history))
	for idx, rec := range history {
		out[len(history)-1-idx] = rec
	}
	return out
}

// ============================================
// Entry step
// ============================================

// SelectCustomer sets the order's customer reference. The customer is fetched
// first so a dangling id never reaches the order.
func (s *Session) SelectCustomer(ctx context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if !s.ord.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Customer can only be changed on a draft order")
	}

	cust, err := s.customers.FetchByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("fetch customer: %w", err)
	}

	next := s.ord.Clone()
	next.CustomerID = cust.ID
	return s.persistAndAdopt(ctx, next)
}

// AddProduct adds a line item through the store, which resolves the product
// and recomputes all totals. The persisted order replaces the local copy.
func (s *Session) AddProduct(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}

	persisted, err := s.orders.AddLineItem(ctx, s.ord.ID, productID, quantity)
	if err != nil {
		return err
	}
	s.ord = persisted
	return nil
}

// UpdateQuantity changes a line item's quantity through the store
func (s *Session) UpdateQuantity(ctx context.Context, itemID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}

	persisted, err := s.orders.UpdateLineItemQuantity(ctx, s.ord.ID, itemID, quantity)
	if err != nil {
		return err
	}
	s.ord = persisted
	return nil
}

// RemoveProduct removes a line item through the store
func (s *Session) RemoveProduct(ctx context.Context, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}

	persisted, err := s.orders.RemoveLineItem(ctx, s.ord.ID, itemID)
	if err != nil {
		return err
	}
	s.ord = persisted
	return nil
}

// SetAddresses sets both shipping and billing address references
func (s *Session) SetAddresses(ctx context.Context, shippingID, billingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if !s.ord.IsDraft() {
		return shared.NewDomainError("INVALID_STATE", "Addresses can only be changed on a draft order")
	}

	next := s.ord.Clone()
	next.ShippingAddressID = shippingID
	next.BillingAddressID = billingID
	return s.persistAndAdopt(ctx, next)
}

// Next advances the entry cursor one sub-step. Pure client-side movement:
// nothing is persisted and no audit record is appended.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if s.step != StepEntry {
		return shared.NewDomainError("INVALID_STATE", "Sub-step navigation only applies to the entry step")
	}
	if err := CanProceed(s.ord, s.working, StepEntry, s.subStep); err != nil {
		return err
	}
	for idx, sub := range entrySubSteps {
		if sub == s.subStep && idx < len(entrySubSteps)-1 {
			s.subStep = entrySubSteps[idx+1]
			return nil
		}
	}
	return shared.NewDomainError("INVALID_STATE", "Already on the last entry sub-step")
}

// Previous moves the entry cursor one sub-step back
func (s *Session) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if s.step != StepEntry {
		return shared.NewDomainError("INVALID_STATE", "Sub-step navigation only applies to the entry step")
	}
	for idx, sub := range entrySubSteps {
		if sub == s.subStep && idx > 0 {
			s.subStep = entrySubSteps[idx-1]
			return nil
		}
	}
	return shared.NewDomainError("INVALID_STATE", "Already on the first entry sub-step")
}

// CompleteEntry submits the draft for approval. All entry prerequisites are
// re-validated; the order becomes permanent once this persists.
func (s *Session) CompleteEntry(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	for _, sub := range []SubStep{SubStepCustomer, SubStepProducts, SubStepShipping} {
		if err := CanProceed(s.ord, s.working, StepEntry, sub); err != nil {
			return err
		}
	}

	return s.transition(ctx,
		func(o *order.Order) error {
			return advanceStatus(o, order.StatusPendingApproval)
		},
		StepApproval,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:   string(StepEntry),
				Status: order.StatusPendingApproval,
				Data: map[string]any{
					"customerId": persisted.CustomerID,
					"itemCount":  len(persisted.Items),
					"total":      persisted.Total.String(),
				},
			}
		})
}

// ============================================
// Approval and confirmation
// ============================================

// SetApprovalChecks records the three approval flags in the working set
func (s *Session) SetApprovalChecks(creditCheck, inventory, price bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.CreditCheckPassed = creditCheck
	s.working.InventoryConfirmed = inventory
	s.working.PriceApproved = price
}

// SetApprovalNotes records free-text approval notes in the working set
func (s *Session) SetApprovalNotes(notes string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.ApprovalNotes = notes
}

// Approve moves the order to APPROVED. Requires all three approval checks;
// the flags and notes are merged into the extension bag before persisting.
func (s *Session) Approve(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if err := CanProceed(s.ord, s.working, StepApproval, ""); err != nil {
		return err
	}

	ws := s.working
	return s.transition(ctx,
		func(o *order.Order) error {
			if err := advanceStatus(o, order.StatusApproved); err != nil {
				return err
			}
			mergeExtension(o, map[string]any{
				keyApprovalNotes:      ws.ApprovalNotes,
				keyCreditCheckPassed:  ws.CreditCheckPassed,
				keyInventoryConfirmed: ws.InventoryConfirmed,
				keyPriceApproved:      ws.PriceApproved,
				keyApprovedAt:         time.Now().UTC().Format(time.RFC3339),
			})
			return nil
		},
		StepConfirmation,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:   string(StepApproval),
				Status: order.StatusApproved,
				Notes:  ws.ApprovalNotes,
				Data: map[string]any{
					"creditCheckPassed":  ws.CreditCheckPassed,
					"inventoryConfirmed": ws.InventoryConfirmed,
					"priceApproved":      ws.PriceApproved,
				},
			}
		})
}

// Confirm acknowledges the approved order. The status stays APPROVED; only
// the confirmation timestamp is persisted, plus one audit record.
func (s *Session) Confirm(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if s.ord.Status != order.StatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Only an approved order can be confirmed")
	}

	return s.transition(ctx,
		func(o *order.Order) error {
			mergeExtension(o, map[string]any{
				keyConfirmedAt: time.Now().UTC().Format(time.RFC3339),
			})
			return nil
		},
		StepShippingInstruction,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:   string(StepConfirmation),
				Status: order.StatusApproved,
				Data: map[string]any{
					"orderNumber": persisted.OrderNumber,
				},
			}
		})
}

// ============================================
// Shipping
// ============================================

// SetShippingInstructions records free-text shipping instructions
func (s *Session) SetShippingInstructions(instructions string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.ShippingInstructions = instructions
}

// SetRequestedShipDate records the requested ship date
func (s *Session) SetRequestedShipDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.RequestedShipDate = &date
}

// InstructShipping moves the order to SHIPPING_INSTRUCTED with the requested
// ship date and instructions merged into the extension bag.
func (s *Session) InstructShipping(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if err := CanProceed(s.ord, s.working, StepShippingInstruction, ""); err != nil {
		return err
	}

	ws := s.working
	return s.transition(ctx,
		func(o *order.Order) error {
			if err := advanceStatus(o, order.StatusShippingInstructed); err != nil {
				return err
			}
			mergeExtension(o, map[string]any{
				keyShippingInstructions: ws.ShippingInstructions,
				keyRequestedShipDate:    ws.RequestedShipDate.UTC().Format(time.RFC3339),
			})
			return nil
		},
		StepShipping,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:   string(StepShippingInstruction),
				Status: order.StatusShippingInstructed,
				Data: map[string]any{
					"requestedShipDate": ws.RequestedShipDate.UTC().Format(time.RFC3339),
				},
			}
		})
}

// SetShipDate records the actual ship date
func (s *Session) SetShipDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.ShipDate = &date
}

// SetTrackingNumber records the shipment tracking number
func (s *Session) SetTrackingNumber(tracking string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.TrackingNumber = tracking
}

// Ship moves the order to SHIPPED, setting the immutable top-level ship date
// and the tracking number in the extension bag.
func (s *Session) Ship(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if err := CanProceed(s.ord, s.working, StepShipping, ""); err != nil {
		return err
	}

	ws := s.working
	return s.transition(ctx,
		func(o *order.Order) error {
			if err := advanceStatus(o, order.StatusShipped); err != nil {
				return err
			}
			if err := o.SetShipDate(*ws.ShipDate); err != nil {
				return err
			}
			mergeExtension(o, map[string]any{
				keyTrackingNumber: ws.TrackingNumber,
			})
			return nil
		},
		StepInvoicing,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:   string(StepShipping),
				Status: order.StatusShipped,
				Data: map[string]any{
					"shipDate":       ws.ShipDate.UTC().Format(time.RFC3339),
					"trackingNumber": ws.TrackingNumber,
				},
			}
		})
}

// ============================================
// Invoicing
// ============================================

// SetInvoiceNumber records the invoice number
func (s *Session) SetInvoiceNumber(number string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.InvoiceNumber = number
}

// SetInvoiceDate records the invoice date
func (s *Session) SetInvoiceDate(date time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.working.InvoiceDate = &date
}

// FetchNextInvoiceNumber asks the store for the next invoice number in the
// sequence and places it in the working set.
func (s *Session) FetchNextInvoiceNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return "", err
	}

	number, err := s.orders.NextInvoiceNumber(ctx)
	if err != nil {
		return "", err
	}
	s.working.InvoiceNumber = number
	return number, nil
}

// Invoice moves the order to INVOICED with the immutable invoice fields set
func (s *Session) Invoice(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if err := CanProceed(s.ord, s.working, StepInvoicing, ""); err != nil {
		return err
	}

	ws := s.working
	return s.transition(ctx,
		func(o *order.Order) error {
			if err := advanceStatus(o, order.StatusInvoiced); err != nil {
				return err
			}
			return o.SetInvoice(ws.InvoiceNumber, *ws.InvoiceDate)
		},
		StepHistory,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:   string(StepInvoicing),
				Status: order.StatusInvoiced,
				Data: map[string]any{
					"invoiceNumber": persisted.InvoiceNumber,
					"invoiceDate":   ws.InvoiceDate.UTC().Format(time.RFC3339),
					"total":         persisted.Total.String(),
				},
			}
		})
}

// ============================================
// Manual actions
// ============================================

// ChangeStatus sets the order status directly, bypassing transition legality.
// A status_change record with the old and new status is appended, and the
// displayed step is re-projected from the new status.
func (s *Session) ChangeStatus(ctx context.Context, next order.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if !next.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown status %q", next))
	}

	old := s.ord.Status
	if err := s.transition(ctx,
		func(o *order.Order) error {
			o.Status = next
			return nil
		},
		s.step,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:   "status_change",
				Status: next,
				Data: map[string]any{
					"oldStatus": string(old),
					"newStatus": string(next),
				},
			}
		}); err != nil {
		return err
	}

	s.step, s.subStep = StepForStatus(s.ord)
	return nil
}

// AddNote appends a manual annotation: the text is concatenated onto the
// order's notes field and a note-only journal record is appended. No status
// change occurs.
func (s *Session) AddNote(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureActive(); err != nil {
		return err
	}
	if text == "" {
		return shared.NewDomainError("VALIDATION_FAILED", "Note text cannot be empty")
	}

	return s.transition(ctx,
		func(o *order.Order) error {
			o.AppendNote(text)
			return nil
		},
		s.step,
		func(persisted *order.Order) order.Record {
			return order.Record{
				Step:  "note",
				Notes: text,
			}
		})
}

// ============================================
// Live updates and teardown
// ============================================

// ApplyUpdate merges an externally pushed snapshot of the session's order.
// Last write observed wins; pushes for other ids are ignored without side
// effects.
func (s *Session) ApplyUpdate(pushed *order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ord == nil || pushed == nil || pushed.ID != s.ord.ID {
		return
	}
	s.adopt(pushed.Clone())
	s.logger.Debug("session order replaced by pushed snapshot",
		zap.String("order_id", pushed.ID),
		zap.String("status", string(pushed.Status)))
}

// ApplyDelete handles an external delete of the session's order. The session
// becomes unusable; draft cleanup is skipped since the order is already gone.
func (s *Session) ApplyDelete(orderID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.ord == nil || orderID != s.ord.ID {
		return
	}
	s.logger.Warn("session order deleted externally", zap.String("order_id", orderID))
	s.ord = nil
	s.closed = true
}

// Close ends the session and triggers best-effort draft cleanup against the
// latest known order state. Idempotent.
func (s *Session) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.drafts.Cleanup(ctx, s.ord, s.editID != "")
	s.logger.Info("workflow session closed", zap.String("session_id", s.id))
}

// ============================================
// Internals
// ============================================

// persistAndAdopt persists a mutated clone and adopts the store's result.
// Callers hold s.mu. On failure the session keeps its previous copy.
func (s *Session) persistAndAdopt(ctx context.Context, next *order.Order) error {
	persisted, err := s.orders.Update(ctx, next.ID, next)
	if err != nil {
		return err
	}
	s.ord = persisted
	return nil
}

// transition runs one workflow action: mutate a clone, persist it, append the
// audit record against the persisted result, then advance the displayed step.
// A failed persist leaves status, step and journal untouched. A failed audit
// append keeps the advanced state, since the status update already committed,
// and reports the error.
func (s *Session) transition(ctx context.Context, mutate func(*order.Order) error, nextStep Step, recFor func(*order.Order) order.Record) error {
	next := s.ord.Clone()
	if err := mutate(next); err != nil {
		return err
	}

	persisted, err := s.orders.Update(ctx, next.ID, next)
	if err != nil {
		s.logger.Error("transition persist failed",
			zap.String("order_id", next.ID),
			zap.String("step", string(s.step)),
			zap.Error(err))
		return err
	}

	recorded, err := s.journal.Append(ctx, persisted, recFor(persisted))
	if err != nil {
		// The status change is already committed; the journal is the only
		// casualty.
		s.ord = persisted
		s.advanceStep(nextStep)
		return err
	}

	s.ord = recorded
	s.advanceStep(nextStep)
	return nil
}

// advanceStep moves the displayed step. The sub-step cursor is pure client
// state; it only resets when the step actually changes, so actions that stay
// on the current step (a note, for example) leave entry navigation alone.
func (s *Session) advanceStep(next Step) {
	if next != s.step {
		s.subStep = ""
	}
	s.step = next
}

// mergeExtension writes working fields into a cloned order's bag. The clone's
// bag is already detached from the session copy.
func mergeExtension(o *order.Order, fields map[string]any) {
	if o.Extension == nil {
		o.Extension = make(shared.ExtensionData)
	}
	for key, value := range fields {
		o.Extension[key] = value
	}
}

func advanceStatus(o *order.Order, target order.Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition from %s to %s", o.Status, target))
	}
	o.Status = target
	return nil
}
