package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/freshmarket/inventory-service/internal/model"
	"github.com/freshmarket/inventory-service/internal/repository"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// State names the positions of the order-entry workflow. A submission
// starts in Editing, moves to Validating once all fields are present,
// and ends in Committed or Rejected. Rejections and unconfirmed
// shortages return the workflow to Editing without writing anything.
type State string

const (
	StateEditing    State = "Editing"
	StateValidating State = "Validating"
	StateCommitted  State = "Committed"
	StateRejected   State = "Rejected"
)

// OrderStore is the persistence context the workflow runs against. The
// production implementation is repository.OrderEntryStore; tests use an
// in-memory double.
//
// Snapshot must return repository.ErrSnapshotNotFound when no inventory
// row exists for the pair. Commit must be all-or-nothing: assign the
// next ledger identifier, capture stock-before/after on the order,
// insert the ledger row and decrement the snapshot in one transaction,
// serializing with concurrent commits for the same pair.
type OrderStore interface {
	Snapshot(ctx context.Context, city, product string) (*model.InventorySnapshot, error)
	Commit(ctx context.Context, o *model.Order) error
}

// EventPublisher receives post-commit notifications. Publishing is
// best-effort: failures are logged and never affect commit success.
type EventPublisher interface {
	OrderCommitted(ctx context.Context, o *model.Order) error
	LowStock(ctx context.Context, adv ReplenishmentAdvisory) error
}

// OrderDraft carries the operator's form input for one submission.
// ConfirmShortage must be set to commit an order whose quantity exceeds
// the available stock; without it such a submission returns a
// ShortageError and writes nothing.
type OrderDraft struct {
	CustomerID      string
	City            string
	Product         string
	Quantity        int
	UnitPrice       decimal.Decimal
	LeadTimeDays    int
	ConfirmShortage bool
}

// ReplenishmentAdvisory is the non-fatal notice emitted when a commit
// leaves a pair's stock below the configured threshold.
type ReplenishmentAdvisory struct {
	City      string `json:"city"`
	Product   string `json:"product"`
	Remaining int    `json:"remaining"`
	Threshold int    `json:"threshold"`
}

// SubmitResult reports the terminal state of one submission. Order is
// set only when the state is Committed; Advisory is set when the commit
// left the stock below the replenishment threshold.
type SubmitResult struct {
	State    State
	Order    *model.Order
	Advisory *ReplenishmentAdvisory
}

// OrderEntry is the order-entry workflow. It owns no database handle
// and renders nothing: presentation adapters call Submit and translate
// the result and the error taxonomy into their own surface.
type OrderEntry struct {
	store       OrderStore
	events      EventPublisher // may be nil
	lowStockMin int
	now         func() time.Time
}

// NewOrderEntry constructs the workflow. events may be nil to disable
// notifications; lowStockMin is the replenishment advisory threshold.
func NewOrderEntry(store OrderStore, events EventPublisher, lowStockMin int) *OrderEntry {
	if store == nil {
		panic("nil store passed to NewOrderEntry")
	}
	return &OrderEntry{
		store:       store,
		events:      events,
		lowStockMin: lowStockMin,
		now:         time.Now,
	}
}

// WithClock overrides the workflow's clock. Test hook.
func (w *OrderEntry) WithClock(now func() time.Time) *OrderEntry {
	w.now = now
	return w
}

// Submit runs one pass of the state machine:
//
//	Editing -> Validating    all required fields present and well-formed
//	Validating -> Rejected   a field fails validation (ValidationError)
//	Validating -> Editing    no snapshot row (ErrProductUnavailable), an
//	                         unconfirmed shortage (ShortageError), or a
//	                         persistence failure after full rollback
//	Validating -> Committed  ledger row inserted and snapshot decremented
//	                         atomically
//
// On commit the order identifier is one more than the current ledger
// maximum (1 for an empty ledger), the delivery date is the order date
// plus the lead time, the status is In-Transit, and stock-before/after
// are captured from the snapshot, with stock-after floored at zero.
func (w *OrderEntry) Submit(ctx context.Context, d OrderDraft) (*SubmitResult, error) {
	if err := validateDraft(d); err != nil {
		return &SubmitResult{State: StateRejected}, err
	}

	// Validating: availability gate against the current snapshot.
	snap, err := w.store.Snapshot(ctx, d.City, d.Product)
	if errors.Is(err, repository.ErrSnapshotNotFound) {
		return &SubmitResult{State: StateEditing}, ErrProductUnavailable
	}
	if err != nil {
		return &SubmitResult{State: StateEditing}, fmt.Errorf("load snapshot: %w", err)
	}
	if snap.Quantity < d.Quantity && !d.ConfirmShortage {
		return &SubmitResult{State: StateEditing}, &ShortageError{
			Requested: d.Quantity,
			Available: snap.Quantity,
		}
	}

	orderDate := w.now().UTC()
	o := &model.Order{
		CustomerID:   d.CustomerID,
		CityID:       snap.CityID,
		ProductID:    snap.ProductID,
		City:         d.City,
		Product:      d.Product,
		OrderDate:    orderDate,
		DeliveryDate: orderDate.AddDate(0, 0, d.LeadTimeDays),
		LeadTimeDays: d.LeadTimeDays,
		Status:       model.StatusInTransit,
		Quantity:     d.Quantity,
		UnitPrice:    d.UnitPrice,
	}
	o.LineTotal = o.Total()

	if err := w.store.Commit(ctx, o); err != nil {
		return &SubmitResult{State: StateEditing}, fmt.Errorf("commit order: %w", err)
	}

	result := &SubmitResult{State: StateCommitted, Order: o}
	if o.StockAfter < w.lowStockMin {
		result.Advisory = &ReplenishmentAdvisory{
			City:      d.City,
			Product:   d.Product,
			Remaining: o.StockAfter,
			Threshold: w.lowStockMin,
		}
	}
	w.publish(ctx, result)
	return result, nil
}

// publish emits post-commit events. Failures are logged, never returned:
// the commit already happened.
func (w *OrderEntry) publish(ctx context.Context, result *SubmitResult) {
	if w.events == nil {
		return
	}
	if err := w.events.OrderCommitted(ctx, result.Order); err != nil {
		logger.Warn().Err(err).Uint64("order_id", result.Order.ID).Msg("failed to publish order.committed")
	}
	if result.Advisory != nil {
		if err := w.events.LowStock(ctx, *result.Advisory); err != nil {
			logger.Warn().Err(err).
				Str("city", result.Advisory.City).
				Str("product", result.Advisory.Product).
				Msg("failed to publish stock.replenishment")
		}
	}
}

func validateDraft(d OrderDraft) error {
	if strings.TrimSpace(d.CustomerID) == "" {
		return &ValidationError{Field: "customer_id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.City) == "" {
		return &ValidationError{Field: "city", Reason: "must not be empty"}
	}
	if strings.TrimSpace(d.Product) == "" {
		return &ValidationError{Field: "product", Reason: "must not be empty"}
	}
	if d.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	if !d.UnitPrice.IsPositive() {
		return &ValidationError{Field: "unit_price", Reason: "must be a positive amount"}
	}
	if d.LeadTimeDays <= 0 {
		return &ValidationError{Field: "lead_time_days", Reason: "must be a positive integer"}
	}
	return nil
}
