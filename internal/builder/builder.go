package builder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alimahmoud/usdt-orders/internal/fees"
	"github.com/alimahmoud/usdt-orders/internal/order"
)

var (
	ErrIdentityIncomplete = errors.New("all identity fields are required before continuing")
	ErrOrderIncomplete    = errors.New("all order fields are required before continuing")
	ErrNoPreviousStep     = errors.New("no previous step")
	ErrAwaitingSubmit     = errors.New("the confirmation step is left through submit")
	ErrNotAtConfirm       = errors.New("submission is only possible from the confirmation step")
	ErrNotSubmitted       = errors.New("reset is only possible after a successful submission")
	ErrSubmitInFlight     = errors.New("a submission is already in flight")
)

// Step is a position in the order form, numbered 1 through 5.
type Step int

const (
	StepIdentity Step = iota + 1
	StepOrderDetails
	StepReview
	StepConfirm
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepIdentity:
		return "identity"
	case StepOrderDetails:
		return "order_details"
	case StepReview:
		return "review"
	case StepConfirm:
		return "confirm"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Submitter delivers a finished order record to the submission endpoint.
// A nil error means the operator was notified.
type Submitter interface {
	Submit(ctx context.Context, rec *order.Record) error
}

// Builder walks a customer through the order form: identity, order details,
// review, confirmation, submitted. Transitions are strictly linear with a
// guard per forward step; backward navigation is always allowed before
// submission. One Builder belongs to one session and is safe for concurrent
// use within it.
type Builder struct {
	mu sync.Mutex

	step       Step
	identity   order.Identity
	buy        order.BuyOrder
	sell       order.SellOrder
	submitting bool
	submitErr  string

	submitter Submitter
}

func New(submitter Submitter) *Builder {
	return &Builder{
		step:      StepIdentity,
		submitter: submitter,
	}
}

// Step returns the current form position.
func (b *Builder) Step() Step {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.step
}

// Submitting reports whether a submission is currently in flight.
func (b *Builder) Submitting() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submitting
}

// SubmitError returns the user-facing message of the last failed submission,
// empty when the last attempt succeeded or none was made.
func (b *Builder) SubmitError() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submitErr
}

// SetIdentity replaces the collected identity fields. Allowed at any point
// before the order is submitted.
func (b *Builder) SetIdentity(identity order.Identity) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.step == StepSubmitted {
		return
	}
	b.identity = identity
}

// SetBuyOrder replaces the collected buy details.
func (b *Builder) SetBuyOrder(buy order.BuyOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.step == StepSubmitted {
		return
	}
	b.buy = buy
}

// SetSellOrder replaces the collected sell details.
func (b *Builder) SetSellOrder(sell order.SellOrder) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.step == StepSubmitted {
		return
	}
	b.sell = sell
}

// Identity returns the collected identity fields.
func (b *Builder) Identity() order.Identity {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.identity
}

// Next advances one step forward. Leaving the identity step requires all four
// identity fields; leaving the details step requires the chosen direction's
// required fields. The confirmation step is left through Submit, not Next.
// Navigation is locked while a submission is outstanding.
func (b *Builder) Next() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitting {
		return ErrSubmitInFlight
	}

	switch b.step {
	case StepIdentity:
		if !b.identity.Complete() {
			return ErrIdentityIncomplete
		}
	case StepOrderDetails:
		if !b.detailsComplete() {
			return ErrOrderIncomplete
		}
	case StepReview:
		// Review to confirm is unconditional.
	case StepConfirm, StepSubmitted:
		return ErrAwaitingSubmit
	}

	b.step++
	return nil
}

// Back moves one step backward. Not possible from the identity step, which
// has no predecessor, nor once the order is submitted, nor while a submission
// is outstanding.
func (b *Builder) Back() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.submitting {
		return ErrSubmitInFlight
	}
	if b.step == StepIdentity || b.step == StepSubmitted {
		return ErrNoPreviousStep
	}

	b.step--
	return nil
}

// Submit builds the order record, computes the fee breakdown and delivers the
// record through the submitter. On success the form advances to the submitted
// step. On any failure the form stays at confirmation with a user-facing
// error and may be resubmitted. A second Submit while one is outstanding is
// rejected rather than queued.
func (b *Builder) Submit(ctx context.Context) error {
	b.mu.Lock()
	if b.step != StepConfirm {
		b.mu.Unlock()
		return ErrNotAtConfirm
	}
	if b.submitting {
		b.mu.Unlock()
		return ErrSubmitInFlight
	}

	b.submitting = true
	b.submitErr = ""

	rec, err := b.buildRecord()
	if err != nil {
		b.submitting = false
		b.submitErr = err.Error()
		b.mu.Unlock()
		return err
	}
	b.mu.Unlock()

	// The provider call runs outside the lock so the form state stays
	// readable while a submission is outstanding.
	submitErr := b.submitter.Submit(ctx, rec)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.submitting = false

	if submitErr != nil {
		b.submitErr = "فشل في إرسال الطلب. يرجى المحاولة مرة أخرى."
		return submitErr
	}

	b.step = StepSubmitted
	return nil
}

// Reset clears all collected fields and transient flags and returns the form
// to the identity step. Only valid once the order was submitted.
func (b *Builder) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.step != StepSubmitted {
		return ErrNotSubmitted
	}

	b.step = StepIdentity
	b.identity = order.Identity{}
	b.buy = order.BuyOrder{}
	b.sell = order.SellOrder{}
	b.submitErr = ""
	b.submitting = false
	return nil
}

// detailsComplete checks the direction-specific required fields.
// Caller holds b.mu.
func (b *Builder) detailsComplete() bool {
	switch b.identity.TransactionType {
	case order.DirectionBuy:
		return b.buy.Complete()
	case order.DirectionSell:
		return b.sell.Complete()
	default:
		return false
	}
}

// buildRecord snapshots the form state into an immutable order record with
// the fee breakdown computed from the current amount and network.
// Caller holds b.mu.
func (b *Builder) buildRecord() (*order.Record, error) {
	var (
		amount  = b.buy.Amount
		network = b.buy.Network
	)
	if b.identity.TransactionType == order.DirectionSell {
		amount = b.sell.Amount
		network = b.sell.Network
	}

	summary, err := fees.Quote(b.identity.TransactionType, amount, network)
	if err != nil {
		return nil, err
	}

	return order.NewRecord(
		b.identity,
		&b.buy,
		&b.sell,
		summary.Commission,
		summary.NetworkFee,
		summary.TotalFee,
		summary.TotalLocal,
		time.Now(),
	)
}
