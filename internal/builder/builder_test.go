package builder

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/alimahmoud/usdt-orders/internal/order"
)

type stubSubmitter struct {
	err     error
	records []*order.Record
}

func (s *stubSubmitter) Submit(_ context.Context, rec *order.Record) error {
	s.records = append(s.records, rec)
	return s.err
}

// blockingSubmitter holds every delivery until released, so tests can observe
// the builder while a submission is outstanding.
type blockingSubmitter struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
}

func newBlockingSubmitter() *blockingSubmitter {
	return &blockingSubmitter{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *blockingSubmitter) Submit(_ context.Context, _ *order.Record) error {
	s.calls.Add(1)
	s.once.Do(func() { close(s.started) })
	<-s.release
	return nil
}

func completeIdentity(direction order.Direction) order.Identity {
	return order.Identity{
		Name:            "Ali",
		Phone:           "0999",
		City:            "Damascus",
		TransactionType: direction,
	}
}

func completeBuy() order.BuyOrder {
	return order.BuyOrder{
		Amount:        decimal.NewFromInt(200),
		Network:       order.NetworkTRC20,
		Address:       "TD2LoErPRkVPBxDk72ZErtiyi6agirZQjX",
		PaymentMethod: "syriatelcash",
	}
}

func completeSell() order.SellOrder {
	return order.SellOrder{
		Amount:          decimal.NewFromInt(50),
		Network:         order.NetworkBEP20,
		ReceivingMethod: "shamcash",
		AccountDetails:  "5991161126028260",
	}
}

func TestIdentityGuard(t *testing.T) {
	b := New(&stubSubmitter{})
	require.Equal(t, StepIdentity, b.Step())

	// Empty identity can not advance.
	require.ErrorIs(t, b.Next(), ErrIdentityIncomplete)

	// Partially filled identity can not advance either.
	b.SetIdentity(order.Identity{Name: "Ali", Phone: "0999", City: "Damascus"})
	require.ErrorIs(t, b.Next(), ErrIdentityIncomplete)
	require.Equal(t, StepIdentity, b.Step())

	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())
	require.Equal(t, StepOrderDetails, b.Step())
}

func TestDetailsGuard(t *testing.T) {
	b := New(&stubSubmitter{})
	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())

	require.ErrorIs(t, b.Next(), ErrOrderIncomplete)

	// Filling the sell side does not satisfy a buy order.
	b.SetSellOrder(completeSell())
	require.ErrorIs(t, b.Next(), ErrOrderIncomplete)

	buy := completeBuy()
	buy.Amount = decimal.Zero
	b.SetBuyOrder(buy)
	require.ErrorIs(t, b.Next(), ErrOrderIncomplete)

	b.SetBuyOrder(completeBuy())
	require.NoError(t, b.Next())
	require.Equal(t, StepReview, b.Step())
}

func TestBackwardNavigation(t *testing.T) {
	b := New(&stubSubmitter{})
	require.ErrorIs(t, b.Back(), ErrNoPreviousStep)

	b.SetIdentity(completeIdentity(order.DirectionSell))
	require.NoError(t, b.Next())
	b.SetSellOrder(completeSell())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.Equal(t, StepConfirm, b.Step())

	// Walk all the way back, then forward again.
	require.NoError(t, b.Back())
	require.NoError(t, b.Back())
	require.NoError(t, b.Back())
	require.Equal(t, StepIdentity, b.Step())
	require.ErrorIs(t, b.Back(), ErrNoPreviousStep)

	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.Equal(t, StepConfirm, b.Step())
}

func TestConfirmIsLeftThroughSubmit(t *testing.T) {
	b := New(&stubSubmitter{})
	b.SetIdentity(completeIdentity(order.DirectionSell))
	require.NoError(t, b.Next())
	b.SetSellOrder(completeSell())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.Equal(t, StepConfirm, b.Step())

	require.ErrorIs(t, b.Next(), ErrAwaitingSubmit)
	require.Equal(t, StepConfirm, b.Step())
}

func TestSubmitBuildsMatchingRecord(t *testing.T) {
	sub := &stubSubmitter{}
	b := New(sub)

	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())
	b.SetBuyOrder(completeBuy())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())

	require.NoError(t, b.Submit(context.Background()))
	require.Equal(t, StepSubmitted, b.Step())
	require.Empty(t, b.SubmitError())
	require.False(t, b.Submitting())

	require.Len(t, sub.records, 1)
	rec := sub.records[0]
	require.NotNil(t, rec.Buy)
	require.Nil(t, rec.Sell)
	require.True(t, rec.Fee.Equal(decimal.RequireFromString("3.3")), "fee: %s", rec.Fee)
	require.True(t, rec.NetworkFee.Equal(decimal.NewFromInt(2)))
	require.True(t, rec.TotalFee.Equal(decimal.RequireFromString("5.3")))
	require.True(t, rec.TotalAmount.Equal(decimal.NewFromInt(2053000)), "total: %s", rec.TotalAmount)
	require.False(t, rec.Timestamp.IsZero())
}

func TestSubmitSellTotals(t *testing.T) {
	sub := &stubSubmitter{}
	b := New(sub)

	b.SetIdentity(completeIdentity(order.DirectionSell))
	require.NoError(t, b.Next())
	b.SetSellOrder(completeSell())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())

	require.NoError(t, b.Submit(context.Background()))

	require.Len(t, sub.records, 1)
	rec := sub.records[0]
	require.Nil(t, rec.Buy)
	require.NotNil(t, rec.Sell)
	require.True(t, rec.TotalFee.Equal(decimal.RequireFromString("1.8")))
	require.True(t, rec.TotalAmount.Equal(decimal.NewFromInt(482000)), "total: %s", rec.TotalAmount)
}

func TestSubmitOnlyFromConfirm(t *testing.T) {
	b := New(&stubSubmitter{})
	require.ErrorIs(t, b.Submit(context.Background()), ErrNotAtConfirm)

	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())
	require.ErrorIs(t, b.Submit(context.Background()), ErrNotAtConfirm)
}

func TestFailedSubmitStaysAtConfirm(t *testing.T) {
	sub := &stubSubmitter{err: errors.New("provider rejected the email")}
	b := New(sub)

	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())
	b.SetBuyOrder(completeBuy())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())

	require.Error(t, b.Submit(context.Background()))
	require.Equal(t, StepConfirm, b.Step())
	require.NotEmpty(t, b.SubmitError())
	require.False(t, b.Submitting())

	// A manual retry is allowed and clears the error on success.
	sub.err = nil
	require.NoError(t, b.Submit(context.Background()))
	require.Equal(t, StepSubmitted, b.Step())
	require.Empty(t, b.SubmitError())
	require.Len(t, sub.records, 2)
}

func confirmBuy(t *testing.T, b *Builder) {
	t.Helper()
	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())
	b.SetBuyOrder(completeBuy())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.Equal(t, StepConfirm, b.Step())
}

func TestSubmitRejectsConcurrentAttempt(t *testing.T) {
	sub := newBlockingSubmitter()
	b := New(sub)
	confirmBuy(t, b)

	done := make(chan error, 1)
	go func() {
		done <- b.Submit(context.Background())
	}()
	<-sub.started

	// A second Submit while the first is outstanding is rejected, not queued.
	require.True(t, b.Submitting())
	require.ErrorIs(t, b.Submit(context.Background()), ErrSubmitInFlight)

	close(sub.release)
	require.NoError(t, <-done)
	require.Equal(t, StepSubmitted, b.Step())
	require.EqualValues(t, 1, sub.calls.Load(), "exactly one delivery must reach the provider")
}

func TestNavigationLockedWhileSubmitting(t *testing.T) {
	sub := newBlockingSubmitter()
	b := New(sub)
	confirmBuy(t, b)

	done := make(chan error, 1)
	go func() {
		done <- b.Submit(context.Background())
	}()
	<-sub.started

	require.ErrorIs(t, b.Back(), ErrSubmitInFlight)
	require.ErrorIs(t, b.Next(), ErrSubmitInFlight)
	require.Equal(t, StepConfirm, b.Step())

	close(sub.release)
	require.NoError(t, <-done)
	require.Equal(t, StepSubmitted, b.Step())
}

func TestResetClearsEverything(t *testing.T) {
	b := New(&stubSubmitter{})

	// Reset is only reachable from the submitted step.
	require.ErrorIs(t, b.Reset(), ErrNotSubmitted)

	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())
	b.SetBuyOrder(completeBuy())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.NoError(t, b.Submit(context.Background()))

	require.NoError(t, b.Reset())
	require.Equal(t, StepIdentity, b.Step())
	require.Equal(t, order.Identity{}, b.Identity())
	require.Empty(t, b.SubmitError())
	require.False(t, b.Submitting())

	// The form starts over with the identity guard in place.
	require.ErrorIs(t, b.Next(), ErrIdentityIncomplete)
}

func TestSettersIgnoredAfterSubmission(t *testing.T) {
	b := New(&stubSubmitter{})

	b.SetIdentity(completeIdentity(order.DirectionBuy))
	require.NoError(t, b.Next())
	b.SetBuyOrder(completeBuy())
	require.NoError(t, b.Next())
	require.NoError(t, b.Next())
	require.NoError(t, b.Submit(context.Background()))

	b.SetIdentity(order.Identity{Name: "someone else"})
	require.Equal(t, "Ali", b.Identity().Name)
}
