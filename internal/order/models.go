package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNoDirection        = errors.New("transaction type not set")
	ErrDirectionMismatch  = errors.New("populated order side does not match transaction type")
	ErrIncompleteIdentity = errors.New("identity is incomplete")
	ErrIncompleteOrder    = errors.New("order details are incomplete")
)

// Direction is the transaction type chosen by the customer.
type Direction string

const (
	DirectionBuy  Direction = "buy"
	DirectionSell Direction = "sell"
)

// Valid reports whether d is one of the two known directions.
func (d Direction) Valid() bool {
	return d == DirectionBuy || d == DirectionSell
}

// Network identifies the USDT transfer network.
type Network string

const (
	NetworkTRC20      Network = "trc20"
	NetworkBEP20      Network = "bep20"
	NetworkERC20      Network = "erc20"
	NetworkBinancePay Network = "binancepay"
)

// Identity holds the customer details collected on the first form step.
type Identity struct {
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	City            string    `json:"city"`
	TransactionType Direction `json:"transaction_type"`
}

// Complete reports whether all four identity fields are set.
func (i Identity) Complete() bool {
	return i.Name != "" && i.Phone != "" && i.City != "" && i.TransactionType.Valid()
}

// BuyOrder holds the details of a USDT purchase request.
type BuyOrder struct {
	Amount        decimal.Decimal `json:"amount"`
	Network       Network         `json:"network"`
	Address       string          `json:"address"`
	Note          string          `json:"note,omitempty"`
	PaymentMethod string          `json:"payment_method"`
}

// Complete reports whether the buy order has everything required for submission.
func (b BuyOrder) Complete() bool {
	return b.Amount.IsPositive() && b.Network != "" && b.Address != "" && b.PaymentMethod != ""
}

// SellOrder holds the details of a USDT sale request. Network is the network
// the customer will send their USDT from.
type SellOrder struct {
	Amount          decimal.Decimal `json:"amount"`
	Network         Network         `json:"network"`
	ReceivingMethod string          `json:"receiving_method"`
	AccountDetails  string          `json:"account_details"`
	Note            string          `json:"note,omitempty"`
}

// Complete reports whether the sell order has everything required for submission.
func (s SellOrder) Complete() bool {
	return s.Amount.IsPositive() && s.Network != "" && s.ReceivingMethod != "" && s.AccountDetails != ""
}

// Record is the immutable order snapshot submitted for notification. Exactly
// one of Buy and Sell is populated, matching Identity.TransactionType.
type Record struct {
	Identity    Identity        `json:"user_info"`
	Buy         *BuyOrder       `json:"buy_order,omitempty"`
	Sell        *SellOrder      `json:"sell_order,omitempty"`
	Fee         decimal.Decimal `json:"fee"`
	NetworkFee  decimal.Decimal `json:"network_fee"`
	TotalFee    decimal.Decimal `json:"total_fee"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Timestamp   time.Time       `json:"timestamp"`
}

// NewRecord assembles an order record from the collected form state and the
// computed fee figures. It enforces the one-populated-side invariant: the side
// matching identity.TransactionType must be present and complete, the other
// is dropped.
func NewRecord(identity Identity, buy *BuyOrder, sell *SellOrder, fee, networkFee, totalFee, totalAmount decimal.Decimal, ts time.Time) (*Record, error) {
	if !identity.Complete() {
		return nil, ErrIncompleteIdentity
	}

	rec := &Record{
		Identity:    identity,
		Fee:         fee,
		NetworkFee:  networkFee,
		TotalFee:    totalFee,
		TotalAmount: totalAmount,
		Timestamp:   ts,
	}

	switch identity.TransactionType {
	case DirectionBuy:
		if buy == nil {
			return nil, ErrDirectionMismatch
		}
		if !buy.Complete() {
			return nil, ErrIncompleteOrder
		}
		b := *buy
		rec.Buy = &b
	case DirectionSell:
		if sell == nil {
			return nil, ErrDirectionMismatch
		}
		if !sell.Complete() {
			return nil, ErrIncompleteOrder
		}
		s := *sell
		rec.Sell = &s
	default:
		return nil, ErrNoDirection
	}

	return rec, nil
}

// Validate checks a record received over the wire against the same invariants
// NewRecord enforces on construction.
func (r *Record) Validate() error {
	if !r.Identity.Complete() {
		return ErrIncompleteIdentity
	}

	switch r.Identity.TransactionType {
	case DirectionBuy:
		if r.Buy == nil || r.Sell != nil {
			return ErrDirectionMismatch
		}
		if !r.Buy.Complete() {
			return ErrIncompleteOrder
		}
	case DirectionSell:
		if r.Sell == nil || r.Buy != nil {
			return ErrDirectionMismatch
		}
		if !r.Sell.Complete() {
			return ErrIncompleteOrder
		}
	default:
		return ErrNoDirection
	}

	return nil
}

// Amount returns the USDT amount of the populated side.
func (r *Record) Amount() decimal.Decimal {
	if r.Buy != nil {
		return r.Buy.Amount
	}
	if r.Sell != nil {
		return r.Sell.Amount
	}
	return decimal.Zero
}

// Network returns the transfer network of the populated side.
func (r *Record) Network() Network {
	if r.Buy != nil {
		return r.Buy.Network
	}
	if r.Sell != nil {
		return r.Sell.Network
	}
	return ""
}
