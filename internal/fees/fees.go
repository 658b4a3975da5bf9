package fees

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/alimahmoud/usdt-orders/internal/order"
	"github.com/alimahmoud/usdt-orders/internal/rates"
)

// Commission schedule. Amounts under 100 USDT pay a flat 1.65, amounts from
// 100 up to and including 5000 pay 1.65%, anything above pays 0.05%. The tier
// boundaries are part of the published pricing and must not move.
var (
	flatCommission = decimal.RequireFromString("1.65")
	tierRate       = decimal.RequireFromString("0.0165")
	bulkRate       = decimal.RequireFromString("0.0005")
	tierFloor      = decimal.NewFromInt(100)
	tierCeiling    = decimal.NewFromInt(5000)
)

// Commission returns the transfer commission for an amount of USDT. It is
// independent of network and direction. Callers reject non-positive amounts
// before quoting; for amounts in [0, 100) this returns the flat commission.
func Commission(amount decimal.Decimal) decimal.Decimal {
	switch {
	case amount.LessThan(tierFloor):
		return flatCommission
	case amount.LessThanOrEqual(tierCeiling):
		return amount.Mul(tierRate)
	default:
		return amount.Mul(bulkRate)
	}
}

// Summary is the full fee breakdown for an order, recomputed on demand and
// never stored. TotalLocal is the SYP amount the customer pays (buy) or
// receives (sell).
type Summary struct {
	Commission decimal.Decimal `json:"commission"`
	NetworkFee decimal.Decimal `json:"network_fee"`
	TotalFee   decimal.Decimal `json:"total_fee"`
	TotalLocal decimal.Decimal `json:"total_local"`
}

// Quote computes the fee breakdown for a direction, amount and network.
// Buy orders pay the fees on top of the amount, sell orders have them
// deducted, both converted at the fixed exchange rate.
func Quote(direction order.Direction, amount decimal.Decimal, network order.Network) (Summary, error) {
	if !direction.Valid() {
		return Summary{}, fmt.Errorf("unknown direction %q", direction)
	}
	if !amount.IsPositive() {
		return Summary{}, fmt.Errorf("amount must be positive, got %s", amount)
	}

	networkFee, ok := rates.NetworkFee(network)
	if !ok {
		return Summary{}, fmt.Errorf("unknown network %q", network)
	}

	commission := Commission(amount)
	totalFee := commission.Add(networkFee)

	var totalLocal decimal.Decimal
	if direction == order.DirectionBuy {
		totalLocal = amount.Add(totalFee).Mul(rates.ExchangeRate)
	} else {
		totalLocal = amount.Sub(totalFee).Mul(rates.ExchangeRate)
	}

	return Summary{
		Commission: commission,
		NetworkFee: networkFee,
		TotalFee:   totalFee,
		TotalLocal: totalLocal,
	}, nil
}
