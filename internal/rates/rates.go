package rates

import (
	"github.com/shopspring/decimal"

	"github.com/alimahmoud/usdt-orders/internal/order"
)

// ExchangeRate is the fixed rate applied to every order: 1 USDT = 10000 SYP.
var ExchangeRate = decimal.NewFromInt(10000)

// Flat per-network surcharge in USDT.
var networkFees = map[order.Network]decimal.Decimal{
	order.NetworkTRC20:      decimal.NewFromInt(2),
	order.NetworkBEP20:      decimal.RequireFromString("0.15"),
	order.NetworkERC20:      decimal.RequireFromString("0.3"),
	order.NetworkBinancePay: decimal.Zero,
}

// PaymentMethod is one entry of the payment/receiving method directory. The
// account string is what the customer pays to (buy) or a label for what they
// receive through (sell).
type PaymentMethod struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Account string `json:"account"`
}

var paymentMethods = []PaymentMethod{
	{ID: "syriatelcash", Name: "سيريتل كاش", Account: "0934598967"},
	{ID: "alharam", Name: "حوالة الهرم", Account: "علي ابراهيم محمود\n0934598967\nاللاذقية"},
	{ID: "bemo", Name: "بنك بيمو", Account: "علي ابراهيم محمود\n060104947910013000000"},
	{ID: "shamcash", Name: "شام كاش", Account: "be456e0ea9392db4d68a7093ee317bc8\n5991161126028260"},
}

// Deposit addresses customers send USDT to when selling.
var depositAddresses = map[order.Network]string{
	order.NetworkBEP20:      "0x21802218d8d661d66F2C7959347a6382E1cc614F",
	order.NetworkTRC20:      "TD2LoErPRkVPBxDk72ZErtiyi6agirZQjX",
	order.NetworkERC20:      "0x21802218d8d661d66F2C7959347a6382E1cc614F",
	order.NetworkBinancePay: "969755964",
}

// NetworkFee looks up the flat fee for a network.
func NetworkFee(n order.Network) (decimal.Decimal, bool) {
	fee, ok := networkFees[n]
	return fee, ok
}

// NetworkFees returns a copy of the full fee table.
func NetworkFees() map[order.Network]decimal.Decimal {
	fees := make(map[order.Network]decimal.Decimal, len(networkFees))
	for n, fee := range networkFees {
		fees[n] = fee
	}
	return fees
}

// Networks returns the configured network identifiers.
func Networks() []order.Network {
	networks := make([]order.Network, 0, len(networkFees))
	for n := range networkFees {
		networks = append(networks, n)
	}
	return networks
}

// PaymentMethods returns a copy of the payment-method directory.
func PaymentMethods() []PaymentMethod {
	methods := make([]PaymentMethod, len(paymentMethods))
	copy(methods, paymentMethods)
	return methods
}

// PaymentMethodByID looks up a payment method by its identifier.
func PaymentMethodByID(id string) (PaymentMethod, bool) {
	for _, m := range paymentMethods {
		if m.ID == id {
			return m, true
		}
	}
	return PaymentMethod{}, false
}

// DepositAddress looks up the receiving address for a network.
func DepositAddress(n order.Network) (string, bool) {
	addr, ok := depositAddresses[n]
	return addr, ok
}

// DepositAddresses returns a copy of the full address table.
func DepositAddresses() map[order.Network]string {
	addrs := make(map[order.Network]string, len(depositAddresses))
	for n, addr := range depositAddresses {
		addrs[n] = addr
	}
	return addrs
}
