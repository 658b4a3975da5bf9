package notifier

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/alimahmoud/usdt-orders/internal/fees"
	"github.com/alimahmoud/usdt-orders/internal/order"
	"github.com/alimahmoud/usdt-orders/internal/rates"
	"github.com/alimahmoud/usdt-orders/pkg/response"
)

// GinHandlers contains HTTP handlers for order submission and the read-only
// reference endpoints backing the form.
type GinHandlers struct {
	service *Service
}

func NewGinHandlers(service *Service) *GinHandlers {
	return &GinHandlers{
		service: service,
	}
}

// SubmitOrderHandler handles POST requests carrying a complete order record.
// The record is rendered and dispatched to the operator; the reply is the
// {success, message|error} envelope the form acts on.
func (h *GinHandlers) SubmitOrderHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var rec order.Record
		if err := c.ShouldBindJSON(&rec); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		if err := h.service.Notify(c.Request.Context(), &rec); err != nil {
			if errors.Is(err, order.ErrIncompleteIdentity) ||
				errors.Is(err, order.ErrIncompleteOrder) ||
				errors.Is(err, order.ErrDirectionMismatch) ||
				errors.Is(err, order.ErrNoDirection) {
				response.BadRequest(c, err.Error())
				return
			}
			response.InternalError(c, "فشل في إرسال الإيميل")
			return
		}

		response.Message(c, "تم إرسال الطلب بنجاح")
	}
}

// QuoteHandler handles GET requests for a fee breakdown preview.
// Query parameters: side (buy|sell), amount (USDT), network.
func (h *GinHandlers) QuoteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		amount, err := decimal.NewFromString(c.Query("amount"))
		if err != nil {
			response.BadRequest(c, "invalid amount")
			return
		}

		summary, err := fees.Quote(
			order.Direction(c.Query("side")),
			amount,
			order.Network(c.Query("network")),
		)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		response.Success(c, summary)
	}
}

// RatesHandler returns the fixed exchange rate and the network fee table.
func (h *GinHandlers) RatesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, gin.H{
			"exchange_rate": rates.ExchangeRate,
			"network_fees":  rates.NetworkFees(),
		})
	}
}

// PaymentMethodsHandler returns the payment/receiving method directory.
func (h *GinHandlers) PaymentMethodsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, rates.PaymentMethods())
	}
}

// DepositAddressesHandler returns the per-network USDT receiving addresses.
func (h *GinHandlers) DepositAddressesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response.Success(c, rates.DepositAddresses())
	}
}
