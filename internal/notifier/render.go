package notifier

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alimahmoud/usdt-orders/internal/order"
	"github.com/alimahmoud/usdt-orders/internal/rates"
)

var emailTemplate = template.Must(template.New("order").Parse(`
<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2563eb; text-align: center;">طلب جديد - منصة تحويل العملات الرقمية</h2>

  <div style="background: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #1e40af;">المعلومات الشخصية</h3>
    <p><strong>الاسم:</strong> {{.Name}}</p>
    <p><strong>الهاتف:</strong> {{.Phone}}</p>
    <p><strong>المدينة:</strong> {{.City}}</p>
    <p><strong>نوع العملية:</strong> {{.DirectionLabel}}</p>
  </div>

  <div style="background: #f0f9ff; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #1e40af;">تفاصيل العملية</h3>
    <p><strong>الكمية:</strong> {{.Amount}} USDT</p>
    <p><strong>الشبكة:</strong> {{.Network}}</p>
    {{if .IsBuy}}
    <p><strong>عنوان المحفظة:</strong> {{.WalletAddress}}</p>
    <p><strong>طريقة الدفع:</strong> {{.PaymentMethod}}</p>
    {{else}}
    <p><strong>طريقة الاستلام:</strong> {{.ReceivingMethod}}</p>
    <p><strong>تفاصيل الحساب:</strong> {{.AccountDetails}}</p>
    {{end}}
    <p><strong>الملاحظات:</strong> {{.Note}}</p>
  </div>

  <div style="background: #f0fdf4; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="color: #16a34a;">الملخص المالي</h3>
    <p><strong>عمولة التحويل:</strong> ${{.Fee}}</p>
    <p><strong>رسوم الشبكة:</strong> ${{.NetworkFee}}</p>
    <p><strong>إجمالي العمولات:</strong> ${{.TotalFee}}</p>
    <p><strong>المبلغ {{.TotalLabel}}:</strong> {{.TotalAmount}} ل.س</p>
  </div>

  <div style="background: #fef2f2; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p style="color: #dc2626; font-weight: bold;">رقم الطلب: #{{.OrderNumber}}</p>
    <p style="color: #dc2626;">تاريخ الطلب: {{.Date}}</p>
  </div>
</div>
`))

type emailData struct {
	Name            string
	Phone           string
	City            string
	DirectionLabel  string
	Amount          string
	Network         string
	WalletAddress   string
	PaymentMethod   string
	ReceivingMethod string
	AccountDetails  string
	Note            string
	IsBuy           bool
	Fee             string
	NetworkFee      string
	TotalFee        string
	TotalLabel      string
	TotalAmount     string
	OrderNumber     string
	Date            string
}

func directionLabel(d order.Direction) string {
	if d == order.DirectionBuy {
		return "شراء"
	}
	return "بيع"
}

func renderSubject(rec *order.Record) string {
	return fmt.Sprintf("طلب جديد - %s %s USDT", directionLabel(rec.Identity.TransactionType), rec.Amount().String())
}

func renderBody(rec *order.Record) (string, error) {
	data := emailData{
		Name:           rec.Identity.Name,
		Phone:          rec.Identity.Phone,
		City:           rec.Identity.City,
		DirectionLabel: directionLabel(rec.Identity.TransactionType),
		Amount:         rec.Amount().String(),
		Network:        strings.ToUpper(string(rec.Network())),
		Note:           "لا توجد ملاحظات",
		Fee:            rec.Fee.StringFixed(2),
		NetworkFee:     rec.NetworkFee.String(),
		TotalFee:       rec.TotalFee.StringFixed(2),
		TotalAmount:    groupThousands(rec.TotalAmount),
		OrderNumber:    fmt.Sprintf("%08d", rec.Timestamp.UnixMilli()%100000000),
		Date:           rec.Timestamp.Format("02/01/2006 15:04:05"),
	}

	if rec.Buy != nil {
		data.IsBuy = true
		data.WalletAddress = rec.Buy.Address
		data.TotalLabel = "المستحق"
		if rec.Buy.Note != "" {
			data.Note = rec.Buy.Note
		}
		// Show the display name when the method is known, the raw id otherwise.
		data.PaymentMethod = rec.Buy.PaymentMethod
		if method, ok := rates.PaymentMethodByID(rec.Buy.PaymentMethod); ok {
			data.PaymentMethod = method.Name
		}
	} else {
		data.ReceivingMethod = rec.Sell.ReceivingMethod
		data.AccountDetails = rec.Sell.AccountDetails
		data.TotalLabel = "الصافي"
		if rec.Sell.Note != "" {
			data.Note = rec.Sell.Note
		}
	}

	var sb strings.Builder
	if err := emailTemplate.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// groupThousands formats a decimal with comma separators in the integer part,
// keeping any fractional digits as-is.
func groupThousands(d decimal.Decimal) string {
	s := d.String()

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	out := sb.String()
	if hasFrac {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
