package checkout

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// ReceiptMailer sends a best-effort order confirmation after checkout.
// Delivery failures never fail the checkout itself.
type ReceiptMailer struct {
	client *sendgrid.Client
	from   string
}

func NewReceiptMailer(apiKey, from string) *ReceiptMailer {
	return &ReceiptMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (m *ReceiptMailer) Send(rcpt Receipt) error {
	from := mail.NewEmail("MiniShop", m.from)
	to := mail.NewEmail(rcpt.Customer.Name, rcpt.Customer.Email)
	subject := fmt.Sprintf("Order confirmation %s", rcpt.OrderID)

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you for your purchase, %s!\n\n", rcpt.Customer.Name)
	fmt.Fprintf(&b, "Order %s placed %s\n\n", rcpt.OrderID, rcpt.Timestamp.Format("2006-01-02 15:04 MST"))
	for _, it := range rcpt.Items {
		fmt.Fprintf(&b, "  %dx %s  $%.2f\n", it.Quantity, it.Name, it.Price*float64(it.Quantity))
	}
	fmt.Fprintf(&b, "\nTotal: $%.2f\n", rcpt.Total)

	msg := mail.NewSingleEmail(from, subject, to, b.String(), "")

	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("send receipt email: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("send receipt email: status=%d", resp.StatusCode)
	}
	return nil
}
