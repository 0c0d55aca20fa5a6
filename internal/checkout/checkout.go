package checkout

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniShop/internal/cart"
)

var (
	ErrNoItems         = errors.New("cart items required")
	ErrMissingCustomer = errors.New("name and email required")
)

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Receipt is created once at checkout and never mutated or persisted.
type Receipt struct {
	OrderID   string      `json:"orderId"`
	Customer  Customer    `json:"customer"`
	Items     []cart.Item `json:"items"`
	Total     float64     `json:"total"`
	Timestamp time.Time   `json:"timestamp"`
}

type CartClearer interface {
	Clear(ctx context.Context) error
}

type Processor struct {
	Carts  CartClearer
	Mailer *ReceiptMailer
	Log    *zap.Logger
}

// Checkout converts the supplied cart snapshot into a receipt. The total is
// computed over the snapshot, not the server-side cart; the server-side cart
// is cleared unconditionally on success.
func (p *Processor) Checkout(ctx context.Context, items []cart.Item, name, email string) (Receipt, error) {
	if len(items) == 0 {
		return Receipt{}, ErrNoItems
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return Receipt{}, ErrMissingCustomer
	}

	rcpt := Receipt{
		OrderID:   NewOrderID(),
		Customer:  Customer{Name: name, Email: email},
		Items:     items,
		Total:     cart.Total(items),
		Timestamp: time.Now().UTC(),
	}

	if err := p.Carts.Clear(ctx); err != nil {
		return Receipt{}, err
	}

	if p.Mailer != nil {
		go p.sendReceipt(rcpt)
	}

	return rcpt, nil
}

func (p *Processor) sendReceipt(rcpt Receipt) {
	if err := p.Mailer.Send(rcpt); err != nil && p.Log != nil {
		p.Log.Warn("receipt email failed",
			zap.Error(err),
			zap.String("order_id", rcpt.OrderID),
		)
	}
}

// NewOrderID returns an uppercase hex token derived from a random UUID.
func NewOrderID() string {
	id := uuid.New()
	return strings.ToUpper(hex.EncodeToString(id[:]))
}
