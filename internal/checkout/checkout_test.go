package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MiniShop/internal/cart"
)

type fakeCarts struct {
	cleared int
	err     error
}

func (f *fakeCarts) Clear(context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.cleared++
	return nil
}

func snapshot() []cart.Item {
	return []cart.Item{
		{ProductID: 1, Name: "Laptop", Price: 999.99, Quantity: 1},
		{ProductID: 7, Name: "Mouse", Price: 49.99, Quantity: 3},
	}
}

func TestCheckout_ReceiptFromSnapshot(t *testing.T) {
	carts := &fakeCarts{}
	p := &Processor{Carts: carts}

	rcpt, err := p.Checkout(context.Background(), snapshot(), "Ada Lovelace", "ada@example.com")
	require.NoError(t, err)

	assert.InDelta(t, 999.99+49.99*3, rcpt.Total, 1e-9)
	assert.Equal(t, "Ada Lovelace", rcpt.Customer.Name)
	assert.Equal(t, "ada@example.com", rcpt.Customer.Email)
	assert.Len(t, rcpt.Items, 2)
	assert.False(t, rcpt.Timestamp.IsZero())
	assert.NotEmpty(t, rcpt.OrderID)

	assert.Equal(t, 1, carts.cleared, "server-side cart must be cleared on success")
}

func TestCheckout_TrimsCustomerFields(t *testing.T) {
	p := &Processor{Carts: &fakeCarts{}}

	rcpt, err := p.Checkout(context.Background(), snapshot(), "  Ada  ", " ada@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Ada", rcpt.Customer.Name)
	assert.Equal(t, "ada@example.com", rcpt.Customer.Email)
}

func TestCheckout_EmptyItems(t *testing.T) {
	carts := &fakeCarts{}
	p := &Processor{Carts: carts}

	_, err := p.Checkout(context.Background(), nil, "Ada", "ada@example.com")
	assert.ErrorIs(t, err, ErrNoItems)
	assert.Zero(t, carts.cleared, "failed checkout must not clear the cart")
}

func TestCheckout_MissingCustomer(t *testing.T) {
	cases := []struct {
		name, customer, email string
	}{
		{"no name", "", "ada@example.com"},
		{"no email", "Ada", ""},
		{"blank name", "   ", "ada@example.com"},
		{"blank email", "Ada", "   "},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			carts := &fakeCarts{}
			p := &Processor{Carts: carts}

			_, err := p.Checkout(context.Background(), snapshot(), tc.customer, tc.email)
			assert.ErrorIs(t, err, ErrMissingCustomer)
			assert.Zero(t, carts.cleared)
		})
	}
}

func TestCheckout_ClearFailurePropagates(t *testing.T) {
	storeErr := errors.New("store down")
	p := &Processor{Carts: &fakeCarts{err: storeErr}}

	_, err := p.Checkout(context.Background(), snapshot(), "Ada", "ada@example.com")
	assert.ErrorIs(t, err, storeErr)
}

func TestNewOrderID_UniqueAndUppercase(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := NewOrderID()
		require.Len(t, id, 32)
		for _, r := range id {
			require.True(t, (r >= '0' && r <= '9') || (r >= 'A' && r <= 'F'), "unexpected rune %q", r)
		}
		_, dup := seen[id]
		require.False(t, dup, "duplicate order id %s", id)
		seen[id] = struct{}{}
	}
}
