package cart

import (
	"context"
	"errors"
	"time"

	"MiniShop/internal/catalog"
)

// DemoUserID is the fixed identity every request operates on. Multi-user
// support would thread a caller-supplied key through here instead.
const DemoUserID = "demo"

const (
	cartTTL         = 24 * time.Hour
	maxSaveAttempts = 5
)

var (
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrUnknownProduct  = errors.New("unknown product")
	ErrItemNotFound    = errors.New("item not in cart")
)

type ProductFinder interface {
	Get(ctx context.Context, id int) (catalog.Product, bool, error)
}

// Service is the cart aggregate: all mutations go through a conditional
// save so concurrent requests against the shared cart are not lost.
type Service struct {
	Store    Store
	Products ProductFinder
	UserID   string
}

func NewService(store Store, products ProductFinder) *Service {
	return &Service{Store: store, Products: products, UserID: DemoUserID}
}

// Get returns the current cart, creating and persisting an empty one on
// first access.
func (s *Service) Get(ctx context.Context) (Cart, error) {
	c, found, err := s.Store.Find(ctx, s.UserID)
	if err != nil {
		return Cart{}, err
	}
	if found {
		if c.Items == nil {
			c.Items = []Item{}
		}
		return c, nil
	}

	c = emptyCart(s.UserID)
	err = s.Store.Save(ctx, c)
	if errors.Is(err, ErrVersionConflict) {
		// Another request created the cart first; use theirs.
		c, _, err = s.Store.Find(ctx, s.UserID)
	}
	if err != nil {
		return Cart{}, err
	}
	return c, nil
}

// Add merges qty into an existing line item for the product, or appends a
// new line carrying a point-in-time copy of the product's name and price.
func (s *Service) Add(ctx context.Context, productID, qty int) (Cart, error) {
	if qty < 1 {
		return Cart{}, ErrInvalidQuantity
	}

	p, found, err := s.Products.Get(ctx, productID)
	if err != nil {
		return Cart{}, err
	}
	if !found {
		return Cart{}, ErrUnknownProduct
	}

	return s.mutate(ctx, func(c *Cart) error {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items[i].Quantity += qty
				return nil
			}
		}
		c.Items = append(c.Items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  qty,
		})
		return nil
	})
}

// Remove deletes the line item for the product. The cart is left untouched
// when no such line exists.
func (s *Service) Remove(ctx context.Context, productID int) (Cart, error) {
	return s.mutate(ctx, func(c *Cart) error {
		for i := range c.Items {
			if c.Items[i].ProductID == productID {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
				return nil
			}
		}
		return ErrItemNotFound
	})
}

// Clear empties the cart unconditionally; a missing cart is a no-op.
func (s *Service) Clear(ctx context.Context) error {
	return s.Store.Clear(ctx, s.UserID)
}

// mutate is one read-modify-write sequence. The total is recomputed from
// the items on every pass; a conflicting concurrent save triggers a re-read.
func (s *Service) mutate(ctx context.Context, fn func(*Cart) error) (Cart, error) {
	var lastErr error

	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		c, found, err := s.Store.Find(ctx, s.UserID)
		if err != nil {
			return Cart{}, err
		}
		if !found {
			c = emptyCart(s.UserID)
		}

		if err := fn(&c); err != nil {
			return Cart{}, err
		}

		c.Total = Total(c.Items)
		c.LastUpdated = time.Now().UTC()

		err = s.Store.Save(ctx, c)
		if err == nil {
			return c, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return Cart{}, err
		}
		lastErr = err
	}

	return Cart{}, lastErr
}

func emptyCart(userID string) Cart {
	now := time.Now().UTC()
	return Cart{
		UserID:      userID,
		Items:       []Item{},
		LastUpdated: now,
		ExpiresAt:   now.Add(cartTTL),
	}
}
