package cart

import (
	"context"
	"errors"
	"time"
)

// Item is a denormalized line: name and price are copied from the product
// at add time and keep that value even if the catalog changes afterward.
type Item struct {
	ProductID int     `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Quantity  int     `json:"quantity" bson:"quantity"`
}

// Cart is the single shared cart document. Total is derived from Items and
// recomputed before every save; Version is the compare-and-swap field.
type Cart struct {
	UserID      string    `json:"-" bson:"userId"`
	Items       []Item    `json:"items" bson:"items"`
	Total       float64   `json:"total" bson:"total"`
	LastUpdated time.Time `json:"-" bson:"lastUpdated"`
	ExpiresAt   time.Time `json:"-" bson:"expiresAt"`
	Version     int64     `json:"-" bson:"version"`
}

// ErrVersionConflict means the stored cart changed between read and save.
var ErrVersionConflict = errors.New("cart version conflict")

// Store persists carts keyed by user id. Save is conditional on the cart's
// Version: version 0 inserts, any other version must match the stored one.
type Store interface {
	Ping(ctx context.Context) error
	Find(ctx context.Context, userID string) (Cart, bool, error)
	Save(ctx context.Context, c Cart) error
	Clear(ctx context.Context, userID string) error
}

// Total recomputes the cart total from its line items.
func Total(items []Item) float64 {
	var sum float64
	for _, it := range items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}
