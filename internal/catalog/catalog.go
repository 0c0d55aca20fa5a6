package catalog

import "context"

// Product is immutable after seeding; id is unique across the catalog.
type Product struct {
	ID    int     `json:"id" bson:"id"`
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

type Store interface {
	Ping(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []Product) error
	ListSortedByID(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int) (Product, bool, error)
}
