package catalog

import (
	"context"

	"go.uber.org/zap"
)

// FallbackProducts is the catalog used when the product feed cannot be
// reached. Kept in sync with the demo frontend's expectations: ids 1-8.
func FallbackProducts() []Product {
	return []Product{
		{ID: 1, Name: "Laptop", Price: 999.99},
		{ID: 2, Name: "Smartphone", Price: 699.99},
		{ID: 3, Name: "Headphones", Price: 199.99},
		{ID: 4, Name: "Tablet", Price: 499.99},
		{ID: 5, Name: "Smartwatch", Price: 299.99},
		{ID: 6, Name: "Keyboard", Price: 89.99},
		{ID: 7, Name: "Mouse", Price: 49.99},
		{ID: 8, Name: "Monitor", Price: 299.99},
	}
}

// Seed populates an empty catalog once at startup. Feed failures are
// recovered locally with the fallback list and never propagated; only a
// store failure is returned. Not retried afterward.
func Seed(ctx context.Context, store Store, feed *FeedClient, log *zap.Logger) error {
	n, err := store.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	products, err := feed.Fetch(ctx)
	if err != nil || len(products) == 0 {
		if log != nil {
			log.Warn("product feed unavailable, using fallback catalog", zap.Error(err))
		}
		products = FallbackProducts()
	} else if log != nil {
		log.Info("catalog seeded from feed", zap.Int("count", len(products)))
	}

	return store.InsertMany(ctx, products)
}
