package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"MiniShop/internal/cart"
	"MiniShop/internal/catalog"
	"MiniShop/internal/checkout"
	"MiniShop/internal/shop"
	"MiniShop/pkg/kit"
)

func main() {
	_ = godotenv.Load()

	service := "shop"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	feedURL := getenv("FEED_URL", "https://fakestoreapi.com/products?limit=8")

	catalogStore, cartStore := buildStores(log)

	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err := catalog.Seed(seedCtx, catalogStore, catalog.NewFeedClient(feedURL), log)
	cancel()
	if err != nil {
		log.Fatal("catalog seed failed", zap.Error(err))
	}

	carts := cart.NewService(cartStore, catalogStore)

	var mailer *checkout.ReceiptMailer
	if key := os.Getenv("SENDGRID_API_KEY"); key != "" {
		mailer = checkout.NewReceiptMailer(key, getenv("RECEIPT_FROM_EMAIL", "orders@minishop.local"))
	}

	s := &shop.Server{
		Catalog: &catalog.Server{Store: catalogStore, Log: log},
		Cart:    &cart.Server{Carts: carts, Log: log},
		Checkout: &checkout.Server{
			Processor: &checkout.Processor{Carts: carts, Mailer: mailer, Log: log},
			Log:       log,
		},
		CatalogStore: catalogStore,
		CartStore:    cartStore,
		Log:          log,
	}

	metricsToken := os.Getenv("METRICS_TOKEN")
	h := shop.NewHandler(s, shop.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: metricsToken != "",
		MetricsToken:   metricsToken,
		AllowedOrigins: splitCommaList(os.Getenv("CORS_ORIGINS")),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func buildStores(log *zap.Logger) (catalog.Store, cart.Store) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Info("MONGO_URI not set, using in-memory stores")
		return catalog.NewMemStore(), cart.NewMemStore()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := shop.ConnectMongo(ctx, uri, getenv("MONGO_DB", "minishop"))
	if err != nil {
		log.Fatal("mongodb connect failed", zap.Error(err))
	}

	catalogStore := catalog.NewMongoStore(db)
	if err := catalogStore.EnsureIndexes(ctx); err != nil {
		log.Fatal("catalog indexes failed", zap.Error(err))
	}

	cartStore := cart.NewMongoStore(db)
	if err := cartStore.EnsureIndexes(ctx); err != nil {
		log.Fatal("cart indexes failed", zap.Error(err))
	}

	return catalogStore, cartStore
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
