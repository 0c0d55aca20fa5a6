package shop

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniShop/internal/cart"
	"MiniShop/internal/catalog"
	"MiniShop/internal/checkout"
	"MiniShop/pkg/kit"
)

// Server assembles the public /api surface over the three domain packages.
type Server struct {
	Catalog  *catalog.Server
	Cart     *cart.Server
	Checkout *checkout.Server

	CatalogStore catalog.Store
	CartStore    cart.Store
	Log          *zap.Logger
}

const (
	readyTimeout = 1 * time.Second

	checkoutLimitPerMin = 10
	limitWindow         = 60 * time.Second
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.handleReady)

	checkoutLimiter := kit.NewIPRateLimiter(checkoutLimitPerMin, int(limitWindow.Seconds()))

	r.Route("/api", func(rr chi.Router) {
		rr.Get("/products", s.Catalog.List)

		rr.Get("/cart", s.Cart.GetCart)
		rr.Post("/cart", s.Cart.AddItem)
		rr.Delete("/cart/{id}", s.Cart.RemoveItem)

		rr.With(checkoutLimiter.Middleware).Post("/checkout", s.Checkout.Create)
	})

	return r
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.CatalogStore.Ping(ctx); err != nil {
		s.notReady(w, r, "catalog store", err)
		return
	}
	if err := s.CartStore.Ping(ctx); err != nil {
		s.notReady(w, r, "cart store", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) notReady(w http.ResponseWriter, r *http.Request, what string, err error) {
	if s.Log != nil {
		s.Log.Warn("readyz failed", zap.String("store", what), zap.Error(err))
	}
	kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
}
