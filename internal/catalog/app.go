package catalog

import (
	"net/http"

	"go.uber.org/zap"

	"MiniShop/pkg/kit"
)

type Server struct {
	Store Store
	Log   *zap.Logger
}

// List returns every product. An empty catalog is reported as not found
// rather than an empty list so a failed seed is visible to the client.
func (s *Server) List(w http.ResponseWriter, r *http.Request) {
	products, err := s.Store.ListSortedByID(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("list products failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	if len(products) == 0 {
		kit.WriteError(w, r, http.StatusNotFound, "no products found", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, products)
}
