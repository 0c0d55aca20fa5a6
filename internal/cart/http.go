package cart

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"MiniShop/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Carts *Service
	Log   *zap.Logger
}

type addReq struct {
	ProductID *int `json:"productId"`
	Qty       *int `json:"qty"`
}

func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	c, err := s.Carts.Get(r.Context())
	if err != nil {
		if s.Log != nil {
			s.Log.Error("get cart failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
		return
	}
	kit.WriteJSON(w, http.StatusOK, c)
}

func (s *Server) AddItem(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAddRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}
	if req.ProductID == nil {
		kit.WriteError(w, r, http.StatusBadRequest, "productId required", nil)
		return
	}

	qty := 1
	if req.Qty != nil {
		qty = *req.Qty
	}

	c, err := s.Carts.Add(r.Context(), *req.ProductID, qty)
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		kit.WriteError(w, r, http.StatusBadRequest, "invalid quantity", nil)
	case errors.Is(err, ErrUnknownProduct):
		kit.WriteError(w, r, http.StatusNotFound, "product not found", map[string]any{"productId": *req.ProductID})
	case err != nil:
		if s.Log != nil {
			s.Log.Error("add to cart failed", zap.Error(err), zap.Int("product_id", *req.ProductID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	default:
		kit.WriteJSON(w, http.StatusOK, c)
	}
}

func (s *Server) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "invalid product id", nil)
		return
	}

	c, err := s.Carts.Remove(r.Context(), productID)
	switch {
	case errors.Is(err, ErrItemNotFound):
		kit.WriteError(w, r, http.StatusNotFound, "item not in cart", map[string]any{"productId": productID})
	case err != nil:
		if s.Log != nil {
			s.Log.Error("remove from cart failed", zap.Error(err), zap.Int("product_id", productID))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	default:
		kit.WriteJSON(w, http.StatusOK, c)
	}
}

func decodeAddRequest(w http.ResponseWriter, r *http.Request) (addReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req addReq
	if err := dec.Decode(&req); err != nil {
		return addReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return addReq{}, errors.New("extra data after json object")
	}

	return req, nil
}
