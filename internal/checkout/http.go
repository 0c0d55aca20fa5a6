package checkout

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"MiniShop/internal/cart"
	"MiniShop/pkg/kit"
)

const maxBodyBytes = 1 << 20

type Server struct {
	Processor *Processor
	Log       *zap.Logger
}

type checkoutReq struct {
	CartItems []cart.Item `json:"cartItems"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
}

func (s *Server) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeCheckoutRequest(w, r)
	if err != nil {
		kit.WriteError(w, r, http.StatusBadRequest, "bad json", nil)
		return
	}

	rcpt, err := s.Processor.Checkout(r.Context(), req.CartItems, req.Name, req.Email)
	switch {
	case errors.Is(err, ErrNoItems):
		kit.WriteError(w, r, http.StatusBadRequest, "cart items are required", nil)
	case errors.Is(err, ErrMissingCustomer):
		kit.WriteError(w, r, http.StatusBadRequest, "name and email are required", nil)
	case err != nil:
		if s.Log != nil {
			s.Log.Error("checkout failed", zap.Error(err))
		}
		kit.WriteError(w, r, http.StatusInternalServerError, "server error", nil)
	default:
		kit.WriteJSON(w, http.StatusOK, rcpt)
	}
}

func decodeCheckoutRequest(w http.ResponseWriter, r *http.Request) (checkoutReq, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req checkoutReq
	if err := dec.Decode(&req); err != nil {
		return checkoutReq{}, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return checkoutReq{}, errors.New("extra data after json object")
	}

	return req, nil
}
