package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type changeCartItemRequest struct {
	Delta int64 `json:"delta" validate:"required"`
}

func (a *API) handleGetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, mapCart(a.cartSvc.Snapshot(r.Context()), a.money))
}

func (a *API) handleAddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	cart, err := a.cartSvc.Add(r.Context(), req.ProductID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := mapCart(cart, a.money)
	if i := cart.Find(req.ProductID); i >= 0 {
		resp["message"] = fmt.Sprintf("%s added to cart!", cart.Items[i].Name)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (a *API) handleChangeCartItem(w http.ResponseWriter, r *http.Request) {
	var req changeCartItemRequest
	if err := a.decodeAndValidate(r, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	cart, err := a.cartSvc.ChangeQuantity(r.Context(), chi.URLParam(r, "id"), req.Delta)
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart, a.money))
}

func (a *API) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {
	cart, err := a.cartSvc.Remove(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCart(cart, a.money))
}

// handleCheckout answers with the deep link to open; the cart is kept.
func (a *API) handleCheckout(w http.ResponseWriter, r *http.Request) {
	link, err := a.checkoutSvc.Compose(r.Context())
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := mapLink(link)
	resp["notice"] = "Opening WhatsApp to confirm your order!"
	writeJSON(w, http.StatusOK, resp)
}
