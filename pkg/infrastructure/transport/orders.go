package transport

import (
	"net/http"

	log "github.com/sirupsen/logrus"
)

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	user := userID(r)
	order, err := h.services.Cart.PlaceOrder(r.Context(), user, r.Header.Get(idempotencyKeyHeader))
	if err != nil {
		log.WithError(err).WithField("user", user).Warn("order was not placed")
		writeError(w, err)
		return
	}
	log.WithFields(log.Fields{
		"order": order.OrderNumber,
		"user":  user,
		"total": order.TotalAmount.StringFixed(2),
		"items": len(order.Items),
	}).Info("order placed")
	writeJSON(w, http.StatusCreated, newOrderResponse(*order))
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.services.Orders.History(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, newOrderResponse(order))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.services.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(*order))
}
