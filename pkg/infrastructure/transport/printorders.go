package transport

import (
	"net/http"

	log "github.com/sirupsen/logrus"

	"campusstore/pkg/domain/model"
)

const allStatuses = "All"

type transitionPayload struct {
	Status  string `json:"status"`
	Version *int   `json:"version"`
}

func (h *Handler) listPrintOrders(w http.ResponseWriter, r *http.Request) {
	filter := model.PrintOrderFilter{UserID: r.URL.Query().Get("userId")}
	if raw := r.URL.Query().Get("status"); raw != "" && raw != allStatuses {
		status, err := model.ParsePrintOrderStatus(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		filter.Status = status
	}

	orders, err := h.services.PrintOrders.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]printOrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, newPrintOrderResponse(order))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getPrintOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	order, err := h.services.PrintOrders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newPrintOrderResponse(*order))
}

func (h *Handler) transitionPrintOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload transitionPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	status, err := model.ParsePrintOrderStatus(payload.Status)
	if err != nil {
		writeError(w, err)
		return
	}

	order, err := h.services.PrintOrders.TransitionStatus(r.Context(), id, status, payload.Version)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{"printOrder": id, "status": status}).Warn("print order status was not changed")
		writeError(w, err)
		return
	}
	log.WithFields(log.Fields{"printOrder": id, "status": order.Status}).Info("print order status updated")
	writeJSON(w, http.StatusOK, newPrintOrderResponse(*order))
}
