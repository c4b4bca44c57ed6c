package transport

import (
	"net/http"

	"campusstore/pkg/domain/model"
)

func (h *Handler) getShopStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.services.ShopStatus.Get(r.Context()))
}

func (h *Handler) putShopStatus(w http.ResponseWriter, r *http.Request) {
	var status model.ShopStatus
	if err := decodeBody(r, &status); err != nil {
		writeError(w, err)
		return
	}
	if err := h.services.ShopStatus.Set(r.Context(), status); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
