package transport

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"campusstore/pkg/domain/model"
)

type printSpecPayload struct {
	FileName  string `json:"fileName"`
	Copies    int    `json:"copies"`
	PaperSize string `json:"paperSize"`
	Color     string `json:"color"`
	TwoSided  bool   `json:"twoSided"`
	Notes     string `json:"notes"`
}

func (p printSpecPayload) toSpecification() model.PrintSpecification {
	return model.PrintSpecification{
		FileName:  p.FileName,
		Copies:    p.Copies,
		PaperSize: model.PaperSize(p.PaperSize),
		Color:     model.ColorMode(p.Color),
		TwoSided:  p.TwoSided,
		Notes:     p.Notes,
	}
}

type addCartItemPayload struct {
	Type      model.CartItemType `json:"type"`
	ProductID uuid.UUID          `json:"productId"`
	Quantity  *int               `json:"quantity"`
	PrintJob  *printSpecPayload  `json:"printJob"`
}

type quantityPayload struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.Cart.Summary(r.Context(), userID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	var payload addCartItemPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	switch payload.Type {
	case model.ProductItem:
		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}
		summary, err := h.services.Cart.AddProduct(r.Context(), userID(r), payload.ProductID, quantity)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newCartResponse(summary))
	case model.PrintItem:
		if payload.PrintJob == nil {
			writeError(w, model.NewValidationError("printJob is required"))
			return
		}
		summary, err := h.services.Cart.AddPrintJob(r.Context(), userID(r), payload.PrintJob.toSpecification())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, newCartResponse(summary))
	default:
		writeError(w, model.ErrUnknownCartItemType)
	}
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.services.Cart.RemoveItem(r.Context(), userID(r), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *Handler) changeCartItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload quantityPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	summary, err := h.services.Cart.ChangeQuantity(r.Context(), userID(r), id, payload.Quantity)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(summary))
}

func (h *Handler) estimatePrint(w http.ResponseWriter, r *http.Request) {
	var payload printSpecPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}

	response := struct {
		EstimatedPrice *json.Number `json:"estimatedPrice"`
	}{}
	if price, ok := h.services.Pricer.Estimate(payload.toSpecification()); ok {
		formatted := money(price)
		response.EstimatedPrice = &formatted
	}
	writeJSON(w, http.StatusOK, response)
}
