package transport

import (
	"net/http"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"campusstore/pkg/domain/service"
)

type productPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl"`
}

func (p productPayload) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	products, err := h.services.Catalog.Search(r.Context(), query.Get("search"), query.Get("category"))
	if err != nil {
		writeError(w, err)
		return
	}

	response := make([]productResponse, 0, len(products))
	for _, product := range products {
		response = append(response, newProductResponse(product))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	product, err := h.services.Catalog.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductResponse(*product))
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.Catalog.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var payload productPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	product, err := h.services.Catalog.CreateProduct(r.Context(), payload.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	log.WithFields(log.Fields{"product": product.ID, "name": product.Name}).Info("product added to inventory")
	writeJSON(w, http.StatusCreated, newProductResponse(*product))
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var payload productPayload
	if err := decodeBody(r, &payload); err != nil {
		writeError(w, err)
		return
	}
	product, err := h.services.Catalog.UpdateProduct(r.Context(), id, payload.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newProductResponse(*product))
}

func (h *Handler) removeProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.services.Catalog.RemoveProduct(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
