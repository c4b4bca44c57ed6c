package transport

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"campusstore/pkg/domain/model"
	"campusstore/pkg/domain/service"
)

const (
	userIDHeader         = "X-User-ID"
	idempotencyKeyHeader = "Idempotency-Key"
)

var errInvalidID = model.NewValidationError("invalid id")

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("write response body")
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case model.IsValidation(err),
		errors.Is(err, model.ErrCartIsEmpty),
		errors.Is(err, model.ErrProductOutOfStock),
		errors.Is(err, model.ErrQuantityNotAdjustable),
		errors.Is(err, model.ErrUnknownPrintStatus),
		errors.Is(err, model.ErrUnknownCartItemType):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrCartItemNotFound),
		errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrPrintOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrIllegalTransition),
		errors.Is(err, model.ErrPrintOptimisticLock),
		errors.Is(err, model.ErrCartOptimisticLock),
		errors.Is(err, model.ErrDuplicateOrder),
		errors.Is(err, model.ErrDuplicatePrintOrder):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return model.NewValidationError("invalid JSON: " + err.Error())
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}

func userID(r *http.Request) string {
	if id := strings.TrimSpace(r.URL.Query().Get("userId")); id != "" {
		return id
	}
	return strings.TrimSpace(r.Header.Get(userIDHeader))
}

// money renders an amount as a JSON number with two decimals.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

type productResponse struct {
	ID          uuid.UUID        `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       json.Number      `json:"price"`
	Stock       int              `json:"stock"`
	StockLevel  model.StockLevel `json:"stockLevel"`
	Category    string           `json:"category,omitempty"`
	ImageURL    string           `json:"imageUrl,omitempty"`
}

func newProductResponse(p model.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       money(p.Price),
		Stock:       p.Stock,
		StockLevel:  p.StockLevel(),
		Category:    p.Category,
		ImageURL:    p.ImageURL,
	}
}

type printOrderResponse struct {
	ID             uuid.UUID                `json:"id"`
	UserID         string                   `json:"userId"`
	FileName       string                   `json:"fileName"`
	Copies         int                      `json:"copies"`
	PaperSize      model.PaperSize          `json:"paperSize"`
	Color          model.ColorMode          `json:"color"`
	TwoSided       bool                     `json:"twoSided"`
	Notes          string                   `json:"notes,omitempty"`
	Status         model.PrintOrderStatus   `json:"status"`
	NextStatuses   []model.PrintOrderStatus `json:"nextStatuses"`
	OrderDate      string                   `json:"orderDate"`
	EstimatedPrice *json.Number             `json:"estimatedPrice"`
	Version        int                      `json:"version"`
}

func newPrintOrderResponse(o model.PrintOrder) printOrderResponse {
	resp := printOrderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		FileName:     o.FileName,
		Copies:       o.Copies,
		PaperSize:    o.PaperSize,
		Color:        o.Color,
		TwoSided:     o.TwoSided,
		Notes:        o.Notes,
		Status:       o.Status,
		NextStatuses: o.Status.NextStatuses(),
		OrderDate:    o.OrderDate.UTC().Format(timeLayout),
		Version:      o.Version,
	}
	if o.EstimatedPrice != nil {
		price := money(*o.EstimatedPrice)
		resp.EstimatedPrice = &price
	}
	return resp
}

const timeLayout = "2006-01-02T15:04:05.000Z07:00"

type cartItemResponse struct {
	ID        uuid.UUID           `json:"id"`
	Type      model.CartItemType  `json:"type"`
	Name      string              `json:"name"`
	Quantity  int                 `json:"quantity"`
	UnitPrice json.Number         `json:"unitPrice"`
	LineTotal json.Number         `json:"lineTotal"`
	Product   *productResponse    `json:"product,omitempty"`
	PrintJob  *printOrderResponse `json:"printJob,omitempty"`
}

func newCartItemResponse(item model.CartItem) cartItemResponse {
	resp := cartItemResponse{
		ID:        item.ItemID(),
		Type:      item.ItemType(),
		Name:      model.DisplayName(item),
		Quantity:  item.ItemQuantity(),
		LineTotal: money(model.LineTotal(item)),
	}
	switch it := item.(type) {
	case *model.ProductCartItem:
		product := newProductResponse(it.Product)
		resp.Product = &product
		resp.UnitPrice = money(it.Product.Price)
	case *model.PrintCartItem:
		job := newPrintOrderResponse(it.PrintJob)
		resp.PrintJob = &job
		resp.UnitPrice = money(model.LineTotal(it))
	}
	return resp
}

type cartResponse struct {
	UserID   string             `json:"userId"`
	Items    []cartItemResponse `json:"items"`
	Subtotal json.Number        `json:"subtotal"`
	Tax      json.Number        `json:"tax"`
	Total    json.Number        `json:"total"`
	Version  int                `json:"version"`
}

func newCartResponse(summary *service.CartSummary) cartResponse {
	items := make([]cartItemResponse, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		items = append(items, newCartItemResponse(line.Item))
	}
	return cartResponse{
		UserID:   summary.UserID,
		Items:    items,
		Subtotal: money(summary.Subtotal),
		Tax:      money(summary.Tax),
		Total:    money(summary.Total),
		Version:  summary.Version,
	}
}

type orderResponse struct {
	ID          uuid.UUID          `json:"id"`
	OrderNumber string             `json:"orderNumber"`
	UserID      string             `json:"userId"`
	Items       []cartItemResponse `json:"items"`
	TotalAmount json.Number        `json:"totalAmount"`
	Status      model.OrderStatus  `json:"status"`
	OrderDate   string             `json:"orderDate"`
}

func newOrderResponse(o model.Order) orderResponse {
	items := make([]cartItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, newCartItemResponse(item))
	}
	return orderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		UserID:      o.UserID,
		Items:       items,
		TotalAmount: money(o.TotalAmount),
		Status:      o.Status,
		OrderDate:   o.OrderDate.UTC().Format(timeLayout),
	}
}
