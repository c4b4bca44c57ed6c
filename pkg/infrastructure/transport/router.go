package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"campusstore/pkg/domain/service"
)

type Services struct {
	Catalog     service.CatalogService
	Cart        service.CartService
	Orders      service.OrderService
	PrintOrders service.PrintOrderService
	ShopStatus  service.ShopStatusService
	Pricer      service.PrintPricer
}

type Handler struct {
	services Services
}

func Router(services Services) http.Handler {
	h := &Handler{services: services}

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	s := r.PathPrefix("/api/v1").Subrouter()

	s.HandleFunc("/products", h.listProducts).Methods(http.MethodGet)
	s.HandleFunc("/products", h.createProduct).Methods(http.MethodPost)
	s.HandleFunc("/products/{id}", h.getProduct).Methods(http.MethodGet)
	s.HandleFunc("/products/{id}", h.updateProduct).Methods(http.MethodPut)
	s.HandleFunc("/products/{id}", h.removeProduct).Methods(http.MethodDelete)
	s.HandleFunc("/categories", h.listCategories).Methods(http.MethodGet)

	s.HandleFunc("/cart", h.getCart).Methods(http.MethodGet)
	s.HandleFunc("/cart/items", h.addCartItem).Methods(http.MethodPost)
	s.HandleFunc("/cart/items/{id}", h.removeCartItem).Methods(http.MethodDelete)
	s.HandleFunc("/cart/items/{id}", h.changeCartItemQuantity).Methods(http.MethodPatch)

	s.HandleFunc("/print-estimates", h.estimatePrint).Methods(http.MethodPost)

	s.HandleFunc("/orders", h.placeOrder).Methods(http.MethodPost)
	s.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	s.HandleFunc("/orders/{id}", h.getOrder).Methods(http.MethodGet)

	s.HandleFunc("/print-orders", h.listPrintOrders).Methods(http.MethodGet)
	s.HandleFunc("/print-orders/{id}", h.getPrintOrder).Methods(http.MethodGet)
	s.HandleFunc("/print-orders/{id}", h.transitionPrintOrder).Methods(http.MethodPatch)

	s.HandleFunc("/shop-status", h.getShopStatus).Methods(http.MethodGet)
	s.HandleFunc("/shop-status", h.putShopStatus).Methods(http.MethodPut)

	return logMiddleware(r)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
