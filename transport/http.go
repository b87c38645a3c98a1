package transport

import (
	"net/http"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	catalogapp "github.com/kartanikah/wedding-commerce/application/catalog"
	orderapp "github.com/kartanikah/wedding-commerce/application/order"
	paymentapp "github.com/kartanikah/wedding-commerce/application/payment"
	userapp "github.com/kartanikah/wedding-commerce/application/user"
	"github.com/kartanikah/wedding-commerce/cmd/config"
)

type RestHandler struct {
	OrderApp   orderapp.OrderApp
	PaymentApp paymentapp.PaymentApp
	UserApp    userapp.UserApp
	CatalogApp catalogapp.CatalogApp
}

func NewTransport(cfg *config.Config, orderApp orderapp.OrderApp, paymentApp paymentapp.PaymentApp, userApp userapp.UserApp, catalogApp catalogapp.CatalogApp) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		OrderApp:   orderApp,
		PaymentApp: paymentApp,
		UserApp:    userApp,
		CatalogApp: catalogApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	router.HandleFunc("/healthz", rh.Healthz).Methods(http.MethodGet)

	// Orders
	router.HandleFunc("/orders", rh.CreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", rh.ListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/user/{userId}", rh.ListUserOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", rh.GetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", rh.UpdateOrder).Methods(http.MethodPut)
	router.HandleFunc("/orders/{id}", rh.DeleteOrder).Methods(http.MethodDelete)

	// Payment
	router.HandleFunc("/payment/transactions", rh.CreateTransaction).Methods(http.MethodPost)
	router.HandleFunc("/payment/notification", rh.PaymentNotification).Methods(http.MethodPost)
	router.HandleFunc("/payment/transactions/{orderId}/status", rh.TransactionStatus).Methods(http.MethodGet)

	// Users
	router.HandleFunc("/users/sync", rh.SyncUser).Methods(http.MethodPost)
	router.HandleFunc("/users/{id}", rh.GetUser).Methods(http.MethodGet)

	// Catalog
	router.HandleFunc("/products", rh.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products", rh.CreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/products/{id}", rh.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/products/{id}", rh.UpdateProduct).Methods(http.MethodPut)
	router.HandleFunc("/products/{id}", rh.DeleteProduct).Methods(http.MethodDelete)
	router.HandleFunc("/tags", rh.ListTags).Methods(http.MethodGet)
	router.HandleFunc("/tags", rh.CreateTag).Methods(http.MethodPost)

	// Internal (expiration consumer callbacks)
	internal := router.PathPrefix("/internal/v1").Subrouter()
	internal.Use(InternalMiddleware(cfg.Auth.InternalKeyHash, cfg.Auth.InternalKey))
	internal.HandleFunc("/orders/{id}/expire", rh.ExpireOrder).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(cfg.Auth.JWTSecret))

	return router
}

func (s *RestHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, map[string]string{"status": "ok"})
}
