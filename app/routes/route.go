package routes

import (
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
	"gorm.io/gorm"

	"github.com/mechstore/go-mechstore/app/broadcast"
	"github.com/mechstore/go-mechstore/app/configs"
	"github.com/mechstore/go-mechstore/app/handlers"
	"github.com/mechstore/go-mechstore/app/repositories"
	"github.com/mechstore/go-mechstore/app/services"
)

// NewRouter wires repositories, services and handlers onto the API surface.
// The hub and notifier are injected so their lifecycles stay owned by main.
func NewRouter(db *gorm.DB, env configs.ENV, hub *broadcast.Hub, notifier *services.Notifier, mailer services.EmailSender) *mux.Router {
	rnd := render.New()
	validate := validator.New()

	categoryRepo := repositories.NewCategoryRepository(db)
	brandRepo := repositories.NewBrandRepository(db)
	productRepo := repositories.NewProductRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	orderItemRepo := repositories.NewOrderItemRepository(db)
	inquiryRepo := repositories.NewInquiryRepository(db)

	catalogSvc := services.NewCatalogService(db, categoryRepo)
	productSvc := services.NewProductService(productRepo, categoryRepo, brandRepo)
	orderSvc := services.NewOrderService(db, orderRepo, orderItemRepo, productRepo, inquiryRepo, notifier)

	categoryHandler := handlers.NewCategoryHandler(rnd, catalogSvc, validate)
	productHandler := handlers.NewProductHandler(rnd, productSvc, validate)
	brandHandler := handlers.NewBrandHandler(rnd, productSvc, validate)
	orderHandler := handlers.NewOrderHandler(rnd, orderSvc, validate)
	contactHandler := handlers.NewContactHandler(rnd, mailer, env.AdminEmail, validate)
	seoHandler := handlers.NewSeoHandler(env.BaseURL, productRepo, categoryRepo)
	wsHandler := handlers.NewWsHandler(hub)

	router := mux.NewRouter()

	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/categories", categoryHandler.List).Methods("GET")
	api.HandleFunc("/categories", categoryHandler.Create).Methods("POST")
	api.HandleFunc("/categories/{id}", categoryHandler.Get).Methods("GET")
	api.HandleFunc("/categories/{id}", categoryHandler.Update).Methods("PUT")
	api.HandleFunc("/categories/{id}", categoryHandler.Delete).Methods("DELETE")

	api.HandleFunc("/products", productHandler.List).Methods("GET")
	api.HandleFunc("/products", productHandler.Create).Methods("POST")
	api.HandleFunc("/products/{slug}", productHandler.GetBySlug).Methods("GET")
	api.HandleFunc("/products/{id:[0-9]+}", productHandler.Update).Methods("PUT")
	api.HandleFunc("/products/{id:[0-9]+}", productHandler.Delete).Methods("DELETE")

	api.HandleFunc("/brands", brandHandler.List).Methods("GET")
	api.HandleFunc("/brands", brandHandler.Create).Methods("POST")
	api.HandleFunc("/brands/{id}", brandHandler.Delete).Methods("DELETE")

	api.HandleFunc("/orders", orderHandler.Create).Methods("POST")
	api.HandleFunc("/orders/inquiry", orderHandler.CreateInquiry).Methods("POST")
	api.HandleFunc("/admin/orders", orderHandler.AdminList).Methods("GET")
	api.HandleFunc("/admin/orders/{id}/status", orderHandler.AdminUpdateStatus).Methods("PUT")

	api.HandleFunc("/contact/send", contactHandler.Send).Methods("POST")

	router.HandleFunc("/sitemap.xml", seoHandler.Sitemap).Methods("GET")
	router.HandleFunc("/ws", wsHandler.Subscribe)

	return router
}
