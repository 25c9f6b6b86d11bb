package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/freshacres/go-farmstore/app/configs"
	"github.com/freshacres/go-farmstore/app/handlers"
	adminhandlers "github.com/freshacres/go-farmstore/app/handlers/admin"
	"github.com/freshacres/go-farmstore/app/middlewares"
	"github.com/freshacres/go-farmstore/app/repositories"
	"github.com/freshacres/go-farmstore/app/services"
	"github.com/freshacres/go-farmstore/app/utils/renderer"
	"github.com/freshacres/go-farmstore/app/utils/sessions"
)

// NewRouter wires repositories, services and handlers onto the mux router.
func NewRouter(db *gorm.DB, store sessions.SessionStore) *mux.Router {
	r := renderer.New()

	productRepo := repositories.NewProductRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	cartItemRepo := repositories.NewCartItemRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	userRepo := repositories.NewUserRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	farmRepo := repositories.NewFarmRepository(db)

	cartSvc := services.NewCartService(cartRepo, cartItemRepo, productRepo)
	checkoutSvc := services.NewCheckoutService(cartRepo, cartItemRepo, productRepo, orderRepo)
	mailer := services.NewMailer(services.MailConfig{
		Host:     configs.LoadENV.EmailHost,
		Port:     configs.LoadENV.EmailPort,
		Username: configs.LoadENV.EmailUsername,
		Password: configs.LoadENV.EmailPassword,
		From:     configs.LoadENV.EmailFrom,
	})
	notifier := services.NewDiscountNotifier(productRepo, userRepo, mailer)

	productHandler := handlers.NewProductHandler(productRepo, reviewRepo, r)
	cartHandler := handlers.NewCartHandler(cartSvc, store, r)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc, orderRepo, store, r)
	reviewHandler := handlers.NewReviewHandler(reviewRepo, productRepo, r)
	farmHandler := handlers.NewFarmHandler(farmRepo, r)
	authHandler := handlers.NewAuthHandler(userRepo, cartRepo, cartSvc, store, r)
	productAdminHandler := adminhandlers.NewProductAdminHandler(productRepo, farmRepo, r)
	notifyAdminHandler := adminhandlers.NewNotifyAdminHandler(notifier, r)

	router := mux.NewRouter()
	router.Use(middlewares.UserContextMiddleware(store, userRepo))
	router.Use(middlewares.CartCountMiddleware(store, cartRepo))

	router.HandleFunc("/", handlers.Home(r)).Methods("GET")

	router.HandleFunc("/products", productHandler.List).Methods("GET")
	router.HandleFunc("/products/{slug}", productHandler.Detail).Methods("GET")
	router.HandleFunc("/products/{slug}/reviews", reviewHandler.ListByProduct).Methods("GET")
	router.HandleFunc("/products/{slug}/reviews", reviewHandler.Create).Methods("POST")

	router.HandleFunc("/farms", farmHandler.List).Methods("GET")
	router.HandleFunc("/farms/{slug}", farmHandler.Detail).Methods("GET")

	router.HandleFunc("/carts", cartHandler.GetCart).Methods("GET")
	router.HandleFunc("/carts/items", cartHandler.AddItem).Methods("POST")
	router.HandleFunc("/carts/items", cartHandler.UpdateItem).Methods("PUT")
	router.HandleFunc("/carts/items", cartHandler.RemoveItem).Methods("DELETE")

	router.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	router.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	router.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")

	authed := router.NewRoute().Subrouter()
	authed.Use(middlewares.RequireLogin)
	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")
	authed.HandleFunc("/auth/subscription", authHandler.UpdateSubscription).Methods("PUT")
	authed.Handle("/checkout", http.HandlerFunc(checkoutHandler.PlaceOrder)).Methods("POST")
	authed.HandleFunc("/orders", checkoutHandler.ListMyOrders).Methods("GET")
	authed.HandleFunc("/orders/{code}", checkoutHandler.OrderDetail).Methods("GET")
	authed.HandleFunc("/orders/{code}/cancel", checkoutHandler.CancelOrder).Methods("POST")

	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middlewares.RequireLogin, middlewares.RequireAdmin)
	admin.HandleFunc("/products", productAdminHandler.Create).Methods("POST")
	admin.HandleFunc("/products/{id}", productAdminHandler.Update).Methods("PUT")
	admin.HandleFunc("/products/{id}", productAdminHandler.Delete).Methods("DELETE")
	admin.HandleFunc("/notify-discounts", notifyAdminHandler.BroadcastDiscounts).Methods("POST")

	return router
}
