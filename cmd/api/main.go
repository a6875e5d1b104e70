package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/hoterry/whatsdish-mobile-sub003/internal/cart"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/checkout"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/geocode"
	h "github.com/hoterry/whatsdish-mobile-sub003/internal/http"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/menu"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/money"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/order"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/payment"
	"github.com/hoterry/whatsdish-mobile-sub003/internal/remote"
)

type Config struct {
	HTTPPort           string
	RedisAddr          string
	KafkaBrokers       []string
	MenuBaseURL        string
	GeocodeBaseURL     string
	PaymentBaseURL     string
	OrdersBaseURL      string
	HistoryPath        string
	TaxRateBasisPoints int64
	DeliveryFeeCents   int64
	RequestTimeout     time.Duration
	ShutdownTimeout    time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:       strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		MenuBaseURL:        getEnv("MENU_BASE_URL", "http://localhost:8081"),
		GeocodeBaseURL:     getEnv("GEOCODE_BASE_URL", "http://localhost:8082"),
		PaymentBaseURL:     getEnv("PAYMENT_BASE_URL", "http://localhost:8083"),
		OrdersBaseURL:      getEnv("ORDERS_BASE_URL", "http://localhost:8084"),
		HistoryPath:        getEnv("HISTORY_DB_PATH", "orders.db"),
		TaxRateBasisPoints: getEnvInt("TAX_RATE_BASIS_POINTS", 500),
		DeliveryFeeCents:   getEnvInt("DELIVERY_FEE_CENTS", 499),
		RequestTimeout:     30 * time.Second,
		ShutdownTimeout:    10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int64) int64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		log.Fatalf("invalid %s: %v", key, err)
	}
	return v
}

func main() {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := loadConfig()

	creds := remote.EnvCredentialStore{Key: "BACKEND_TOKEN"}

	// Cart core
	store := cart.NewMemoryStore()
	pricing := checkout.Pricing{
		TaxRateBasisPoints: cfg.TaxRateBasisPoints,
		DeliveryFee:        money.Money(cfg.DeliveryFeeCents),
	}
	aggregator := checkout.NewAggregator(store, pricing, time.Now)

	// Menu source with redis cache
	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()
	menuService := menu.NewService(
		menu.NewClient(cfg.MenuBaseURL, creds),
		menu.NewRedisCache(redisClient),
	)

	// Order pipeline: sink, local history, event stream
	history, err := order.OpenHistory(cfg.HistoryPath)
	if err != nil {
		log.Fatalf("failed to open order history: %v", err)
	}
	defer history.Close()

	events := order.NewKafkaPublisher(cfg.KafkaBrokers...)
	defer events.Close()

	orderService := order.NewService(
		order.NewHTTPSink(cfg.OrdersBaseURL, creds),
		store,
		history,
		events,
	)

	geocoder := geocode.NewClient(cfg.GeocodeBaseURL)
	payments := payment.NewClient(cfg.PaymentBaseURL, creds)

	cartHandler := h.NewCartHandler(store)
	menuHandler := h.NewMenuHandler(menuService, cfg.RequestTimeout)
	addressHandler := h.NewAddressHandler(geocoder, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(aggregator, payments, orderService, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(history, cfg.RequestTimeout)

	// TODO: swap for real session validation once the auth service exposes
	// an introspection endpoint; until then the bearer token is the user id.
	verify := func(token string) (string, error) {
		return token, nil
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(h.AuthMiddleware(verify))

		r.Route("/restaurants/{restaurant_id}", func(r chi.Router) {
			r.Get("/menu", menuHandler.GetMenu)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{item_key}", cartHandler.UpdateQuantity)
				r.Delete("/items/{item_key}", cartHandler.RemoveItem)
			})

			r.Post("/checkout/quote", checkoutHandler.Quote)
			r.Post("/checkout", checkoutHandler.Submit)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Get("/search", addressHandler.Search)
			r.Get("/reverse", addressHandler.Reverse)
		})

		r.Get("/orders", ordersHandler.ListOrders)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("ordering API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
}
