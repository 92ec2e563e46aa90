// @title Travel Buddy Backend API
// @version 1.0
// @description Travel Buddy Backend API for travel companion matching
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

//go:generate go run github.com/swaggo/swag/cmd/swag@v1.16.6 init -g main.go -d ./,../internal/handlers,../internal/dto -o ../docs

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/cors"

	"TRAVELBUDDY_BACK-END/internal/config"
	"TRAVELBUDDY_BACK-END/internal/handlers"
	"TRAVELBUDDY_BACK-END/internal/models"
	"TRAVELBUDDY_BACK-END/internal/payment"
	"TRAVELBUDDY_BACK-END/internal/repository"
	"TRAVELBUDDY_BACK-END/internal/routes"
	"TRAVELBUDDY_BACK-END/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	// --- Rule engines ---
	clock := services.SystemClock{}
	opts := services.Options{StrictTransitions: cfg.Rules.StrictTransitions}
	pricing := services.Pricing{
		Currency: cfg.Stripe.Currency,
		Prices: map[models.SubscriptionType]int64{
			models.SubscriptionExplorer: cfg.Stripe.PriceExplorer,
			models.SubscriptionMonthly:  cfg.Stripe.PriceMonthly,
			models.SubscriptionYearly:   cfg.Stripe.PriceYearly,
		},
	}
	gateway := payment.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, nil)

	users := services.NewUserService(store, clock, cfg.Rules.BcryptCost).WithAdminEmails(cfg.Rules.AdminEmails)
	notifications := services.NewNotificationService(store, clock)
	entitlements := services.NewEntitlementService(store, clock)
	connections := services.NewConnectionService(store, entitlements, notifications, clock, opts)
	plans := services.NewTravelPlanService(store, entitlements, notifications, clock, opts)
	reviews := services.NewReviewService(store, clock)
	payments := services.NewPaymentService(store, gateway, pricing, clock)

	// --- HTTP Handlers ---
	h := routes.Handlers{
		Health:        handlers.NewHealthHandler(store),
		Auth:          handlers.NewAuthHandler(users, &cfg.JWT),
		Profile:       handlers.NewProfileHandler(users),
		Subscription:  handlers.NewSubscriptionHandler(entitlements),
		Connections:   handlers.NewConnectionsHandler(connections),
		TravelPlans:   handlers.NewTravelPlansHandler(plans),
		Reviews:       handlers.NewReviewsHandler(reviews),
		Payments:      handlers.NewPaymentsHandler(payments, cfg.Stripe.MaxWebhookBytes),
		Notifications: handlers.NewNotificationsHandler(notifications),
		Admin:         handlers.NewAdminHandler(users),
	}
	if cfg.IsGoogleOAuthConfigured() {
		h.GoogleAuth = handlers.NewGoogleAuthHandler(users, cfg)
	}

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           c.Handler(routes.SetupRoutes(h, &cfg.JWT)),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("HTTP server listening on :%s (store=%s)", cfg.Server.Port, cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("ListenAndServe: %v", err)
		}
	}()

	// Wait for SIGINT/SIGTERM to shut down gracefully
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
	log.Println("Server stopped.")
}

// openStore connects the configured persistence backend
func openStore(cfg *config.Config) (repository.Store, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		return repository.NewMemoryStore(), func() {}, nil
	}

	// pgxpool + simple protocol (required behind PgBouncer)
	poolCfg, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, nil, err
	}
	if cfg.Database.SimpleProtocol {
		poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	}
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "travelbuddy-backend"
	poolCfg.ConnConfig.RuntimeParams["statement_timeout"] = strconv.FormatInt(cfg.Database.QueryTimeout.Milliseconds(), 10)
	poolCfg.MaxConns = cfg.Database.MaxConns
	poolCfg.MinConns = cfg.Database.MinConns
	poolCfg.MaxConnLifetime = cfg.Database.MaxLifetime

	pool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := repository.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return repository.NewPostgresStore(pool), pool.Close, nil
}
