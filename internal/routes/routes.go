package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"TRAVELBUDDY_BACK-END/internal/config"
	"TRAVELBUDDY_BACK-END/internal/handlers"
	"TRAVELBUDDY_BACK-END/internal/middleware"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	GoogleAuth    *handlers.GoogleAuthHandler
	Profile       *handlers.ProfileHandler
	Subscription  *handlers.SubscriptionHandler
	Connections   *handlers.ConnectionsHandler
	TravelPlans   *handlers.TravelPlansHandler
	Reviews       *handlers.ReviewsHandler
	Payments      *handlers.PaymentsHandler
	Notifications *handlers.NotificationsHandler
	Admin         *handlers.AdminHandler
}

// SetupRoutes configures all application routes
func SetupRoutes(h Handlers, jwtCfg *config.JWTConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)

	// Health check routes
	r.Get("/healthz", h.Health.HealthCheck)
	r.Get("/livez", h.Health.LivenessCheck)
	r.Get("/readyz", h.Health.ReadinessCheck)

	r.Route("/api", func(r chi.Router) {
		// Authentication routes
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		if h.GoogleAuth != nil {
			r.Get("/auth/google/login", h.GoogleAuth.GoogleLogin)
			r.Get("/auth/google/callback", h.GoogleAuth.GoogleCallback)
		}

		// Called by the payment gateway, authenticated by signature
		r.Post("/payments/webhook", h.Payments.Webhook)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(jwtCfg))

			r.Get("/profile", h.Profile.GetMe)
			r.Put("/profile", h.Profile.Update)
			r.Get("/subscription", h.Subscription.Get)

			r.Route("/connections", func(r chi.Router) {
				r.Post("/", h.Connections.SendRequest)
				r.Get("/buddies", h.Connections.Buddies)
				r.Get("/incoming", h.Connections.Incoming)
				r.Get("/sent", h.Connections.Sent)
				r.Patch("/{id}", h.Connections.Respond)
				r.Delete("/{id}", h.Connections.Delete)
			})

			r.Route("/travel-plans", func(r chi.Router) {
				r.Post("/", h.TravelPlans.CreatePlan)
				r.Get("/", h.TravelPlans.ListPlans)
				r.Get("/mine", h.TravelPlans.ListMyPlans)
				r.Get("/{id}", h.TravelPlans.GetPlan)
				r.Put("/{id}", h.TravelPlans.UpdatePlan)
				r.Delete("/{id}", h.TravelPlans.DeletePlan)
				r.Post("/{id}/join", h.TravelPlans.RequestJoin)
				r.Get("/{id}/requests", h.TravelPlans.ListJoinRequests)
			})
			r.Patch("/travel-buddies/{id}", h.TravelPlans.UpdateJoinRequest)

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", h.Reviews.Create)
				r.Get("/pending", h.Reviews.Pending)
				r.Put("/{id}", h.Reviews.Update)
				r.Delete("/{id}", h.Reviews.Delete)
			})
			r.Get("/users/{id}/reviews", h.Reviews.ForUser)

			r.Route("/payments", func(r chi.Router) {
				r.Post("/intent", h.Payments.CreateIntent)
				r.Post("/confirm", h.Payments.Confirm)
				r.Get("/", h.Payments.List)
			})

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", h.Notifications.ListNotifications)
				r.Post("/read-all", h.Notifications.MarkAllRead)
				r.Post("/{id}/read", h.Notifications.MarkRead)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Patch("/users/{id}/status", h.Admin.SetUserStatus)
			})
		})
	})

	// Root route
	r.Get("/", rootHandler)

	return r
}

func rootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Travel Buddy backend is running."))
}
