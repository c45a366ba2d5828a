package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"leadquiz/internal/service"
	"leadquiz/internal/transport/rest/handler"
	"leadquiz/internal/transport/rest/middleware"
	"leadquiz/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService *service.AuthService
	QuizService *service.QuizService
	LeadService *service.LeadService
	WSHub       *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	quizHandler := handler.NewQuizHandler(c.QuizService)
	leadHandler := handler.NewLeadHandler(c.LeadService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public auth routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")
	v1.HandleFunc("/auth/identify", authHandler.Identify).Methods("POST", "OPTIONS")

	// Ops WebSocket (agent token in query param)
	v1.HandleFunc("/ws/ops", wsHandler.OpsWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Quiz routes: public, but the respondent identity (when presented) is
	// attached so the engine's auth gate can require it on advance
	quizRoutes := v1.NewRoute().Subrouter()
	quizRoutes.Use(authMW.AttachRespondent)

	quizRoutes.HandleFunc("/quiz/sessions", quizHandler.Create).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}", quizHandler.Get).Methods("GET", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}/answers/{questionId}", quizHandler.RecordAnswer).Methods("PUT", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}/answers/{questionId}/toggle", quizHandler.ToggleOption).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}/advance", quizHandler.Advance).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}/retreat", quizHandler.Retreat).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}/contact", quizHandler.SetContact).Methods("PUT", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}/submit", quizHandler.Submit).Methods("POST", "OPTIONS")
	quizRoutes.HandleFunc("/quiz/sessions/{id}/reset", quizHandler.Reset).Methods("POST", "OPTIONS")

	// Back-office routes (require agent auth)
	agentRoutes := v1.NewRoute().Subrouter()
	agentRoutes.Use(authMW.RequireAgent)

	agentRoutes.HandleFunc("/leads", leadHandler.List).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
