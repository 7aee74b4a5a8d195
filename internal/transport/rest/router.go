package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"github.com/QualifAIze/qualifaize-backend-api/internal/service"
	"github.com/QualifAIze/qualifaize-backend-api/internal/transport/rest/handler"
	"github.com/QualifAIze/qualifaize-backend-api/internal/transport/rest/middleware"
	"github.com/QualifAIze/qualifaize-backend-api/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	UserService      *service.UserService
	DocumentService  *service.DocumentService
	InterviewService *service.InterviewService
	QuestionService  *service.QuestionService
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService, c.UserService)
	userHandler := handler.NewUserHandler(c.UserService)
	documentHandler := handler.NewDocumentHandler(c.DocumentService)
	interviewHandler := handler.NewInterviewHandler(c.InterviewService, c.QuestionService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket routes (public with token in query param)
	v1.HandleFunc("/ws/interviews/{interviewId}", wsHandler.InterviewWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Admin routes
	adminRoutes := v1.NewRoute().Subrouter()
	adminRoutes.Use(authMW.RequireAdmin)

	adminRoutes.HandleFunc("/auth/candidate-token", authHandler.CandidateToken).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/users", userHandler.Register).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/users", userHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/documents", documentHandler.Create).Methods("POST", "OPTIONS")
	adminRoutes.HandleFunc("/documents", documentHandler.List).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/documents/{documentId}/toc", documentHandler.TableOfContents).Methods("GET", "OPTIONS")
	adminRoutes.HandleFunc("/interviews", interviewHandler.Create).Methods("POST", "OPTIONS")

	// Routes shared by admins and candidates
	authRoutes := v1.NewRoute().Subrouter()
	authRoutes.Use(authMW.RequireAuth)

	authRoutes.HandleFunc("/interviews/assigned", interviewHandler.Assigned).Methods("GET", "OPTIONS")
	authRoutes.HandleFunc("/interviews/details", interviewHandler.Details).Methods("GET", "OPTIONS")
	authRoutes.HandleFunc("/interviews/{interviewId}/status", interviewHandler.ChangeStatus).Methods("PATCH", "OPTIONS")
	authRoutes.HandleFunc("/interviews/{interviewId}/next", interviewHandler.NextQuestion).Methods("GET", "OPTIONS")
	authRoutes.HandleFunc("/interviews/answers/{questionId}", interviewHandler.SubmitAnswer).Methods("POST", "OPTIONS")

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
			allowedMethods = "GET, POST, PUT, PATCH, DELETE, OPTIONS"
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
