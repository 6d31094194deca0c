package routes

import (
	"github.com/gorilla/mux"

	"github.com/lnfurey-oss/pm-exploration/handlers"
	"github.com/lnfurey-oss/pm-exploration/middleware"
	"github.com/lnfurey-oss/pm-exploration/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly  = []string{"GET", "OPTIONS"}
	MethodsPostOnly = []string{"POST", "OPTIONS"}
)

const (
	PathAPI    = "/api"
	PathHealth = "/health"
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc(PathHealth, handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION ROUTES (Public - No auth required)
	// ====================
	r.HandleFunc("/api/auth/register", handlers.Register).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)

	// ====================
	// WEBSOCKET (token validated in the handler)
	// ====================
	r.HandleFunc("/ws", websocket.HandleWebSocket)

	// ====================
	// PROTECTED API ROUTES (Require authentication)
	// ====================
	apiRouter := r.PathPrefix(PathAPI).Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	// Decision journal
	apiRouter.HandleFunc("/decisions", handlers.CreateDecision).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/decisions", handlers.ListDecisions).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/decisions/{id}", handlers.GetDecision).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/decisions/{id}/assumptions", handlers.AddAssumptions).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/decisions/{id}/outcome", handlers.SetOutcome).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/decisions/{id}/reflection", handlers.GetReflection).Methods(MethodsGetOnly...)

	// Premortem concerns
	apiRouter.HandleFunc("/concerns", handlers.SubmitConcern).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/concerns", handlers.ListConcerns).Methods(MethodsGetOnly...)
}
