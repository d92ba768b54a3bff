package routes

import (
	"github.com/gorilla/mux"

	"assetledger/handlers"
	"assetledger/middleware"
	"assetledger/websocket"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPutOnly    = []string{"PUT", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router) {
	// ====================
	// HEALTH CHECK (Public)
	// ====================
	r.HandleFunc("/health", handlers.HealthCheck).Methods(MethodsGetOnly...)

	// ====================
	// AUTHENTICATION (Public)
	// ====================
	r.HandleFunc("/api/auth/login", handlers.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/auth/validate", handlers.ValidateToken).Methods(MethodsGetOnly...)

	// ====================
	// ACCOUNT PROVISIONING (Public, consumed by the admin frontend)
	// ====================
	r.HandleFunc("/api/users/create", handlers.CreateUser).Methods(MethodsPostOnly...)
	r.HandleFunc("/api/users/delete/{userId}", handlers.DeleteUser).Methods(MethodsDeleteOnly...)

	// ====================
	// PROTECTED API ROUTES (Require authentication)
	// ====================
	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.Use(middleware.AuthMiddleware)

	// Users
	apiRouter.HandleFunc("/users", handlers.ListUsers).Methods(MethodsGetOnly...)

	// Assets
	apiRouter.HandleFunc("/assets", handlers.ListAssets).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/assets", handlers.CreateAsset).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/assets/{id}", handlers.GetAsset).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/assets/{id}", handlers.UpdateAsset).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/assets/{id}", handlers.DeleteAsset).Methods(MethodsDeleteOnly...)

	// Inventory views
	apiRouter.HandleFunc("/inventory/grouped", handlers.GetGroupedInventory).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/dashboard/overview", handlers.GetOverview).Methods(MethodsGetOnly...)

	// Asset requests
	apiRouter.HandleFunc("/requests", handlers.ListRequests).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/requests", handlers.CreateRequest).Methods(MethodsPostOnly...)
	apiRouter.HandleFunc("/requests/{id}/approve", handlers.ApproveRequest).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/requests/{id}/reject", handlers.RejectRequest).Methods(MethodsPutOnly...)
	apiRouter.HandleFunc("/requests/{id}/dispatch", handlers.DispatchRequest).Methods(MethodsPutOnly...)

	// Movements
	apiRouter.HandleFunc("/movements", handlers.ListMovements).Methods(MethodsGetOnly...)
	apiRouter.HandleFunc("/movements", handlers.CreateMovement).Methods(MethodsPostOnly...)

	// Audit logs
	apiRouter.HandleFunc("/audit", handlers.ListAuditLogs).Methods(MethodsGetOnly...)

	// Realtime request updates
	apiRouter.HandleFunc("/ws", websocket.ServeWS)
}
