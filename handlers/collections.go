// handlers/collections.go
package handlers

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"assetledger/database"
	"assetledger/lifecycle"
	"assetledger/mailer"
	"assetledger/storage"
)

var (
	identityCollection *mongo.Collection
	adminCollection    *mongo.Collection
	assetCollection    *mongo.Collection
	requestCollection  *mongo.Collection
	movementCollection *mongo.Collection
	auditLogCollection *mongo.Collection

	requestLifecycle *lifecycle.Service

	// Optional collaborators; nil when not configured. Handlers that
	// need them fail the affected step, not the whole process.
	objectStore *storage.Client
	mail        *mailer.Mailer

	validate = validator.New()
)

func InitCollections() {
	db := database.Client.Database("assetledger")
	identityCollection = db.Collection("identities")
	adminCollection = db.Collection("admins")
	assetCollection = db.Collection("assets")
	requestCollection = db.Collection("asset_requests")
	movementCollection = db.Collection("asset_movement")
	auditLogCollection = db.Collection("audit_logs")

	requestLifecycle = lifecycle.NewService(database.Client, requestCollection, assetCollection)
}

// InitServices wires the outbound collaborators created in main.
func InitServices(store *storage.Client, m *mailer.Mailer) {
	objectStore = store
	mail = m
}
