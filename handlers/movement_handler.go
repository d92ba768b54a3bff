// handlers/movement_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetledger/models"
	"assetledger/utils"
)

type createMovementRequest struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	AssetID    string `json:"assetid" validate:"required"`
	Reason     string `json:"reason" validate:"required"`
}

// CreateMovement appends a transfer record. Movements are never
// updated or deleted.
func CreateMovement(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	movement := models.AssetMovement{
		ID:         primitive.NewObjectID(),
		EmployeeID: req.EmployeeID,
		AssetID:    req.AssetID,
		Reason:     req.Reason,
		CreatedAt:  time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := movementCollection.InsertOne(ctx, movement); err != nil {
		log.Printf("CreateMovement - insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record movement")
		return
	}

	writeAudit(r, "movement_create", "asset_movement", movement.ID, bson.M{
		"employeeId": req.EmployeeID,
		"assetid":    req.AssetID,
	})

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"movement": movement,
		"message":  "Movement recorded successfully",
		"success":  true,
	})
}

// ListMovements returns transfer records, newest first.
func ListMovements(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	filter := bson.M{}
	if employeeID := r.URL.Query().Get("employeeId"); employeeID != "" {
		filter["employeeId"] = employeeID
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := movementCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("ListMovements - Find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch movements")
		return
	}
	defer cursor.Close(ctx)

	var movements []models.AssetMovement
	if err := cursor.All(ctx, &movements); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode movements")
		return
	}
	if movements == nil {
		movements = []models.AssetMovement{}
	}

	utils.RespondWithJSON(w, http.StatusOK, movements)
}
