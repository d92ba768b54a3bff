// handlers/request_handler.go
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetledger/lifecycle"
	"assetledger/models"
	"assetledger/utils"
	"assetledger/websocket"
)

// CreateRequest submits a new asset request with status Pending.
func CreateRequest(w http.ResponseWriter, r *http.Request) {
	userIDStr, ok := r.Context().Value("userID").(string)
	if !ok || userIDStr == "" {
		utils.RespondWithError(w, http.StatusUnauthorized, "User ID required")
		return
	}
	adminID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req struct {
		AssetID    string `json:"asset_id"`
		EmployeeID string `json:"employee_id,omitempty"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	assetID, err := primitive.ObjectIDFromHex(req.AssetID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	// The target must exist and not be tombstoned.
	count, err := assetCollection.CountDocuments(ctx, bson.M{
		"_id":    assetID,
		"status": bson.M{"$ne": models.AssetDeleted},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to verify asset")
		return
	}
	if count == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}

	employeeID := req.EmployeeID
	if employeeID == "" {
		// A request without an explicit destination assigns to the requester.
		employeeID = userIDStr
	}

	request := models.AssetRequest{
		ID:         primitive.NewObjectID(),
		AdminID:    adminID,
		AssetID:    assetID,
		EmployeeID: employeeID,
		Status:     models.RequestPending,
		CreatedAt:  time.Now().UTC(),
		UpdatedAt:  time.Now().UTC(),
	}

	if _, err := requestCollection.InsertOne(ctx, request); err != nil {
		log.Printf("CreateRequest - insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create request")
		return
	}

	userName, _ := r.Context().Value("userName").(string)
	writeAudit(r, "request_create", "asset_request", request.ID, bson.M{
		"asset_id":    req.AssetID,
		"employee_id": employeeID,
	})
	websocket.SendRequestCreated(request, userIDStr, userName)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"request": request,
		"message": "Request submitted successfully",
		"success": true,
	})
}

// ListRequests returns all requests joined to the requesting admin
// and the target asset. A request whose admin or asset no longer
// matches keeps a nil field instead of failing the read.
func ListRequests(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	filter := bson.M{}
	if status := r.URL.Query().Get("status"); status != "" && status != "all" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := requestCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("ListRequests - Find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch requests")
		return
	}
	defer cursor.Close(ctx)

	var requests []models.AssetRequest
	if err := cursor.All(ctx, &requests); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode requests")
		return
	}

	adminIDs := make([]primitive.ObjectID, 0, len(requests))
	assetIDs := make([]primitive.ObjectID, 0, len(requests))
	for _, req := range requests {
		adminIDs = append(adminIDs, req.AdminID)
		assetIDs = append(assetIDs, req.AssetID)
	}

	admins := map[primitive.ObjectID]*models.Admin{}
	if len(adminIDs) > 0 {
		cur, err := adminCollection.Find(ctx, bson.M{"adminId": bson.M{"$in": adminIDs}})
		if err == nil {
			var rows []models.Admin
			if err := cur.All(ctx, &rows); err == nil {
				for i := range rows {
					admins[rows[i].AdminID] = &rows[i]
				}
			}
		}
	}

	assets := map[primitive.ObjectID]*models.Asset{}
	if len(assetIDs) > 0 {
		cur, err := assetCollection.Find(ctx, bson.M{"_id": bson.M{"$in": assetIDs}})
		if err == nil {
			var rows []models.Asset
			if err := cur.All(ctx, &rows); err == nil {
				for i := range rows {
					assets[rows[i].ID] = &rows[i]
				}
			}
		}
	}

	enriched := make([]models.EnrichedRequest, 0, len(requests))
	for _, req := range requests {
		enriched = append(enriched, models.EnrichedRequest{
			AssetRequest: req,
			Admin:        admins[req.AdminID],
			Asset:        assets[req.AssetID],
		})
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"requests": enriched,
		"total":    len(enriched),
		"success":  true,
	})
}

// ApproveRequest moves a Pending request to Approved.
func ApproveRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req, from, err := requestLifecycle.Approve(ctx, requestID)
	if err != nil {
		respondLifecycleError(w, "approve", err)
		return
	}

	finishTransition(r, req, "request_approve", from, models.RequestApproved)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"request": req,
		"message": "Request approved successfully",
		"success": true,
	})
}

// RejectRequest moves a Pending or Approved request to Rejected with
// the supplied reason.
func RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request ID format")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	if err := utils.ParseJSON(r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req, from, err := requestLifecycle.Reject(ctx, requestID, body.Reason)
	if err != nil {
		respondLifecycleError(w, "reject", err)
		return
	}

	finishTransition(r, req, "request_reject", from, models.RequestRejected)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"request": req,
		"message": "Request rejected successfully",
		"success": true,
	})
}

// DispatchRequest finalizes an Approved request and hands the asset
// over to the destination employee.
func DispatchRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, from, err := requestLifecycle.Dispatch(ctx, requestID)
	if err != nil {
		respondLifecycleError(w, "dispatch", err)
		return
	}

	finishTransition(r, req, "request_dispatch", from, models.RequestDispatched)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"request": req,
		"message": "Request dispatched successfully",
		"success": true,
	})
}

func finishTransition(r *http.Request, req *models.AssetRequest, action, oldStatus, newStatus string) {
	userIDStr, _ := r.Context().Value("userID").(string)
	userName, _ := r.Context().Value("userName").(string)

	writeAudit(r, action, "asset_request", req.ID, bson.M{
		"oldStatus":   oldStatus,
		"newStatus":   newStatus,
		"asset_id":    req.AssetID.Hex(),
		"employee_id": req.EmployeeID,
	})
	websocket.SendRequestStatusChange(req.ID.Hex(), oldStatus, newStatus, userIDStr, userName)

	log.Printf("✅ Request %s → %s by %s", req.ID.Hex(), newStatus, userIDStr)
}

func respondLifecycleError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, lifecycle.ErrRequestNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "Request not found")
	case errors.Is(err, lifecycle.ErrAssetNotFound):
		utils.RespondWithError(w, http.StatusInternalServerError, "Request references a missing asset")
	case errors.Is(err, lifecycle.ErrReasonRequired):
		utils.RespondWithError(w, http.StatusBadRequest, "Rejection reason is required")
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("%s request failed: %v", action, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to "+action+" request")
	}
}
