// handlers/audit_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetledger/models"
	"assetledger/utils"
)

// writeAudit records who did what. Audit failures are logged, never
// surfaced to the caller.
func writeAudit(r *http.Request, action, entityType string, entityID primitive.ObjectID, details bson.M) {
	if auditLogCollection == nil {
		return
	}

	userIDStr, _ := r.Context().Value("userID").(string)
	userEmail, _ := r.Context().Value("userName").(string)
	userRole, _ := r.Context().Value("userRole").(string)
	userID, _ := primitive.ObjectIDFromHex(userIDStr)

	audit := models.AuditLog{
		ID:         primitive.NewObjectID(),
		UserID:     userID,
		UserEmail:  userEmail,
		UserRole:   userRole,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		CreatedAt:  time.Now().UTC(),
		IPAddress:  r.RemoteAddr,
		UserAgent:  r.UserAgent(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := auditLogCollection.InsertOne(ctx, audit); err != nil {
		log.Printf("Failed to create audit log: %v", err)
	}
}

// ListAuditLogs returns audit entries, newest first.
func ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	filter := bson.M{}
	query := r.URL.Query()

	if action := query.Get("action"); action != "" && action != "all" {
		filter["action"] = action
	}
	if entityType := query.Get("entityType"); entityType != "" && entityType != "all" {
		filter["entityType"] = entityType
	}

	limit := 50
	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := auditLogCollection.Find(ctx, filter, opts)
	if err != nil {
		log.Printf("ListAuditLogs - Find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch audit logs")
		return
	}
	defer cursor.Close(ctx)

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode audit logs")
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"logs":    logs,
		"success": true,
	})
}
