// models/audit_log.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	UserEmail  string             `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	UserRole   string             `bson:"userRole,omitempty" json:"userRole,omitempty"`
	Action     string             `bson:"action" json:"action"` // e.g. "asset_create", "request_approve", "user_delete"
	EntityType string             `bson:"entityType" json:"entityType"`
	EntityID   primitive.ObjectID `bson:"entityId,omitempty" json:"entityId,omitempty"`
	Details    bson.M             `bson:"details,omitempty" json:"details,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	IPAddress  string             `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`
	UserAgent  string             `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
}
