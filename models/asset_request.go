// models/asset_request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Request status values. Rejected and Dispatched are terminal.
const (
	RequestPending    = "Pending"
	RequestApproved   = "Approved"
	RequestRejected   = "Rejected"
	RequestDispatched = "Dispatched"
)

// AssetRequest is an employee's ask to be assigned an asset.
// RejectionReason is set if and only if Status is Rejected.
type AssetRequest struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"request_id"`
	AdminID         primitive.ObjectID `bson:"adminId" json:"adminId"`
	AssetID         primitive.ObjectID `bson:"asset_id" json:"asset_id"`
	EmployeeID      string             `bson:"employee_id,omitempty" json:"employee_id,omitempty"`
	Status          string             `bson:"status" json:"status"`
	RejectionReason string             `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// EnrichedRequest is the denormalized read model for the requests view.
// Admin or Asset stay nil when the join finds no match; a dangling
// reference does not fail the whole read.
type EnrichedRequest struct {
	AssetRequest `bson:",inline"`
	Admin        *Admin `json:"admin,omitempty"`
	Asset        *Asset `json:"asset,omitempty"`
}
