package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AssetMovement records a transfer of an asset to an employee.
// Movements are append-only.
type AssetMovement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID string             `bson:"employeeId" json:"employeeId"`
	AssetID    string             `bson:"assetid" json:"assetid"`
	Reason     string             `bson:"reason" json:"reason"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
