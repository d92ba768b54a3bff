// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Asset status values. "In Use" requires a non-empty AssignedTo and
// "Available" requires an empty one. "Deleted" is a soft-delete
// tombstone and never shows up in inventory views.
const (
	AssetAvailable = "Available"
	AssetAssigned  = "Assigned"
	AssetInUse     = "In Use"
	AssetStolen    = "Stolen"
	AssetDeleted   = "Deleted"
)

type Asset struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"asset_id"`
	Name          string             `bson:"asset_name" json:"asset_name"`
	Category      string             `bson:"asset_category" json:"asset_category"`
	Code          string             `bson:"asset_code" json:"asset_code"`
	SerialNumber  string             `bson:"asset_sn" json:"asset_sn"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	ImageURL      string             `bson:"asset_image_url,omitempty" json:"asset_image_url,omitempty"`
	InvoiceURL    string             `bson:"invoice_url,omitempty" json:"invoice_url,omitempty"`
	PurchasePrice string             `bson:"purchase_price,omitempty" json:"purchase_price,omitempty"`
	PurchaseDate  string             `bson:"purchase_date,omitempty" json:"purchase_date,omitempty"`
	Condition     string             `bson:"condition,omitempty" json:"condition,omitempty"`
	AssignedTo    string             `bson:"assigned_to" json:"assigned_to"`
	Status        string             `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
