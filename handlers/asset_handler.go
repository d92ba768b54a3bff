// handlers/asset_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"assetledger/models"
	"assetledger/utils"
)

const maxAssetUploadSize = 32 << 20 // 32 MB

// CreateAsset registers a new asset from a multipart form. Optional
// image and invoice files are uploaded first, keyed by asset code so
// re-registering the same code replaces the previous files. An
// uploaded blob is not removed if the row write fails afterwards.
func CreateAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAssetUploadSize); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	asset := models.Asset{
		ID:            primitive.NewObjectID(),
		Name:          r.FormValue("asset_name"),
		Category:      r.FormValue("asset_category"),
		Code:          r.FormValue("asset_code"),
		SerialNumber:  r.FormValue("asset_sn"),
		Description:   r.FormValue("description"),
		PurchasePrice: r.FormValue("purchase_price"),
		PurchaseDate:  r.FormValue("purchase_date"),
		Condition:     r.FormValue("condition"),
		AssignedTo:    "",
		Status:        models.AssetAvailable,
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}

	if asset.Name == "" || asset.Category == "" || asset.Code == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "asset_name, asset_category and asset_code are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if file, header, err := r.FormFile("asset_image"); err == nil {
		defer file.Close()
		if objectStore == nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Object storage not configured")
			return
		}
		url, err := objectStore.UploadImage(ctx, asset.Code, file, header.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("CreateAsset - image upload failed for %s: %v", asset.Code, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload asset image")
			return
		}
		asset.ImageURL = url
	}

	if file, header, err := r.FormFile("invoice"); err == nil {
		defer file.Close()
		if objectStore == nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Object storage not configured")
			return
		}
		url, err := objectStore.UploadInvoice(ctx, asset.Code, file, header.Header.Get("Content-Type"))
		if err != nil {
			log.Printf("CreateAsset - invoice upload failed for %s: %v", asset.Code, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to upload invoice")
			return
		}
		asset.InvoiceURL = url
	}

	if _, err := assetCollection.InsertOne(ctx, asset); err != nil {
		log.Printf("CreateAsset - insert failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to write asset record")
		return
	}

	writeAudit(r, "asset_create", "asset", asset.ID, bson.M{
		"asset_name": asset.Name,
		"asset_code": asset.Code,
		"category":   asset.Category,
	})

	log.Printf("✅ Registered asset %s (%s)", asset.Name, asset.Code)

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"asset":   asset,
		"message": "Asset registered successfully",
		"success": true,
	})
}

// ListAssets returns all assets except soft-deleted ones.
func ListAssets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$ne": models.AssetDeleted}}

	query := r.URL.Query()
	if category := query.Get("category"); category != "" && category != "all" {
		filter["asset_category"] = category
	}
	if status := query.Get("status"); status != "" && status != "all" {
		filter["status"] = status
	}
	if search := query.Get("search"); search != "" {
		filter["$or"] = []bson.M{
			{"asset_name": bson.M{"$regex": search, "$options": "i"}},
			{"asset_code": bson.M{"$regex": search, "$options": "i"}},
			{"asset_sn": bson.M{"$regex": search, "$options": "i"}},
		}
	}

	cursor, err := assetCollection.Find(ctx, filter)
	if err != nil {
		log.Printf("ListAssets - Find failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode assets")
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	utils.RespondWithJSON(w, http.StatusOK, assets)
}

// GetAsset returns one asset by id.
func GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var asset models.Asset
	err = assetCollection.FindOne(ctx, bson.M{"_id": assetID}).Decode(&asset)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		} else {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch asset")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, asset)
}

// UpdateAsset mutates an asset's editable fields. Setting the status
// back to Available clears the assignee; marking it In Use requires
// one.
func UpdateAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	var req struct {
		Name          *string `json:"asset_name,omitempty"`
		Category      *string `json:"asset_category,omitempty"`
		SerialNumber  *string `json:"asset_sn,omitempty"`
		Description   *string `json:"description,omitempty"`
		PurchasePrice *string `json:"purchase_price,omitempty"`
		PurchaseDate  *string `json:"purchase_date,omitempty"`
		Condition     *string `json:"condition,omitempty"`
		Status        *string `json:"status,omitempty"`
		AssignedTo    *string `json:"assigned_to,omitempty"`
	}
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	update := bson.M{"updated_at": time.Now().UTC()}
	setIf := func(field string, v *string) {
		if v != nil {
			update[field] = *v
		}
	}
	setIf("asset_name", req.Name)
	setIf("asset_category", req.Category)
	setIf("asset_sn", req.SerialNumber)
	setIf("description", req.Description)
	setIf("purchase_price", req.PurchasePrice)
	setIf("purchase_date", req.PurchaseDate)
	setIf("condition", req.Condition)
	setIf("status", req.Status)
	setIf("assigned_to", req.AssignedTo)

	if req.Status != nil {
		switch *req.Status {
		case models.AssetAvailable:
			// Returned assets carry no assignee.
			update["assigned_to"] = ""
		case models.AssetInUse:
			if req.AssignedTo == nil || *req.AssignedTo == "" {
				utils.RespondWithError(w, http.StatusBadRequest, "An In Use asset requires assigned_to")
				return
			}
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := assetCollection.UpdateOne(ctx,
		bson.M{"_id": assetID, "status": bson.M{"$ne": models.AssetDeleted}},
		bson.M{"$set": update},
	)
	if err != nil {
		log.Printf("UpdateAsset - update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update asset")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}

	writeAudit(r, "asset_update", "asset", assetID, update)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Asset updated successfully",
		"success": true,
	})
}

// DeleteAsset tombstones an asset. The row stays so historical
// requests and movements keep a valid reference, but inventory views
// no longer include it.
func DeleteAsset(w http.ResponseWriter, r *http.Request) {
	assetID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid asset ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := assetCollection.UpdateOne(ctx,
		bson.M{"_id": assetID, "status": bson.M{"$ne": models.AssetDeleted}},
		bson.M{"$set": bson.M{
			"status":      models.AssetDeleted,
			"assigned_to": "",
			"updated_at":  time.Now().UTC(),
		}},
	)
	if err != nil {
		log.Printf("DeleteAsset - update failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete asset")
		return
	}
	if result.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Asset not found")
		return
	}

	writeAudit(r, "asset_delete", "asset", assetID, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Asset deleted successfully",
		"success": true,
	})
}
