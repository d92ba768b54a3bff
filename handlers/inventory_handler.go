// handlers/inventory_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"assetledger/inventory"
	"assetledger/models"
	"assetledger/utils"
)

func fetchAssets(ctx context.Context) ([]models.Asset, error) {
	cursor, err := assetCollection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err := cursor.All(ctx, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

// GetGroupedInventory returns the inventory rolled up by category and
// asset name, with quantity / dispatched / available counts. The view
// is recomputed on every read and never persisted.
func GetGroupedInventory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	assets, err := fetchAssets(ctx)
	if err != nil {
		log.Printf("GetGroupedInventory - fetch failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}

	grouped := inventory.GroupInventory(assets)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"categories": grouped,
		"success":    true,
	})
}

// GetOverview returns the dashboard counters: totals per status and
// the number of pending requests.
func GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 12*time.Second)
	defer cancel()

	assets, err := fetchAssets(ctx)
	if err != nil {
		log.Printf("GetOverview - fetch failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}

	counts := inventory.CountByStatus(assets)
	active := inventory.FilterActive(assets)

	pendingRequests, err := requestCollection.CountDocuments(ctx, bson.M{"status": models.RequestPending})
	if err != nil {
		log.Printf("GetOverview - pending count failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to count pending requests")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"totalAssets":     len(active),
		"available":       counts[models.AssetAvailable],
		"assigned":        counts[models.AssetAssigned],
		"inUse":           counts[models.AssetInUse],
		"stolen":          counts[models.AssetStolen],
		"pendingRequests": pendingRequests,
		"byCategory":      inventory.GroupInventory(assets),
		"success":         true,
	})
}
