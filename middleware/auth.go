package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"assetledger/database"
	"assetledger/models"
	"assetledger/utils"
)

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Browsers cannot set an Authorization header on WebSocket
		// connections, so the /api/ws upgrade authenticates with a
		// token query parameter instead. Every other route requires
		// the Bearer header, Upgrade or not.
		if r.URL.Path == "/api/ws" && strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
			claims, err := utils.ValidateJWT(r.URL.Query().Get("token"))
			if err != nil {
				utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			ctx := context.WithValue(r.Context(), "userID", claims.UserID)
			ctx = context.WithValue(ctx, "userName", claims.Name)
			ctx = context.WithValue(ctx, "userRole", claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateJWT(tokenString)
		if err != nil {
			log.Printf("AuthMiddleware: JWT validation failed: %v", err)
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		userID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, fmt.Sprintf("Invalid user ID format: %s", claims.UserID))
			return
		}

		var identity models.Identity
		err = database.Client.Database("assetledger").Collection("identities").
			FindOne(r.Context(), bson.M{"_id": userID}).Decode(&identity)
		if err != nil {
			log.Printf("AuthMiddleware: identity not found for ID %s: %v", userID.Hex(), err)
			utils.RespondWithError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), "userID", claims.UserID)
		ctx = context.WithValue(ctx, "userName", claims.Name)
		ctx = context.WithValue(ctx, "userRole", claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
