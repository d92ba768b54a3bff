// handlers/auth_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"assetledger/models"
	"assetledger/utils"
)

// Login authenticates an identity by email and password, refreshes
// the profile's last_login, and issues a JWT.
func Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.Email == "" || req.Password == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var identity models.Identity
	err := identityCollection.FindOne(ctx, bson.M{"email": strings.ToLower(req.Email)}).Decode(&identity)
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if !utils.CheckPasswordHash(req.Password, identity.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	// Privileged identities carry a mirrored profile; plain employees
	// only exist as identities.
	name := identity.Email
	role := models.RoleEmployee

	var profile models.Admin
	err = adminCollection.FindOne(ctx, bson.M{"adminId": identity.ID}).Decode(&profile)
	if err == nil {
		name = profile.FirstName + " " + profile.LastName
		role = profile.Role

		now := time.Now().UTC()
		if _, err := adminCollection.UpdateOne(ctx,
			bson.M{"adminId": identity.ID},
			bson.M{"$set": bson.M{"last_login": now}},
		); err != nil {
			log.Printf("Login - failed to update last_login for %s: %v", identity.Email, err)
		}
	} else if err != mongo.ErrNoDocuments {
		log.Printf("Login - profile lookup failed for %s: %v", identity.Email, err)
	}

	token, err := utils.GenerateJWT(identity.ID.Hex(), name, role)
	if err != nil {
		log.Printf("Login - token generation failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user": map[string]string{
			"id":    identity.ID.Hex(),
			"email": identity.Email,
			"name":  name,
			"role":  role,
		},
		"success": true,
	})
}

// ValidateToken confirms a bearer token is still valid.
func ValidateToken(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		utils.RespondWithError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
		return
	}

	claims, err := utils.ValidateJWT(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"valid":  true,
		"userID": claims.UserID,
		"name":   claims.Name,
		"role":   claims.Role,
	})
}
