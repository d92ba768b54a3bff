// handlers/user_handler.go
package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"assetledger/models"
	"assetledger/utils"
)

type createUserRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"omitempty,min=7"`
	Password  string `json:"password" validate:"omitempty,min=8"`
	Role      string `json:"role" validate:"required,oneof=super-admin admin employee"`
}

// provisionPassword keeps a caller-supplied password or generates one.
// A generated password reaches the user only through the credentials
// email.
func provisionPassword(supplied string) string {
	if supplied == "" {
		return utils.GenerateRandomPassword(12)
	}
	return supplied
}

// CreateUser provisions an account: identity first, then a mirrored
// admin profile for privileged roles, then the credentials email.
// A failed profile write or email does not undo the identity.
func CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload: "+err.Error())
		return
	}

	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}
	req.Email = strings.ToLower(req.Email)

	req.Password = provisionPassword(req.Password)

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	// Identity creation. A duplicate email is the gateway's rejection,
	// surfaced with its message.
	count, err := identityCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		log.Printf("CreateUser - duplicate check failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "A user with this email address has already been registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Password processing failed")
		return
	}

	identity := models.Identity{
		ID:           primitive.NewObjectID(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := identityCollection.InsertOne(ctx, identity); err != nil {
		log.Printf("CreateUser - identity insert failed: %v", err)
		utils.RespondWithError(w, http.StatusBadRequest, "Failed to create identity: "+err.Error())
		return
	}

	// Mirror a profile row for privileged roles, keyed by the new
	// identity id. The identity stays if this fails.
	if req.Role == models.RoleSuperAdmin || req.Role == models.RoleAdmin {
		profile := models.Admin{
			AdminID:        identity.ID,
			FirstName:      req.FirstName,
			LastName:       req.LastName,
			Email:          req.Email,
			Phone:          req.Phone,
			Role:           req.Role,
			ProfilePicture: "",
			LastLogin:      nil,
			CreatedAt:      time.Now().UTC(),
		}

		opts := options.Replace().SetUpsert(true)
		if _, err := adminCollection.ReplaceOne(ctx, bson.M{"adminId": identity.ID}, profile, opts); err != nil {
			log.Printf("CreateUser - profile upsert failed for %s: %v", req.Email, err)
			utils.RespondWithError(w, http.StatusBadRequest, "Failed to write admin profile: "+err.Error())
			return
		}
	}

	// The response waits for the email outcome; a failed send is
	// reported but the account stands.
	emailSent := false
	if mail != nil {
		if err := mail.SendCredentials(req.Email, req.FirstName, req.Email, req.Password); err != nil {
			log.Printf("CreateUser - credentials email to %s failed: %v", req.Email, err)
		} else {
			emailSent = true
		}
	} else {
		log.Printf("CreateUser - mailer not configured, skipping credentials email to %s", req.Email)
	}

	writeAudit(r, "user_create", "user", identity.ID, bson.M{
		"email": req.Email,
		"role":  req.Role,
	})

	log.Printf("✅ Created user %s (%s), email sent: %v", req.Email, req.Role, emailSent)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message":   "User created successfully",
		"userId":    identity.ID.Hex(),
		"emailSent": emailSent,
	})
}

// DeleteUser removes an identity and its mirrored profile.
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userIDStr := vars["userId"]
	if userIDStr == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "user id is required")
		return
	}

	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := identityCollection.DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		log.Printf("DeleteUser - identity delete failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "An unknown error occurred while deleting user")
		return
	}
	if result.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	// Cascade to the profile row; best effort.
	if _, err := adminCollection.DeleteOne(ctx, bson.M{"adminId": userID}); err != nil {
		log.Printf("DeleteUser - profile delete failed for %s: %v", userIDStr, err)
	}

	writeAudit(r, "user_delete", "user", userID, nil)

	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}

// ListUsers returns all admin profiles.
func ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cursor, err := adminCollection.Find(ctx, bson.M{})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch users")
		return
	}
	defer cursor.Close(ctx)

	var admins []models.Admin
	if err := cursor.All(ctx, &admins); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Decode error")
		return
	}
	if admins == nil {
		admins = []models.Admin{}
	}

	utils.RespondWithJSON(w, http.StatusOK, admins)
}
