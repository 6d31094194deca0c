// handlers/auth_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/lnfurey-oss/pm-exploration/models"
	"github.com/lnfurey-oss/pm-exploration/utils"
)

// Register creates a journal account
func Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Name required")
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "Valid email required")
		return
	}
	if len(req.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	count, err := userCollection.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		log.Printf("Database error during register: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration service unavailable")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Email already registered")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Password hash failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration service unavailable")
		return
	}

	user := models.User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		log.Printf("Failed to insert user: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration service unavailable")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Email)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Registration service unavailable")
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Login handles user authentication
func Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	creds.Email = strings.ToLower(strings.TrimSpace(creds.Email))
	if creds.Email == "" || !strings.Contains(creds.Email, "@") {
		utils.RespondWithError(w, http.StatusBadRequest, "Valid email required")
		return
	}
	if len(creds.Password) < 6 {
		utils.RespondWithError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err := userCollection.FindOne(ctx, bson.M{"email": creds.Email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Constant-time-ish: burn a hash compare even for unknown emails
			_ = utils.CheckPasswordHash("dummy_password", "$2a$10$dummyhashfordummycomparison")
			utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		log.Printf("Database error during login: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication service unavailable")
		return
	}

	if !utils.CheckPasswordHash(creds.Password, user.PasswordHash) {
		utils.RespondWithError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Name, user.Email)
	if err != nil {
		log.Printf("Failed to generate token: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Authentication service unavailable")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
