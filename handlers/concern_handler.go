// handlers/concern_handler.go
package handlers

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lnfurey-oss/pm-exploration/generator"
	"github.com/lnfurey-oss/pm-exploration/models"
	"github.com/lnfurey-oss/pm-exploration/utils"
	ws "github.com/lnfurey-oss/pm-exploration/websocket"
)

// Helper function to generate a human-readable concern reference
func generateConcernRef() string {
	timestamp := time.Now().Format("20060102")
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(10000))
	return fmt.Sprintf("PM-%s-%04d", timestamp, randomNum.Int64())
}

// SubmitConcern validates the premortem form, runs the action generator
// and persists the concern together with its actions.
func SubmitConcern(w http.ResponseWriter, r *http.Request) {
	var req SubmitConcernRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	validator := &ConcernValidator{}
	if err := validator.ValidateSubmit(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	severity, _ := models.NormalizeLevel(req.Severity)
	impact, _ := models.NormalizeLevel(req.ImpactLevel)

	now := time.Now()
	concern := models.Concern{
		ID:              primitive.NewObjectID(),
		ConcernRef:      generateConcernRef(),
		UserName:        req.UserName,
		UserEmail:       req.UserEmail,
		InitiativeName:  req.InitiativeName,
		ConcernText:     req.ConcernText,
		ObservedSignals: req.ObservedSignals,
		Severity:        severity,
		ImpactLevel:     impact,
		CreatedAt:       now,
	}

	// Generation never fails; the generator degrades to its rule table
	// on any model problem.
	result := actionGenerator.Generate(r.Context(), concern)
	if result.Source == generator.SourceFallback && result.Reason != "" {
		log.Printf("Concern %s: fallback actions used: %s", concern.ConcernRef, result.Reason)
	}

	actions := result.Actions
	for i := range actions {
		actions[i].ID = primitive.NewObjectID()
		actions[i].ConcernID = concern.ID
		actions[i].CreatedAt = now
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := concernCollection.InsertOne(ctx, concern); err != nil {
		log.Printf("Failed to insert concern: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save concern")
		return
	}

	docs := make([]interface{}, len(actions))
	for i, a := range actions {
		docs[i] = a
	}
	if _, err := actionCollection.InsertMany(ctx, docs); err != nil {
		log.Printf("Failed to insert actions for %s: %v", concern.ConcernRef, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to save actions")
		return
	}

	response := map[string]interface{}{
		"concern": concern,
		"actions": actions,
		"source":  result.Source,
	}
	if result.Reason != "" {
		response["reason"] = result.Reason
	}

	ws.SendConcernLogged(concern.ID.Hex(), response)

	utils.RespondWithJSON(w, http.StatusCreated, response)
}

// ListConcerns returns concerns newest first, each with its actions.
func ListConcerns(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := concernCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("Failed to list concerns: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list concerns")
		return
	}
	defer cursor.Close(ctx)

	concerns := []models.Concern{}
	if err := cursor.All(ctx, &concerns); err != nil {
		log.Printf("Failed to decode concerns: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list concerns")
		return
	}

	type concernWithActions struct {
		models.Concern
		Actions []models.MitigationAction `json:"actions"`
	}

	out := make([]concernWithActions, 0, len(concerns))
	for _, c := range concerns {
		actionCursor, err := actionCollection.Find(ctx, bson.M{"concernId": c.ID})
		if err != nil {
			log.Printf("Failed to load actions for %s: %v", c.ConcernRef, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list concerns")
			return
		}
		actions := []models.MitigationAction{}
		if err := actionCursor.All(ctx, &actions); err != nil {
			log.Printf("Failed to decode actions for %s: %v", c.ConcernRef, err)
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list concerns")
			return
		}
		out = append(out, concernWithActions{Concern: c, Actions: actions})
	}

	utils.RespondWithJSON(w, http.StatusOK, out)
}
