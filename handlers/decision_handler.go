// handlers/decision_handler.go
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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lnfurey-oss/pm-exploration/models"
	"github.com/lnfurey-oss/pm-exploration/utils"
	ws "github.com/lnfurey-oss/pm-exploration/websocket"
)

// findDecision loads a decision by path id, writing the error response
// itself when the id is bad or the decision is missing.
func findDecision(w http.ResponseWriter, r *http.Request) (*models.Decision, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid decision id")
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var decision models.Decision
	if err := decisionCollection.FindOne(ctx, bson.M{"_id": id}).Decode(&decision); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.RespondWithError(w, http.StatusNotFound, "Decision not found")
			return nil, false
		}
		log.Printf("Failed to load decision %s: %v", idStr, err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load decision")
		return nil, false
	}
	return &decision, true
}

func CreateDecision(w http.ResponseWriter, r *http.Request) {
	var req CreateDecisionRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	validator := &DecisionValidator{}
	if err := validator.ValidateCreate(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
		return
	}

	now := time.Now()
	decision := models.Decision{
		ID:        primitive.NewObjectID(),
		Date:      date,
		Title:     req.Title,
		Context:   req.Context,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, c := range req.Constraints {
		if c.Text == "" {
			continue
		}
		decision.Constraints = append(decision.Constraints, models.Constraint{
			ID:   primitive.NewObjectID(),
			Text: c.Text,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := decisionCollection.InsertOne(ctx, decision); err != nil {
		log.Printf("Failed to insert decision: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create decision")
		return
	}

	ws.BroadcastUpdate(ws.JournalUpdate{
		Type:      "DECISION_CREATED",
		EntityID:  decision.ID.Hex(),
		Data:      decision,
		Timestamp: now,
	})

	utils.RespondWithJSON(w, http.StatusCreated, decision)
}

func ListDecisions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := decisionCollection.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Printf("Failed to list decisions: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list decisions")
		return
	}
	defer cursor.Close(ctx)

	decisions := []models.Decision{}
	if err := cursor.All(ctx, &decisions); err != nil {
		log.Printf("Failed to decode decisions: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to list decisions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, decisions)
}

func GetDecision(w http.ResponseWriter, r *http.Request) {
	decision, ok := findDecision(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, decision)
}

// AddAssumptions appends a batch of assumptions to a decision.
func AddAssumptions(w http.ResponseWriter, r *http.Request) {
	decision, ok := findDecision(w, r)
	if !ok {
		return
	}

	var payload []AssumptionPayload
	if err := utils.ParseJSON(r, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(payload) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "At least one assumption required")
		return
	}

	now := time.Now()
	newItems := make([]models.Assumption, 0, len(payload))
	for _, item := range payload {
		if item.Text == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Assumption text is required")
			return
		}
		newItems = append(newItems, models.Assumption{
			ID:        primitive.NewObjectID(),
			Text:      item.Text,
			CreatedAt: now,
		})
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{
		"$push": bson.M{"assumptions": bson.M{"$each": newItems}},
		"$set":  bson.M{"updatedAt": now},
	}
	if _, err := decisionCollection.UpdateByID(ctx, decision.ID, update); err != nil {
		log.Printf("Failed to add assumptions to %s: %v", decision.ID.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add assumptions")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, newItems)
}

// SetOutcome records the decision's outcome, replacing any previous one.
func SetOutcome(w http.ResponseWriter, r *http.Request) {
	decision, ok := findDecision(w, r)
	if !ok {
		return
	}

	var payload OutcomePayload
	if err := utils.ParseJSON(r, &payload); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if payload.Text == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Outcome text is required")
		return
	}

	now := time.Now()
	outcome := models.Outcome{
		ID:         primitive.NewObjectID(),
		Text:       payload.Text,
		RecordedAt: now,
	}
	if decision.Outcome != nil {
		// Keep the original id so clients tracking it see an update,
		// not a new record.
		outcome.ID = decision.Outcome.ID
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"outcome": outcome, "updatedAt": now}}
	if _, err := decisionCollection.UpdateByID(ctx, decision.ID, update); err != nil {
		log.Printf("Failed to set outcome on %s: %v", decision.ID.Hex(), err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record outcome")
		return
	}

	ws.SendOutcomeRecorded(decision.ID.Hex(), outcome)

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"id":   outcome.ID,
		"text": outcome.Text,
	})
}

// GetReflection compares recorded assumptions against the outcome text.
func GetReflection(w http.ResponseWriter, r *http.Request) {
	decision, ok := findDecision(w, r)
	if !ok {
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, BuildReflection(decision))
}
