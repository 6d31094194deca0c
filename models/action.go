// models/action.go
package models

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action bounds. DueInDays is scoped to a two-week horizon; the three
// scores share a 1-5 scale.
const (
	DueDaysMin = 1
	DueDaysMax = 14
	ScoreMin   = 1
	ScoreMax   = 5
)

// MitigationAction is one suggested task for a Concern. A Concern always
// yields 1 or 2 of these.
type MitigationAction struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ConcernID        primitive.ObjectID `bson:"concernId,omitempty" json:"concern_id,omitempty"`
	OwnerRole        string             `bson:"ownerRole" json:"owner_role"`
	DueInDays        int                `bson:"dueInDays" json:"due_in_days"`
	ImpactScore      int                `bson:"impactScore" json:"impact_score"`
	EffortScore      int                `bson:"effortScore" json:"effort_score"`
	ConfidenceScore  int                `bson:"confidenceScore" json:"confidence_score"`
	LeadingIndicator string             `bson:"leadingIndicator" json:"leading_indicator"`
	CreatedAt        time.Time          `bson:"createdAt" json:"created_at,omitempty"`
}

// Validate checks the action against its bounds.
func (a MitigationAction) Validate() error {
	if a.OwnerRole == "" {
		return fmt.Errorf("owner_role is required")
	}
	if a.DueInDays < DueDaysMin || a.DueInDays > DueDaysMax {
		return fmt.Errorf("due_in_days %d outside [%d,%d]", a.DueInDays, DueDaysMin, DueDaysMax)
	}
	for name, score := range map[string]int{
		"impact_score":     a.ImpactScore,
		"effort_score":     a.EffortScore,
		"confidence_score": a.ConfidenceScore,
	} {
		if score < ScoreMin || score > ScoreMax {
			return fmt.Errorf("%s %d outside [%d,%d]", name, score, ScoreMin, ScoreMax)
		}
	}
	if a.LeadingIndicator == "" {
		return fmt.Errorf("leading_indicator is required")
	}
	return nil
}
