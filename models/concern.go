// models/concern.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Severity and impact share the same three-level scale.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// Concern is a premortem risk statement. Immutable once submitted.
type Concern struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConcernRef      string             `bson:"concernRef" json:"concern_ref"`
	UserName        string             `bson:"userName" json:"user_name"`
	UserEmail       string             `bson:"userEmail" json:"user_email"`
	InitiativeName  string             `bson:"initiativeName" json:"initiative_name"`
	ConcernText     string             `bson:"concernText" json:"concern_text"`
	ObservedSignals string             `bson:"observedSignals,omitempty" json:"observed_signals,omitempty"`
	Severity        string             `bson:"severity" json:"severity"`
	ImpactLevel     string             `bson:"impactLevel" json:"impact_level"`
	CreatedAt       time.Time          `bson:"createdAt" json:"created_at"`
}

// NormalizeLevel maps free-form input onto the three-level scale.
// Returns false when the value is not one of the enumerated levels.
func NormalizeLevel(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case LevelLow:
		return LevelLow, true
	case LevelMedium, "med":
		return LevelMedium, true
	case LevelHigh:
		return LevelHigh, true
	default:
		return "", false
	}
}

// LevelScore ranks a level for severity/impact comparisons: low=0,
// medium=1, high=2. Unknown input ranks as medium so downstream rules
// stay total.
func LevelScore(level string) int {
	switch level {
	case LevelLow:
		return 0
	case LevelHigh:
		return 2
	default:
		return 1
	}
}
