// models/decision.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Decision is a journal entry describing a product decision and the
// context it was made in. Constraints are captured at creation time;
// assumptions accumulate afterwards, and at most one outcome is recorded
// (later submissions replace it).
type Decision struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Date        time.Time          `bson:"date" json:"date"`
	Title       string             `bson:"title" json:"title"`
	Context     string             `bson:"context" json:"context"`
	Constraints []Constraint       `bson:"constraints,omitempty" json:"constraints"`
	Assumptions []Assumption       `bson:"assumptions,omitempty" json:"assumptions"`
	Outcome     *Outcome           `bson:"outcome,omitempty" json:"outcome,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updated_at"`
}

type Constraint struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text string             `bson:"text" json:"text"`
}

type Assumption struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"created_at"`
}

type Outcome struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Text       string             `bson:"text" json:"text"`
	RecordedAt time.Time          `bson:"recordedAt" json:"recorded_at"`
}
