package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/lnfurey-oss/pm-exploration/models"
)

func testDecision() *models.Decision {
	return &models.Decision{
		ID:    primitive.NewObjectID(),
		Date:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		Title: "Launch onboarding survey",
	}
}

func TestBuildReflection_NoOutcome(t *testing.T) {
	decision := testDecision()
	decision.Assumptions = []models.Assumption{{Text: "Users will answer"}}

	reflection := BuildReflection(decision)

	assert.Nil(t, reflection.Outcome)
	assert.Equal(t, "No outcome recorded yet. Add an outcome to compare assumptions.", reflection.Summary)
	require.Len(t, reflection.Assumptions, 1)
	assert.False(t, reflection.Assumptions[0].Held)
}

func TestBuildReflection_NoAssumptions(t *testing.T) {
	decision := testDecision()
	decision.Outcome = &models.Outcome{Text: "Shipped on time."}

	reflection := BuildReflection(decision)

	assert.Equal(t, "Outcome recorded, but no assumptions were logged.", reflection.Summary)
	assert.Empty(t, reflection.HeldTrue)
	assert.Empty(t, reflection.Contradicted)
}

func TestBuildReflection_HeldAndContradicted(t *testing.T) {
	decision := testDecision()
	decision.Assumptions = []models.Assumption{
		{Text: "Users are willing to answer a 3-question survey"},
		{Text: "Survey completion will increase activation rate"},
	}
	decision.Outcome = &models.Outcome{
		Text: "Users are willing to answer a 3-question survey, but activation rate stayed flat.",
	}

	reflection := BuildReflection(decision)

	require.Len(t, reflection.Assumptions, 2)
	assert.True(t, reflection.Assumptions[0].Held)
	assert.False(t, reflection.Assumptions[1].Held)
	assert.Equal(t, []string{"Users are willing to answer a 3-question survey"}, reflection.HeldTrue)
	assert.Equal(t, []string{"Survey completion will increase activation rate"}, reflection.Contradicted)
	assert.Equal(t, "1 assumptions held, 1 were contradicted.", reflection.Summary)
}

func TestBuildReflection_MatchIsCaseInsensitive(t *testing.T) {
	decision := testDecision()
	decision.Assumptions = []models.Assumption{{Text: "Simpler Tiers Increase Trial Conversion"}}
	decision.Outcome = &models.Outcome{Text: "simpler tiers increase trial conversion across all segments"}

	reflection := BuildReflection(decision)

	require.Len(t, reflection.Assumptions, 1)
	assert.True(t, reflection.Assumptions[0].Held)
}
