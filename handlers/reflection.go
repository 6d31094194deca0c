// handlers/reflection.go
package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/lnfurey-oss/pm-exploration/models"
)

type AssumptionResult struct {
	Assumption string `json:"assumption"`
	Held       bool   `json:"held"`
}

type Reflection struct {
	DecisionID   string             `json:"decision_id"`
	Title        string             `json:"title"`
	Date         time.Time          `json:"date"`
	Outcome      *string            `json:"outcome"`
	Assumptions  []AssumptionResult `json:"assumptions"`
	HeldTrue     []string           `json:"held_true"`
	Contradicted []string           `json:"contradicted"`
	Summary      string             `json:"summary"`
}

// BuildReflection checks each assumption against the outcome text. An
// assumption "held" when its normalized text appears inside the outcome.
// Pure function of the decision, so it is directly testable.
func BuildReflection(decision *models.Decision) Reflection {
	outcomeText := ""
	if decision.Outcome != nil {
		outcomeText = decision.Outcome.Text
	}
	outcomeNormalized := strings.ToLower(outcomeText)

	results := []AssumptionResult{}
	held := []string{}
	contradicted := []string{}

	for _, assumption := range decision.Assumptions {
		normalized := strings.ToLower(strings.TrimSpace(assumption.Text))
		isHeld := normalized != "" && strings.Contains(outcomeNormalized, normalized)
		results = append(results, AssumptionResult{
			Assumption: assumption.Text,
			Held:       isHeld,
		})
		if isHeld {
			held = append(held, assumption.Text)
		} else {
			contradicted = append(contradicted, assumption.Text)
		}
	}

	var summary string
	switch {
	case decision.Outcome == nil:
		summary = "No outcome recorded yet. Add an outcome to compare assumptions."
	case len(decision.Assumptions) == 0:
		summary = "Outcome recorded, but no assumptions were logged."
	default:
		summary = fmt.Sprintf("%d assumptions held, %d were contradicted.", len(held), len(contradicted))
	}

	reflection := Reflection{
		DecisionID:   decision.ID.Hex(),
		Title:        decision.Title,
		Date:         decision.Date,
		Assumptions:  results,
		HeldTrue:     held,
		Contradicted: contradicted,
		Summary:      summary,
	}
	if decision.Outcome != nil {
		reflection.Outcome = &decision.Outcome.Text
	}
	return reflection
}
