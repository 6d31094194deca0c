// handlers/requests.go
package handlers

import (
	"fmt"
	"strings"

	"github.com/lnfurey-oss/pm-exploration/models"
)

type ConstraintPayload struct {
	Text string `json:"text"`
}

type CreateDecisionRequest struct {
	Date        string              `json:"date"` // YYYY-MM-DD
	Title       string              `json:"title"`
	Context     string              `json:"context"`
	Constraints []ConstraintPayload `json:"constraints"`
}

type AssumptionPayload struct {
	Text string `json:"text"`
}

type OutcomePayload struct {
	Text string `json:"text"`
}

type SubmitConcernRequest struct {
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	InitiativeName  string `json:"initiative_name"`
	ConcernText     string `json:"concern_text"`
	ObservedSignals string `json:"observed_signals"`
	Severity        string `json:"severity"`
	ImpactLevel     string `json:"impact_level"`
}

type DecisionValidator struct{}

func (v *DecisionValidator) ValidateCreate(req CreateDecisionRequest) error {
	if req.Title == "" || len(req.Title) > 200 {
		return fmt.Errorf("title is required and must be less than 200 characters")
	}
	if req.Context == "" {
		return fmt.Errorf("context is required")
	}
	if req.Date == "" {
		return fmt.Errorf("date is required")
	}
	return nil
}

type ConcernValidator struct{}

func (v *ConcernValidator) ValidateSubmit(req SubmitConcernRequest) error {
	if strings.TrimSpace(req.UserName) == "" {
		return fmt.Errorf("user_name is required")
	}
	if !strings.Contains(req.UserEmail, "@") {
		return fmt.Errorf("valid user_email is required")
	}
	if strings.TrimSpace(req.InitiativeName) == "" {
		return fmt.Errorf("initiative_name is required")
	}
	if strings.TrimSpace(req.ConcernText) == "" {
		return fmt.Errorf("concern_text is required")
	}
	if _, ok := models.NormalizeLevel(req.Severity); !ok {
		return fmt.Errorf("severity must be one of low, medium, high")
	}
	if _, ok := models.NormalizeLevel(req.ImpactLevel); !ok {
		return fmt.Errorf("impact_level must be one of low, medium, high")
	}
	return nil
}
