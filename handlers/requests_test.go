package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSubmit() SubmitConcernRequest {
	return SubmitConcernRequest{
		UserName:        "Dana",
		UserEmail:       "dana@example.com",
		InitiativeName:  "Checkout revamp",
		ConcernText:     "Latency may regress under load",
		ObservedSignals: "p95 trending up",
		Severity:        "high",
		ImpactLevel:     "medium",
	}
}

func TestConcernValidator(t *testing.T) {
	v := &ConcernValidator{}
	assert.NoError(t, v.ValidateSubmit(validSubmit()))

	cases := []struct {
		name   string
		mutate func(r *SubmitConcernRequest)
	}{
		{"missing name", func(r *SubmitConcernRequest) { r.UserName = "  " }},
		{"bad email", func(r *SubmitConcernRequest) { r.UserEmail = "not-an-email" }},
		{"missing initiative", func(r *SubmitConcernRequest) { r.InitiativeName = "" }},
		{"missing concern text", func(r *SubmitConcernRequest) { r.ConcernText = "" }},
		{"bad severity", func(r *SubmitConcernRequest) { r.Severity = "urgent" }},
		{"bad impact", func(r *SubmitConcernRequest) { r.ImpactLevel = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validSubmit()
			tc.mutate(&req)
			assert.Error(t, v.ValidateSubmit(req))
		})
	}

	// Observed signals are optional
	req := validSubmit()
	req.ObservedSignals = ""
	assert.NoError(t, v.ValidateSubmit(req))
}

func TestDecisionValidator(t *testing.T) {
	v := &DecisionValidator{}

	valid := CreateDecisionRequest{
		Date:    "2026-03-01",
		Title:   "Reduce pricing tiers",
		Context: "Too many tiers are confusing prospects.",
	}
	assert.NoError(t, v.ValidateCreate(valid))

	missingTitle := valid
	missingTitle.Title = ""
	assert.Error(t, v.ValidateCreate(missingTitle))

	missingContext := valid
	missingContext.Context = ""
	assert.Error(t, v.ValidateCreate(missingContext))

	missingDate := valid
	missingDate.Date = ""
	assert.Error(t, v.ValidateCreate(missingDate))
}
