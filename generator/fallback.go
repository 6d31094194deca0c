// generator/fallback.go
package generator

import (
	"fmt"
	"strings"

	"github.com/lnfurey-oss/pm-exploration/models"
)

// fallbackRule is one cell of the deterministic table, keyed by the
// combined severity+impact level (0..4).
type fallbackRule struct {
	immediateDue  int
	monitoringDue int // 0 means no second action
	impact        int
	effort        int
	confidence    int
}

// Combined level 0 (low/low) through 4 (high/high). Due days shrink and
// scores grow as the combined level rises; every cell yields 1 or 2
// actions so the fallback is total over the severity x impact domain.
var fallbackRules = [5]fallbackRule{
	{immediateDue: 10, impact: 1, effort: 1, confidence: 3},
	{immediateDue: 7, impact: 2, effort: 1, confidence: 3},
	{immediateDue: 5, impact: 3, effort: 2, confidence: 3},
	{immediateDue: 3, monitoringDue: 10, impact: 4, effort: 3, confidence: 4},
	{immediateDue: 2, monitoringDue: 7, impact: 5, effort: 3, confidence: 4},
}

// FallbackActions derives 1-2 actions purely from the concern's fields.
// Same input always yields the same output: no clock, no randomness, no
// external state.
func FallbackActions(c models.Concern) []models.MitigationAction {
	level := models.LevelScore(c.Severity) + models.LevelScore(c.ImpactLevel)
	rule := fallbackRules[level]

	ownerRole := "initiative lead"
	if name := strings.TrimSpace(c.InitiativeName); name != "" {
		ownerRole = fmt.Sprintf("%s initiative lead", name)
	}

	actions := []models.MitigationAction{
		{
			OwnerRole:        ownerRole,
			DueInDays:        rule.immediateDue,
			ImpactScore:      rule.impact,
			EffortScore:      rule.effort,
			ConfidenceScore:  rule.confidence,
			LeadingIndicator: leadingIndicator(c),
		},
	}

	if rule.monitoringDue > 0 {
		actions = append(actions, models.MitigationAction{
			OwnerRole:        "delivery lead",
			DueInDays:        rule.monitoringDue,
			ImpactScore:      rule.impact - 1,
			EffortScore:      rule.effort - 1,
			ConfidenceScore:  rule.confidence,
			LeadingIndicator: monitoringIndicator(c),
		})
	}

	return actions
}

// leadingIndicator for the immediate action: prefer what the reporter
// already observed, else watch the concern itself.
func leadingIndicator(c models.Concern) string {
	if s := strings.TrimSpace(c.ObservedSignals); s != "" {
		return fmt.Sprintf("Change in observed signal: %s", s)
	}
	return fmt.Sprintf("First user-visible sign of: %s", summarize(c.ConcernText))
}

// monitoringIndicator for the follow-up action on high-level cells.
func monitoringIndicator(c models.Concern) string {
	if s := strings.TrimSpace(c.ObservedSignals); s != "" {
		return fmt.Sprintf("Recurrence or worsening of: %s", s)
	}
	return fmt.Sprintf("Weekly check that %s has not progressed", summarize(c.ConcernText))
}

// summarize trims a free-text concern to a short phrase for indicators.
func summarize(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "the reported concern"
	}
	const max = 80
	if len(text) <= max {
		return text
	}
	cut := text[:max]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
