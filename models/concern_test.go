package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLevel(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"low", LevelLow, true},
		{"LOW", LevelLow, true},
		{" Medium ", LevelMedium, true},
		{"med", LevelMedium, true},
		{"high", LevelHigh, true},
		{"", "", false},
		{"critical", "", false},
	}
	for _, tc := range cases {
		got, ok := NormalizeLevel(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestLevelScoreOrdering(t *testing.T) {
	assert.Less(t, LevelScore(LevelLow), LevelScore(LevelMedium))
	assert.Less(t, LevelScore(LevelMedium), LevelScore(LevelHigh))
	// Unknown values rank as medium so rule lookups stay total
	assert.Equal(t, LevelScore(LevelMedium), LevelScore("unknown"))
}

func TestMitigationActionValidate(t *testing.T) {
	valid := MitigationAction{
		OwnerRole:        "platform lead",
		DueInDays:        7,
		ImpactScore:      3,
		EffortScore:      2,
		ConfidenceScore:  4,
		LeadingIndicator: "queue depth doubles",
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(a *MitigationAction)
	}{
		{"missing owner", func(a *MitigationAction) { a.OwnerRole = "" }},
		{"due too small", func(a *MitigationAction) { a.DueInDays = 0 }},
		{"due too large", func(a *MitigationAction) { a.DueInDays = 15 }},
		{"impact too large", func(a *MitigationAction) { a.ImpactScore = 6 }},
		{"effort too small", func(a *MitigationAction) { a.EffortScore = 0 }},
		{"confidence too large", func(a *MitigationAction) { a.ConfidenceScore = 99 }},
		{"missing indicator", func(a *MitigationAction) { a.LeadingIndicator = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.mutate(&a)
			assert.Error(t, a.Validate())
		})
	}
}
