package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lnfurey-oss/pm-exploration/models"
)

// chatServer returns an httptest server that answers the completions
// endpoint with the given message content.
func chatServer(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func validModelContent(t *testing.T) string {
	t.Helper()
	actions := []models.MitigationAction{
		{
			OwnerRole:        "payments engineer",
			DueInDays:        2,
			ImpactScore:      5,
			EffortScore:      3,
			ConfidenceScore:  4,
			LeadingIndicator: "checkout p95 crosses 800ms",
		},
		{
			OwnerRole:        "SRE on-call",
			DueInDays:        9,
			ImpactScore:      3,
			EffortScore:      2,
			ConfidenceScore:  4,
			LeadingIndicator: "error budget burn above 2x",
		},
	}
	data, err := json.Marshal(actions)
	require.NoError(t, err)
	return string(data)
}

func TestGenerate_NoCredentialUsesFallback(t *testing.T) {
	g := New(Config{})
	result := g.Generate(context.Background(), sampleConcern(models.LevelHigh, models.LevelHigh))

	assert.Equal(t, SourceFallback, result.Source)
	assert.NotEmpty(t, result.Reason)
	assert.Equal(t, FallbackActions(sampleConcern(models.LevelHigh, models.LevelHigh)), result.Actions)
}

func TestGenerate_ModelSuccess(t *testing.T) {
	srv := chatServer(t, http.StatusOK, validModelContent(t))
	defer srv.Close()

	g := New(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "gpt-4o-mini"})
	result := g.Generate(context.Background(), sampleConcern(models.LevelHigh, models.LevelHigh))

	require.Equal(t, SourceModel, result.Source)
	assert.Empty(t, result.Reason)
	require.Len(t, result.Actions, 2)
	assert.Equal(t, "payments engineer", result.Actions[0].OwnerRole)
}

func TestGenerate_ModelSuccessWithMarkdownFence(t *testing.T) {
	content := "```json\n" + validModelContent(t) + "\n```"
	srv := chatServer(t, http.StatusOK, content)
	defer srv.Close()

	g := New(Config{APIKey: "test-key", BaseURL: srv.URL})
	result := g.Generate(context.Background(), sampleConcern(models.LevelMedium, models.LevelHigh))

	assert.Equal(t, SourceModel, result.Source)
	require.Len(t, result.Actions, 2)
}

// Every primary-path failure must yield exactly the same action set as
// running with no credential at all.
func TestGenerate_FallbackTriggers(t *testing.T) {
	concern := sampleConcern(models.LevelHigh, models.LevelMedium)
	baseline := New(Config{}).Generate(context.Background(), concern).Actions

	invalid := func(content string) func(t *testing.T) *httptest.Server {
		return func(t *testing.T) *httptest.Server {
			return chatServer(t, http.StatusOK, content)
		}
	}

	cases := []struct {
		name   string
		server func(t *testing.T) *httptest.Server
	}{
		{
			name: "server error status",
			server: func(t *testing.T) *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "upstream exploded", http.StatusInternalServerError)
				}))
			},
		},
		{
			name: "timeout",
			server: func(t *testing.T) *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					time.Sleep(500 * time.Millisecond)
				}))
			},
		},
		{name: "content is prose not JSON", server: invalid("Here are some suggestions you could try.")},
		{name: "zero actions", server: invalid("[]")},
		{
			name: "three actions",
			server: invalid(`[
				{"owner_role":"a","due_in_days":2,"impact_score":3,"effort_score":3,"confidence_score":3,"leading_indicator":"x"},
				{"owner_role":"b","due_in_days":3,"impact_score":3,"effort_score":3,"confidence_score":3,"leading_indicator":"y"},
				{"owner_role":"c","due_in_days":4,"impact_score":3,"effort_score":3,"confidence_score":3,"leading_indicator":"z"}
			]`),
		},
		{
			name:   "due_in_days out of range",
			server: invalid(`[{"owner_role":"a","due_in_days":30,"impact_score":3,"effort_score":3,"confidence_score":3,"leading_indicator":"x"}]`),
		},
		{
			name:   "score out of range",
			server: invalid(`[{"owner_role":"a","due_in_days":5,"impact_score":9,"effort_score":3,"confidence_score":3,"leading_indicator":"x"}]`),
		},
		{
			name:   "missing required field",
			server: invalid(`[{"due_in_days":5,"impact_score":3,"effort_score":3,"confidence_score":3,"leading_indicator":"x"}]`),
		},
		{
			name:   "wrong field type",
			server: invalid(`[{"owner_role":"a","due_in_days":"soon","impact_score":3,"effort_score":3,"confidence_score":3,"leading_indicator":"x"}]`),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := tc.server(t)
			defer srv.Close()

			g := New(Config{APIKey: "test-key", BaseURL: srv.URL, Timeout: 100 * time.Millisecond})
			result := g.Generate(context.Background(), concern)

			assert.Equal(t, SourceFallback, result.Source)
			assert.NotEmpty(t, result.Reason)
			assert.Equal(t, baseline, result.Actions,
				"fallback result must match the no-credential result exactly")
		})
	}
}

func TestGenerate_NetworkErrorUsesFallback(t *testing.T) {
	// Port 1 refuses connections
	g := New(Config{APIKey: "test-key", BaseURL: "http://127.0.0.1:1", Timeout: 200 * time.Millisecond})
	concern := sampleConcern(models.LevelLow, models.LevelMedium)

	result := g.Generate(context.Background(), concern)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, FallbackActions(concern), result.Actions)
}

func TestGenerate_PromptIncludesConcernFields(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		fmt.Fprint(w, `{"choices":[{"message":{"content":"not json"}}]}`)
	}))
	defer srv.Close()

	concern := sampleConcern(models.LevelHigh, models.LevelHigh)
	g := New(Config{APIKey: "test-key", BaseURL: srv.URL, Model: "test-model"})
	g.Generate(context.Background(), concern)

	require.Len(t, captured.Messages, 2)
	assert.Equal(t, "test-model", captured.Model)
	userMsg := captured.Messages[1].Content
	assert.Contains(t, userMsg, concern.InitiativeName)
	assert.Contains(t, userMsg, concern.ConcernText)
	assert.Contains(t, userMsg, concern.ObservedSignals)
	assert.Contains(t, userMsg, "high")
}
