// Package generator produces 1-2 suggested mitigation actions for a
// premortem concern. It tries the configured language model first and
// falls back to a deterministic rule table on any failure, so Generate
// always returns a usable action set.
package generator

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/lnfurey-oss/pm-exploration/models"
)

// Config holds everything the generator needs up front. An empty APIKey
// disables the model path entirely.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Source identifies which path produced a Result.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Result is the outcome of one generation call. Reason is set only when
// the fallback path was used.
type Result struct {
	Actions []models.MitigationAction `json:"actions"`
	Source  Source                    `json:"source"`
	Reason  string                    `json:"reason,omitempty"`
}

type Generator struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Generator {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &Generator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Generate returns 1-2 mitigation actions for the concern. It never
// fails: missing credential, network errors, timeouts, non-2xx statuses
// and schema-invalid model output all degrade to the deterministic rules.
func (g *Generator) Generate(ctx context.Context, concern models.Concern) Result {
	if g.cfg.APIKey == "" {
		return Result{Actions: FallbackActions(concern), Source: SourceFallback, Reason: "no model credential configured"}
	}

	actions, err := g.complete(ctx, concern)
	if err != nil {
		log.Printf("action generator: model path failed, using fallback: %v", err)
		return Result{Actions: FallbackActions(concern), Source: SourceFallback, Reason: err.Error()}
	}

	return Result{Actions: actions, Source: SourceModel}
}
