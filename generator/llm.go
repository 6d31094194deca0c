// generator/llm.go
package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lnfurey-oss/pm-exploration/models"
)

const systemPrompt = `You are a product risk assistant. Given a premortem concern, ` +
	`respond with a JSON array of 1 or 2 mitigation actions. Each action is an object ` +
	`with fields: owner_role (string), due_in_days (integer 1-14), impact_score, ` +
	`effort_score, confidence_score (integers 1-5), leading_indicator (string ` +
	`describing an observable early signal). Respond with the JSON array only, no prose.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func buildPrompt(c models.Concern) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Initiative: %s\n", c.InitiativeName)
	fmt.Fprintf(&b, "Concern: %s\n", c.ConcernText)
	if c.ObservedSignals != "" {
		fmt.Fprintf(&b, "Observed signals: %s\n", c.ObservedSignals)
	}
	fmt.Fprintf(&b, "Severity: %s\n", c.Severity)
	fmt.Fprintf(&b, "Impact level: %s\n", c.ImpactLevel)
	return b.String()
}

// complete performs the single outbound model call. Every failure mode
// returns an error; the caller decides to fall back.
func (g *Generator) complete(ctx context.Context, concern models.Concern) ([]models.MitigationAction, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.Timeout)
		defer cancel()
	}

	reqBody := chatRequest{
		Model: g.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: buildPrompt(concern)},
		},
		MaxTokens:   512,
		Temperature: 0.2,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.cfg.BaseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	return decodeActions(chatResp.Choices[0].Message.Content)
}

// decodeActions parses the model content into actions and validates them
// closed: any schema violation is an error, never a partial result.
func decodeActions(content string) ([]models.MitigationAction, error) {
	content = strings.TrimSpace(content)
	// Models sometimes wrap JSON in a markdown fence.
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var actions []models.MitigationAction
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&actions); err != nil {
		return nil, fmt.Errorf("model response is not a valid action array: %w", err)
	}

	if len(actions) < 1 || len(actions) > 2 {
		return nil, fmt.Errorf("model returned %d actions, expected 1 or 2", len(actions))
	}
	for i, a := range actions {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("model action %d invalid: %w", i, err)
		}
	}
	return actions, nil
}
