package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"platformone/config"
	"platformone/internal/model"
	apperrors "platformone/pkg/app_errors"
	"platformone/pkg/logger"

	"go.uber.org/zap"
)

// Planner turns a natural-language staff message into a structured plan.
type Planner interface {
	RequestPlan(ctx context.Context, message, timezone string, reference time.Time) (*model.AssistantPlan, error)
}

// GeminiPlanner calls the Gemini generateContent endpoint with a response-schema
// constraint. The reply is still treated as untrusted input: callers re-validate
// every field through normalization.
type GeminiPlanner struct {
	cfg    config.GeminiConfig
	client *http.Client
}

func NewGeminiPlanner(cfg config.GeminiConfig) *GeminiPlanner {
	return &GeminiPlanner{
		cfg: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiRequest struct {
	SystemInstruction geminiContent    `json:"systemInstruction"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature        float64        `json:"temperature"`
	ResponseMimeType   string         `json:"responseMimeType"`
	ResponseJSONSchema map[string]any `json:"responseJsonSchema"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *GeminiPlanner) RequestPlan(ctx context.Context, message, timezone string, reference time.Time) (*model.AssistantPlan, error) {
	if strings.TrimSpace(p.cfg.APIKey) == "" {
		return nil, apperrors.ErrMissingAPIKey
	}

	body, err := json.Marshal(geminiRequest{
		SystemInstruction: geminiContent{
			Parts: []geminiPart{{Text: buildSystemPrompt(timezone, reference)}},
		},
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: message}}},
		},
		GenerationConfig: generationConfig{
			Temperature:        0.2,
			ResponseMimeType:   "application/json",
			ResponseJSONSchema: planSchema(),
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", p.cfg.BaseURL, p.cfg.Model, p.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var decoded geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		if resp.StatusCode >= 400 {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUpstream, resp.Status)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamDecode, err)
	}

	if resp.StatusCode >= 400 {
		// forward the provider's message when it sent one
		if decoded.Error != nil && decoded.Error.Message != "" {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrUpstream, decoded.Error.Message)
		}
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUpstream, resp.Status)
	}

	text := extractText(decoded)
	if text == "" {
		return nil, fmt.Errorf("%w: empty reply", apperrors.ErrUpstreamDecode)
	}

	var plan model.AssistantPlan
	if err := json.Unmarshal([]byte(text), &plan); err != nil {
		logger.WithComponent("planner").Warn("plan reply was not valid JSON",
			zap.Error(err), zap.String("reply", text))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrUpstreamDecode, err)
	}

	// the schema constraint is advisory; the model may still misbehave
	if !plan.Action.IsValid() {
		plan.Action = model.ActionUnknown
	}

	return &plan, nil
}

// extractText pulls the candidate text whether it arrived as one part or split
// across several.
func extractText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 1 {
		return strings.TrimSpace(parts[0].Text)
	}
	var b strings.Builder
	for _, part := range parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

func buildSystemPrompt(timezone string, reference time.Time) string {
	return fmt.Sprintf(`You are an assistant for staff managing events.

Return ONLY valid JSON matching this schema:
{
  "action": "create" | "update" | "delete" | "get" | "list" | "unknown",
  "eventId": string|null,
  "query": string|null,
  "event": {
    "title": string|null,
    "startDate": string|null,
    "startTime": string|null,
    "endDate": string|null,
    "endTime": string|null,
    "location": string|null,
    "participantCapacity": number|string|null,
    "volunteerCapacity": number|string|null,
    "minTier": "BRONZE"|"SILVER"|"GOLD"|"PLATINUM"|null
  } | null,
  "includeParticipants": boolean|null,
  "includeVolunteers": boolean|null,
  "range": {
    "startDate": string|null,
    "endDate": string|null
  } | null
}

Rules:
- Use timezone %s. Reference date is %s.
- Dates must be YYYY-MM-DD and times HH:mm (24h).

Title rules (IMPORTANT):
- If the user explicitly provides a title/name, use it as title.
- If the user does NOT provide a title but provides enough context (purpose/type, audience, topic, location/time), you MAY generate a concise, human-friendly title (3-8 words) that accurately reflects the request.
  Examples:
  - "volunteer training on Feb 2..." => "Volunteer Training"
  - "career talk with Google..." => "Google Career Talk"
  - "blood donation drive at UTown..." => "Blood Donation Drive"
- If the request is too vague to name safely (e.g. "schedule something tomorrow"), set title to null.

Listing rules:
- If the user asks to list events in a time window (e.g. "next 10 days", "first week of January", "between Jan 5 and Jan 20"),
  set action="list" and fill "range" with startDate and endDate in YYYY-MM-DD.
- For "next N days", startDate should be today's date (in the given timezone) and endDate should be today's date + N days.
- For "first week of January", use Jan 1 to Jan 7 (inclusive) of the relevant year based on the reference date.
- If user also gives a keyword filter (e.g. "volunteer"), put it into "query".

Other extraction rules:
- Do NOT invent details like date/time/location/capacities/tier; use null if missing/ambiguous.
- If user wants delete/update/get but no eventId is given, put a short identifier phrase into query (e.g. "volunteer event on 21 jan").
- If user asks "who is participating/attending/who is coming", set includeParticipants=true.
- If user asks "who is volunteering", set includeVolunteers=true.
`, timezone, reference.UTC().Format(time.RFC3339))
}

// planSchema is the structured-output constraint sent with every request so the
// reply parses as an AssistantPlan.
func planSchema() map[string]any {
	nullableString := []string{"string", "null"}
	nullableBool := []string{"boolean", "null"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required": []string{
			"action", "eventId", "query", "event",
			"includeParticipants", "includeVolunteers", "range",
		},
		"properties": map[string]any{
			"action": map[string]any{
				"type": "string",
				"enum": []string{"create", "update", "delete", "get", "list", "unknown"},
			},
			"eventId":             map[string]any{"type": nullableString},
			"query":               map[string]any{"type": nullableString},
			"includeParticipants": map[string]any{"type": nullableBool},
			"includeVolunteers":   map[string]any{"type": nullableBool},
			"range": map[string]any{
				"type":                 []string{"object", "null"},
				"additionalProperties": false,
				"required":             []string{"startDate", "endDate"},
				"properties": map[string]any{
					"startDate": map[string]any{"type": nullableString},
					"endDate":   map[string]any{"type": nullableString},
				},
			},
			"event": map[string]any{
				"type":                 []string{"object", "null"},
				"additionalProperties": false,
				"required": []string{
					"title", "startDate", "startTime", "endDate", "endTime",
					"location", "participantCapacity", "volunteerCapacity", "minTier",
				},
				"properties": map[string]any{
					"title":               map[string]any{"type": nullableString},
					"startDate":           map[string]any{"type": nullableString},
					"startTime":           map[string]any{"type": nullableString},
					"endDate":             map[string]any{"type": nullableString},
					"endTime":             map[string]any{"type": nullableString},
					"location":            map[string]any{"type": nullableString},
					"participantCapacity": map[string]any{"type": []string{"number", "string", "null"}},
					"volunteerCapacity":   map[string]any{"type": []string{"number", "string", "null"}},
					"minTier": map[string]any{
						"type": nullableString,
						"enum": []any{"BRONZE", "SILVER", "GOLD", "PLATINUM", nil},
					},
				},
			},
		},
	}
}
