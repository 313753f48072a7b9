package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const systemPrompt = `You are a scheduling assistant. Standard Work Hours: 09:00 to 17:00 (5 PM).

RULES FOR GENERATING SLOTS:
1. Ranges: "9 to 11" means hours [9, 10]. Do not include the end hour.
2. Explicit Days: If a user says "Free Tuesday", only list Tuesday slots.
3. Negative Constraints: If a user says "Busy Friday", you MUST list ALL available hours for Monday, Tuesday, Wednesday, and Thursday, plus the free hours on Friday.
4. IMPLIED AVAILABILITY: Unless a user explicitly excludes a day, assume they are available 09:00-17:00.

Each slot is an object {"day": "<Monday|Tuesday|Wednesday|Thursday|Friday>", "hour": <integer 9-16>} where hour is the start of a one-hour block.

Return ONLY valid JSON in this exact format:
{
  "available_slots": [{"day": "Monday", "hour": 9}],
  "preferred_slots": [{"day": "Monday", "hour": 9}]
}

User message: `

var weekdays = map[string]struct{}{
	"Monday":    {},
	"Tuesday":   {},
	"Wednesday": {},
	"Thursday":  {},
	"Friday":    {},
}

// Config holds the connection settings for the extraction model.
type Config struct {
	// ServerURL is the Ollama server base URL, e.g. http://localhost:11434
	ServerURL string
	// Model is the model name, e.g. llama3.2
	Model string
	// Timeout bounds a single extraction call
	Timeout time.Duration
}

// Client extracts participant schedules through an Ollama-served model.
type Client struct {
	model   llms.Model
	timeout time.Duration
}

// NewClient creates an extraction client against an Ollama server.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ServerURL == "" {
		return nil, fmt.Errorf("llm server url is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("llm model is required")
	}

	model, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return newClient(model, cfg.Timeout), nil
}

func newClient(model llms.Model, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{model: model, timeout: timeout}
}

// ExtractSchedule sends the participant's message to the model with the slot
// generation rules and parses the structured response. Temperature is pinned to
// zero; the model is asked for JSON output only.
func (c *Client) ExtractSchedule(ctx context.Context, text string) (*ScheduleData, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := llms.GenerateFromSinglePrompt(ctx, c.model, systemPrompt+text,
		llms.WithTemperature(0),
		llms.WithJSONMode(),
	)
	if err != nil {
		return nil, fmt.Errorf("LLM request failed: %w", err)
	}

	content := stripCodeFence(strings.TrimSpace(resp))
	if !strings.HasPrefix(content, "{") {
		return nil, fmt.Errorf("model did not return JSON: %s", truncate(content, 200))
	}

	var data ScheduleData
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return nil, fmt.Errorf("failed to parse model response as schedule JSON: %w", err)
	}

	// Day names must be parseable; hours are deliberately passed through
	// unvalidated, the matcher treats any (day, hour) pair as opaque identity.
	for _, slot := range append(append([]SlotData{}, data.AvailableSlots...), data.PreferredSlots...) {
		if _, ok := weekdays[slot.Day]; !ok {
			return nil, fmt.Errorf("model returned unknown day %q", slot.Day)
		}
	}

	return &data, nil
}

// stripCodeFence removes a surrounding markdown code fence when the model wraps
// its JSON despite instructions.
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
