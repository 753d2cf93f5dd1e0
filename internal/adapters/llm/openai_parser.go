package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"itinerary-planner-service/internal/ports"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPromptTemplate = `You decompose day-planning requests for %s into activities.
Reply with strict JSON only, no prose, in this shape:
{"fixed_time_entries":[{"activity":"","location":"","time":"HH:MM","venue_preference":"","duration_minutes":0}],
 "flexible_time_entries":[{"activity":"","location":"","time":"","venue_preference":"","after_fixed":0}]}
Rules:
- An explicit clock time ("at 7pm", "12:30") makes an entry fixed; convert the time to 24h HH:MM.
- Relative or unscheduled mentions ("afterwards", "before that", "nearby") are flexible, in mention order.
- Set after_fixed on each flexible entry to how many fixed-time entries were mentioned before it (0 if none).
- Capture style or quality words next to a place mention verbatim as venue_preference; omit when unclear.
- If nothing actionable is mentioned, return both arrays empty.`

// OpenAIParser implements the RequestParser port on the OpenAI chat API.
//
// The raw model output is validated and normalized here at the boundary;
// the core never inspects provider-specific shapes. Transport failures and
// malformed responses surface as *ports.ParseError.
type OpenAIParser struct {
	client openai.Client
	model  openai.ChatModel
}

func NewOpenAIParser(apiKey string, model string) (*OpenAIParser, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openai api key is empty")
	}
	if model == "" {
		model = openai.ChatModelGPT4oMini
	}
	return &OpenAIParser{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  openai.ChatModel(model),
	}, nil
}

// Parse decomposes a free-text request into fixed and flexible entries.
func (p *OpenAIParser) Parse(ctx context.Context, text string, city domain.CityConfig) (_ ports.ParsedRequest, err error) {
	defer obs.Time(ctx, "llm.Parse")(&err)

	if strings.TrimSpace(text) == "" {
		return ports.ParsedRequest{}, nil
	}

	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(systemPromptTemplate, city.Name)),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return ports.ParsedRequest{}, &ports.ParseError{Err: fmt.Errorf("chat completion: %w", err)}
	}
	if len(resp.Choices) == 0 {
		return ports.ParsedRequest{}, &ports.ParseError{Err: errors.New("empty completion")}
	}

	parsed, err := DecodeParseResponse(resp.Choices[0].Message.Content)
	if err != nil {
		return ports.ParsedRequest{}, &ports.ParseError{Err: err}
	}
	return parsed, nil
}

// Wire shape of the model's JSON reply.
type parseResponse struct {
	FixedTimeEntries    []parsedEntry `json:"fixed_time_entries"`
	FlexibleTimeEntries []parsedEntry `json:"flexible_time_entries"`
}

type parsedEntry struct {
	Activity        string `json:"activity"`
	Location        string `json:"location"`
	Time            string `json:"time"`
	VenuePreference string `json:"venue_preference"`
	DurationMinutes int    `json:"duration_minutes"`
	AfterFixed      int    `json:"after_fixed"`
}

// DecodeParseResponse validates and normalizes the raw model reply.
// Entries without an activity are skipped; a fixed entry whose time cannot
// be normalized to 24h HH:MM is reclassified as flexible, keeping the count
// of fixed entries mentioned before it as its anchor linkage.
func DecodeParseResponse(raw string) (ports.ParsedRequest, error) {
	raw = stripCodeFence(raw)

	var wire parseResponse
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return ports.ParsedRequest{}, fmt.Errorf("decode parse response: %w", err)
	}

	var out ports.ParsedRequest
	for _, e := range wire.FixedTimeEntries {
		entry, ok := normalizeEntry(e, domain.KindFixed)
		if !ok {
			continue
		}
		if entry.Time == "" {
			entry.Kind = domain.KindFlexible
			entry.AfterFixed = len(out.FixedTimeEntries)
			out.FlexibleTimeEntries = append(out.FlexibleTimeEntries, entry)
			continue
		}
		out.FixedTimeEntries = append(out.FixedTimeEntries, entry)
	}
	for _, e := range wire.FlexibleTimeEntries {
		entry, ok := normalizeEntry(e, domain.KindFlexible)
		if !ok {
			continue
		}
		entry.Time = e.Time // keep the relative descriptor verbatim
		entry.AfterFixed = clampAnchor(e.AfterFixed, len(out.FixedTimeEntries))
		out.FlexibleTimeEntries = append(out.FlexibleTimeEntries, entry)
	}
	return out, nil
}

// clampAnchor bounds a model-reported anchor count to the fixed entries that
// survived normalization.
func clampAnchor(n, fixedCount int) int {
	if n < 0 {
		return 0
	}
	if n > fixedCount {
		return fixedCount
	}
	return n
}

func normalizeEntry(e parsedEntry, kind domain.EntryKind) (domain.ActivityEntry, bool) {
	activity := strings.TrimSpace(e.Activity)
	if activity == "" {
		return domain.ActivityEntry{}, false
	}
	entry := domain.ActivityEntry{
		Activity:        activity,
		Location:        strings.TrimSpace(e.Location),
		VenuePreference: strings.TrimSpace(e.VenuePreference),
		DurationMinutes: e.DurationMinutes,
		Kind:            kind,
	}
	if kind == domain.KindFixed {
		entry.Time = NormalizeClock(e.Time)
	}
	return entry, true
}

var clockLayouts = []string{"15:04", "15.04", "3:04pm", "3:04 pm", "3pm", "3 pm", "15"}

// NormalizeClock converts common clock spellings ("7pm", "7:30 PM", "19:00")
// to 24h "15:04". Returns "" when the input is not a clock time.
func NormalizeClock(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	for _, layout := range clockLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04")
		}
	}
	return ""
}

// stripCodeFence tolerates models wrapping JSON in markdown fences.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
