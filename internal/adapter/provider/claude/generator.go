// Package claude implements the coaching generator on the Anthropic Messages API.
package claude

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/coaching-backend/internal/domain"
)

// Config holds generator settings.
type Config struct {
	APIKey    string
	Model     string
	MaxTokens int
	Timeout   time.Duration
	// BaseURL overrides the API endpoint (for testing).
	BaseURL string
	// MaxRetries is passed to the SDK; zero keeps the SDK default.
	MaxRetries int
}

// Generator asks Claude for structured coaching output.
type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	timeout   time.Duration
	log       *slog.Logger
}

// NewGenerator creates a Generator from cfg.
func NewGenerator(cfg Config, logger *slog.Logger) *Generator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	return &Generator{
		client:    anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(maxTokens),
		timeout:   cfg.Timeout,
		log:       logger.With("adapter", "claude"),
	}
}

// Generate sends one prompt for genType and returns the raw JSON result.
// The result is not validated here.
func (g *Generator) Generate(ctx context.Context, genType domain.GenerationType, clientContext string) (*domain.GeneratorOutput, error) {
	prompt, err := buildPrompt(genType, clientContext)
	if err != nil {
		return nil, err
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.log.DebugContext(ctx, "claude request", slog.String("generation_type", genType.String()))

	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("claude: messages api call for %s: %w", genType, err)
	}

	if len(msg.Content) == 0 {
		return nil, fmt.Errorf("claude: empty response for %s: %w", genType, domain.ErrGeneratorFailed)
	}

	jsonStr, err := extractJSON(msg.Content[0].Text)
	if err != nil {
		return nil, fmt.Errorf("claude: %s: %w: %v", genType, domain.ErrGeneratorFailed, err)
	}
	if !json.Valid([]byte(jsonStr)) {
		return nil, fmt.Errorf("claude: response for %s is not valid JSON: %w", genType, domain.ErrGeneratorFailed)
	}

	return &domain.GeneratorOutput{
		Result: json.RawMessage(jsonStr),
		Meta: domain.GenerationMeta{
			Model:      string(msg.Model),
			TokensUsed: int(msg.Usage.InputTokens + msg.Usage.OutputTokens),
		},
	}, nil
}

var schemas = map[domain.GenerationType]string{
	domain.GenerationTypeTrainingProgram: `{
  "programName": "<short name>",
  "weeks": <integer >= 1>,
  "sessionsPerWeek": <integer 1-14>,
  "sessions": [
    {"day": "<Mon|Tue|...>", "focus": "<focus>", "exercises": [
      {"name": "<exercise>", "sets": <integer>, "reps": "<e.g. 8-10>", "notes": "<optional>"}
    ]}
  ],
  "rationale": "<why this program fits the client>"
}`,
	domain.GenerationTypeNutritionPlan: `{
  "calories": <daily kcal>,
  "proteinG": <grams>,
  "carbsG": <grams>,
  "fatG": <grams>,
  "rationale": "<why these targets fit the client>",
  "meals": ["<optional meal idea>"]
}`,
	domain.GenerationTypeWeeklyReview: `{
  "summary": "<two or three sentences>",
  "wins": ["<win>"],
  "concerns": ["<concern>"],
  "actions": [
    {"area": "<TRAINING|NUTRITION|SUPPLEMENTS|RECOVERY|GENERAL>", "title": "<action>", "description": "<optional>"}
  ]
}`,
	domain.GenerationTypeSupplementAnalysis: `{
  "supplements": [
    {"name": "<supplement>", "dosage": "<amount>", "timing": "<when>", "notes": "<optional>"}
  ],
  "rationale": "<why this regimen fits the client>"
}`,
	domain.GenerationTypeClientSummary: `{
  "summary": "<concise client overview>",
  "highlights": ["<highlight>"]
}`,
}

// buildPrompt creates the prompt for one generation.
func buildPrompt(genType domain.GenerationType, clientContext string) (string, error) {
	schema, ok := schemas[genType]
	if !ok {
		return "", fmt.Errorf("claude: unsupported generation type %q: %w", genType, domain.ErrGeneratorFailed)
	}

	task := strings.ToLower(strings.ReplaceAll(genType.String(), "_", " "))
	if strings.TrimSpace(clientContext) == "" {
		clientContext = "(no additional context provided)"
	}

	return fmt.Sprintf(`You are an experienced strength and nutrition coach assisting another coach.

Produce a %s for the client described below. A human coach will review your
output before anything is applied to the client.

Client context:
%s

Output ONLY a valid JSON object matching this exact schema:
%s

Rules:
- Be specific and conservative; never recommend prescription drugs
- Use plain numbers without units where the schema asks for numbers
- Output ONLY the JSON, no markdown, no explanations`, task, clientContext, schema), nil
}

// extractJSON finds the outermost JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
