package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/google/generative-ai-go/genai"
	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/api/option"

	"github.com/JoeAtk/GymPT/internal/config"
	"github.com/JoeAtk/GymPT/internal/domain"
	apperrors "github.com/JoeAtk/GymPT/internal/errors"
	"github.com/JoeAtk/GymPT/internal/utils"
)

const (
	geminiModel = "gemini-1.5-flash"
	openaiModel = "gpt-4o-mini"
)

// AIService is the generation collaborator. Each call is a single attempt;
// failures are classified as network or API errors and surfaced, never
// retried.
type AIService struct {
	provider     string
	geminiClient *genai.Client
	openaiClient *openai.Client
}

// NewAIService builds the configured provider's client.
func NewAIService(cfg *config.Config) (*AIService, error) {
	s := &AIService{provider: cfg.AIProvider}

	switch cfg.AIProvider {
	case config.ProviderGemini:
		client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
	case config.ProviderOpenAI:
		s.openaiClient = openai.NewClient(cfg.OpenAIAPIKey)
	default:
		return nil, fmt.Errorf("unknown AI provider %q", cfg.AIProvider)
	}

	return s, nil
}

// Generate sends a single prompt and returns the raw response text.
func (s *AIService) Generate(ctx context.Context, prompt string) (string, error) {
	if s.provider == config.ProviderOpenAI {
		return s.generateWithOpenAI(ctx, prompt)
	}
	return s.generateWithGemini(ctx, prompt)
}

func (s *AIService) generateWithGemini(ctx context.Context, prompt string) (string, error) {
	model := s.geminiClient.GenerativeModel(geminiModel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGenerateErr(err, "Gemini")
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", apperrors.NewAPIError(fmt.Errorf("no candidates returned"), "Gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String(), nil
}

func (s *AIService) generateWithOpenAI(ctx context.Context, prompt string) (string, error) {
	resp, err := s.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openaiModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", classifyGenerateErr(err, "OpenAI")
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.NewAPIError(fmt.Errorf("no choices returned"), "OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}

// ClassifySplit asks for a single-word training category for an exercise
// name. Anything outside the known vocabulary comes back as unknown.
func (s *AIService) ClassifySplit(ctx context.Context, exerciseName string) (domain.Split, error) {
	prompt := fmt.Sprintf(`Categorize the gym exercise %q into a workout split.
Answer with exactly one word: push, pull, legs, or unknown. No punctuation, no explanation.`, exerciseName)

	text, err := s.Generate(ctx, prompt)
	if err != nil {
		return domain.SplitUnknown, err
	}

	word := strings.ToLower(strings.TrimSpace(text))
	if i := strings.IndexAny(word, " \n\t."); i >= 0 {
		word = word[:i]
	}
	switch word {
	case "push", "pull", "legs", "leg":
		return domain.NormalizeSplit(word), nil
	}
	return domain.SplitUnknown, nil
}

// ParseLiftEntry extracts a single structured lift entry from free text.
func (s *AIService) ParseLiftEntry(ctx context.Context, freeText string) (domain.LiftEntry, error) {
	prompt := fmt.Sprintf(`You are a parser that extracts a single workout lift entry from user text.
Return ONLY a JSON object with these fields: name (string), sets (integer), reps (integer), weight (number or null), timestamp (millis since epoch or null), weightUnit ("kg" or "lb" or null).
If a field is unknown, set it to null. Do not include any extra commentary.

Text:
%s`, freeText)

	text, err := s.Generate(ctx, prompt)
	if err != nil {
		return domain.LiftEntry{}, err
	}

	jsonStr := extractJSON(text)
	if jsonStr == "" {
		return domain.LiftEntry{}, apperrors.New(apperrors.ErrorTypeParse, "LIFT_PARSE", "Parser did not return JSON")
	}

	var parsed struct {
		Name      string   `json:"name"`
		Sets      *int     `json:"sets"`
		Reps      *int     `json:"reps"`
		Weight    *float64 `json:"weight"`
		Timestamp *int64   `json:"timestamp"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &parsed); err != nil {
		return domain.LiftEntry{}, apperrors.Wrap(err, apperrors.ErrorTypeParse, "LIFT_PARSE", "Failed to parse JSON from parser response")
	}

	entry := domain.LiftEntry{
		Name:      strings.TrimSpace(parsed.Name),
		Sets:      1,
		Reps:      1,
		Weight:    parsed.Weight,
		Timestamp: utils.NowMillis(),
	}
	if entry.Name == "" {
		entry.Name = "Unknown"
	}
	if parsed.Sets != nil && *parsed.Sets >= 1 {
		entry.Sets = *parsed.Sets
	}
	if parsed.Reps != nil && *parsed.Reps >= 1 {
		entry.Reps = *parsed.Reps
	}
	if parsed.Timestamp != nil && *parsed.Timestamp > 0 {
		entry.Timestamp = *parsed.Timestamp
	}
	return entry, nil
}

// RewriteGoal produces the human-facing display form of a stored goal.
func (s *AIService) RewriteGoal(ctx context.Context, goalText string) (string, error) {
	prompt := fmt.Sprintf(`Rewrite this fitness goal as one short, encouraging sentence addressed to the user.
Return only the sentence, nothing else.

Goal: %s`, goalText)

	text, err := s.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// extractJSON pulls the first '{' .. last '}' span out of a model response,
// tolerating code fences and surrounding prose.
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(s, "}")
	if end == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// classifyGenerateErr separates unreachable-endpoint failures from rejected
// requests.
func classifyGenerateErr(err error, provider string) error {
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return apperrors.NewNetworkError(err)
	}
	return apperrors.NewAPIError(err, provider)
}
