package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"vetfile-api/internal/domain/entity"

	openai "github.com/sashabaranov/go-openai"
)

// maxPromptBytes bounds the document text sent per request so oversized
// uploads cannot blow the model's context window.
const maxPromptBytes = 48000

type Analyzer struct {
	client *openai.Client
	model  string
}

func NewAnalyzer(apiKey, model string) *Analyzer {
	return &Analyzer{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (a *Analyzer) Name() string {
	return entity.SourceOpenAI
}

const systemPrompt = `You are an expert VA disability claims analyst. You review military service and medical documents and identify potential disability claims.

Instructions:
1. Return ONLY a JSON object, no prose and no markdown fences.
2. The object MUST have exactly these keys: veteranInfo, potentialClaims, serviceInfo, recommendations.
3. veteranInfo: name, serviceNumber, branch, serviceStartDate, serviceEndDate, rank, dischargeType (strings; use "" when not present in the documents, never invent values).
4. potentialClaims: array of {condition, description, evidence (array of strings quoting the documents), cfrReference (38 CFR citation), confidenceScore (integer 0-100), category, isPresumptive, isPrimary}.
5. serviceInfo: deployments, mos, awards, incidents (arrays of strings) and combatService (boolean).
6. recommendations: additionalEvidence and priorityClaims (arrays of strings).
7. Use ISO-8601 dates (YYYY-MM-DD) where dates appear.
8. Never output null. If a field is unknown, use "" or an empty array.`

// Analyze sends the combined document text to the chat model and decodes the
// structured claims payload from its reply.
func (a *Analyzer) Analyze(ctx context.Context, documentText string) (*entity.AnalysisPayload, error) {
	userPrompt := fmt.Sprintf(`Analyze the following military service documents and identify potential VA disability claims.

Documents:
%s`, truncateAtBoundary(documentText, maxPromptBytes))

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to analyze documents: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return decodePayload(resp.Choices[0].Message.Content)
}

// decodePayload tolerates replies wrapped in markdown fences or surrounded by
// stray prose by unmarshalling the outermost JSON object it can find.
func decodePayload(raw string) (*entity.AnalysisPayload, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in model response")
	}

	var payload entity.AnalysisPayload
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode model response: %w", err)
	}
	return &payload, nil
}

// truncateAtBoundary cuts text to at most limit bytes, preferring a sentence
// or line break in the second half of the window so the prompt does not end
// mid-sentence.
func truncateAtBoundary(text string, limit int) string {
	if len(text) <= limit {
		return text
	}

	end := limit
	for i := end - 1; i > limit/2; i-- {
		if text[i] == '.' || text[i] == '!' || text[i] == '?' || text[i] == '\n' {
			end = i + 1
			break
		}
	}

	// never cut through a multibyte rune
	for end > 0 && !utf8.RuneStart(text[end]) {
		end--
	}

	return strings.TrimSpace(text[:end]) + "\n[... truncated ...]"
}
