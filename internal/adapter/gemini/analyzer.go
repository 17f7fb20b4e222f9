package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"vetfile-api/internal/domain/entity"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

type Analyzer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewAnalyzer(ctx context.Context, apiKey, modelName string) (*Analyzer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	return &Analyzer{client: client, model: model}, nil
}

func (a *Analyzer) Name() string {
	return entity.SourceGemini
}

func (a *Analyzer) Close() error {
	return a.client.Close()
}

func (a *Analyzer) Analyze(ctx context.Context, documentText string) (*entity.AnalysisPayload, error) {
	prompt := buildPrompt(documentText)

	resp, err := a.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			reply.WriteString(string(text))
		}
	}

	raw := reply.String()
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("no JSON object in gemini response")
	}

	var payload entity.AnalysisPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	return &payload, nil
}

func buildPrompt(documentText string) string {
	return fmt.Sprintf(`You are an expert VA disability claims analyst reviewing military service and medical documents.

Return ONLY a JSON object with keys veteranInfo, potentialClaims, serviceInfo, recommendations:
- veteranInfo: name, serviceNumber, branch, serviceStartDate, serviceEndDate, rank, dischargeType (strings, "" if absent; never invent values)
- potentialClaims: array of {condition, description, evidence (string array), cfrReference, confidenceScore (0-100 integer), category, isPresumptive, isPrimary}
- serviceInfo: deployments, mos, awards, incidents (string arrays), combatService (boolean)
- recommendations: additionalEvidence, priorityClaims (string arrays)

Never output null; use "" or empty arrays for unknown fields.

Documents:
%s`, documentText)
}
