package openai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleReply = `{
	"veteranInfo": {"name": "Jane Doe", "branch": "Navy"},
	"potentialClaims": [
		{"condition": "Tinnitus", "confidenceScore": 88, "evidence": ["audiogram"], "cfrReference": "38 CFR 4.87"}
	],
	"serviceInfo": {"deployments": ["Gulf 1991"], "combatService": true},
	"recommendations": {"additionalEvidence": ["buddy statement"]}
}`

func TestDecodePayload(t *testing.T) {
	payload, err := decodePayload(sampleReply)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", payload.VeteranInfo.Name)
	require.Len(t, payload.PotentialClaims, 1)
	assert.Equal(t, "Tinnitus", payload.PotentialClaims[0].Condition)
	assert.Equal(t, 88, payload.PotentialClaims[0].ConfidenceScore)
	assert.True(t, payload.ServiceInfo.CombatService)
}

func TestDecodePayloadStripsFences(t *testing.T) {
	fenced := "```json\n" + sampleReply + "\n```"
	payload, err := decodePayload(fenced)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", payload.VeteranInfo.Name)
}

func TestDecodePayloadSurroundingProse(t *testing.T) {
	wrapped := "Here is the analysis you asked for:\n" + sampleReply + "\nLet me know if you need anything else."
	payload, err := decodePayload(wrapped)
	require.NoError(t, err)
	assert.Equal(t, "Navy", payload.VeteranInfo.Branch)
}

func TestDecodePayloadNoJSON(t *testing.T) {
	_, err := decodePayload("I could not process these documents.")
	assert.Error(t, err)
}

func TestTruncateAtBoundaryShortInput(t *testing.T) {
	assert.Equal(t, "short text", truncateAtBoundary("short text", 100))
}

func TestTruncateAtBoundaryPrefersSentenceEnd(t *testing.T) {
	text := strings.Repeat("Sentence one. ", 20)
	got := truncateAtBoundary(text, 100)

	assert.LessOrEqual(t, len(got), 100+len("\n[... truncated ...]"))
	assert.True(t, strings.HasSuffix(got, "[... truncated ...]"))
	body := strings.TrimSuffix(got, "\n[... truncated ...]")
	assert.True(t, strings.HasSuffix(body, "."), "cut should land on a sentence boundary, got %q", body)
}

func TestTruncateAtBoundaryNoBoundary(t *testing.T) {
	text := strings.Repeat("x", 500)
	got := truncateAtBoundary(text, 100)
	assert.True(t, strings.HasSuffix(got, "[... truncated ...]"))
	assert.LessOrEqual(t, len(got), 100+len("\n[... truncated ...]"))
}

func TestTruncateAtBoundaryKeepsRunesIntact(t *testing.T) {
	// two-byte runes with no sentence boundary; an odd limit lands
	// mid-rune unless the cut is clamped
	text := strings.Repeat("é", 300)
	got := truncateAtBoundary(text, 101)

	assert.True(t, utf8.ValidString(got), "truncation must not produce invalid UTF-8")
	assert.True(t, strings.HasSuffix(got, "[... truncated ...]"))
	assert.LessOrEqual(t, len(got), 101+len("\n[... truncated ...]"))
}
