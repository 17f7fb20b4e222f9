package entity

import "time"

// Analysis source tags. Fallback marks a substitute payload returned when the
// live provider errored, so callers and tests can tell it from real output.
const (
	SourceOpenAI   = "openai"
	SourceGemini   = "gemini"
	SourceMock     = "mock"
	SourceFallback = "fallback"
)

// Analysis is the structured extraction result for one upload. It is created
// once and never mutated; re-running analysis creates a new record.
type Analysis struct {
	ID        string          `db:"id" json:"id"`
	UploadID  string          `db:"upload_id" json:"uploadId"`
	Source    string          `db:"source" json:"source"`
	Payload   AnalysisPayload `db:"-" json:"payload"`
	CreatedAt time.Time       `db:"created_at" json:"createdAt"`
}

type AnalysisPayload struct {
	VeteranInfo     VeteranInfo      `json:"veteranInfo"`
	PotentialClaims []ClaimCandidate `json:"potentialClaims"`
	ServiceInfo     ServiceInfo      `json:"serviceInfo"`
	Recommendations Recommendations  `json:"recommendations"`
}

type VeteranInfo struct {
	Name             string `json:"name"`
	ServiceNumber    string `json:"serviceNumber"`
	Branch           string `json:"branch"`
	ServiceStartDate string `json:"serviceStartDate"`
	ServiceEndDate   string `json:"serviceEndDate"`
	Rank             string `json:"rank"`
	DischargeType    string `json:"dischargeType"`
}

// ClaimCandidate is one potential disability condition identified from the
// document text. ConfidenceScore is 0-100.
type ClaimCandidate struct {
	Condition       string   `json:"condition"`
	Description     string   `json:"description"`
	Evidence        []string `json:"evidence"`
	CFRReference    string   `json:"cfrReference"`
	ConfidenceScore int      `json:"confidenceScore"`
	Category        string   `json:"category"`
	IsPresumptive   bool     `json:"isPresumptive"`
	IsPrimary       bool     `json:"isPrimary"`
}

type ServiceInfo struct {
	Deployments   []string `json:"deployments"`
	MOS           []string `json:"mos"`
	CombatService bool     `json:"combatService"`
	Awards        []string `json:"awards"`
	Incidents     []string `json:"incidents"`
}

type Recommendations struct {
	AdditionalEvidence []string `json:"additionalEvidence"`
	PriorityClaims     []string `json:"priorityClaims"`
}
