package claims

import "vetfile-api/internal/domain/entity"

// fallbackPayload is substituted when the analysis provider fails. The
// analyze contract always returns a well-formed payload, so downstream form
// generation never has to handle a missing analysis.
func fallbackPayload() *entity.AnalysisPayload {
	return &entity.AnalysisPayload{
		VeteranInfo: entity.VeteranInfo{
			Name:          "Not extracted",
			Branch:        "Not extracted",
			DischargeType: "Unknown",
		},
		PotentialClaims: []entity.ClaimCandidate{
			{
				Condition:       "Condition requiring manual review",
				Description:     "The automated analysis could not be completed. A claims specialist should review the uploaded documents.",
				Evidence:        []string{"Uploaded service documents"},
				CFRReference:    "38 CFR Part 4",
				ConfidenceScore: 25,
				Category:        "Unclassified",
			},
		},
		ServiceInfo: entity.ServiceInfo{
			Deployments: []string{},
			MOS:         []string{},
			Awards:      []string{},
			Incidents:   []string{},
		},
		Recommendations: entity.Recommendations{
			AdditionalEvidence: []string{
				"Retry the analysis or contact a Veterans Service Officer",
				"Provide DD214 and relevant medical records",
			},
			PriorityClaims: []string{},
		},
	}
}
