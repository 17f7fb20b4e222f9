// Package mockai provides a deterministic analyzer for local development and
// tests. It returns the same payload regardless of input, in the exact shape
// the live providers produce.
package mockai

import (
	"context"

	"vetfile-api/internal/domain/entity"
)

type Analyzer struct{}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Name() string {
	return entity.SourceMock
}

func (a *Analyzer) Analyze(ctx context.Context, documentText string) (*entity.AnalysisPayload, error) {
	return &entity.AnalysisPayload{
		VeteranInfo: entity.VeteranInfo{
			Name:             "John A. Smith",
			ServiceNumber:    "123-45-6789",
			Branch:           "Army",
			ServiceStartDate: "2004-06-15",
			ServiceEndDate:   "2012-06-14",
			Rank:             "Sergeant (E-5)",
			DischargeType:    "Honorable",
		},
		PotentialClaims: []entity.ClaimCandidate{
			{
				Condition:       "Tinnitus",
				Description:     "Persistent ringing in both ears, onset during active duty artillery training.",
				Evidence:        []string{"Audiology consult dated 2011-03-22", "Exposure to artillery fire noted in service record"},
				CFRReference:    "38 CFR 4.87, DC 6260",
				ConfidenceScore: 92,
				Category:        "Auditory",
				IsPresumptive:   false,
				IsPrimary:       true,
			},
			{
				Condition:       "Hearing Loss (Bilateral)",
				Description:     "Documented threshold shifts consistent with noise-induced hearing loss.",
				Evidence:        []string{"Separation audiogram showing bilateral high-frequency loss"},
				CFRReference:    "38 CFR 4.85, DC 6100",
				ConfidenceScore: 78,
				Category:        "Auditory",
				IsPresumptive:   false,
				IsPrimary:       false,
			},
			{
				Condition:       "Post-Traumatic Stress Disorder",
				Description:     "Symptoms documented following combat deployment, including sleep disturbance.",
				Evidence:        []string{"Mental health screening dated 2010-11-04", "Combat deployment to Iraq 2008-2009"},
				CFRReference:    "38 CFR 4.130, DC 9411",
				ConfidenceScore: 71,
				Category:        "Mental Health",
				IsPresumptive:   false,
				IsPrimary:       false,
			},
		},
		ServiceInfo: entity.ServiceInfo{
			Deployments:   []string{"Iraq 2008-2009", "Afghanistan 2010-2011"},
			MOS:           []string{"13B Cannon Crewmember"},
			CombatService: true,
			Awards:        []string{"Combat Action Badge", "Army Commendation Medal"},
			Incidents:     []string{"IED exposure near FOB Warrior, 2009-01-17"},
		},
		Recommendations: entity.Recommendations{
			AdditionalEvidence: []string{
				"Obtain a current audiology examination",
				"Request buddy statements corroborating the 2009 IED incident",
			},
			PriorityClaims: []string{"Tinnitus", "Hearing Loss (Bilateral)"},
		},
	}, nil
}
