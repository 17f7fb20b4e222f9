package claims

import (
	"time"

	"vetfile-api/internal/domain/entity"

	"github.com/google/uuid"
)

// BuildForm filters the analysis claims to the selected condition names and
// projects them into the VA Form 21-526EZ schema. Matching is by exact
// condition string; selections that match nothing are silently omitted.
func BuildForm(an *entity.Analysis, selected []string) *entity.GeneratedForm {
	chosen := map[string]bool{}
	for _, name := range selected {
		chosen[name] = true
	}

	form := &entity.GeneratedForm{
		FormID:        uuid.New().String(),
		FormType:      entity.FormType,
		GeneratedDate: time.Now(),
		Veteran:       buildVeteran(an.Payload.VeteranInfo),
		Disabilities:  []entity.FormDisability{},
		ServiceDetails: entity.FormServiceDetails{
			Deployments:       emptyIfNil(an.Payload.ServiceInfo.Deployments),
			MOS:               emptyIfNil(an.Payload.ServiceInfo.MOS),
			CombatExperience:  an.Payload.ServiceInfo.CombatService,
			AwardsDecorations: emptyIfNil(an.Payload.ServiceInfo.Awards),
			Incidents:         emptyIfNil(an.Payload.ServiceInfo.Incidents),
		},
	}

	for _, claim := range an.Payload.PotentialClaims {
		if !chosen[claim.Condition] {
			continue
		}
		form.Disabilities = append(form.Disabilities, entity.FormDisability{
			ID:                     uuid.New().String(),
			Sequence:               len(form.Disabilities) + 1,
			Condition:              claim.Condition,
			Description:            claim.Description,
			Evidence:               emptyIfNil(claim.Evidence),
			CFRReference:           claim.CFRReference,
			ConfidenceScore:        claim.ConfidenceScore,
			Category:               claim.Category,
			IsPrimary:              claim.IsPrimary,
			IsPresumed:             claim.IsPresumptive,
			DateOfOnset:            "",
			RelatedMilitaryService: true,
		})
	}

	return form
}

// buildVeteran copies extracted service identity fields. Contact, SSN and DOB
// stay empty: they are never read from uploaded documents.
func buildVeteran(info entity.VeteranInfo) entity.FormVeteran {
	return entity.FormVeteran{
		Name:             info.Name,
		ServiceNumber:    info.ServiceNumber,
		SSN:              "",
		DOB:              "",
		Branch:           info.Branch,
		ServiceStartDate: info.ServiceStartDate,
		ServiceEndDate:   info.ServiceEndDate,
		Rank:             info.Rank,
		DischargeType:    info.DischargeType,
		Address:          entity.FormAddress{},
		Phone:            "",
		Email:            "",
	}
}

func emptyIfNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
