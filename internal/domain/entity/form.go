package entity

import "time"

// FormType identifies the government form the generated payload targets.
const FormType = "VA Form 21-526EZ"

// GeneratedForm is a derived projection and is never persisted. Contact, SSN
// and DOB fields are always emitted empty: they are not collected from
// uploaded documents.
type GeneratedForm struct {
	FormID         string             `json:"formId"`
	FormType       string             `json:"formType"`
	GeneratedDate  time.Time          `json:"generatedDate"`
	Veteran        FormVeteran        `json:"veteran"`
	Disabilities   []FormDisability   `json:"disabilities"`
	ServiceDetails FormServiceDetails `json:"serviceDetails"`
}

type FormVeteran struct {
	Name             string      `json:"name"`
	ServiceNumber    string      `json:"serviceNumber"`
	SSN              string      `json:"ssn"`
	DOB              string      `json:"dob"`
	Branch           string      `json:"branch"`
	ServiceStartDate string      `json:"serviceStartDate"`
	ServiceEndDate   string      `json:"serviceEndDate"`
	Rank             string      `json:"rank"`
	DischargeType    string      `json:"dischargeType"`
	Address          FormAddress `json:"address"`
	Phone            string      `json:"phone"`
	Email            string      `json:"email"`
}

type FormAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
}

type FormDisability struct {
	ID                     string   `json:"id"`
	Sequence               int      `json:"sequence"`
	Condition              string   `json:"condition"`
	Description            string   `json:"description"`
	Evidence               []string `json:"evidence"`
	CFRReference           string   `json:"cfrReference"`
	ConfidenceScore        int      `json:"confidenceScore"`
	Category               string   `json:"category"`
	IsPrimary              bool     `json:"isPrimary"`
	IsPresumed             bool     `json:"isPresumed"`
	DateOfOnset            string   `json:"dateOfOnset"`
	RelatedMilitaryService bool     `json:"relatedMilitaryService"`
}

type FormServiceDetails struct {
	Deployments       []string `json:"deployments"`
	MOS               []string `json:"mos"`
	CombatExperience  bool     `json:"combatExperience"`
	AwardsDecorations []string `json:"awardsDecorations"`
	Incidents         []string `json:"incidents"`
}
