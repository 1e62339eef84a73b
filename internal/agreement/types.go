// Package agreement validates the organization, equity and governance steps
// of the team agreement wizard.
package agreement

import "time"

type GovernanceModel string

const (
	GovernanceProportional GovernanceModel = "proportional"
	GovernanceQuadratic    GovernanceModel = "quadratic"
	GovernanceCooperative  GovernanceModel = "cooperative"
)

var GovernanceModels = []GovernanceModel{
	GovernanceProportional,
	GovernanceQuadratic,
	GovernanceCooperative,
}

type CoFounder struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

type Organization struct {
	Name          string      `json:"name"`
	TokenName     string      `json:"tokenName"`
	TokenSymbol   string      `json:"tokenSymbol"`
	TokenDecimals int         `json:"tokenDecimals"`
	CoFounders    []CoFounder `json:"coFounders"`
}

type Allocation struct {
	UserID      string  `json:"userId"`
	Percentage  float64 `json:"percentage"`
	TokenAmount float64 `json:"tokenAmount"`
}

type Equity struct {
	TotalTokens float64      `json:"totalTokens"`
	Allocations []Allocation `json:"allocations"`
}

type Governance struct {
	Model GovernanceModel `json:"model"`
}

type DocumentMeta struct {
	Title     string    `json:"title"`
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

// Data is the full form state collected by the wizard. It is never persisted.
type Data struct {
	Organization Organization  `json:"organization"`
	Equity       Equity        `json:"equity"`
	Governance   Governance    `json:"governance"`
	Document     *DocumentMeta `json:"document,omitempty"`
}

// Errors maps a form field to a human readable message.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Merge copies other into e and returns e.
func (e Errors) Merge(other Errors) Errors {
	for k, v := range other {
		e[k] = v
	}
	return e
}
