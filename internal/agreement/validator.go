package agreement

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	maxTokenSymbolLength = 5
	maxTokenDecimals     = 18
	percentTolerance     = 0.01
)

// Wizard steps accepted by ValidateStep.
const (
	StepOrganization = "organization"
	StepEquity       = "equity"
	StepGovernance   = "governance"
	StepAll          = "all"
)

func ValidateOrganizationStep(org Organization) Errors {
	errs := Errors{}

	if strings.TrimSpace(org.Name) == "" {
		errs["name"] = "Organization name is required"
	}

	if strings.TrimSpace(org.TokenName) == "" {
		errs["tokenName"] = "Token name is required"
	}

	if strings.TrimSpace(org.TokenSymbol) == "" {
		errs["tokenSymbol"] = "Token symbol is required"
	} else if utf8.RuneCountInString(org.TokenSymbol) > maxTokenSymbolLength {
		errs["tokenSymbol"] = fmt.Sprintf("Token symbol must be %d characters or less", maxTokenSymbolLength)
	}

	if org.TokenDecimals < 0 || org.TokenDecimals > maxTokenDecimals {
		errs["tokenDecimals"] = fmt.Sprintf("Token decimals must be between 0 and %d", maxTokenDecimals)
	}

	if len(org.CoFounders) == 0 {
		errs["coFounders"] = "At least one co-founder is required"
	}

	return errs
}

// ValidateEquityStep checks that the allocations add up to the whole token supply.
func ValidateEquityStep(equity Equity) Errors {
	errs := Errors{}

	if !(equity.TotalTokens > 0) {
		errs["totalTokens"] = "Total tokens must be greater than 0"
	}

	total := 0.0
	for _, a := range equity.Allocations {
		total += a.Percentage
	}
	if math.IsNaN(total) || math.Abs(total-100) > percentTolerance {
		errs["allocations"] = fmt.Sprintf("Total allocation must equal 100%% (currently %.2f%%)", total)
	}

	for _, a := range equity.Allocations {
		if !(a.Percentage >= 0) || !(a.TokenAmount >= 0) {
			errs["negativeAllocation"] = "Allocations cannot be negative"
			break
		}
	}

	return errs
}

func ValidateGovernanceStep(gov Governance) Errors {
	errs := Errors{}
	if !slices.Contains(GovernanceModels, gov.Model) {
		errs["governanceModel"] = "Please select a governance model"
	}
	return errs
}

// ValidateAgreementData is the final gate before an agreement is generated.
func ValidateAgreementData(data Data) Errors {
	errs := ValidateOrganizationStep(data.Organization)
	errs.Merge(ValidateEquityStep(data.Equity))
	errs.Merge(ValidateGovernanceStep(data.Governance))
	return errs
}

// ValidateStep dispatches to the validator of a single wizard step.
func ValidateStep(step string, data Data) (Errors, error) {
	switch step {
	case StepOrganization:
		return ValidateOrganizationStep(data.Organization), nil
	case StepEquity:
		return ValidateEquityStep(data.Equity), nil
	case StepGovernance:
		return ValidateGovernanceStep(data.Governance), nil
	case StepAll, "":
		return ValidateAgreementData(data), nil
	default:
		return nil, fmt.Errorf("unknown agreement step: %s", step)
	}
}
