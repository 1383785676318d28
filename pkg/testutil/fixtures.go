package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
)

// Fixed UUIDs for deterministic testing
var (
	SafeApplicantID         = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	OverextendedApplicantID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// Scores the embedded rule set produces for the fixture applicants. Each
// fires exactly one rule at full strength, so the score is the centroid of
// the consequent set sampled on the unit grid.
const (
	SafeApplicantScore         = 466.5 / 29.5
	OverextendedApplicantScore = 2483.5 / 29.5
)

// SafeApplicant has a high income against a small loan. Only the
// "Very safe proposition." rule fires.
func SafeApplicant() valueobject.ApplicantProfileParams {
	return valueobject.ApplicantProfileParams{
		ApplicantID: SafeApplicantID,
		Age:         40,
		Income:      decimal.NewFromInt(8000),
		CoIncome:    decimal.Zero,
		LoanAmount:  decimal.NewFromInt(5000),
		Installment: decimal.NewFromInt(500),
		Dependents:  0,
	}
}

// OverextendedApplicant asks for a large loan on a low income.
func OverextendedApplicant() valueobject.ApplicantProfileParams {
	return valueobject.ApplicantProfileParams{
		ApplicantID: OverextendedApplicantID,
		Age:         40,
		Income:      decimal.NewFromInt(2000),
		CoIncome:    decimal.Zero,
		LoanAmount:  decimal.NewFromInt(100000),
		Installment: decimal.NewFromInt(500),
		Dependents:  0,
	}
}

// MustProfile builds a profile from params and fails the test on error.
func MustProfile(t *testing.T, p valueobject.ApplicantProfileParams) valueobject.ApplicantProfile {
	t.Helper()

	profile, err := valueobject.NewApplicantProfile(p)
	require.NoError(t, err, "building applicant profile")
	return profile
}
