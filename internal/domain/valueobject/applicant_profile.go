package valueobject

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// Input variable names an applicant profile feeds into the inference engine.
const (
	AttrAge         = "age"
	AttrIncome      = "income"
	AttrCoIncome    = "coIncome"
	AttrLoanAmount  = "loanAmount"
	AttrInstallment = "installment"
	AttrDependents  = "dependents"
)

// ApplicantAttributes lists every attribute a profile provides, in display order.
var ApplicantAttributes = []string{
	AttrAge, AttrIncome, AttrCoIncome, AttrLoanAmount, AttrInstallment, AttrDependents,
}

// ErrInvalidProfile is returned when applicant data fails validation.
var ErrInvalidProfile = errors.New("invalid applicant profile")

// Bounds on monetary amounts. MaxAmount is far above any variable domain;
// amounts beyond it are rejected before they are converted to floats.
const (
	MaxAmountDecimals = 8
	maxAmountDigits   = 13
)

// MaxAmount is the largest accepted monetary amount.
var MaxAmount = decimal.New(1, maxAmountDigits-1)

// ApplicantProfile is the crisp data a loan applicant supplies.
// Monetary amounts are monthly except for the loan amount.
type ApplicantProfile struct {
	income      decimal.Decimal
	coIncome    decimal.Decimal
	loanAmount  decimal.Decimal
	installment decimal.Decimal
	age         int
	dependents  int
	applicantID uuid.UUID
}

// ApplicantProfileParams carries the raw fields for NewApplicantProfile.
type ApplicantProfileParams struct {
	Income      decimal.Decimal
	CoIncome    decimal.Decimal
	LoanAmount  decimal.Decimal
	Installment decimal.Decimal
	Age         int
	Dependents  int
	ApplicantID uuid.UUID
}

// NewApplicantProfile validates the parameters and builds a profile. A nil
// applicant ID is replaced with a generated one.
func NewApplicantProfile(p ApplicantProfileParams) (ApplicantProfile, error) {
	if p.Age <= 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: age must be positive, got %d", ErrInvalidProfile, p.Age)
	}
	if p.Dependents < 0 {
		return ApplicantProfile{}, fmt.Errorf("%w: dependents must not be negative, got %d", ErrInvalidProfile, p.Dependents)
	}
	amounts := []struct {
		name  string
		value decimal.Decimal
	}{
		{AttrIncome, p.Income},
		{AttrCoIncome, p.CoIncome},
		{AttrLoanAmount, p.LoanAmount},
		{AttrInstallment, p.Installment},
	}
	for _, a := range amounts {
		if err := checkAmount(a.name, a.value); err != nil {
			return ApplicantProfile{}, err
		}
	}

	id := p.ApplicantID
	if id == uuid.Nil {
		id = uuid.New()
	}

	return ApplicantProfile{
		applicantID: id,
		age:         p.Age,
		income:      p.Income,
		coIncome:    p.CoIncome,
		loanAmount:  p.LoanAmount,
		installment: p.Installment,
		dependents:  p.Dependents,
	}, nil
}

// checkAmount bounds the exponent and digit count before any comparison:
// comparing or converting a decimal allocates 10^|exponent|.
func checkAmount(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidProfile, name)
	}
	exp := int64(v.Exponent())
	if exp < -MaxAmountDecimals {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidProfile, name, MaxAmountDecimals)
	}
	if exp > maxAmountDigits || int64(v.NumDigits())+exp > maxAmountDigits {
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidProfile, name, MaxAmount)
	}
	if v.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s exceeds %s", ErrInvalidProfile, name, MaxAmount)
	}
	return nil
}

func (p ApplicantProfile) ApplicantID() uuid.UUID       { return p.applicantID }
func (p ApplicantProfile) Age() int                     { return p.age }
func (p ApplicantProfile) Income() decimal.Decimal      { return p.income }
func (p ApplicantProfile) CoIncome() decimal.Decimal    { return p.coIncome }
func (p ApplicantProfile) LoanAmount() decimal.Decimal  { return p.loanAmount }
func (p ApplicantProfile) Installment() decimal.Decimal { return p.installment }
func (p ApplicantProfile) Dependents() int              { return p.dependents }

// IsZero returns true if the profile has not been built.
func (p ApplicantProfile) IsZero() bool {
	return p.applicantID == uuid.Nil
}

// ToInputs converts the profile into crisp engine inputs keyed by attribute name.
func (p ApplicantProfile) ToInputs() fuzzy.Inputs {
	return fuzzy.Inputs{
		AttrAge:         float64(p.age),
		AttrIncome:      p.income.InexactFloat64(),
		AttrCoIncome:    p.coIncome.InexactFloat64(),
		AttrLoanAmount:  p.loanAmount.InexactFloat64(),
		AttrInstallment: p.installment.InexactFloat64(),
		AttrDependents:  float64(p.dependents),
	}
}
