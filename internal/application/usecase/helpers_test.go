package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/dto"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/service"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	mu              sync.Mutex
	publishedEvents []events.DomainEvent
	publishFunc     func(ctx context.Context, events ...events.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type recordedAssessment struct {
	level, decision string
	score           float64
	activeRules     int
}

type mockRecorder struct {
	assessments []recordedAssessment
	failures    []string
}

func (m *mockRecorder) RecordAssessment(_ context.Context, level, decision string, score float64, activeRules int, _ time.Duration) {
	m.assessments = append(m.assessments, recordedAssessment{level, decision, score, activeRules})
}

func (m *mockRecorder) RecordFailure(_ context.Context, reason string) {
	m.failures = append(m.failures, reason)
}

// --- Fixtures ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine builds a two-input engine over income and loan amount:
//
//	0: income High AND loanAmount Small -> Low
//	1: income Low AND loanAmount Large  -> High
//	2: income Low AND loanAmount Small  -> Medium
func newTestEngine(t *testing.T) *service.RiskEngine {
	t.Helper()

	income, err := fuzzy.NewVariable("income", 0, 10000, []fuzzy.Set{
		{Name: "Low", Shape: fuzzy.Trapezoid{A: 0, B: 0, C: 2500, D: 3500}},
		{Name: "High", Shape: fuzzy.Trapezoid{A: 5500, B: 7000, C: 10000, D: 10000}},
	}, fuzzy.WithLabel("Monthly Income"), fuzzy.WithUnit("$"))
	require.NoError(t, err)

	loan, err := fuzzy.NewVariable("loanAmount", 0, 150000, []fuzzy.Set{
		{Name: "Small", Shape: fuzzy.Trapezoid{A: -5000, B: 0, C: 10000, D: 30000}},
		{Name: "Large", Shape: fuzzy.Trapezoid{A: 60000, B: 80000, C: 150000, D: 150000}},
	}, fuzzy.WithLabel("Loan Amount"), fuzzy.WithUnit("$"))
	require.NoError(t, err)

	risk, err := fuzzy.NewVariable("risk", 0, 100, []fuzzy.Set{
		{Name: "Low", Shape: fuzzy.Trapezoid{A: 0, B: 0, C: 20, D: 40}},
		{Name: "Medium", Shape: fuzzy.Trapezoid{A: 30, B: 50, C: 50, D: 70}},
		{Name: "High", Shape: fuzzy.Trapezoid{A: 60, B: 80, C: 100, D: 100}},
	}, fuzzy.WithLabel("Risk"), fuzzy.WithUnit("%"))
	require.NoError(t, err)

	reg, err := fuzzy.NewRegistry(risk, income, loan)
	require.NoError(t, err)

	clause := func(v, s string) fuzzy.Clause { return fuzzy.Clause{Variable: v, Set: s} }
	engine, err := fuzzy.NewEngine(reg,
		fuzzy.Rule{
			Antecedents: []fuzzy.Clause{clause("income", "High"), clause("loanAmount", "Small")},
			Consequent:  clause("risk", "Low"),
			Description: "Wealthy applicant, small loan",
		},
		fuzzy.Rule{
			Antecedents: []fuzzy.Clause{clause("income", "Low"), clause("loanAmount", "Large")},
			Consequent:  clause("risk", "High"),
			Description: "High loan burden on low income",
		},
		fuzzy.Rule{
			Antecedents: []fuzzy.Clause{clause("income", "Low"), clause("loanAmount", "Small")},
			Consequent:  clause("risk", "Medium"),
		},
	)
	require.NoError(t, err)

	re, err := service.NewRiskEngine(engine)
	require.NoError(t, err)
	return re
}

func applicant(income, loan int64) dto.ApplicantRequest {
	return dto.ApplicantRequest{
		Age:         35,
		Income:      decimal.NewFromInt(income),
		LoanAmount:  decimal.NewFromInt(loan),
		Installment: decimal.NewFromInt(500),
		Dependents:  1,
	}
}
