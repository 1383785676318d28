package grpc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/application/usecase"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/service"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/domain/valueobject"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/internal/infrastructure/ruleset"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/events"
	"github.com/akulaahhhh/Loan-Risk-Evaluator/pkg/fuzzy"
)

// --- Mock implementations ---

type mockEventPublisher struct {
	published  []events.DomainEvent
	publishErr error
}

func (m *mockEventPublisher) Publish(_ context.Context, evts ...events.DomainEvent) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.published = append(m.published, evts...)
	return nil
}

// --- Helpers ---

func newTestHandler(t *testing.T, publisher *mockEventPublisher) *RiskServiceHandler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	rs, err := ruleset.Default()
	require.NoError(t, err)
	engine, err := service.NewRiskEngine(rs.Engine)
	require.NoError(t, err)

	return NewRiskServiceHandler(
		usecase.NewAssessApplicant(engine, publisher, nil, logger),
		usecase.NewListRules(engine),
		usecase.NewDescribeVariables(engine),
		logger,
	)
}

func safeApplicant() *ApplicantMsg {
	return &ApplicantMsg{
		Age:         40,
		Income:      "8000",
		CoIncome:    "0",
		LoanAmount:  "5000",
		Installment: "500",
		Dependents:  0,
	}
}

func overextendedApplicant() *ApplicantMsg {
	return &ApplicantMsg{
		ApplicantID: uuid.NewString(),
		Age:         40,
		Income:      "2000.00",
		LoanAmount:  "100000",
		Installment: "500",
	}
}

// --- Tests ---

func TestAssessApplicant(t *testing.T) {
	t.Run("safe applicant is approved", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		h := newTestHandler(t, publisher)

		resp, err := h.AssessApplicant(context.Background(), &AssessApplicantRequest{Applicant: safeApplicant()})
		require.NoError(t, err)
		require.NotNil(t, resp.Assessment)

		a := resp.Assessment
		assert.InDelta(t, 466.5/29.5, a.Score, 1e-9)
		assert.Equal(t, "LOW", a.RiskLevel)
		assert.Equal(t, "Low Risk", a.RiskLabel)
		assert.Equal(t, "APPROVE", a.Decision)
		assert.Len(t, a.RuleStrengths, 61)
		require.Len(t, a.ActiveRules, 1)
		assert.Equal(t, int32(6), a.ActiveRules[0].Index)
		assert.Len(t, a.ActiveRules[0].Antecedents, 3)
		assert.Len(t, a.AggregatedCurve, 101)
		require.Contains(t, a.Fuzzified, "age")
		assert.Equal(t, 1.0, a.Fuzzified["age"].Degrees["Adult"])
		assert.NotEmpty(t, a.AssessedAt)
		assert.Len(t, publisher.published, 1)
	})

	t.Run("overextended applicant is declined", func(t *testing.T) {
		publisher := &mockEventPublisher{}
		h := newTestHandler(t, publisher)
		req := &AssessApplicantRequest{Applicant: overextendedApplicant()}

		resp, err := h.AssessApplicant(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, req.Applicant.ApplicantID, resp.Assessment.ApplicantID)
		assert.Equal(t, "HIGH", resp.Assessment.RiskLevel)
		assert.Equal(t, "High Risk", resp.Assessment.RiskLabel)
		assert.Equal(t, "DECLINE", resp.Assessment.Decision)
		assert.Len(t, publisher.published, 2)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		h := newTestHandler(t, &mockEventPublisher{})

		tests := []struct {
			name string
			req  *AssessApplicantRequest
		}{
			{"nil request", nil},
			{"missing applicant", &AssessApplicantRequest{}},
			{"bad applicant id", &AssessApplicantRequest{Applicant: &ApplicantMsg{ApplicantID: "nope", Age: 30}}},
			{"bad income", &AssessApplicantRequest{Applicant: &ApplicantMsg{Age: 30, Income: "lots"}}},
			{"negative loan", &AssessApplicantRequest{Applicant: &ApplicantMsg{Age: 30, LoanAmount: "-1"}}},
			{"zero age", &AssessApplicantRequest{Applicant: &ApplicantMsg{Income: "100"}}},
			{"income with huge exponent", &AssessApplicantRequest{Applicant: &ApplicantMsg{Age: 30, Income: "1e20000000"}}},
			{"income beyond float range", &AssessApplicantRequest{Applicant: &ApplicantMsg{Age: 30, Income: "1e400"}}},
			{"installment with tiny exponent", &AssessApplicantRequest{Applicant: &ApplicantMsg{Age: 30, Installment: "1e-20000000"}}},
			{"loan above maximum", &AssessApplicantRequest{Applicant: &ApplicantMsg{Age: 30, LoanAmount: "1000000000001"}}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				start := time.Now()
				_, err := h.AssessApplicant(context.Background(), tt.req)
				require.Error(t, err)
				assert.Equal(t, codes.InvalidArgument, status.Code(err))
				assert.Less(t, time.Since(start), time.Second)
			})
		}
	})

	t.Run("publisher failure is internal", func(t *testing.T) {
		h := newTestHandler(t, &mockEventPublisher{publishErr: errors.New("broker down")})

		_, err := h.AssessApplicant(context.Background(), &AssessApplicantRequest{Applicant: safeApplicant()})
		require.Error(t, err)
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.NotContains(t, err.Error(), "broker down")
	})
}

func TestListRules(t *testing.T) {
	h := newTestHandler(t, &mockEventPublisher{})

	resp, err := h.ListRules(context.Background(), &ListRulesRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Rules, 61)
	assert.False(t, resp.Evaluated)
	assert.Equal(t, "IF loanAmount is Small AND income is Low AND installment is Low THEN risk is Medium", resp.Rules[0].Text)
	assert.Equal(t, &ClauseMsg{Variable: "risk", Set: "Medium"}, resp.Rules[0].Consequent)
	assert.Nil(t, resp.Rules[0].Strength)

	resp, err = h.ListRules(context.Background(), &ListRulesRequest{Applicant: overextendedApplicant()})
	require.NoError(t, err)
	assert.True(t, resp.Evaluated)
	active := 0
	for _, r := range resp.Rules {
		require.NotNil(t, r.Strength)
		if r.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
	assert.True(t, resp.Rules[18].Active)

	_, err = h.ListRules(context.Background(), &ListRulesRequest{Applicant: &ApplicantMsg{Age: -1}})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestDescribeVariables(t *testing.T) {
	h := newTestHandler(t, &mockEventPublisher{})

	resp, err := h.DescribeVariables(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, resp.Variables, 7)
	assert.Equal(t, "age", resp.Variables[0].Name)
	assert.Equal(t, "Applicant Age", resp.Variables[0].Label)
	assert.Equal(t, []float64{18, 18, 25, 30}, resp.Variables[0].Sets[0].Points)
	assert.True(t, resp.Variables[6].Output)
	assert.Nil(t, resp.Variables[0].Value)

	resp, err = h.DescribeVariables(context.Background(), &DescribeVariablesRequest{Applicant: safeApplicant()})
	require.NoError(t, err)
	age := resp.Variables[0]
	require.NotNil(t, age.Value)
	assert.Equal(t, 40.0, *age.Value)
	require.NotNil(t, age.Sets[1].Degree)
	assert.Equal(t, 1.0, *age.Sets[1].Degree)
	require.NotNil(t, resp.Variables[6].Value)
	assert.InDelta(t, 466.5/29.5, *resp.Variables[6].Value, 1e-9)
}

func TestToStatus(t *testing.T) {
	h := newTestHandler(t, &mockEventPublisher{})

	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"invalid profile", fmt.Errorf("wrap: %w", valueobject.ErrInvalidProfile), codes.InvalidArgument},
		{"non-finite input", fmt.Errorf("failed to evaluate applicant: %w", fuzzy.ErrNonFiniteInput), codes.InvalidArgument},
		{"missing input", fmt.Errorf("failed to evaluate applicant: %w", fuzzy.ErrMissingInput), codes.InvalidArgument},
		{"anything else", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, status.Code(h.toStatus(context.Background(), "assess applicant", tt.err)))
		})
	}
}
