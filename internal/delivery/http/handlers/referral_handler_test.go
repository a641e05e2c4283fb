package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/LavaJover/shvark-referral-service/internal/domain"
	registrationdto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/registration"
	reportdto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/report"
	transactiondto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/transaction"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRegistration struct {
	account *domain.Account
	err     error
}

func (s *stubRegistration) Register(ctx context.Context, input *registrationdto.RegisterInput) (*domain.Account, error) {
	return s.account, s.err
}

func (s *stubRegistration) Login(ctx context.Context, email string) (*domain.Account, error) {
	return s.account, s.err
}

type stubDistribution struct {
	result *domain.DistributionResult
	report *reportdto.ReferralReportOutput
	err    error
}

func (s *stubDistribution) Distribute(ctx context.Context, input *transactiondto.SubmitTransactionInput) (*domain.DistributionResult, error) {
	return s.result, s.err
}

func (s *stubDistribution) GetReferralReport(ctx context.Context, accountID string) (*reportdto.ReferralReportOutput, error) {
	return s.report, s.err
}

func (s *stubDistribution) GetEarnings(ctx context.Context, accountID string) ([]*domain.EarningRecord, error) {
	return nil, s.err
}

func (s *stubDistribution) GetTransactions(ctx context.Context, accountID string) ([]*domain.Transaction, error) {
	return nil, s.err
}

func (s *stubDistribution) GetTransactionEarning(ctx context.Context, externalID string) (*domain.EarningRecord, error) {
	return nil, s.err
}

func (s *stubDistribution) StartIntakeWorker(ctx context.Context) {}

func postJSON(t *testing.T, handler http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestRegisterHandlerStatuses(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest},
		{"invalid code", domain.ErrInvalidReferralCode, http.StatusBadRequest},
		{"referral limit", domain.ErrReferralLimitExceeded, http.StatusBadRequest},
		{"ok", nil, http.StatusCreated},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			registration := &stubRegistration{err: ts.err}
			if ts.err == nil {
				registration.account = &domain.Account{ID: "acc-1", Email: "a@b.c", Name: "A", ReferralCode: "CODE0001"}
			}
			handler := NewReferralHandler(registration, &stubDistribution{}, nil, zap.NewNop())

			rec := postJSON(t, handler, "/api/users/register", map[string]string{
				"email": "a@b.c", "name": "A",
			})
			require.Equal(t, ts.expected, rec.Code)
		})
	}
}

func TestRegisterHandlerRejectsMissingFields(t *testing.T) {
	handler := NewReferralHandler(&stubRegistration{}, &stubDistribution{}, nil, zap.NewNop())

	rec := postJSON(t, handler, "/api/users/register", map[string]string{"email": "a@b.c"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitTransactionHandler(t *testing.T) {
	distribution := &stubDistribution{
		result: &domain.DistributionResult{
			Transaction: &domain.Transaction{
				ID: "id-1", ExternalID: "txn-1", AccountID: "acc-1", Value: 2000,
			},
			Payouts: []domain.PayoutEvent{{RecipientID: "ref-1", Kind: domain.PayoutDirect, Amount: 100}},
		},
	}
	handler := NewReferralHandler(&stubRegistration{}, distribution, nil, zap.NewNop())

	rec := postJSON(t, handler, "/api/transactions", map[string]any{
		"userId": "acc-1", "transactionId": "txn-1", "transactionValue": 2000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Message             string `json:"message"`
		EarningsDistributed bool   `json:"earningsDistributed"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Transaction recorded and earnings distributed", resp.Message)
	require.True(t, resp.EarningsDistributed)
}

func TestSubmitTransactionHandlerBelowThreshold(t *testing.T) {
	distribution := &stubDistribution{result: &domain.DistributionResult{BelowThreshold: true}}
	handler := NewReferralHandler(&stubRegistration{}, distribution, nil, zap.NewNop())

	rec := postJSON(t, handler, "/api/transactions", map[string]any{
		"userId": "acc-1", "transactionId": "txn-1", "transactionValue": 500,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Transaction below threshold. No earnings distributed.", resp.Message)
}

func TestSubmitTransactionHandlerErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"unknown account", domain.ErrAccountNotFound, http.StatusNotFound},
		{"duplicate txn", domain.ErrDuplicateTransactionID, http.StatusConflict},
	}

	for _, ts := range tests {
		t.Run(ts.name, func(t *testing.T) {
			handler := NewReferralHandler(&stubRegistration{}, &stubDistribution{err: ts.err}, nil, zap.NewNop())
			rec := postJSON(t, handler, "/api/transactions", map[string]any{
				"userId": "acc-1", "transactionId": "txn-1", "transactionValue": 2000,
			})
			require.Equal(t, ts.expected, rec.Code)
		})
	}
}

func TestReferralReportHandler(t *testing.T) {
	distribution := &stubDistribution{
		report: &reportdto.ReferralReportOutput{AccountID: "acc-1", Name: "A", ReferralCode: "CODE0001"},
	}
	handler := NewReferralHandler(&stubRegistration{}, distribution, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/users/acc-1/referral-report", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report reportdto.ReferralReportOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.Equal(t, "acc-1", report.AccountID)
}

func TestEarningsHandlerUnknownAccount(t *testing.T) {
	handler := NewReferralHandler(&stubRegistration{}, &stubDistribution{err: domain.ErrAccountNotFound}, nil, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/users/ghost/earnings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
