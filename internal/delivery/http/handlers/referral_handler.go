package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LavaJover/shvark-referral-service/internal/delivery/http/dto/request"
	"github.com/LavaJover/shvark-referral-service/internal/delivery/http/dto/response"
	"github.com/LavaJover/shvark-referral-service/internal/delivery/http/middleware"
	"github.com/LavaJover/shvark-referral-service/internal/domain"
	"github.com/LavaJover/shvark-referral-service/internal/usecase"
	"github.com/LavaJover/shvark-referral-service/internal/usecase/referral"
	registrationdto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/registration"
	transactiondto "github.com/LavaJover/shvark-referral-service/internal/usecase/dto/transaction"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type WSAttacher interface {
	ServeWS(w http.ResponseWriter, r *http.Request)
}

type ReferralHandler struct {
	router 		 *mux.Router
	registration usecase.RegistrationUsecase
	distribution referral.DistributionUsecase
	hub 		 WSAttacher
	logger 		 *zap.Logger
}

func NewReferralHandler(
	registration usecase.RegistrationUsecase,
	distribution referral.DistributionUsecase,
	hub WSAttacher,
	logger *zap.Logger) *ReferralHandler {

	router := mux.NewRouter()
	handler := &ReferralHandler{router, registration, distribution, hub, logger}

	router.Use(middleware.MiddlewareLog())
	router.HandleFunc("/api/users/register", handler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/users/login", handler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/transactions", handler.SubmitTransactionHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/users/{id}/referral-report", handler.ReferralReportHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}/earnings", handler.EarningsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/users/{id}/transactions", handler.TransactionsHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/transactions/{id}/earning", handler.TransactionEarningHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	if hub != nil {
		router.HandleFunc("/ws", hub.ServeWS)
	}

	return handler
}

func (h *ReferralHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *ReferralHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if req.Email == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "email and name are required")
		return
	}

	account, err := h.registration.Register(r.Context(), &registrationdto.RegisterInput{
		Email: req.Email,
		Name: req.Name,
		Password: req.Password,
		ReferredBy: req.ReferredBy,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			writeError(w, http.StatusBadRequest, "Email already exists")
		case errors.Is(err, domain.ErrInvalidReferralCode):
			writeError(w, http.StatusBadRequest, "Invalid referral code")
		case errors.Is(err, domain.ErrReferralLimitExceeded):
			writeError(w, http.StatusBadRequest, "Referrer has reached max 8 direct referrals")
		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("registration storage failure", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "Storage unavailable")
		default:
			h.logger.Error("registration failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, response.RegisterResponse{
		Message: "User registered",
		User: toAccountResponse(account),
	})
}

func (h *ReferralHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	account, err := h.registration.Login(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, response.LoginResponse{
		Message: "Login successful",
		User: toAccountResponse(account),
	})
}

func (h *ReferralHandler) SubmitTransactionHandler(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if req.UserID == "" || req.TransactionID == "" {
		writeError(w, http.StatusBadRequest, "userId and transactionId are required")
		return
	}

	result, err := h.distribution.Distribute(r.Context(), &transactiondto.SubmitTransactionInput{
		AccountID: req.UserID,
		TransactionID: req.TransactionID,
		Value: req.TransactionValue,
		ItemID: req.ItemID,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAccountNotFound):
			writeError(w, http.StatusNotFound, "User not found")
		case errors.Is(err, domain.ErrDuplicateTransactionID):
			writeError(w, http.StatusConflict, "Transaction already exists")
		case errors.Is(err, domain.ErrStorageUnavailable):
			h.logger.Error("transaction storage failure", zap.Error(err))
			writeError(w, http.StatusServiceUnavailable, "Storage unavailable")
		default:
			h.logger.Error("transaction processing failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Error processing transaction")
		}
		return
	}

	if result.BelowThreshold {
		writeJSON(w, http.StatusOK, response.SubmitTransactionResponse{
			Message: "Transaction below threshold. No earnings distributed.",
		})
		return
	}

	transaction := result.Transaction
	writeJSON(w, http.StatusCreated, response.SubmitTransactionResponse{
		Message: "Transaction recorded and earnings distributed",
		Transaction: &response.TransactionResponse{
			ID: transaction.ID,
			TransactionID: transaction.ExternalID,
			UserID: transaction.AccountID,
			Value: transaction.Value.Float64(),
			ItemID: transaction.ItemID,
			CreatedAt: transaction.CreatedAt,
		},
		EarningsDistributed: len(result.Payouts) > 0,
	})
}

func (h *ReferralHandler) ReferralReportHandler(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	report, err := h.distribution.GetReferralReport(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("referral report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *ReferralHandler) EarningsHandler(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	records, err := h.distribution.GetEarnings(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("earnings query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	out := make([]response.EarningRecordResponse, len(records))
	for i, record := range records {
		out[i] = toEarningResponse(record)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReferralHandler) TransactionsHandler(w http.ResponseWriter, r *http.Request) {
	accountID := mux.Vars(r)["id"]

	transactions, err := h.distribution.GetTransactions(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("transactions query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	out := make([]response.TransactionResponse, len(transactions))
	for i, transaction := range transactions {
		out[i] = response.TransactionResponse{
			ID: transaction.ID,
			TransactionID: transaction.ExternalID,
			UserID: transaction.AccountID,
			Value: transaction.Value.Float64(),
			ItemID: transaction.ItemID,
			CreatedAt: transaction.CreatedAt,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *ReferralHandler) TransactionEarningHandler(w http.ResponseWriter, r *http.Request) {
	externalID := mux.Vars(r)["id"]

	record, err := h.distribution.GetTransactionEarning(r.Context(), externalID)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			writeError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.logger.Error("transaction earning query failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	writeJSON(w, http.StatusOK, toEarningResponse(record))
}

func toEarningResponse(record *domain.EarningRecord) response.EarningRecordResponse {
	return response.EarningRecordResponse{
		ID: record.ID,
		TransactionID: record.TransactionID,
		UserID: record.AccountID,
		TransactionValue: record.TransactionValue.Float64(),
		DirectReferrerID: record.DirectReferrerID,
		DirectReferralEarning: record.DirectReferralEarning.Float64(),
		IndirectReferrerID: record.IndirectReferrerID,
		IndirectReferralEarning: record.IndirectReferralEarning.Float64(),
		CreatedAt: record.CreatedAt,
	}
}

func toAccountResponse(account *domain.Account) response.AccountResponse {
	return response.AccountResponse{
		ID: account.ID,
		Email: account.Email,
		Name: account.Name,
		ReferralCode: account.ReferralCode,
		ReferredBy: account.ReferredBy,
		TotalEarnings: account.TotalEarnings.Float64(),
		CreatedAt: account.CreatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, response.ErrorResponse{Message: message})
}
