package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/minarae/accountbook-backend/internal/auth"
	"github.com/minarae/accountbook-backend/internal/ledger/application"
	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

const stdDateLayout = "2006-01-02"

type TransactionServiceInterface interface {
	CreateTransaction(memberNo int, req application.CreateTransactionRequest) (*domain.TransactionLog, error)
	UpdateTransaction(memberNo, accountLogNo int, req application.UpdateTransactionRequest) (*domain.TransactionLog, error)
	DeleteTransaction(memberNo, accountLogNo int) error
	GetTransaction(memberNo, accountLogNo int) (*domain.TransactionLog, error)
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// createTransactionPayload is the wire shape; std_date arrives as a plain
// calendar date.
type createTransactionPayload struct {
	StdDate      string                      `json:"std_date"`
	OpponentName string                      `json:"opponent_name"`
	DetailList   []application.DetailRequest `json:"detail_list"`
}

type updateTransactionPayload struct {
	StdDate      *string                     `json:"std_date"`
	OpponentName *string                     `json:"opponent_name"`
	DetailList   []application.DetailRequest `json:"detail_list"`
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var payload createTransactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	stdDate, err := time.Parse(stdDateLayout, payload.StdDate)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid std date format")
		return
	}
	if payload.OpponentName == "" {
		h.respondError(w, http.StatusBadRequest, "Opponent name is required")
		return
	}

	transactionLog, err := h.service.CreateTransaction(claims.MemberNo, application.CreateTransactionRequest{
		StdDate:      stdDate,
		OpponentName: payload.OpponentName,
		DetailList:   payload.DetailList,
	})
	if err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transactionLog,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accountLogNo, err := strconv.Atoi(r.PathValue("accountNo"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account log number")
		return
	}

	var payload updateTransactionPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req := application.UpdateTransactionRequest{
		OpponentName: payload.OpponentName,
		DetailList:   payload.DetailList,
	}
	if payload.StdDate != nil {
		stdDate, err := time.Parse(stdDateLayout, *payload.StdDate)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid std date format")
			return
		}
		req.StdDate = &stdDate
	}

	transactionLog, err := h.service.UpdateTransaction(claims.MemberNo, accountLogNo, req)
	if err != nil {
		if ledgerErrors.IsValidationError(err) || errors.Is(err, ledgerErrors.ErrTransactionNotFound) ||
			errors.Is(err, ledgerErrors.ErrForbidden) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    transactionLog,
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accountLogNo, err := strconv.Atoi(r.PathValue("accountNo"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account log number")
		return
	}

	if err := h.service.DeleteTransaction(claims.MemberNo, accountLogNo); err != nil {
		if errors.Is(err, ledgerErrors.ErrTransactionNotFound) || errors.Is(err, ledgerErrors.ErrForbidden) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accountLogNo, err := strconv.Atoi(r.PathValue("accountNo"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid account log number")
		return
	}

	transactionLog, err := h.service.GetTransaction(claims.MemberNo, accountLogNo)
	if err != nil {
		if errors.Is(err, ledgerErrors.ErrTransactionNotFound) || errors.Is(err, ledgerErrors.ErrForbidden) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction retrieved successfully.",
		"data":    transactionLog,
	})
}
