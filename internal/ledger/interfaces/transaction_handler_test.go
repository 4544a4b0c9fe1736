package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

func TestCreateTransaction_Success(t *testing.T) {
	body := strings.NewReader(`{
		"std_date": "2024-03-15",
		"opponent_name": "Corner Store",
		"detail_list": [
			{"detail_contents": "Milk and bread", "amounts": 5400, "inout_type": "expense", "category_no": 3}
		]
	}`)
	req := authedRequest(http.MethodPost, "/api/account/create", body)
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		Status string `json:"status"`
		Data   struct {
			AccountLogNo int `json:"account_log_no"`
			DetailList   []struct {
				Contents string `json:"detail_contents"`
				Amount   int64  `json:"amounts"`
			} `json:"detail_list"`
		} `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.Equal(t, 1, response.Data.AccountLogNo)
	assert.Equal(t, 1, len(response.Data.DetailList))
	assert.Equal(t, int64(5400), response.Data.DetailList[0].Amount)
}

func TestCreateTransaction_InvalidDate(t *testing.T) {
	body := strings.NewReader(`{"std_date": "15-03-2024", "opponent_name": "Corner Store"}`)
	req := authedRequest(http.MethodPost, "/api/account/create", body)
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid std date format", response["message"])
}

func TestCreateTransaction_MissingOpponentName(t *testing.T) {
	body := strings.NewReader(`{"std_date": "2024-03-15"}`)
	req := authedRequest(http.MethodPost, "/api/account/create", body)
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestCreateTransaction_InvalidCategory(t *testing.T) {
	body := strings.NewReader(`{
		"std_date": "2024-03-15",
		"opponent_name": "Corner Store",
		"detail_list": [{"detail_contents": "Milk", "amounts": 5400, "inout_type": "expense", "category_no": 999}]
	}`)
	req := authedRequest(http.MethodPost, "/api/account/create", body)
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{failWith: ledgerErrors.ErrInvalidCategory}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, ledgerErrors.ErrInvalidCategory.Error(), response["message"])
}

func TestCreateTransaction_MissingClaims(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/account/create", strings.NewReader(`{}`))
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestUpdateTransaction_Success(t *testing.T) {
	body := strings.NewReader(`{"opponent_name": "Supermarket"}`)
	req := authedRequest(http.MethodPut, "/api/account/modify/5", body)
	req.SetPathValue("accountNo", "5")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			AccountLogNo int `json:"account_log_no"`
		} `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, 5, response.Data.AccountLogNo)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	body := strings.NewReader(`{"opponent_name": "Supermarket"}`)
	req := authedRequest(http.MethodPut, "/api/account/modify/42", body)
	req.SetPathValue("accountNo", "42")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{failWith: ledgerErrors.ErrTransactionNotFound}, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteTransaction_Success(t *testing.T) {
	req := authedRequest(http.MethodDelete, "/api/account/5", nil)
	req.SetPathValue("accountNo", "5")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestDeleteTransaction_Forbidden(t *testing.T) {
	req := authedRequest(http.MethodDelete, "/api/account/5", nil)
	req.SetPathValue("accountNo", "5")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{failWith: ledgerErrors.ErrForbidden}, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDeleteTransaction_InvalidPathParam(t *testing.T) {
	req := authedRequest(http.MethodDelete, "/api/account/abc", nil)
	req.SetPathValue("accountNo", "abc")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetTransaction_Success(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/account/9", nil)
	req.SetPathValue("accountNo", "9")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			AccountLogNo int `json:"account_log_no"`
		} `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, 9, response.Data.AccountLogNo)
}
