package member

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minarae/accountbook-backend/internal/auth"
)

func newHandlerFixture(t *testing.T) (*Handler, Service) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	service, _, _ := newServiceFixture()
	return NewHandler(service, auth.NewJWTManager()), service
}

func registerTestMember(t *testing.T, service Service) *Member {
	t.Helper()
	member, err := service.Register("newuser", "Str0ngPassword!", "New User", "new@example.com")
	assert.NoError(t, err)
	return member
}

func claimsRequest(method, target string, memberNo int, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), auth.ClaimsContextKey, &auth.Claims{
		MemberNo: memberNo,
		MemberID: "newuser",
	})
	return req.WithContext(ctx)
}

func TestHandleRegister_Success(t *testing.T) {
	handler, _ := newHandlerFixture(t)

	body := strings.NewReader(`{
		"member_id": "newuser",
		"member_pw": "Str0ngPassword!",
		"member_name": "New User",
		"member_email": "new@example.com"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/members/create", body)
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)

	var response struct {
		Status string `json:"status"`
		Data   struct {
			MemberNo int `json:"member_no"`
		} `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "success", response.Status)
	assert.NotZero(t, response.Data.MemberNo)
}

func TestHandleRegister_DuplicateLogin(t *testing.T) {
	handler, service := newHandlerFixture(t)
	registerTestMember(t, service)

	body := strings.NewReader(`{
		"member_id": "newuser",
		"member_pw": "OtherPassword!",
		"member_name": "Other User",
		"member_email": "other@example.com"
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/members/create", body)
	w := httptest.NewRecorder()

	handler.HandleRegister(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusConflict, res.StatusCode)
}

func TestHandleLogin_IssuesTokens(t *testing.T) {
	handler, service := newHandlerFixture(t)
	registerTestMember(t, service)

	body := strings.NewReader(`{"member_id": "newuser", "member_pw": "Str0ngPassword!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/members/login", body)
	w := httptest.NewRecorder()

	handler.HandleLogin(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		MemberNo     int    `json:"member_no"`
		MemberID     string `json:"member_id"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.NotZero(t, response.MemberNo)
	assert.Equal(t, "newuser", response.MemberID)
	assert.NotEmpty(t, response.AccessToken)
	assert.NotEmpty(t, response.RefreshToken)
}

func TestHandleLogin_WrongPassword(t *testing.T) {
	handler, service := newHandlerFixture(t)
	registerTestMember(t, service)

	body := strings.NewReader(`{"member_id": "newuser", "member_pw": "WrongPassword"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/members/login", body)
	w := httptest.NewRecorder()

	handler.HandleLogin(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHandleRefreshToken_Success(t *testing.T) {
	handler, service := newHandlerFixture(t)
	member := registerTestMember(t, service)

	req := claimsRequest(http.MethodPut, "/api/refresh/token", member.MemberNo, nil)
	w := httptest.NewRecorder()

	handler.HandleRefreshToken(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		AccessToken string `json:"access_token"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.NotEmpty(t, response.AccessToken)
}

func TestHandleRefreshToken_UnsubscribedMember(t *testing.T) {
	handler, service := newHandlerFixture(t)
	member := registerTestMember(t, service)
	assert.NoError(t, service.Unsubscribe(member.MemberNo))

	req := claimsRequest(http.MethodPut, "/api/refresh/token", member.MemberNo, nil)
	w := httptest.NewRecorder()

	handler.HandleRefreshToken(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHandleModify_Success(t *testing.T) {
	handler, service := newHandlerFixture(t)
	member := registerTestMember(t, service)

	body := strings.NewReader(`{"member_name": "Renamed User"}`)
	req := claimsRequest(http.MethodPut, "/api/members/modify", member.MemberNo, body)
	w := httptest.NewRecorder()

	handler.HandleModify(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data Member `json:"data"`
	}
	err := json.NewDecoder(res.Body).Decode(&response)
	assert.NoError(t, err)
	assert.Equal(t, "Renamed User", response.Data.MemberName)
	assert.Equal(t, "new@example.com", response.Data.MemberEmail)
}

func TestHandleUnsubscribe_Accepted(t *testing.T) {
	handler, service := newHandlerFixture(t)
	member := registerTestMember(t, service)

	req := claimsRequest(http.MethodPost, "/api/members/unsubscribing", member.MemberNo, nil)
	w := httptest.NewRecorder()

	handler.HandleUnsubscribe(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusAccepted, res.StatusCode)

	_, err := service.GetMemberByNo(member.MemberNo)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
