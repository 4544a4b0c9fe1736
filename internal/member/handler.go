package member

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/minarae/accountbook-backend/internal/auth"
)

type Handler struct {
	memberService Service
	jwtManager    auth.JWTManagerInterface
}

func NewHandler(memberService Service, jwtManager auth.JWTManagerInterface) *Handler {
	return &Handler{
		memberService: memberService,
		jwtManager:    jwtManager,
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		log.Printf("JSON encoding error: %v", err)
		return
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	})
}

func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID    string `json:"member_id"`
		MemberPW    string `json:"member_pw"`
		MemberName  string `json:"member_name"`
		MemberEmail string `json:"member_email"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberService.Register(req.MemberID, req.MemberPW, req.MemberName, req.MemberEmail)
	if err != nil {
		if errors.Is(err, ErrLoginAlreadyExists) {
			respondError(w, http.StatusConflict, err.Error())
			return
		} else if errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrLoginLength) ||
			errors.Is(err, ErrNameLength) || errors.Is(err, ErrEmailLength) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not register member")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data": map[string]interface{}{
			"member_no": member.MemberNo,
		},
	})
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberID string `json:"member_id"`
		MemberPW string `json:"member_pw"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberService.Login(req.MemberID, req.MemberPW)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) || errors.Is(err, ErrInvalidPassword) {
			respondError(w, http.StatusUnauthorized, "Invalid login id or password")
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not log in")
		return
	}

	accessToken, err := h.jwtManager.GenerateAccessToken(member.MemberNo, member.MemberID,
		member.MemberName, member.MemberEmail, auth.DefaultAccessTokenDuration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}
	refreshToken, err := h.jwtManager.GenerateRefreshToken(member.MemberNo, member.MemberID,
		auth.DefaultRefreshTokenDuration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"member_no":     member.MemberNo,
		"member_id":     member.MemberID,
		"member_name":   member.MemberName,
		"member_email":  member.MemberEmail,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *Handler) HandleRefreshToken(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	// The member may have unsubscribed since the refresh token was issued.
	member, err := h.memberService.GetMemberByNo(claims.MemberNo)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			respondError(w, http.StatusUnauthorized, ErrMemberNotFound.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, ErrInternalError.Error())
		return
	}

	accessToken, err := h.jwtManager.GenerateAccessToken(member.MemberNo, member.MemberID,
		member.MemberName, member.MemberEmail, auth.DefaultAccessTokenDuration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"access_token": accessToken,
	})
}

func (h *Handler) HandleModify(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req ModifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	member, err := h.memberService.Modify(claims.MemberNo, req)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		} else if errors.Is(err, ErrInvalidEmail) || errors.Is(err, ErrNameLength) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not modify member")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   member,
	})
}

func (h *Handler) HandleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := h.memberService.Unsubscribe(claims.MemberNo); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "Could not unsubscribe member")
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status": "success",
	})
}
