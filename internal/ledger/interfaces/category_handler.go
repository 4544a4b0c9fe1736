package interfaces

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/minarae/accountbook-backend/internal/auth"
	"github.com/minarae/accountbook-backend/internal/ledger/application"
	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

type CategoryServiceInterface interface {
	CreateCategory(memberNo int, req application.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(memberNo, categoryNo int, req application.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(memberNo, categoryNo int) (*domain.Category, error)
	ListCategories(memberNo int, inOutType string, parentNo *int) ([]domain.Category, error)
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		panic("Service and response functions must not be nil")
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) GetCategoryList(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	inOutType := r.URL.Query().Get("type")
	if !domain.IsValidInOutType(inOutType) {
		h.respondError(w, http.StatusBadRequest, "Invalid inout type")
		return
	}

	var parentNo *int
	if parentNoStr := r.URL.Query().Get("parent_no"); parentNoStr != "" {
		no, err := strconv.Atoi(parentNoStr)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid parent number")
			return
		}
		parentNo = &no
	}

	categories, err := h.service.ListCategories(claims.MemberNo, inOutType, parentNo)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to retrieve categories")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Categories retrieved successfully.",
		"categories": categories,
	})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req application.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.CreateCategory(claims.MemberNo, req)
	if err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully created.",
		"data":    category,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categoryNo, err := strconv.Atoi(r.PathValue("categoryNo"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category number")
		return
	}

	var req application.UpdateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	category, err := h.service.UpdateCategory(claims.MemberNo, categoryNo, req)
	if err != nil {
		if ledgerErrors.IsValidationError(err) || errors.Is(err, ledgerErrors.ErrCategoryNotFound) ||
			errors.Is(err, ledgerErrors.ErrForbidden) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully updated.",
		"data":    category,
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.MemberFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categoryNo, err := strconv.Atoi(r.PathValue("categoryNo"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid category number")
		return
	}

	if _, err := h.service.DeleteCategory(claims.MemberNo, categoryNo); err != nil {
		if errors.Is(err, ledgerErrors.ErrCategoryNotFound) || errors.Is(err, ledgerErrors.ErrForbidden) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully deleted.",
	})
}
