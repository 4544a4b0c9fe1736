package application

import (
	"fmt"
	"time"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

const maxCategoryNameLength = 50

// CreateCategoryRequest carries the fields a member may set on a new
// category. SortOrder is taken as given; siblings are not renumbered.
type CreateCategoryRequest struct {
	Name      string  `json:"category_name"`
	InOutType string  `json:"inout_type"`
	ParentNo  *int    `json:"parent_no"`
	ClassName *string `json:"class_name"`
	SortOrder int     `json:"sort_order"`
}

// UpdateCategoryRequest patches a category. Nil fields are left untouched,
// so a field cannot be cleared through this request.
type UpdateCategoryRequest struct {
	Name      *string `json:"category_name"`
	InOutType *string `json:"inout_type"`
	ParentNo  *int    `json:"parent_no"`
	ClassName *string `json:"class_name"`
	SortOrder *int    `json:"sort_order"`
}

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

func validateCategoryName(name string) error {
	if len(name) == 0 || len(name) > maxCategoryNameLength {
		return ledgerErrors.NewValidationError(fmt.Sprintf("category name must be between 1 and %d characters", maxCategoryNameLength))
	}
	return nil
}

func (s *CategoryService) CreateCategory(memberNo int, req CreateCategoryRequest) (*domain.Category, error) {
	if err := validateCategoryName(req.Name); err != nil {
		return nil, err
	}
	if !domain.IsValidInOutType(req.InOutType) {
		return nil, ledgerErrors.NewValidationError("inout type must be 'income' or 'expense'")
	}

	category := &domain.Category{
		MemberNo:    &memberNo,
		Name:        req.Name,
		InOutType:   req.InOutType,
		HasChildren: false,
		ParentNo:    req.ParentNo,
		ClassName:   req.ClassName,
		SortOrder:   req.SortOrder,
	}
	if err := s.repo.Insert(category); err != nil {
		return nil, err
	}
	return category, nil
}

// fetchOwned loads a live category and checks the caller owns it.
func (s *CategoryService) fetchOwned(memberNo, categoryNo int) (*domain.Category, error) {
	category, err := s.repo.FindByNo(categoryNo)
	if err != nil {
		return nil, err
	}
	if !category.OwnedBy(memberNo) {
		return nil, ledgerErrors.ErrForbidden
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(memberNo, categoryNo int, req UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.fetchOwned(memberNo, categoryNo)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateCategoryName(*req.Name); err != nil {
			return nil, err
		}
		category.Name = *req.Name
	}
	if req.InOutType != nil {
		if !domain.IsValidInOutType(*req.InOutType) {
			return nil, ledgerErrors.NewValidationError("inout type must be 'income' or 'expense'")
		}
		category.InOutType = *req.InOutType
	}
	if req.ParentNo != nil {
		category.ParentNo = req.ParentNo
	}
	if req.ClassName != nil {
		category.ClassName = req.ClassName
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}

	category.UpdatedAt = time.Now()
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes one category. Children and detail lines that
// reference it are left untouched; they simply stop resolving through list.
func (s *CategoryService) DeleteCategory(memberNo, categoryNo int) (*domain.Category, error) {
	category, err := s.fetchOwned(memberNo, categoryNo)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	category.IsDeleted = true
	category.DeletedAt = &now
	category.UpdatedAt = now
	if err := s.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns the member's live categories for one direction,
// root categories when parentNo is nil, otherwise the direct children of
// parentNo. Ordered by sort_order then category number.
func (s *CategoryService) ListCategories(memberNo int, inOutType string, parentNo *int) ([]domain.Category, error) {
	if !domain.IsValidInOutType(inOutType) {
		return nil, ledgerErrors.NewValidationError("inout type must be 'income' or 'expense'")
	}

	categories, err := s.repo.FindByMember(memberNo, inOutType, parentNo)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

// GetCategoryNos returns the flat set of category numbers the member owns,
// regardless of tree position.
func (s *CategoryService) GetCategoryNos(memberNo int) ([]int, error) {
	return s.repo.FindNosByMember(memberNo)
}
