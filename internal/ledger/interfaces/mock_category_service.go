package interfaces

import (
	"errors"

	"github.com/minarae/accountbook-backend/internal/ledger/application"
	"github.com/minarae/accountbook-backend/internal/ledger/domain"
)

type MockCategoryService struct {
	categories []domain.Category
	failWith   error
	shouldFail bool
}

func (m *MockCategoryService) CreateCategory(memberNo int, req application.CreateCategoryRequest) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &domain.Category{
		CategoryNo: len(m.categories) + 1,
		MemberNo:   &memberNo,
		Name:       req.Name,
		InOutType:  req.InOutType,
		ParentNo:   req.ParentNo,
		ClassName:  req.ClassName,
		SortOrder:  req.SortOrder,
	}, nil
}

func (m *MockCategoryService) UpdateCategory(memberNo, categoryNo int, req application.UpdateCategoryRequest) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &domain.Category{CategoryNo: categoryNo, MemberNo: &memberNo}, nil
}

func (m *MockCategoryService) DeleteCategory(memberNo, categoryNo int) (*domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &domain.Category{CategoryNo: categoryNo, MemberNo: &memberNo}, nil
}

func (m *MockCategoryService) ListCategories(memberNo int, inOutType string, parentNo *int) ([]domain.Category, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	return m.categories, nil
}
