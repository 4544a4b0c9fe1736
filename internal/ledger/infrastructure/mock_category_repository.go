package infrastructure

import (
	"sort"
	"sync"
	"time"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

// MockCategoryRepository is an in-memory stand-in for the SQL repository.
// Inserts may run concurrently (the seeder fans out), so access is locked.
type MockCategoryRepository struct {
	mu         sync.Mutex
	nextNo     int
	Categories []domain.Category
	FailInsert bool
}

func (m *MockCategoryRepository) Insert(category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailInsert {
		return ledgerErrors.NewValidationError("insert failed")
	}

	m.nextNo++
	category.CategoryNo = m.nextNo
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	m.Categories = append(m.Categories, *category)
	return nil
}

func (m *MockCategoryRepository) FindByNo(categoryNo int) (*domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, category := range m.Categories {
		if category.CategoryNo == categoryNo && !category.IsDeleted {
			found := category
			return &found, nil
		}
	}
	return nil, ledgerErrors.ErrCategoryNotFound
}

func (m *MockCategoryRepository) Update(category *domain.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.Categories {
		if m.Categories[i].CategoryNo == category.CategoryNo {
			m.Categories[i] = *category
			return nil
		}
	}
	return ledgerErrors.ErrCategoryNotFound
}

func (m *MockCategoryRepository) FindByMember(memberNo int, inOutType string, parentNo *int) ([]domain.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var categories []domain.Category
	for _, category := range m.Categories {
		if category.IsDeleted || !category.OwnedBy(memberNo) || category.InOutType != inOutType {
			continue
		}
		if parentNo == nil {
			if category.ParentNo != nil {
				continue
			}
		} else if category.ParentNo == nil || *category.ParentNo != *parentNo {
			continue
		}
		categories = append(categories, category)
	}

	sort.Slice(categories, func(i, j int) bool {
		if categories[i].SortOrder != categories[j].SortOrder {
			return categories[i].SortOrder < categories[j].SortOrder
		}
		return categories[i].CategoryNo < categories[j].CategoryNo
	})
	return categories, nil
}

func (m *MockCategoryRepository) FindNosByMember(memberNo int) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var categoryNos []int
	for _, category := range m.Categories {
		if !category.IsDeleted && category.OwnedBy(memberNo) {
			categoryNos = append(categoryNos, category.CategoryNo)
		}
	}
	return categoryNos, nil
}
