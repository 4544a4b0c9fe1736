package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
	"github.com/minarae/accountbook-backend/internal/ledger/infrastructure"
)

func newCategoryFixture() (*CategoryService, *infrastructure.MockCategoryRepository) {
	repo := &infrastructure.MockCategoryRepository{}
	return NewCategoryService(repo), repo
}

func TestCreateCategory_NewCategoryHasNoChildren(t *testing.T) {
	service, _ := newCategoryFixture()

	category, err := service.CreateCategory(1, CreateCategoryRequest{
		Name:      "Groceries",
		InOutType: domain.TypeExpense,
		SortOrder: 1,
	})

	assert.NoError(t, err)
	assert.False(t, category.HasChildren)
	assert.NotZero(t, category.CategoryNo)
	assert.Equal(t, 1, *category.MemberNo)
}

func TestCreateCategory_RejectsInvalidType(t *testing.T) {
	service, _ := newCategoryFixture()

	_, err := service.CreateCategory(1, CreateCategoryRequest{
		Name:      "Transfers",
		InOutType: "transfer",
	})

	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestCreateCategory_RejectsLongName(t *testing.T) {
	service, _ := newCategoryFixture()

	_, err := service.CreateCategory(1, CreateCategoryRequest{
		Name:      strings.Repeat("a", maxCategoryNameLength+1),
		InOutType: domain.TypeExpense,
	})

	assert.True(t, ledgerErrors.IsValidationError(err))
}

func TestUpdateCategory_PatchesOnlyProvidedFields(t *testing.T) {
	service, _ := newCategoryFixture()
	category, err := service.CreateCategory(1, CreateCategoryRequest{
		Name:      "Groceries",
		InOutType: domain.TypeExpense,
		SortOrder: 4,
	})
	assert.NoError(t, err)

	newName := "Food Shopping"
	updated, err := service.UpdateCategory(1, category.CategoryNo, UpdateCategoryRequest{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Food Shopping", updated.Name)
	assert.Equal(t, domain.TypeExpense, updated.InOutType)
	assert.Equal(t, 4, updated.SortOrder)
}

func TestUpdateCategory_EmptyPatchBumpsOnlyTimestamp(t *testing.T) {
	service, _ := newCategoryFixture()
	category, err := service.CreateCategory(1, CreateCategoryRequest{
		Name:      "Groceries",
		InOutType: domain.TypeExpense,
		SortOrder: 2,
	})
	assert.NoError(t, err)

	updated, err := service.UpdateCategory(1, category.CategoryNo, UpdateCategoryRequest{})

	assert.NoError(t, err)
	assert.Equal(t, category.Name, updated.Name)
	assert.Equal(t, category.SortOrder, updated.SortOrder)
	assert.False(t, updated.UpdatedAt.Before(category.UpdatedAt))
}

func TestUpdateCategory_ForbiddenForOtherMember(t *testing.T) {
	service, _ := newCategoryFixture()
	category, err := service.CreateCategory(1, CreateCategoryRequest{
		Name:      "Groceries",
		InOutType: domain.TypeExpense,
	})
	assert.NoError(t, err)

	newName := "Hijacked"
	_, err = service.UpdateCategory(2, category.CategoryNo, UpdateCategoryRequest{Name: &newName})

	assert.ErrorIs(t, err, ledgerErrors.ErrForbidden)
}

func TestDeleteCategory_SoftDeleteDropsFromListAndLookup(t *testing.T) {
	service, _ := newCategoryFixture()
	category, err := service.CreateCategory(1, CreateCategoryRequest{
		Name:      "Groceries",
		InOutType: domain.TypeExpense,
	})
	assert.NoError(t, err)

	deleted, err := service.DeleteCategory(1, category.CategoryNo)
	assert.NoError(t, err)
	assert.True(t, deleted.IsDeleted)
	assert.NotNil(t, deleted.DeletedAt)

	categories, err := service.ListCategories(1, domain.TypeExpense, nil)
	assert.NoError(t, err)
	assert.Empty(t, categories)

	_, err = service.DeleteCategory(1, category.CategoryNo)
	assert.ErrorIs(t, err, ledgerErrors.ErrCategoryNotFound)
}

func TestListCategories_OrderedBySortOrderThenNumber(t *testing.T) {
	service, _ := newCategoryFixture()
	_, err := service.CreateCategory(1, CreateCategoryRequest{Name: "Housing", InOutType: domain.TypeExpense, SortOrder: 2})
	assert.NoError(t, err)
	_, err = service.CreateCategory(1, CreateCategoryRequest{Name: "Food", InOutType: domain.TypeExpense, SortOrder: 1})
	assert.NoError(t, err)
	_, err = service.CreateCategory(1, CreateCategoryRequest{Name: "Transport", InOutType: domain.TypeExpense, SortOrder: 2})
	assert.NoError(t, err)

	categories, err := service.ListCategories(1, domain.TypeExpense, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, len(categories))
	assert.Equal(t, "Food", categories[0].Name)
	assert.Equal(t, "Housing", categories[1].Name)
	assert.Equal(t, "Transport", categories[2].Name)
}

func TestListCategories_RootFilterExcludesChildren(t *testing.T) {
	service, _ := newCategoryFixture()
	root, err := service.CreateCategory(1, CreateCategoryRequest{Name: "Food", InOutType: domain.TypeExpense, SortOrder: 1})
	assert.NoError(t, err)
	_, err = service.CreateCategory(1, CreateCategoryRequest{
		Name:      "Groceries",
		InOutType: domain.TypeExpense,
		ParentNo:  &root.CategoryNo,
		SortOrder: 1,
	})
	assert.NoError(t, err)

	roots, err := service.ListCategories(1, domain.TypeExpense, nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(roots))
	assert.Equal(t, "Food", roots[0].Name)

	children, err := service.ListCategories(1, domain.TypeExpense, &root.CategoryNo)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(children))
	assert.Equal(t, "Groceries", children[0].Name)
}

func TestListCategories_EmptyResultIsNotNil(t *testing.T) {
	service, _ := newCategoryFixture()

	categories, err := service.ListCategories(1, domain.TypeIncome, nil)

	assert.NoError(t, err)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}

func TestSeedDefaultCategories_InstallsFullCatalog(t *testing.T) {
	service, repo := newCategoryFixture()

	err := service.SeedDefaultCategories(1)
	assert.NoError(t, err)

	expenseRoots, err := service.ListCategories(1, domain.TypeExpense, nil)
	assert.NoError(t, err)
	assert.Equal(t, 6, len(expenseRoots))

	incomeRoots, err := service.ListCategories(1, domain.TypeIncome, nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, len(incomeRoots))

	assert.Equal(t, 27, len(repo.Categories))
}

func TestSeedDefaultCategories_ChildrenCarryParentAndOrder(t *testing.T) {
	service, _ := newCategoryFixture()

	err := service.SeedDefaultCategories(1)
	assert.NoError(t, err)

	roots, err := service.ListCategories(1, domain.TypeExpense, nil)
	assert.NoError(t, err)
	assert.Equal(t, "Food", roots[0].Name)
	assert.True(t, roots[0].HasChildren)

	children, err := service.ListCategories(1, domain.TypeExpense, &roots[0].CategoryNo)
	assert.NoError(t, err)
	assert.Equal(t, 4, len(children))
	for i, child := range children {
		assert.Equal(t, i+1, child.SortOrder)
		assert.Equal(t, roots[0].CategoryNo, *child.ParentNo)
	}

	leaf := roots[5]
	assert.Equal(t, "Other Expense", leaf.Name)
	assert.False(t, leaf.HasChildren)
}

func TestSeedDefaultCategories_AbortsOnInsertFailure(t *testing.T) {
	service, repo := newCategoryFixture()
	repo.FailInsert = true

	err := service.SeedDefaultCategories(1)

	assert.Error(t, err)
	assert.Empty(t, repo.Categories)
}
