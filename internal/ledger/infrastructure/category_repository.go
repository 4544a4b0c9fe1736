package infrastructure

import (
	"database/sql"
	"errors"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Insert(category *domain.Category) error {
	query := `
		INSERT INTO tb_category (member_no, category_name, inout_type, has_children, parent_no, class_name, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING category_no, reg_dt, upd_dt
	`
	return r.db.QueryRow(query, category.MemberNo, category.Name, category.InOutType, category.HasChildren,
		category.ParentNo, category.ClassName, category.SortOrder).
		Scan(&category.CategoryNo, &category.CreatedAt, &category.UpdatedAt)
}

func (r *CategoryRepository) FindByNo(categoryNo int) (*domain.Category, error) {
	query := `
		SELECT category_no, member_no, category_name, inout_type, has_children, parent_no, class_name, sort_order, reg_dt, upd_dt
		FROM tb_category
		WHERE category_no = $1 AND is_deleted = FALSE
	`

	var category domain.Category
	err := r.db.QueryRow(query, categoryNo).Scan(&category.CategoryNo, &category.MemberNo, &category.Name,
		&category.InOutType, &category.HasChildren, &category.ParentNo, &category.ClassName, &category.SortOrder,
		&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerErrors.ErrCategoryNotFound
		}
		return nil, err
	}

	return &category, nil
}

func (r *CategoryRepository) Update(category *domain.Category) error {
	query := `
		UPDATE tb_category
		SET category_name = $1,
		    inout_type = $2,
		    has_children = $3,
		    parent_no = $4,
		    class_name = $5,
		    sort_order = $6,
		    is_deleted = $7,
		    del_dt = $8,
		    upd_dt = $9
		WHERE category_no = $10
	`
	_, err := r.db.Exec(query, category.Name, category.InOutType, category.HasChildren, category.ParentNo,
		category.ClassName, category.SortOrder, category.IsDeleted, category.DeletedAt, category.UpdatedAt,
		category.CategoryNo)
	return err
}

func (r *CategoryRepository) FindByMember(memberNo int, inOutType string, parentNo *int) ([]domain.Category, error) {
	query := `
		SELECT category_no, member_no, category_name, inout_type, has_children, parent_no, class_name, sort_order, reg_dt, upd_dt
		FROM tb_category
		WHERE member_no = $1 AND inout_type = $2 AND is_deleted = FALSE
	`
	args := []interface{}{memberNo, inOutType}

	if parentNo == nil {
		query += " AND parent_no IS NULL"
	} else {
		query += " AND parent_no = $3"
		args = append(args, *parentNo)
	}
	query += " ORDER BY sort_order ASC, category_no ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.CategoryNo, &category.MemberNo, &category.Name, &category.InOutType,
			&category.HasChildren, &category.ParentNo, &category.ClassName, &category.SortOrder,
			&category.CreatedAt, &category.UpdatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}

	return categories, rows.Err()
}

func (r *CategoryRepository) FindNosByMember(memberNo int) ([]int, error) {
	rows, err := r.db.Query("SELECT category_no FROM tb_category WHERE member_no = $1 AND is_deleted = FALSE", memberNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categoryNos []int
	for rows.Next() {
		var no int
		if err := rows.Scan(&no); err != nil {
			return nil, err
		}
		categoryNos = append(categoryNos, no)
	}
	return categoryNos, rows.Err()
}
