package domain

import "time"

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

func IsValidInOutType(inOutType string) bool {
	return inOutType == TypeIncome || inOutType == TypeExpense
}

// Category is one bucket in a member's category tree. MemberNo is nil for
// system-provided defaults. HasChildren reflects whether the category was
// seeded with children; user-created categories always start without any.
type Category struct {
	CategoryNo  int        `json:"category_no"`
	MemberNo    *int       `json:"member_no"`
	Name        string     `json:"category_name"`
	InOutType   string     `json:"inout_type"`
	HasChildren bool       `json:"has_children"`
	ParentNo    *int       `json:"parent_no"`
	ClassName   *string    `json:"class_name"`
	SortOrder   int        `json:"sort_order"`
	CreatedAt   time.Time  `json:"reg_dt"`
	UpdatedAt   time.Time  `json:"upd_dt"`
	IsDeleted   bool       `json:"-"`
	DeletedAt   *time.Time `json:"-"`
}

// OwnedBy reports whether the category belongs to the given member.
// System defaults (nil owner) belong to nobody.
func (c *Category) OwnedBy(memberNo int) bool {
	return c.MemberNo != nil && *c.MemberNo == memberNo
}

type CategoryRepository interface {
	Insert(category *Category) error
	FindByNo(categoryNo int) (*Category, error)
	Update(category *Category) error
	FindByMember(memberNo int, inOutType string, parentNo *int) ([]Category, error)
	FindNosByMember(memberNo int) ([]int, error)
}
