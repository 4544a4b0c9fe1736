package domain

import (
	"database/sql"
	"fmt"
	"time"

	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

const maxDetailContentsLength = 300

// TransactionLog is one dated financial event owned by a member, with its
// ordered detail lines.
type TransactionLog struct {
	AccountLogNo int                 `json:"account_log_no"`
	MemberNo     int                 `json:"member_no"`
	StdDate      time.Time           `json:"std_date"`
	OpponentName string              `json:"opponent_name"`
	Details      []TransactionDetail `json:"detail_list,omitempty"`
	CreatedAt    time.Time           `json:"reg_dt"`
	UpdatedAt    time.Time           `json:"upd_dt"`
	IsDeleted    bool                `json:"-"`
	DeletedAt    *time.Time          `json:"-"`
}

// TransactionDetail is one line item under a TransactionLog. Important and
// IsFixedCost only carry meaning for expense lines.
type TransactionDetail struct {
	LogDetailNo  int        `json:"log_detail_no"`
	AccountLogNo int        `json:"account_log_no"`
	Contents     string     `json:"detail_contents"`
	Amount       int64      `json:"amounts"`
	InOutType    string     `json:"inout_type"`
	CategoryNo   *int       `json:"category_no"`
	Important    int        `json:"important"`
	IsFixedCost  bool       `json:"is_fixed_cost"`
	CreatedAt    time.Time  `json:"reg_dt"`
	UpdatedAt    time.Time  `json:"upd_dt"`
	IsDeleted    bool       `json:"-"`
	DeletedAt    *time.Time `json:"-"`
}

func (d *TransactionDetail) Validate() error {
	if !IsValidInOutType(d.InOutType) {
		return ledgerErrors.NewValidationError("inout type must be 'income' or 'expense'")
	}
	if d.Amount <= 0 {
		return ledgerErrors.NewValidationError("amount must be greater than zero")
	}
	if len(d.Contents) == 0 || len(d.Contents) > maxDetailContentsLength {
		return ledgerErrors.NewValidationError(fmt.Sprintf("detail contents must be between 1 and %d characters", maxDetailContentsLength))
	}
	return nil
}

// TransactionRepository stages all writes of one operation on a single
// *sql.Tx; nothing becomes visible before Commit.
type TransactionRepository interface {
	BeginTransaction() (*sql.Tx, error)
	Commit(tx *sql.Tx) error
	Rollback(tx *sql.Tx)
	InsertLog(tx *sql.Tx, log *TransactionLog) error
	InsertDetail(tx *sql.Tx, detail *TransactionDetail) error
	UpdateLog(tx *sql.Tx, log *TransactionLog) error
	SoftDeleteLog(tx *sql.Tx, accountLogNo int, now time.Time) error
	SoftDeleteDetails(tx *sql.Tx, accountLogNo int, now time.Time) error
	FindLogByNo(accountLogNo int) (*TransactionLog, error)
	FindDetailsByLog(accountLogNo int) ([]TransactionDetail, error)
}
