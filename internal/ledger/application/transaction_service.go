package application

import (
	"time"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

// CategoryServiceInterface is what the transaction service needs from the
// category side: the flat set of category numbers a member owns.
type CategoryServiceInterface interface {
	GetCategoryNos(memberNo int) ([]int, error)
}

// DetailRequest is one detail line of a create/modify request. A nil
// LogDetailNo means the line is new; lines carrying a number are treated as
// already persisted and are not rewritten.
type DetailRequest struct {
	LogDetailNo *int   `json:"log_detail_no"`
	Contents    string `json:"detail_contents"`
	Amount      int64  `json:"amounts"`
	InOutType   string `json:"inout_type"`
	CategoryNo  *int   `json:"category_no"`
	Important   int    `json:"important"`
	IsFixedCost bool   `json:"is_fixed_cost"`
}

type CreateTransactionRequest struct {
	StdDate      time.Time       `json:"std_date"`
	OpponentName string          `json:"opponent_name"`
	DetailList   []DetailRequest `json:"detail_list"`
}

// UpdateTransactionRequest patches the header; nil fields stay untouched.
// DetailList is never applied to the header itself.
type UpdateTransactionRequest struct {
	StdDate      *time.Time      `json:"std_date"`
	OpponentName *string         `json:"opponent_name"`
	DetailList   []DetailRequest `json:"detail_list"`
}

type TransactionService struct {
	repo            domain.TransactionRepository
	categoryService CategoryServiceInterface
}

func NewTransactionService(repo domain.TransactionRepository, categoryService CategoryServiceInterface) *TransactionService {
	return &TransactionService{repo: repo, categoryService: categoryService}
}

// ownedCategorySet loads the member's category numbers as a lookup set.
func (s *TransactionService) ownedCategorySet(memberNo int) (map[int]bool, error) {
	categoryNos, err := s.categoryService.GetCategoryNos(memberNo)
	if err != nil {
		return nil, err
	}
	owned := make(map[int]bool, len(categoryNos))
	for _, no := range categoryNos {
		owned[no] = true
	}
	return owned, nil
}

func (d *DetailRequest) toDomain(accountLogNo int) *domain.TransactionDetail {
	return &domain.TransactionDetail{
		AccountLogNo: accountLogNo,
		Contents:     d.Contents,
		Amount:       d.Amount,
		InOutType:    d.InOutType,
		CategoryNo:   d.CategoryNo,
		Important:    d.Important,
		IsFixedCost:  d.IsFixedCost,
	}
}

// CreateTransaction stages the header and every detail line on one store
// transaction and commits once; any failure before the commit leaves no
// visible rows.
func (s *TransactionService) CreateTransaction(memberNo int, req CreateTransactionRequest) (result *domain.TransactionLog, err error) {
	owned, err := s.ownedCategorySet(memberNo)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTransaction()
	if err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			s.repo.Rollback(tx)
			panic(p)
		} else if err != nil {
			s.repo.Rollback(tx)
		}
	}()

	log := &domain.TransactionLog{
		MemberNo:     memberNo,
		StdDate:      req.StdDate,
		OpponentName: req.OpponentName,
	}
	if err = s.repo.InsertLog(tx, log); err != nil {
		return nil, err
	}

	for _, item := range req.DetailList {
		if item.CategoryNo != nil && !owned[*item.CategoryNo] {
			err = ledgerErrors.ErrInvalidCategory
			return nil, err
		}

		detail := item.toDomain(log.AccountLogNo)
		if err = detail.Validate(); err != nil {
			return nil, err
		}
		if err = s.repo.InsertDetail(tx, detail); err != nil {
			return nil, err
		}
		log.Details = append(log.Details, *detail)
	}

	if err = s.repo.Commit(tx); err != nil {
		return nil, err
	}
	return log, nil
}

// fetchOwned loads a live transaction header and checks ownership.
func (s *TransactionService) fetchOwned(memberNo, accountLogNo int) (*domain.TransactionLog, error) {
	log, err := s.repo.FindLogByNo(accountLogNo)
	if err != nil {
		return nil, err
	}
	if log.MemberNo != memberNo {
		return nil, ledgerErrors.ErrForbidden
	}
	return log, nil
}

// UpdateTransaction patches the header and inserts detail lines that carry
// no id. Lines with an existing id are treated as already persisted and
// their fields are not rewritten.
func (s *TransactionService) UpdateTransaction(memberNo, accountLogNo int, req UpdateTransactionRequest) (result *domain.TransactionLog, err error) {
	log, err := s.fetchOwned(memberNo, accountLogNo)
	if err != nil {
		return nil, err
	}

	if req.StdDate != nil {
		log.StdDate = *req.StdDate
	}
	if req.OpponentName != nil {
		log.OpponentName = *req.OpponentName
	}
	log.UpdatedAt = time.Now()

	owned, err := s.ownedCategorySet(memberNo)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTransaction()
	if err != nil {
		return nil, err
	}
	defer func() {
		if p := recover(); p != nil {
			s.repo.Rollback(tx)
			panic(p)
		} else if err != nil {
			s.repo.Rollback(tx)
		}
	}()

	if err = s.repo.UpdateLog(tx, log); err != nil {
		return nil, err
	}

	for _, item := range req.DetailList {
		if item.CategoryNo != nil && !owned[*item.CategoryNo] {
			err = ledgerErrors.ErrInvalidCategory
			return nil, err
		}
		if item.LogDetailNo != nil {
			continue
		}

		detail := item.toDomain(accountLogNo)
		if err = detail.Validate(); err != nil {
			return nil, err
		}
		if err = s.repo.InsertDetail(tx, detail); err != nil {
			return nil, err
		}
	}

	if err = s.repo.Commit(tx); err != nil {
		return nil, err
	}
	return log, nil
}

// DeleteTransaction soft-deletes the header and all of its detail lines in
// one commit. The detail update is unconditional, so re-running it over
// already-deleted lines changes nothing.
func (s *TransactionService) DeleteTransaction(memberNo, accountLogNo int) (err error) {
	if _, err = s.fetchOwned(memberNo, accountLogNo); err != nil {
		return err
	}

	tx, err := s.repo.BeginTransaction()
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			s.repo.Rollback(tx)
			panic(p)
		} else if err != nil {
			s.repo.Rollback(tx)
		}
	}()

	now := time.Now()
	if err = s.repo.SoftDeleteLog(tx, accountLogNo, now); err != nil {
		return err
	}
	if err = s.repo.SoftDeleteDetails(tx, accountLogNo, now); err != nil {
		return err
	}

	return s.repo.Commit(tx)
}

// GetTransaction returns a live header with its live detail lines.
func (s *TransactionService) GetTransaction(memberNo, accountLogNo int) (*domain.TransactionLog, error) {
	log, err := s.fetchOwned(memberNo, accountLogNo)
	if err != nil {
		return nil, err
	}

	details, err := s.repo.FindDetailsByLog(accountLogNo)
	if err != nil {
		return nil, err
	}
	log.Details = details
	return log, nil
}
