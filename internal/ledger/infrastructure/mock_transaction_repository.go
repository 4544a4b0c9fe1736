package infrastructure

import (
	"database/sql"
	"errors"
	"time"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

// MockTransactionRepository mimics the staged-then-commit behavior of the
// SQL repository in memory: writes queue up between BeginTransaction and
// Commit, and Rollback discards them. The tx handle itself is unused.
type MockTransactionRepository struct {
	nextLogNo    int
	nextDetailNo int
	Logs         []domain.TransactionLog
	Details      []domain.TransactionDetail

	staged     []func()
	inProgress bool

	FailInsertDetail bool
}

func (m *MockTransactionRepository) BeginTransaction() (*sql.Tx, error) {
	if m.inProgress {
		return nil, errors.New("transaction already in progress")
	}
	m.inProgress = true
	m.staged = nil
	return nil, nil
}

func (m *MockTransactionRepository) Commit(_ *sql.Tx) error {
	for _, apply := range m.staged {
		apply()
	}
	m.staged = nil
	m.inProgress = false
	return nil
}

func (m *MockTransactionRepository) Rollback(_ *sql.Tx) {
	m.staged = nil
	m.inProgress = false
}

func (m *MockTransactionRepository) InsertLog(_ *sql.Tx, transactionLog *domain.TransactionLog) error {
	m.nextLogNo++
	transactionLog.AccountLogNo = m.nextLogNo
	now := time.Now()
	transactionLog.CreatedAt = now
	transactionLog.UpdatedAt = now

	staged := *transactionLog
	staged.Details = nil
	m.staged = append(m.staged, func() {
		m.Logs = append(m.Logs, staged)
	})
	return nil
}

func (m *MockTransactionRepository) InsertDetail(_ *sql.Tx, detail *domain.TransactionDetail) error {
	if m.FailInsertDetail {
		return errors.New("insert detail failed")
	}

	m.nextDetailNo++
	detail.LogDetailNo = m.nextDetailNo
	now := time.Now()
	detail.CreatedAt = now
	detail.UpdatedAt = now

	staged := *detail
	m.staged = append(m.staged, func() {
		m.Details = append(m.Details, staged)
	})
	return nil
}

func (m *MockTransactionRepository) UpdateLog(_ *sql.Tx, transactionLog *domain.TransactionLog) error {
	staged := *transactionLog
	staged.Details = nil
	m.staged = append(m.staged, func() {
		for i := range m.Logs {
			if m.Logs[i].AccountLogNo == staged.AccountLogNo {
				m.Logs[i] = staged
				return
			}
		}
	})
	return nil
}

func (m *MockTransactionRepository) SoftDeleteLog(_ *sql.Tx, accountLogNo int, now time.Time) error {
	deletedAt := now
	m.staged = append(m.staged, func() {
		for i := range m.Logs {
			if m.Logs[i].AccountLogNo == accountLogNo {
				m.Logs[i].IsDeleted = true
				m.Logs[i].DeletedAt = &deletedAt
				m.Logs[i].UpdatedAt = deletedAt
			}
		}
	})
	return nil
}

func (m *MockTransactionRepository) SoftDeleteDetails(_ *sql.Tx, accountLogNo int, now time.Time) error {
	deletedAt := now
	m.staged = append(m.staged, func() {
		for i := range m.Details {
			if m.Details[i].AccountLogNo == accountLogNo {
				m.Details[i].IsDeleted = true
				m.Details[i].DeletedAt = &deletedAt
				m.Details[i].UpdatedAt = deletedAt
			}
		}
	})
	return nil
}

func (m *MockTransactionRepository) FindLogByNo(accountLogNo int) (*domain.TransactionLog, error) {
	for _, transactionLog := range m.Logs {
		if transactionLog.AccountLogNo == accountLogNo && !transactionLog.IsDeleted {
			found := transactionLog
			return &found, nil
		}
	}
	return nil, ledgerErrors.ErrTransactionNotFound
}

func (m *MockTransactionRepository) FindDetailsByLog(accountLogNo int) ([]domain.TransactionDetail, error) {
	var details []domain.TransactionDetail
	for _, detail := range m.Details {
		if detail.AccountLogNo == accountLogNo && !detail.IsDeleted {
			details = append(details, detail)
		}
	}
	return details, nil
}
