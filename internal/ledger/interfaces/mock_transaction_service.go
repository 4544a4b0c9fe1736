package interfaces

import (
	"errors"

	"github.com/minarae/accountbook-backend/internal/ledger/application"
	"github.com/minarae/accountbook-backend/internal/ledger/domain"
)

type MockTransactionService struct {
	transactionLog *domain.TransactionLog
	failWith       error
	shouldFail     bool
}

func (m *MockTransactionService) CreateTransaction(memberNo int, req application.CreateTransactionRequest) (*domain.TransactionLog, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	transactionLog := &domain.TransactionLog{
		AccountLogNo: 1,
		MemberNo:     memberNo,
		StdDate:      req.StdDate,
		OpponentName: req.OpponentName,
	}
	for i, item := range req.DetailList {
		transactionLog.Details = append(transactionLog.Details, domain.TransactionDetail{
			LogDetailNo:  i + 1,
			AccountLogNo: 1,
			Contents:     item.Contents,
			Amount:       item.Amount,
			InOutType:    item.InOutType,
			CategoryNo:   item.CategoryNo,
			Important:    item.Important,
			IsFixedCost:  item.IsFixedCost,
		})
	}
	return transactionLog, nil
}

func (m *MockTransactionService) UpdateTransaction(memberNo, accountLogNo int, req application.UpdateTransactionRequest) (*domain.TransactionLog, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &domain.TransactionLog{AccountLogNo: accountLogNo, MemberNo: memberNo}, nil
}

func (m *MockTransactionService) DeleteTransaction(memberNo, accountLogNo int) error {
	if m.shouldFail {
		return errors.New("service error")
	}
	return m.failWith
}

func (m *MockTransactionService) GetTransaction(memberNo, accountLogNo int) (*domain.TransactionLog, error) {
	if m.shouldFail {
		return nil, errors.New("service error")
	}
	if m.failWith != nil {
		return nil, m.failWith
	}
	if m.transactionLog != nil {
		return m.transactionLog, nil
	}
	return &domain.TransactionLog{AccountLogNo: accountLogNo, MemberNo: memberNo}, nil
}
