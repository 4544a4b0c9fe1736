package infrastructure

import (
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
	ledgerErrors "github.com/minarae/accountbook-backend/internal/ledger/errors"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) BeginTransaction() (*sql.Tx, error) {
	return r.db.Begin()
}

func (r *TransactionRepository) Commit(tx *sql.Tx) error {
	return tx.Commit()
}

func (r *TransactionRepository) Rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		log.Printf("Error during transaction rollback: %v", err)
	}
}

func (r *TransactionRepository) InsertLog(tx *sql.Tx, transactionLog *domain.TransactionLog) error {
	query := `
		INSERT INTO tb_account_log (member_no, std_date, opponent_name)
		VALUES ($1, $2, $3)
		RETURNING account_log_no, reg_dt, upd_dt
	`
	return tx.QueryRow(query, transactionLog.MemberNo, transactionLog.StdDate, transactionLog.OpponentName).
		Scan(&transactionLog.AccountLogNo, &transactionLog.CreatedAt, &transactionLog.UpdatedAt)
}

func (r *TransactionRepository) InsertDetail(tx *sql.Tx, detail *domain.TransactionDetail) error {
	query := `
		INSERT INTO tb_log_detail (account_log_no, detail_contents, amounts, inout_type, category_no, important, is_fixed_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING log_detail_no, reg_dt, upd_dt
	`
	return tx.QueryRow(query, detail.AccountLogNo, detail.Contents, detail.Amount, detail.InOutType,
		detail.CategoryNo, detail.Important, detail.IsFixedCost).
		Scan(&detail.LogDetailNo, &detail.CreatedAt, &detail.UpdatedAt)
}

func (r *TransactionRepository) UpdateLog(tx *sql.Tx, transactionLog *domain.TransactionLog) error {
	query := `
		UPDATE tb_account_log
		SET std_date = $1,
		    opponent_name = $2,
		    upd_dt = $3
		WHERE account_log_no = $4
	`
	_, err := tx.Exec(query, transactionLog.StdDate, transactionLog.OpponentName, transactionLog.UpdatedAt,
		transactionLog.AccountLogNo)
	return err
}

func (r *TransactionRepository) SoftDeleteLog(tx *sql.Tx, accountLogNo int, now time.Time) error {
	query := `
		UPDATE tb_account_log
		SET is_deleted = TRUE,
		    del_dt = $1,
		    upd_dt = $1
		WHERE account_log_no = $2
	`
	_, err := tx.Exec(query, now, accountLogNo)
	return err
}

// SoftDeleteDetails marks every detail line of the log deleted, including
// lines already deleted, which keeps the cascade idempotent.
func (r *TransactionRepository) SoftDeleteDetails(tx *sql.Tx, accountLogNo int, now time.Time) error {
	query := `
		UPDATE tb_log_detail
		SET is_deleted = TRUE,
		    del_dt = $1,
		    upd_dt = $1
		WHERE account_log_no = $2
	`
	_, err := tx.Exec(query, now, accountLogNo)
	return err
}

func (r *TransactionRepository) FindLogByNo(accountLogNo int) (*domain.TransactionLog, error) {
	query := `
		SELECT account_log_no, member_no, std_date, opponent_name, reg_dt, upd_dt
		FROM tb_account_log
		WHERE account_log_no = $1 AND is_deleted = FALSE
	`

	var transactionLog domain.TransactionLog
	err := r.db.QueryRow(query, accountLogNo).Scan(&transactionLog.AccountLogNo, &transactionLog.MemberNo,
		&transactionLog.StdDate, &transactionLog.OpponentName, &transactionLog.CreatedAt, &transactionLog.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ledgerErrors.ErrTransactionNotFound
		}
		return nil, err
	}

	return &transactionLog, nil
}

func (r *TransactionRepository) FindDetailsByLog(accountLogNo int) ([]domain.TransactionDetail, error) {
	query := `
		SELECT log_detail_no, account_log_no, detail_contents, amounts, inout_type, category_no, important, is_fixed_cost, reg_dt, upd_dt
		FROM tb_log_detail
		WHERE account_log_no = $1 AND is_deleted = FALSE
		ORDER BY log_detail_no ASC
	`
	rows, err := r.db.Query(query, accountLogNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.TransactionDetail
	for rows.Next() {
		var detail domain.TransactionDetail
		if err := rows.Scan(&detail.LogDetailNo, &detail.AccountLogNo, &detail.Contents, &detail.Amount,
			&detail.InOutType, &detail.CategoryNo, &detail.Important, &detail.IsFixedCost,
			&detail.CreatedAt, &detail.UpdatedAt); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, rows.Err()
}
