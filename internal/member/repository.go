package member

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	ErrMemberNotFound = errors.New("member not found")
)

type Repository interface {
	createMember(member *Member) error
	loginIDExists(memberID string) (bool, error)
	getMemberByLoginID(memberID string) (*Member, error)
	getMemberByNo(memberNo int) (*Member, error)
	updateMember(member *Member) error
	softDeleteMember(memberNo int) error
}

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) Repository {
	return &memberRepository{
		db: db,
	}
}

func (r *memberRepository) createMember(member *Member) error {
	query := `
		INSERT INTO tb_members (member_id, member_pw, member_name, member_email)
		VALUES ($1, $2, $3, $4)
		RETURNING member_no, reg_dt, upd_dt;
	`
	err := r.db.QueryRow(query, member.MemberID, member.PasswordHash, member.MemberName, member.MemberEmail).
		Scan(&member.MemberNo, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		return fmt.Errorf("could not create member: %v", err)
	}

	return nil
}

func (r *memberRepository) loginIDExists(memberID string) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT 1 FROM tb_members WHERE member_id = $1)"
	err := r.db.QueryRow(query, memberID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("could not check login id: %v", err)
	}
	return exists, nil
}

func (r *memberRepository) getMemberByLoginID(memberID string) (*Member, error) {
	query := `
		SELECT member_no, member_id, member_pw, member_name, member_email, reg_dt, upd_dt
		FROM tb_members
		WHERE member_id = $1 AND is_deleted = FALSE
	`

	var member Member
	err := r.db.QueryRow(query, memberID).Scan(&member.MemberNo, &member.MemberID, &member.PasswordHash,
		&member.MemberName, &member.MemberEmail, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("could not find member: %v", err)
	}

	return &member, nil
}

func (r *memberRepository) getMemberByNo(memberNo int) (*Member, error) {
	query := `
		SELECT member_no, member_id, member_pw, member_name, member_email, reg_dt, upd_dt
		FROM tb_members
		WHERE member_no = $1 AND is_deleted = FALSE
	`

	var member Member
	err := r.db.QueryRow(query, memberNo).Scan(&member.MemberNo, &member.MemberID, &member.PasswordHash,
		&member.MemberName, &member.MemberEmail, &member.CreatedAt, &member.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("could not find member: %v", err)
	}

	return &member, nil
}

func (r *memberRepository) updateMember(member *Member) error {
	query := `
		UPDATE tb_members
		SET member_pw = $1,
		    member_name = $2,
		    member_email = $3,
		    upd_dt = $4
		WHERE member_no = $5 AND is_deleted = FALSE
	`
	member.UpdatedAt = time.Now()
	_, err := r.db.Exec(query, member.PasswordHash, member.MemberName, member.MemberEmail, member.UpdatedAt, member.MemberNo)
	if err != nil {
		return fmt.Errorf("could not update member: %v", err)
	}
	return nil
}

func (r *memberRepository) softDeleteMember(memberNo int) error {
	query := `
		UPDATE tb_members
		SET is_deleted = TRUE,
		    del_dt = $1,
		    upd_dt = $1
		WHERE member_no = $2 AND is_deleted = FALSE
	`
	result, err := r.db.Exec(query, time.Now(), memberNo)
	if err != nil {
		return fmt.Errorf("could not delete member: %v", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not delete member: %v", err)
	}
	if affected == 0 {
		return ErrMemberNotFound
	}
	return nil
}
