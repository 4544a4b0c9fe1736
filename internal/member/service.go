package member

import (
	"errors"
	"fmt"
	"time"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxLoginLength = 30
	minLoginLength = 4
	maxNameLength  = 20
	maxEmailLength = 50
	bcryptCost     = 12
)

var (
	ErrInvalidEmail       = errors.New("email address is not valid")
	ErrLoginLength        = fmt.Errorf("login id length must be between %d and %d", minLoginLength, maxLoginLength)
	ErrNameLength         = fmt.Errorf("member name must be at most %d characters", maxNameLength)
	ErrEmailLength        = fmt.Errorf("email address must be at most %d characters", maxEmailLength)
	ErrLoginAlreadyExists = errors.New("login id already exists")
	ErrInvalidPassword    = errors.New("password does not match")
	ErrInternalError      = errors.New("internal Server Error")
)

type Member struct {
	MemberNo     int        `json:"member_no"`
	MemberID     string     `json:"member_id"`
	PasswordHash string     `json:"-"`
	MemberName   string     `json:"member_name"`
	MemberEmail  string     `json:"member_email"`
	CreatedAt    time.Time  `json:"reg_dt"`
	UpdatedAt    time.Time  `json:"upd_dt"`
	IsDeleted    bool       `json:"-"`
	DeletedAt    *time.Time `json:"-"`
}

// ModifyRequest patches a member. Nil fields are left untouched.
type ModifyRequest struct {
	MemberPW    *string `json:"member_pw"`
	MemberName  *string `json:"member_name"`
	MemberEmail *string `json:"member_email"`
}

// CategorySeeder installs the default category catalog for a new member.
type CategorySeeder interface {
	SeedDefaultCategories(memberNo int) error
}

type Service interface {
	Register(memberID, password, name, email string) (*Member, error)
	Login(memberID, password string) (*Member, error)
	GetMemberByNo(memberNo int) (*Member, error)
	Modify(memberNo int, req ModifyRequest) (*Member, error)
	Unsubscribe(memberNo int) error
}

type service struct {
	repo   Repository
	seeder CategorySeeder
}

func NewMemberService(repo Repository, seeder CategorySeeder) Service {
	return &service{
		repo:   repo,
		seeder: seeder,
	}
}

func hashPassword(password string) (string, error) {
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(hashedPasswordBytes), err
}

func validateRegistration(memberID, name, email string) error {
	if len(memberID) < minLoginLength || len(memberID) > maxLoginLength {
		return ErrLoginLength
	}
	if len(name) == 0 || len(name) > maxNameLength {
		return ErrNameLength
	}
	if len(email) > maxEmailLength {
		return ErrEmailLength
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func (s *service) Register(memberID, password, name, email string) (*Member, error) {
	if err := validateRegistration(memberID, name, email); err != nil {
		return nil, err
	}

	exists, err := s.repo.loginIDExists(memberID)
	if err != nil {
		return nil, ErrInternalError
	}
	if exists {
		return nil, ErrLoginAlreadyExists
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, ErrInternalError
	}

	member := &Member{
		MemberID:     memberID,
		PasswordHash: passwordHash,
		MemberName:   name,
		MemberEmail:  email,
	}
	if err := s.repo.createMember(member); err != nil {
		return nil, err
	}

	// Every new member starts with the default category catalog.
	if err := s.seeder.SeedDefaultCategories(member.MemberNo); err != nil {
		return nil, err
	}

	return member, nil
}

func (s *service) Login(memberID, password string) (*Member, error) {
	member, err := s.repo.getMemberByLoginID(memberID)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidPassword
	}

	return member, nil
}

func (s *service) GetMemberByNo(memberNo int) (*Member, error) {
	return s.repo.getMemberByNo(memberNo)
}

func (s *service) Modify(memberNo int, req ModifyRequest) (*Member, error) {
	member, err := s.repo.getMemberByNo(memberNo)
	if err != nil {
		return nil, err
	}

	if req.MemberPW != nil {
		passwordHash, err := hashPassword(*req.MemberPW)
		if err != nil {
			return nil, ErrInternalError
		}
		member.PasswordHash = passwordHash
	}
	if req.MemberName != nil {
		if len(*req.MemberName) == 0 || len(*req.MemberName) > maxNameLength {
			return nil, ErrNameLength
		}
		member.MemberName = *req.MemberName
	}
	if req.MemberEmail != nil {
		if err := checkmail.ValidateFormat(*req.MemberEmail); err != nil {
			return nil, ErrInvalidEmail
		}
		member.MemberEmail = *req.MemberEmail
	}

	if err := s.repo.updateMember(member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *service) Unsubscribe(memberNo int) error {
	return s.repo.softDeleteMember(memberNo)
}
