package auth

import (
	"errors"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

var (
	ErrInvalidJWTToken        = errors.New("JWT token is invalid")
	ErrExpiredJWTToken        = errors.New("JWT token is expired")
	ErrInvalidJWTRefreshToken = errors.New("JWT Refresh token is invalid")
)

const (
	DefaultAccessTokenDuration  = 60 * time.Minute
	DefaultRefreshTokenDuration = 24 * time.Hour
)

// Claims is the access-token payload. Handlers read the whole member
// identity from here instead of hitting the store on every request.
type Claims struct {
	MemberNo    int    `json:"member_no"`
	MemberID    string `json:"member_id"`
	MemberName  string `json:"member_name"`
	MemberEmail string `json:"member_email"`
	jwt.StandardClaims
}

// RefreshClaims carries only what is needed to mint a fresh access token.
type RefreshClaims struct {
	MemberNo int    `json:"member_no"`
	MemberID string `json:"member_id"`
	jwt.StandardClaims
}

type JWTManagerInterface interface {
	GenerateAccessToken(memberNo int, memberID, memberName, memberEmail string, duration time.Duration) (string, error)
	GenerateRefreshToken(memberNo int, memberID string, duration time.Duration) (string, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	ValidateRefreshToken(tokenString string) (*RefreshClaims, error)
	AccessTokenMiddleware() func(http.Handler) http.Handler
	RefreshTokenMiddleware() func(http.Handler) http.Handler
}

type JWTManager struct {
	secret string
}

func NewJWTManager() JWTManagerInterface {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is not set in .env file")
	}

	return &JWTManager{
		secret: jwtSecret,
	}
}

func (j *JWTManager) GenerateAccessToken(memberNo int, memberID, memberName, memberEmail string, duration time.Duration) (string, error) {
	claims := &Claims{
		MemberNo:    memberNo,
		MemberID:    memberID,
		MemberName:  memberName,
		MemberEmail: memberEmail,
		StandardClaims: jwt.StandardClaims{
			Subject:   memberID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) GenerateRefreshToken(memberNo int, memberID string, duration time.Duration) (string, error) {
	claims := &RefreshClaims{
		MemberNo: memberNo,
		MemberID: memberID,
		StandardClaims: jwt.StandardClaims{
			Subject:   memberID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(duration).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secret))
}

func (j *JWTManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return nil, ErrExpiredJWTToken
			}
		}
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.MemberNo == 0 {
		return nil, ErrInvalidJWTToken
	}

	return claims, nil
}

func (j *JWTManager) ValidateRefreshToken(tokenString string) (*RefreshClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &RefreshClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(j.secret), nil
	})

	if err != nil {
		var validationErr *jwt.ValidationError
		if errors.As(err, &validationErr) {
			if validationErr.Errors&(jwt.ValidationErrorExpired) != 0 {
				return nil, ErrExpiredJWTToken
			}
		}
		return nil, err
	}

	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid || claims.MemberNo == 0 {
		return nil, ErrInvalidJWTRefreshToken
	}

	return claims, nil
}
