package services

import (
	"errors"
	"time"

	"article-cms/models"

	"github.com/golang-jwt/jwt/v4"
)

// Claims identify the caller. Tokens are minted by the identity provider in
// front of this service; IssueToken exists for trusted tooling and tests.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type TokenService interface {
	IssueToken(user *models.User) (string, error)
	ParseToken(token string) (*Claims, error)
}

type tokenService struct {
	secret     []byte
	expiration time.Duration
}

func NewTokenService(secret []byte, expiration time.Duration) TokenService {
	return &tokenService{secret: secret, expiration: expiration}
}

func (s *tokenService) IssueToken(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID:   user.ID,
		Username: user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *tokenService) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.UserID == 0 {
		return nil, errors.New("token has no user")
	}
	return claims, nil
}
