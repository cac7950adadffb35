package utils

import (
	"errors"
	"time"

	"coachhub/models"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

// TokenVerifier validates access tokens issued by the hosted auth platform.
type TokenVerifier struct {
	secret []byte
}

func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// GenerateToken signs a token carrying the caller's claims. It is used by tooling and tests;
// production tokens come from the auth platform.
func (v *TokenVerifier) GenerateToken(caller models.Caller, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   caller.UserID,
		"email": caller.Email,
		"role":  caller.Role,
		"tier":  caller.Tier,
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func (v *TokenVerifier) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
}

// CallerFromToken validates tokenString and maps its claims onto a Caller.
func (v *TokenVerifier) CallerFromToken(tokenString string) (models.Caller, error) {
	token, err := v.ValidateToken(tokenString)
	if err != nil {
		return models.Caller{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Caller{}, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return models.Caller{}, errors.New("token does not contain a valid 'sub' claim")
	}
	caller := models.Caller{UserID: sub}
	caller.Email, _ = claims["email"].(string)
	caller.Role, _ = claims["role"].(string)
	caller.Tier, _ = claims["tier"].(string)
	return caller, nil
}
