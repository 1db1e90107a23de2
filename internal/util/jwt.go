package util

import (
	"time"

	"wellmind_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	AccountID     uint              `json:"account_id"`
	Role          model.AccountRole `json:"role"`
	Email         string            `json:"email"`
	InstitutionID uint              `json:"institution_id"`
	jwt.RegisteredClaims
}

func GenerateJWT(account *model.Account, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	claims := &Claims{
		AccountID:     account.ID,
		Role:          account.Role,
		Email:         account.Email,
		InstitutionID: account.InstitutionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, err
}

func GetAccountFromContext(c *gin.Context) *Claims {
	account, exists := c.Get("account")
	if !exists {
		return nil
	}
	claims, ok := account.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
