package util

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Claims 运维令牌，仅携带操作者名称
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

const OperatorScope = "operator"

func GenerateJWT(subject, secret string, expiration time.Duration) (string, error) {
	now := time.Now()

	claims := &Claims{
		Scope: OperatorScope,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			Issuer:    "exam-template-backend",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		if claims.Scope != OperatorScope {
			return nil, errors.New("token scope is not operator")
		}
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

func GetOperatorFromContext(c *gin.Context) *Claims {
	v, exists := c.Get("operator")
	if !exists {
		return nil
	}
	claims, ok := v.(*Claims)
	if !ok {
		return nil
	}
	return claims
}
