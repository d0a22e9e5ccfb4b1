package myjwt

import (
	"errors"
	"strings"
	"time"

	"EDT/internal/config"

	"github.com/golang-jwt/jwt/v5"
)

// CustomClaims 身份提供方签发的访问令牌；sub 为用户 ID，session_id 为当前会话
type CustomClaims struct {
	Uuid      string `json:"uuid,omitempty"`
	Email     string `json:"email,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	jwt.RegisteredClaims
}

// UserID 优先使用 sub，兼容旧令牌的 uuid 字段
func (c *CustomClaims) UserID() string {
	if s := strings.TrimSpace(c.Subject); s != "" {
		return s
	}
	return strings.TrimSpace(c.Uuid)
}

func GenerateToken(conf config.JwtConfig, userID string, sessionID string, email string) (string, error) {
	if conf.Key == "" {
		return "", errors.New("jwt key is empty")
	}

	expireHours := conf.ExpireHours
	if expireHours <= 0 {
		expireHours = 24
	}

	now := time.Now()
	claims := CustomClaims{
		Email:     email,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expireHours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    conf.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(conf.Key))
}

func ParseToken(conf config.JwtConfig, tokenString string) (*CustomClaims, error) {
	if conf.Key == "" {
		return nil, errors.New("jwt key is empty")
	}

	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(conf.Key), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID() == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
