/* 익명 상담 세션 토큰 발급 및 검증 (생성 엔드포인트 남용 방지) */

package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const issuer = "SkinProtocol-api"

var ErrEmptySecret = errors.New("auth: signing secret is empty")

// Claims 구조체, 세션 ID를 Subject로 사용
type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type TokenIssuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &TokenIssuer{key: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// Issue creates a token for a new anonymous session.
func (t *TokenIssuer) Issue() (string, *Claims, error) {
	now := t.now()
	sessionID := uuid.New().String()
	claims := &Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			Subject:   "consultation_session",
			ID:        sessionID,
		},
	}

	// 토큰 문자열 생성 및 서명
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(t.key)
	if err != nil {
		return "", nil, err
	}
	return tokenString, claims, nil
}

func (t *TokenIssuer) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Issuer != issuer {
		return nil, jwt.ErrTokenInvalidIssuer
	}
	return claims, nil
}
