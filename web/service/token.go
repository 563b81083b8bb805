package service

import (
	"time"

	"github.com/Slavchick12/api-yamdb/config"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/util/common"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const accessTokenLifetime = 24 * time.Hour

// TokenService signs and parses bearer access tokens.
type TokenService struct {
	secret []byte
}

func NewTokenService() *TokenService {
	return &TokenService{secret: []byte(config.GetTokenSecret())}
}

// Issue signs an access token bound to the user's identity.
func (s *TokenService) Issue(user *model.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"token_type": "access",
		"user_id":    user.Id,
		"jti":        uuid.NewString(),
		"iat":        now.Unix(),
		"exp":        now.Add(accessTokenLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates a raw token and returns the bound user id.
func (s *TokenService) Parse(raw string) (int, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.NewErrorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, common.NewError("unexpected token claims")
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, common.NewError("token has no user binding")
	}
	return int(userID), nil
}
