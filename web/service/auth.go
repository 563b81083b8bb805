package service

import (
	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/logger"
	"github.com/Slavchick12/api-yamdb/util/common"
	"github.com/Slavchick12/api-yamdb/util/random"
	"github.com/Slavchick12/api-yamdb/web/entity"

	"gorm.io/gorm"
)

const confirmationCodeLength = 24

// AuthService implements the signup and token-exchange flows.
type AuthService struct {
	DB     *gorm.DB
	Mailer Mailer
	Tokens *TokenService
}

func NewAuthService(mailer Mailer) *AuthService {
	return &AuthService{
		DB:     database.GetDB(),
		Mailer: mailer,
		Tokens: NewTokenService(),
	}
}

// Signup validates the pair, creates the user with a fresh confirmation code
// and mails the code. A mail failure aborts the call; the created record is
// kept, matching historical behavior.
func (s *AuthService) Signup(username, email string) (*model.User, error) {
	fields := entity.FieldErrors{}
	validateUsername(fields, username)
	validateEmail(fields, email)

	if fields.Empty() {
		var count int64
		s.DB.Model(&model.User{}).Where("username = ?", username).Count(&count)
		if count > 0 {
			fields.Add("username", "A user with that username already exists.")
		}
		count = 0
		s.DB.Model(&model.User{}).Where("email = ?", email).Count(&count)
		if count > 0 {
			fields.Add("email", "A user with that email already exists.")
		}
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	user := &model.User{
		Username:         username,
		Email:            email,
		Role:             model.RoleUser,
		ConfirmationCode: random.Seq(confirmationCodeLength),
	}
	if err := s.DB.Create(user).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "username"}
		}
		return nil, err
	}

	if err := s.Mailer.Send(email, "YaMDb confirmation code", user.ConfirmationCode); err != nil {
		logger.Warning("signup mail dispatch failed:", err)
		return nil, common.NewErrorf("send confirmation mail: %v", err)
	}
	return user, nil
}

// ExchangeToken trades a confirmation code for a signed access token.
// Missing fields and wrong codes come back as validation errors; an unknown
// username is reported as not found. The stored code is cleared on success,
// so a second exchange with the same code fails.
func (s *AuthService) ExchangeToken(username, confirmationCode string) (string, error) {
	fields := entity.FieldErrors{}
	if username == "" {
		fields.Add("username", "This field is required.")
	}
	if confirmationCode == "" {
		fields.Add("confirmation_code", "This field is required.")
	}
	if !fields.Empty() {
		return "", &ValidationError{Fields: fields}
	}

	user := &model.User{}
	err := s.DB.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return "", &NotFoundError{Resource: "user"}
	} else if err != nil {
		return "", err
	}

	if user.ConfirmationCode == "" || user.ConfirmationCode != confirmationCode {
		return "", newValidationError("confirmation_code", "Invalid confirmation code.")
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return "", err
	}

	err = s.DB.Model(user).Update("confirmation_code", "").Error
	if err != nil {
		return "", err
	}
	return token, nil
}
