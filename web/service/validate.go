package service

import (
	"net/mail"
	"regexp"

	"github.com/Slavchick12/api-yamdb/web/entity"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

const (
	maxUsernameLength = 150
	maxEmailLength    = 254
)

func validateUsername(fields entity.FieldErrors, username string) {
	switch {
	case username == "":
		fields.Add("username", "This field is required.")
	case len(username) > maxUsernameLength:
		fields.Add("username", "Ensure this field has no more than 150 characters.")
	case !usernameRe.MatchString(username):
		fields.Add("username", "Enter a valid username.")
	case username == "me":
		// "me" is the self-service endpoint path and can never be a username.
		fields.Add("username", "Username \"me\" is not allowed.")
	}
}

func validateEmail(fields entity.FieldErrors, email string) {
	if email == "" {
		fields.Add("email", "This field is required.")
		return
	}
	if len(email) > maxEmailLength {
		fields.Add("email", "Ensure this field has no more than 254 characters.")
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields.Add("email", "Enter a valid email address.")
	}
}
