package service

import (
	"testing"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"

	"github.com/stretchr/testify/assert"
)

func TestUserServiceCreate(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{DB: database.GetDB()}

	user, err := svc.Create(UserInput{Username: "alice", Email: "alice@example.com"})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, user.Role)
	assert.NotEmpty(t, user.ConfirmationCode)

	moderator, err := svc.Create(UserInput{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     model.RoleModerator,
	})
	assert.NoError(t, err)
	assert.Equal(t, model.RoleModerator, moderator.Role)

	var verr *ValidationError
	_, err = svc.Create(UserInput{Username: "bob", Email: "bob@example.com", Role: "boss"})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "role")

	_, err = svc.Create(UserInput{Username: "alice", Email: "other@example.com"})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
}

func TestUserServiceListAndSearch(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{DB: database.GetDB()}
	for _, name := range []string{"alice", "alina", "bob"} {
		_, err := svc.Create(UserInput{Username: name, Email: name + "@example.com"})
		assert.NoError(t, err)
	}

	users, count, err := svc.List("", 1, UserPageSize)
	assert.NoError(t, err)
	assert.EqualValues(t, 3, count)
	assert.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)

	users, count, err = svc.List("ali", 1, UserPageSize)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Len(t, users, 2)
}

func TestUserServiceUpdateRoleGate(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{DB: database.GetDB()}
	user, _ := svc.Create(UserInput{Username: "alice", Email: "alice@example.com"})

	adminRole := model.RoleAdmin
	bio := "hi"

	// Self-service path must leave the role untouched.
	updated, err := svc.Update(user, UserPatch{Bio: &bio, Role: &adminRole}, false)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleUser, updated.Role)
	assert.Equal(t, "hi", updated.Bio)

	fresh, _ := svc.GetByID(user.Id)
	assert.Equal(t, model.RoleUser, fresh.Role)

	// Admin path applies it.
	updated, err = svc.Update(fresh, UserPatch{Role: &adminRole}, true)
	assert.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
}

func TestUserServiceUpdateUniqueness(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{DB: database.GetDB()}
	alice, _ := svc.Create(UserInput{Username: "alice", Email: "alice@example.com"})
	_, err := svc.Create(UserInput{Username: "bob", Email: "bob@example.com"})
	assert.NoError(t, err)

	taken := "bob"
	var verr *ValidationError
	_, err = svc.Update(alice, UserPatch{Username: &taken}, true)
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")

	// Re-submitting the current username is not a conflict.
	same := "alice"
	_, err = svc.Update(alice, UserPatch{Username: &same}, true)
	assert.NoError(t, err)
}

func TestUserServiceDelete(t *testing.T) {
	setup()
	defer teardown()

	svc := UserService{DB: database.GetDB()}
	user, _ := svc.Create(UserInput{Username: "alice", Email: "alice@example.com"})

	assert.NoError(t, svc.Delete(user))

	var nfe *NotFoundError
	_, err := svc.GetByUsername("alice")
	assert.ErrorAs(t, err, &nfe)
}
