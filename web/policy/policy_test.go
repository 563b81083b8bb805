package policy

import (
	"testing"

	"github.com/Slavchick12/api-yamdb/database/model"

	"github.com/stretchr/testify/assert"
)

var (
	anonymous *Principal
	plainUser = &Principal{UserID: 1, Role: model.RoleUser}
	moderator = &Principal{UserID: 2, Role: model.RoleModerator}
	admin     = &Principal{UserID: 3, Role: model.RoleAdmin}
	superuser = &Principal{UserID: 4, Role: model.RoleUser, Superuser: true}
)

func TestDecideUsers(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		action    Action
		expected  Decision
	}{
		{"anonymous list", anonymous, List, DenyUnauthorized},
		{"plain user list", plainUser, List, DenyForbidden},
		{"moderator list", moderator, List, DenyForbidden},
		{"admin list", admin, List, Allow},
		{"superuser list", superuser, List, Allow},
		{"admin create", admin, Create, Allow},
		{"admin destroy", admin, Destroy, Allow},
		{"admin put", admin, Update, DenyMethodNotAllowed},
		{"anonymous put", anonymous, Update, DenyMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.principal, tt.action, Users))
		})
	}
}

func TestDecideCatalogReadsAreOpen(t *testing.T) {
	for _, resource := range []Resource{Categories, Genres, Titles} {
		assert.Equal(t, Allow, Decide(anonymous, List, resource))
		assert.Equal(t, Allow, Decide(anonymous, Retrieve, resource))
		assert.Equal(t, Allow, Decide(plainUser, List, resource))
	}
}

func TestDecideCatalogWrites(t *testing.T) {
	tests := []struct {
		name      string
		principal *Principal
		action    Action
		resource  Resource
		expected  Decision
	}{
		{"anonymous create category", anonymous, Create, Categories, DenyUnauthorized},
		{"plain user create category", plainUser, Create, Categories, DenyForbidden},
		{"moderator create category", moderator, Create, Categories, DenyForbidden},
		{"admin create category", admin, Create, Categories, Allow},
		{"superuser create category", superuser, Create, Categories, Allow},
		{"superuser destroy genre", superuser, Destroy, Genres, Allow},
		{"admin put category", admin, Update, Categories, Allow},
		{"admin create title", admin, Create, Titles, Allow},
		{"admin put title", admin, Update, Titles, Allow},
		// Title writes check the literal admin role, so a superuser with a
		// plain role is refused here even though the catalog lets them in.
		{"superuser create title", superuser, Create, Titles, DenyForbidden},
		{"superuser destroy title", superuser, Destroy, Titles, DenyForbidden},
		{"plain user destroy title", plainUser, Destroy, Titles, DenyForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.principal, tt.action, tt.resource))
		})
	}
}

func TestDecideReviewsAndComments(t *testing.T) {
	for _, resource := range []Resource{Reviews, Comments} {
		assert.Equal(t, Allow, Decide(anonymous, List, resource))
		assert.Equal(t, Allow, Decide(anonymous, Retrieve, resource))

		assert.Equal(t, DenyUnauthorized, Decide(anonymous, Create, resource))
		assert.Equal(t, Allow, Decide(plainUser, Create, resource))

		// Without ownership context mutations pass only for elevated roles.
		assert.Equal(t, DenyForbidden, Decide(plainUser, PartialUpdate, resource))
		assert.Equal(t, Allow, Decide(moderator, PartialUpdate, resource))
		assert.Equal(t, Allow, Decide(admin, Destroy, resource))
		assert.Equal(t, Allow, Decide(superuser, Destroy, resource))

		assert.Equal(t, DenyMethodNotAllowed, Decide(plainUser, Update, resource))
		assert.Equal(t, DenyMethodNotAllowed, Decide(admin, Update, resource))
	}
}

func TestDecideOwned(t *testing.T) {
	const authorID = 1

	tests := []struct {
		name      string
		principal *Principal
		action    Action
		expected  Decision
	}{
		{"anonymous patch", anonymous, PartialUpdate, DenyUnauthorized},
		{"owner patch", plainUser, PartialUpdate, Allow},
		{"owner destroy", plainUser, Destroy, Allow},
		{"other user patch", &Principal{UserID: 9, Role: model.RoleUser}, PartialUpdate, DenyForbidden},
		{"other user destroy", &Principal{UserID: 9, Role: model.RoleUser}, Destroy, DenyForbidden},
		{"moderator patch", moderator, PartialUpdate, Allow},
		{"moderator destroy", moderator, Destroy, Allow},
		{"admin destroy", admin, Destroy, Allow},
		{"superuser destroy", superuser, Destroy, Allow},
		{"owner put", plainUser, Update, DenyMethodNotAllowed},
	}

	for _, resource := range []Resource{Reviews, Comments} {
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				assert.Equal(t, tt.expected, DecideOwned(tt.principal, tt.action, resource, authorID))
			})
		}
	}
}
