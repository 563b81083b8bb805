// Package middleware provides gin middleware for the API, most importantly
// bearer-token authentication.
package middleware

import (
	"net/http"
	"strings"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/web/entity"
	"github.com/Slavchick12/api-yamdb/web/policy"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	userKey      = "user"
)

// Auth resolves the Authorization header into a principal. Requests without
// the header pass through as anonymous; a present-but-invalid token is a
// hard 401.
func Auth(tokens *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			abortUnauthorized(c, "Authorization header must start with Bearer.")
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			abortUnauthorized(c, "Token is invalid or expired.")
			return
		}

		user := &model.User{}
		if err := database.GetDB().First(user, userID).Error; err != nil {
			abortUnauthorized(c, "User not found for this token.")
			return
		}

		c.Set(userKey, user)
		c.Set(principalKey, &policy.Principal{
			UserID:    user.Id,
			Role:      user.Role,
			Superuser: user.IsSuperuser,
		})
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, detail string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Detail{Detail: detail})
}

// Principal returns the authenticated principal, or nil for anonymous.
func Principal(c *gin.Context) *policy.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(*policy.Principal); ok {
			return p
		}
	}
	return nil
}

// CurrentUser returns the authenticated user record, or nil for anonymous.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
