package controller

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// newTitle inserts a title directly and returns its id.
func newTitle(t *testing.T, name string) int {
	t.Helper()
	svc := service.TitleService{DB: database.GetDB()}
	dto, err := svc.Create(service.TitleInput{Name: name, Year: 2000})
	assert.NoError(t, err)
	return dto.Id
}

func TestReviewLifecycleOverHTTP(t *testing.T) {
	engine := setup()
	defer teardown()

	titleID := newTitle(t, "Stalker")
	_, aliceToken := newUser(t, "alice", model.RoleUser)
	_, bobToken := newUser(t, "bob", model.RoleUser)
	_, modToken := newUser(t, "mod", model.RoleModerator)

	base := fmt.Sprintf("/api/v1/titles/%d/reviews", titleID)

	// Anonymous create is refused, authenticated create passes.
	w := doJSON(engine, http.MethodPost, base, "", gin.H{"text": "wow", "score": 10})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(engine, http.MethodPost, base, aliceToken, gin.H{"text": "wow", "score": 10})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "alice", body["author"])
	reviewID := int(body["id"].(float64))
	detail := fmt.Sprintf("%s/%d", base, reviewID)

	// A second review of the same title by the same author is refused.
	w = doJSON(engine, http.MethodPost, base, aliceToken, gin.H{"text": "again", "score": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Anonymous reads are open.
	w = doJSON(engine, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(engine, http.MethodGet, detail, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// PUT is rejected outright, even for the owner.
	w = doJSON(engine, http.MethodPut, detail, aliceToken, gin.H{"text": "x", "score": 1})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "PUT is not allowed, use PATCH", decodeBody(t, w)["detail"])

	// A non-owner plain user cannot mutate.
	w = doJSON(engine, http.MethodPatch, detail, bobToken, gin.H{"score": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = doJSON(engine, http.MethodDelete, detail, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The owner can.
	w = doJSON(engine, http.MethodPatch, detail, aliceToken, gin.H{"score": 8})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 8, decodeBody(t, w)["score"])

	// A moderator can remove anyone's review.
	w = doJSON(engine, http.MethodDelete, detail, modToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(engine, http.MethodGet, detail, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewNestedNotFound(t *testing.T) {
	engine := setup()
	defer teardown()

	titleID := newTitle(t, "Stalker")
	otherID := newTitle(t, "Solaris")
	_, token := newUser(t, "alice", model.RoleUser)

	w := doJSON(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/titles/%d/reviews", titleID), token,
		gin.H{"text": "wow", "score": 10})
	assert.Equal(t, http.StatusCreated, w.Code)
	reviewID := int(decodeBody(t, w)["id"].(float64))

	// Unknown parent title.
	w = doJSON(engine, http.MethodGet, "/api/v1/titles/999/reviews", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Existing review under the wrong title.
	w = doJSON(engine, http.MethodGet,
		fmt.Sprintf("/api/v1/titles/%d/reviews/%d", otherID, reviewID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Parent resolution runs before the ownership check for mutations.
	w = doJSON(engine, http.MethodPatch,
		fmt.Sprintf("/api/v1/titles/%d/reviews/%d", otherID, reviewID), token,
		gin.H{"score": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentLifecycleOverHTTP(t *testing.T) {
	engine := setup()
	defer teardown()

	titleID := newTitle(t, "Stalker")
	_, aliceToken := newUser(t, "alice", model.RoleUser)
	_, bobToken := newUser(t, "bob", model.RoleUser)
	_, adminToken := newUser(t, "boss", model.RoleAdmin)

	w := doJSON(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/titles/%d/reviews", titleID), aliceToken,
		gin.H{"text": "wow", "score": 10})
	assert.Equal(t, http.StatusCreated, w.Code)
	reviewID := int(decodeBody(t, w)["id"].(float64))

	base := fmt.Sprintf("/api/v1/titles/%d/reviews/%d/comments", titleID, reviewID)

	w = doJSON(engine, http.MethodPost, base, "", gin.H{"text": "me too"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(engine, http.MethodPost, base, bobToken, gin.H{"text": "me too"})
	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "bob", body["author"])
	commentID := int(body["id"].(float64))
	detail := fmt.Sprintf("%s/%d", base, commentID)

	w = doJSON(engine, http.MethodGet, base, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decodeBody(t, w)["count"])

	w = doJSON(engine, http.MethodPut, detail, bobToken, gin.H{"text": "x"})
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)

	// Only the owner or an elevated role mutates.
	w = doJSON(engine, http.MethodPatch, detail, aliceToken, gin.H{"text": "hijack"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(engine, http.MethodPatch, detail, bobToken, gin.H{"text": "edited"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "edited", decodeBody(t, w)["text"])

	w = doJSON(engine, http.MethodDelete, detail, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(engine, http.MethodGet, detail, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentNestedNotFound(t *testing.T) {
	engine := setup()
	defer teardown()

	titleID := newTitle(t, "Stalker")
	_, token := newUser(t, "alice", model.RoleUser)

	// Comments under a review that does not exist.
	w := doJSON(engine, http.MethodGet,
		fmt.Sprintf("/api/v1/titles/%d/reviews/999/comments", titleID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(engine, http.MethodPost,
		fmt.Sprintf("/api/v1/titles/%d/reviews/999/comments", titleID), token,
		gin.H{"text": "hello"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
