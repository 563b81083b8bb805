package service

import (
	"testing"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"

	"github.com/stretchr/testify/assert"
)

// reviewFixture creates a title and two users for review tests.
func reviewFixture(t *testing.T) (*model.Title, *model.User, *model.User) {
	t.Helper()
	titleSvc := TitleService{DB: database.GetDB()}
	userSvc := UserService{DB: database.GetDB()}

	dto, err := titleSvc.Create(TitleInput{Name: "Stalker", Year: 1979})
	assert.NoError(t, err)
	title, err := titleSvc.Get(dto.Id)
	assert.NoError(t, err)

	alice, err := userSvc.Create(UserInput{Username: "alice", Email: "alice@example.com"})
	assert.NoError(t, err)
	bob, err := userSvc.Create(UserInput{Username: "bob", Email: "bob@example.com"})
	assert.NoError(t, err)
	return title, alice, bob
}

func TestReviewServiceCreate(t *testing.T) {
	setup()
	defer teardown()
	title, alice, _ := reviewFixture(t)

	svc := ReviewService{DB: database.GetDB()}

	review, err := svc.Create(title, alice, "masterpiece", 10)
	assert.NoError(t, err)
	assert.Equal(t, "alice", review.Author)
	assert.Equal(t, 10, review.Score)
	assert.False(t, review.PubDate.IsZero())

	var verr *ValidationError
	_, err = svc.Create(title, alice, "", 5)
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "text")

	_, err = svc.Create(title, alice, "meh", 0)
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "score")

	_, err = svc.Create(title, alice, "wow", 11)
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "score")
}

func TestReviewServiceOneReviewPerTitle(t *testing.T) {
	setup()
	defer teardown()
	title, alice, bob := reviewFixture(t)

	svc := ReviewService{DB: database.GetDB()}

	_, err := svc.Create(title, alice, "masterpiece", 10)
	assert.NoError(t, err)

	var verr *ValidationError
	_, err = svc.Create(title, alice, "changed my mind", 3)
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "title")

	// A different author reviews the same title freely.
	_, err = svc.Create(title, bob, "long", 7)
	assert.NoError(t, err)

	var count int64
	database.GetDB().Model(&model.Review{}).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestReviewServiceListAndGetAreTitleScoped(t *testing.T) {
	setup()
	defer teardown()
	title, alice, bob := reviewFixture(t)

	titleSvc := TitleService{DB: database.GetDB()}
	otherDTO, _ := titleSvc.Create(TitleInput{Name: "Solaris", Year: 1972})
	other, _ := titleSvc.Get(otherDTO.Id)

	svc := ReviewService{DB: database.GetDB()}
	mine, _ := svc.Create(title, alice, "masterpiece", 10)
	svc.Create(other, bob, "also good", 8)

	reviews, count, err := svc.List(title.Id, 1, ReviewPageSize)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, "alice", reviews[0].Author)

	// A review is not reachable through another title.
	var nfe *NotFoundError
	_, err = svc.Get(other.Id, mine.Id)
	assert.ErrorAs(t, err, &nfe)
}

func TestReviewServicePatch(t *testing.T) {
	setup()
	defer teardown()
	title, alice, _ := reviewFixture(t)

	svc := ReviewService{DB: database.GetDB()}
	dto, _ := svc.Create(title, alice, "masterpiece", 10)
	review, _ := svc.Get(title.Id, dto.Id)

	score := 8
	patched, err := svc.Patch(review, ReviewPatch{Score: &score})
	assert.NoError(t, err)
	assert.Equal(t, 8, patched.Score)
	assert.Equal(t, "masterpiece", patched.Text)

	bad := 0
	var verr *ValidationError
	_, err = svc.Patch(review, ReviewPatch{Score: &bad})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "score")
}

func TestReviewDeleteCascadesComments(t *testing.T) {
	setup()
	defer teardown()
	title, alice, bob := reviewFixture(t)

	svc := ReviewService{DB: database.GetDB()}
	commentSvc := CommentService{DB: database.GetDB()}

	dto, _ := svc.Create(title, alice, "masterpiece", 10)
	review, _ := svc.Get(title.Id, dto.Id)
	_, err := commentSvc.Create(review, bob, "agreed")
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(review))

	var comments int64
	database.GetDB().Model(&model.Comment{}).Count(&comments)
	assert.EqualValues(t, 0, comments)
}
