package service

import (
	"testing"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"

	"github.com/stretchr/testify/assert"
)

func TestCategoryServiceCreate(t *testing.T) {
	setup()
	defer teardown()

	svc := CategoryService{DB: database.GetDB()}

	// Slug derived from the name when omitted.
	category, err := svc.Create(CategoryInput{Name: "Science Fiction"})
	assert.NoError(t, err)
	assert.Equal(t, "science-fiction", category.Slug)

	category, err = svc.Create(CategoryInput{Name: "Films", Slug: "movies"})
	assert.NoError(t, err)
	assert.Equal(t, "movies", category.Slug)

	var verr *ValidationError
	_, err = svc.Create(CategoryInput{Name: ""})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")

	_, err = svc.Create(CategoryInput{Name: "Bad", Slug: "no spaces!"})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")

	_, err = svc.Create(CategoryInput{Name: "Other Films", Slug: "movies"})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")
}

func TestCategoryServiceGetByIdOrSlug(t *testing.T) {
	setup()
	defer teardown()

	svc := CategoryService{DB: database.GetDB()}
	created, _ := svc.Create(CategoryInput{Name: "Books", Slug: "books"})

	bySlug, err := svc.Get("books")
	assert.NoError(t, err)
	assert.Equal(t, created.Id, bySlug.Id)

	byID, err := svc.Get("1")
	assert.NoError(t, err)
	assert.Equal(t, created.Id, byID.Id)

	var nfe *NotFoundError
	_, err = svc.Get("missing")
	assert.ErrorAs(t, err, &nfe)

	// A numeric key that matches no id still falls back to slug lookup.
	numeric, _ := svc.Create(CategoryInput{Name: "Year 1984", Slug: "1984"})
	got, err := svc.Get("1984")
	assert.NoError(t, err)
	assert.Equal(t, numeric.Id, got.Id)
}

func TestCategoryServiceListOrdersByName(t *testing.T) {
	setup()
	defer teardown()

	svc := CategoryService{DB: database.GetDB()}
	svc.Create(CategoryInput{Name: "Movies", Slug: "movies"})
	svc.Create(CategoryInput{Name: "Books", Slug: "books"})

	categories, count, err := svc.List("", 1, CatalogPageSize)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, "Books", categories[0].Name)
	assert.Equal(t, "Movies", categories[1].Name)

	categories, count, err = svc.List("Mov", 1, CatalogPageSize)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, count)
	assert.Equal(t, "movies", categories[0].Slug)
}

func TestCategoryServiceUpdate(t *testing.T) {
	setup()
	defer teardown()

	svc := CategoryService{DB: database.GetDB()}
	category, _ := svc.Create(CategoryInput{Name: "Books", Slug: "books"})
	svc.Create(CategoryInput{Name: "Movies", Slug: "movies"})

	name := "Paper Books"
	updated, err := svc.Update(category, CategoryPatch{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "Paper Books", updated.Name)

	taken := "movies"
	var verr *ValidationError
	_, err = svc.Update(category, CategoryPatch{Slug: &taken})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")
}

func TestCategoryDeleteNullsTitleCategory(t *testing.T) {
	setup()
	defer teardown()

	svc := CategoryService{DB: database.GetDB()}
	titleSvc := TitleService{DB: database.GetDB()}

	category, _ := svc.Create(CategoryInput{Name: "Movies", Slug: "movies"})
	_, err := titleSvc.Create(TitleInput{Name: "Stalker", Year: 1979, Category: "movies"})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(category))

	// The title survives with no category.
	var title model.Title
	err = database.GetDB().First(&title, "name = ?", "Stalker").Error
	assert.NoError(t, err)
	assert.Nil(t, title.CategoryId)
}
