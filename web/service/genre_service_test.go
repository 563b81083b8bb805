package service

import (
	"testing"

	"github.com/Slavchick12/api-yamdb/database"

	"github.com/stretchr/testify/assert"
)

func TestGenreServiceCreateAndGet(t *testing.T) {
	setup()
	defer teardown()

	svc := GenreService{DB: database.GetDB()}

	genre, err := svc.Create(GenreInput{Name: "Sci Fi"})
	assert.NoError(t, err)
	assert.Equal(t, "sci-fi", genre.Slug)

	bySlug, err := svc.Get("sci-fi")
	assert.NoError(t, err)
	assert.Equal(t, genre.Id, bySlug.Id)

	var verr *ValidationError
	_, err = svc.Create(GenreInput{Name: "Science Fiction", Slug: "sci-fi"})
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "slug")
}

func TestGenreDeleteDetachesTitles(t *testing.T) {
	setup()
	defer teardown()

	svc := GenreService{DB: database.GetDB()}
	titleSvc := TitleService{DB: database.GetDB()}

	genre, _ := svc.Create(GenreInput{Name: "Drama", Slug: "drama"})
	_, err := titleSvc.Create(TitleInput{Name: "Hamlet", Year: 1601, Genres: []string{"drama"}})
	assert.NoError(t, err)

	assert.NoError(t, svc.Delete(genre))

	// The title survives with an empty genre list.
	title, err := titleSvc.GetDTO(1)
	assert.NoError(t, err)
	assert.Empty(t, title.Genres)

	var joinCount int64
	database.GetDB().Table("title_genres").Count(&joinCount)
	assert.EqualValues(t, 0, joinCount)
}
