package database

import (
	"os"

	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/logger"
	"github.com/Slavchick12/api-yamdb/util/slug"

	"github.com/goccy/go-json"
)

type fixtureTitle struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Year        int      `json:"year"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

type fixtureFile struct {
	Categories []model.Category `json:"categories"`
	Genres     []model.Genre    `json:"genres"`
	Titles     []fixtureTitle   `json:"titles"`
}

// Seed loads catalog fixtures (categories, genres, titles) from a JSON file.
// Existing rows are matched by slug or name and left untouched, so the
// command is safe to re-run.
func Seed(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fixtures fixtureFile
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		return err
	}

	for i := range fixtures.Categories {
		c := fixtures.Categories[i]
		if c.Slug == "" {
			c.Slug = slug.Make(c.Name)
		}
		if err := db.Where(model.Category{Slug: c.Slug}).
			FirstOrCreate(&c).Error; err != nil {
			return err
		}
	}

	for i := range fixtures.Genres {
		g := fixtures.Genres[i]
		if g.Slug == "" {
			g.Slug = slug.Make(g.Name)
		}
		if err := db.Where(model.Genre{Slug: g.Slug}).
			FirstOrCreate(&g).Error; err != nil {
			return err
		}
	}

	for _, ft := range fixtures.Titles {
		title := model.Title{
			Name:        ft.Name,
			Description: ft.Description,
			Year:        ft.Year,
		}

		if ft.Category != "" {
			var category model.Category
			if err := db.Where("slug = ?", ft.Category).First(&category).Error; err != nil {
				logger.Warningf("seed: title %q references unknown category %q", ft.Name, ft.Category)
			} else {
				title.CategoryId = &category.Id
			}
		}

		for _, gs := range ft.Genres {
			var genre model.Genre
			if err := db.Where("slug = ?", gs).First(&genre).Error; err != nil {
				logger.Warningf("seed: title %q references unknown genre %q", ft.Name, gs)
				continue
			}
			title.Genres = append(title.Genres, genre)
		}

		if err := db.Where(model.Title{Name: ft.Name}).
			FirstOrCreate(&title).Error; err != nil {
			return err
		}
	}

	logger.Infof("seed: loaded %d categories, %d genres, %d titles",
		len(fixtures.Categories), len(fixtures.Genres), len(fixtures.Titles))
	return nil
}
