package service

import (
	"strconv"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/util/slug"
	"github.com/Slavchick12/api-yamdb/web/entity"

	"gorm.io/gorm"
)

type GenreService struct {
	DB *gorm.DB
}

func NewGenreService() *GenreService {
	return &GenreService{DB: database.GetDB()}
}

type GenreInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type GenrePatch struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (s *GenreService) List(search string, page, pageSize int) ([]model.Genre, int64, error) {
	query := s.DB.Model(&model.Genre{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var genres []model.Genre
	err := query.Order("name ASC").Scopes(paginate(page, pageSize)).Find(&genres).Error
	return genres, count, err
}

func (s *GenreService) Create(in GenreInput) (*model.Genre, error) {
	fields := entity.FieldErrors{}
	if in.Name == "" {
		fields.Add("name", "This field is required.")
	} else if len(in.Name) > 256 {
		fields.Add("name", "Ensure this field has no more than 256 characters.")
	}

	if in.Slug == "" {
		in.Slug = slug.Make(in.Name)
	} else if !slug.IsValid(in.Slug) {
		fields.Add("slug", "Enter a valid slug.")
	}

	if fields.Empty() {
		var count int64
		s.DB.Model(&model.Genre{}).Where("slug = ?", in.Slug).Count(&count)
		if count > 0 {
			fields.Add("slug", "A genre with that slug already exists.")
		}
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	genre := &model.Genre{Name: in.Name, Slug: in.Slug}
	if err := s.DB.Create(genre).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "slug"}
		}
		return nil, err
	}
	return genre, nil
}

// Get resolves a genre addressed either by numeric id or by slug.
func (s *GenreService) Get(key string) (*model.Genre, error) {
	genre := &model.Genre{}
	if id, err := strconv.Atoi(key); err == nil {
		err := s.DB.First(genre, id).Error
		if err == nil {
			return genre, nil
		}
		if !database.IsNotFound(err) {
			return nil, err
		}
	}

	err := s.DB.Where("slug = ?", key).First(genre).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "genre"}
	} else if err != nil {
		return nil, err
	}
	return genre, nil
}

func (s *GenreService) Update(genre *model.Genre, patch GenrePatch) (*model.Genre, error) {
	fields := entity.FieldErrors{}
	updates := map[string]any{}

	if patch.Name != nil {
		if *patch.Name == "" {
			fields.Add("name", "This field may not be blank.")
		} else if len(*patch.Name) > 256 {
			fields.Add("name", "Ensure this field has no more than 256 characters.")
		} else {
			updates["name"] = *patch.Name
		}
	}
	if patch.Slug != nil && *patch.Slug != genre.Slug {
		if !slug.IsValid(*patch.Slug) {
			fields.Add("slug", "Enter a valid slug.")
		} else {
			var count int64
			s.DB.Model(&model.Genre{}).Where("slug = ?", *patch.Slug).Count(&count)
			if count > 0 {
				fields.Add("slug", "A genre with that slug already exists.")
			} else {
				updates["slug"] = *patch.Slug
			}
		}
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}
	if len(updates) == 0 {
		return genre, nil
	}

	if err := s.DB.Model(genre).Updates(updates).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "slug"}
		}
		return nil, err
	}
	return genre, nil
}

// Delete removes the genre and its title associations; titles stay.
func (s *GenreService) Delete(genre *model.Genre) error {
	if err := s.DB.Exec("DELETE FROM title_genres WHERE genre_id = ?", genre.Id).Error; err != nil {
		return err
	}
	return s.DB.Delete(genre).Error
}
