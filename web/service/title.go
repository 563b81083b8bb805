package service

import (
	"math"
	"time"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/web/entity"

	"gorm.io/gorm"
)

type TitleService struct {
	DB *gorm.DB
}

func NewTitleService() *TitleService {
	return &TitleService{DB: database.GetDB()}
}

// TitleDTO is the serialized title shape. Rating is the rounded average
// review score, null while the title has no reviews.
type TitleDTO struct {
	Id          int             `json:"id"`
	Name        string          `json:"name"`
	Year        int             `json:"year"`
	Description string          `json:"description"`
	Rating      *int            `json:"rating"`
	Category    *model.Category `json:"category"`
	Genres      []model.Genre   `json:"genre"`
}

// TitleInput is the create/replace payload; category and genres are
// addressed by slug.
type TitleInput struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

type TitlePatch struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

// TitleFilter narrows the title listing.
type TitleFilter struct {
	Category string // category slug
	Genre    string // genre slug
	Name     string // substring match
	Year     *int
}

func (s *TitleService) toDTO(title *model.Title, rating *int) TitleDTO {
	genres := title.Genres
	if genres == nil {
		genres = []model.Genre{}
	}
	return TitleDTO{
		Id:          title.Id,
		Name:        title.Name,
		Year:        title.Year,
		Description: title.Description,
		Rating:      rating,
		Category:    title.Category,
		Genres:      genres,
	}
}

// ratings returns the rounded average score per title id.
func (s *TitleService) ratings(titleIDs []int) (map[int]int, error) {
	out := map[int]int{}
	if len(titleIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		TitleId int
		Avg     float64
	}
	err := s.DB.Model(&model.Review{}).
		Select("title_id, AVG(score) AS avg").
		Where("title_id IN ?", titleIDs).
		Group("title_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.TitleId] = int(math.Round(row.Avg))
	}
	return out, nil
}

func (s *TitleService) List(filter TitleFilter, page, pageSize int) ([]TitleDTO, int64, error) {
	query := s.DB.Model(&model.Title{})
	if filter.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.Category)
	}
	if filter.Genre != "" {
		query = query.Joins("JOIN title_genres ON title_genres.title_id = titles.id").
			Joins("JOIN genres ON genres.id = title_genres.genre_id").
			Where("genres.slug = ?", filter.Genre)
	}
	if filter.Name != "" {
		query = query.Where("titles.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		query = query.Where("titles.year = ?", *filter.Year)
	}

	// Count on an isolated session so the narrowed select list does not
	// leak into the Find below.
	var count int64
	if err := query.Session(&gorm.Session{}).Distinct("titles.id").Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var titles []model.Title
	err := query.Distinct().
		Preload("Category").Preload("Genres").
		Order("titles.name ASC, titles.year ASC").
		Scopes(paginate(page, pageSize)).
		Find(&titles).Error
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int, 0, len(titles))
	for i := range titles {
		ids = append(ids, titles[i].Id)
	}
	ratings, err := s.ratings(ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]TitleDTO, 0, len(titles))
	for i := range titles {
		var rating *int
		if r, ok := ratings[titles[i].Id]; ok {
			rating = &r
		}
		out = append(out, s.toDTO(&titles[i], rating))
	}
	return out, count, nil
}

func (s *TitleService) Get(id int) (*model.Title, error) {
	title := &model.Title{}
	err := s.DB.Preload("Category").Preload("Genres").First(title, id).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "title"}
	} else if err != nil {
		return nil, err
	}
	return title, nil
}

// GetDTO returns the serialized title including its rating.
func (s *TitleService) GetDTO(id int) (*TitleDTO, error) {
	title, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings([]int{title.Id})
	if err != nil {
		return nil, err
	}
	var rating *int
	if r, ok := ratings[title.Id]; ok {
		rating = &r
	}
	dto := s.toDTO(title, rating)
	return &dto, nil
}

func (s *TitleService) resolveCategory(fields entity.FieldErrors, slug string) *model.Category {
	if slug == "" {
		return nil
	}
	category := &model.Category{}
	if err := s.DB.Where("slug = ?", slug).First(category).Error; err != nil {
		fields.Add("category", "Unknown category slug.")
		return nil
	}
	return category
}

func (s *TitleService) resolveGenres(fields entity.FieldErrors, slugs []string) []model.Genre {
	genres := make([]model.Genre, 0, len(slugs))
	for _, gs := range slugs {
		genre := model.Genre{}
		if err := s.DB.Where("slug = ?", gs).First(&genre).Error; err != nil {
			fields.Add("genre", "Unknown genre slug: "+gs)
			continue
		}
		genres = append(genres, genre)
	}
	return genres
}

func (s *TitleService) validateName(fields entity.FieldErrors, name string, excludeID int) {
	if name == "" {
		fields.Add("name", "This field is required.")
		return
	}
	if len(name) > 256 {
		fields.Add("name", "Ensure this field has no more than 256 characters.")
		return
	}
	var count int64
	query := s.DB.Model(&model.Title{}).Where("name = ?", name)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	query.Count(&count)
	if count > 0 {
		fields.Add("name", "A title with that name already exists.")
	}
}

func validateYear(fields entity.FieldErrors, year int) {
	if year > time.Now().Year() {
		fields.Add("year", "Year cannot be in the future.")
	}
}

func (s *TitleService) Create(in TitleInput) (*TitleDTO, error) {
	fields := entity.FieldErrors{}
	s.validateName(fields, in.Name, 0)
	validateYear(fields, in.Year)
	category := s.resolveCategory(fields, in.Category)
	genres := s.resolveGenres(fields, in.Genres)
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	title := &model.Title{
		Name:        in.Name,
		Year:        in.Year,
		Description: in.Description,
		Genres:      genres,
	}
	if category != nil {
		title.CategoryId = &category.Id
		title.Category = category
	}
	if err := s.DB.Create(title).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "name"}
		}
		return nil, err
	}
	dto := s.toDTO(title, nil)
	return &dto, nil
}

// Replace implements PUT semantics: every field is reset from the input.
func (s *TitleService) Replace(title *model.Title, in TitleInput) (*TitleDTO, error) {
	fields := entity.FieldErrors{}
	s.validateName(fields, in.Name, title.Id)
	validateYear(fields, in.Year)
	category := s.resolveCategory(fields, in.Category)
	genres := s.resolveGenres(fields, in.Genres)
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	updates := map[string]any{
		"name":        in.Name,
		"year":        in.Year,
		"description": in.Description,
	}
	if category != nil {
		updates["category_id"] = category.Id
	} else {
		updates["category_id"] = nil
	}
	// Omit the preloaded association or gorm rewrites category_id from it.
	if err := s.DB.Model(title).Omit("Category").Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(title).Association("Genres").Replace(genres); err != nil {
		return nil, err
	}
	return s.GetDTO(title.Id)
}

func (s *TitleService) Patch(title *model.Title, patch TitlePatch) (*TitleDTO, error) {
	fields := entity.FieldErrors{}
	updates := map[string]any{}

	if patch.Name != nil {
		s.validateName(fields, *patch.Name, title.Id)
		updates["name"] = *patch.Name
	}
	if patch.Year != nil {
		validateYear(fields, *patch.Year)
		updates["year"] = *patch.Year
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}

	var category *model.Category
	if patch.Category != nil {
		if *patch.Category == "" {
			updates["category_id"] = nil
		} else {
			category = s.resolveCategory(fields, *patch.Category)
		}
	}
	var genres []model.Genre
	if patch.Genres != nil {
		genres = s.resolveGenres(fields, *patch.Genres)
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	if category != nil {
		updates["category_id"] = category.Id
	}
	if len(updates) > 0 {
		if err := s.DB.Model(title).Omit("Category").Updates(updates).Error; err != nil {
			if database.IsDuplicate(err) {
				return nil, &ConflictError{Field: "name"}
			}
			return nil, err
		}
	}
	if patch.Genres != nil {
		if err := s.DB.Model(title).Association("Genres").Replace(genres); err != nil {
			return nil, err
		}
	}
	return s.GetDTO(title.Id)
}

// Delete removes the title; its reviews (and their comments) fall to the
// FK cascade.
func (s *TitleService) Delete(title *model.Title) error {
	return s.DB.Select("Genres").Delete(title).Error
}
