package service

import (
	"strconv"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/util/slug"
	"github.com/Slavchick12/api-yamdb/web/entity"

	"gorm.io/gorm"
)

type CategoryService struct {
	DB *gorm.DB
}

func NewCategoryService() *CategoryService {
	return &CategoryService{DB: database.GetDB()}
}

type CategoryInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryPatch struct {
	Name *string `json:"name"`
	Slug *string `json:"slug"`
}

func (s *CategoryService) List(search string, page, pageSize int) ([]model.Category, int64, error) {
	query := s.DB.Model(&model.Category{})
	if search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var categories []model.Category
	err := query.Order("name ASC").Scopes(paginate(page, pageSize)).Find(&categories).Error
	return categories, count, err
}

func (s *CategoryService) Create(in CategoryInput) (*model.Category, error) {
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
		s.DB.Model(&model.Category{}).Where("slug = ?", in.Slug).Count(&count)
		if count > 0 {
			fields.Add("slug", "A category with that slug already exists.")
		}
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	category := &model.Category{Name: in.Name, Slug: in.Slug}
	if err := s.DB.Create(category).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "slug"}
		}
		return nil, err
	}
	return category, nil
}

// Get resolves a category addressed either by numeric id or by slug.
func (s *CategoryService) Get(key string) (*model.Category, error) {
	category := &model.Category{}
	if id, err := strconv.Atoi(key); err == nil {
		err := s.DB.First(category, id).Error
		if err == nil {
			return category, nil
		}
		if !database.IsNotFound(err) {
			return nil, err
		}
	}

	err := s.DB.Where("slug = ?", key).First(category).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "category"}
	} else if err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(category *model.Category, patch CategoryPatch) (*model.Category, error) {
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
	if patch.Slug != nil && *patch.Slug != category.Slug {
		if !slug.IsValid(*patch.Slug) {
			fields.Add("slug", "Enter a valid slug.")
		} else {
			var count int64
			s.DB.Model(&model.Category{}).Where("slug = ?", *patch.Slug).Count(&count)
			if count > 0 {
				fields.Add("slug", "A category with that slug already exists.")
			} else {
				updates["slug"] = *patch.Slug
			}
		}
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}
	if len(updates) == 0 {
		return category, nil
	}

	if err := s.DB.Model(category).Updates(updates).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "slug"}
		}
		return nil, err
	}
	return category, nil
}

// Delete removes the category; titles keep existing with a null category via
// the SET NULL constraint.
func (s *CategoryService) Delete(category *model.Category) error {
	return s.DB.Delete(category).Error
}
