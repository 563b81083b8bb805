package service

import (
	"time"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/web/entity"

	"gorm.io/gorm"
)

type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService() *ReviewService {
	return &ReviewService{DB: database.GetDB()}
}

// ReviewDTO is the serialized review shape; the author appears as username.
type ReviewDTO struct {
	Id      int       `json:"id"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func ReviewDTOOf(r *model.Review) ReviewDTO {
	author := ""
	if r.Author != nil {
		author = r.Author.Username
	}
	return ReviewDTO{
		Id:      r.Id,
		Text:    r.Text,
		Score:   r.Score,
		Author:  author,
		PubDate: r.PubDate,
	}
}

// ResolveTitle looks up the parent title of a nested review route.
func (s *ReviewService) ResolveTitle(titleID int) (*model.Title, error) {
	title := &model.Title{}
	err := s.DB.First(title, titleID).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "title"}
	} else if err != nil {
		return nil, err
	}
	return title, nil
}

// List returns the title's reviews in insertion order.
func (s *ReviewService) List(titleID, page, pageSize int) ([]ReviewDTO, int64, error) {
	query := s.DB.Model(&model.Review{}).Where("title_id = ?", titleID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	err := query.Preload("Author").
		Order("id ASC").
		Scopes(paginate(page, pageSize)).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]ReviewDTO, 0, len(reviews))
	for i := range reviews {
		out = append(out, ReviewDTOOf(&reviews[i]))
	}
	return out, count, nil
}

// Get fetches one review scoped to its parent title.
func (s *ReviewService) Get(titleID, reviewID int) (*model.Review, error) {
	review := &model.Review{}
	err := s.DB.Preload("Author").
		Where("title_id = ?", titleID).
		First(review, reviewID).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "review"}
	} else if err != nil {
		return nil, err
	}
	return review, nil
}

func validateReviewText(fields entity.FieldErrors, text string) {
	if text == "" {
		fields.Add("text", "This field is required.")
	}
}

func validateScore(fields entity.FieldErrors, score int) {
	if score < 1 || score > 10 {
		fields.Add("score", "Score must be between 1 and 10.")
	}
}

// Create stamps the author and title server-side; one review per author per
// title is enforced.
func (s *ReviewService) Create(title *model.Title, author *model.User, text string, score int) (*ReviewDTO, error) {
	fields := entity.FieldErrors{}
	validateReviewText(fields, text)
	validateScore(fields, score)

	if fields.Empty() {
		var count int64
		s.DB.Model(&model.Review{}).
			Where("title_id = ? AND author_id = ?", title.Id, author.Id).
			Count(&count)
		if count > 0 {
			fields.Add("title", "You have already reviewed this title.")
		}
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	review := &model.Review{
		Text:     text,
		Score:    score,
		AuthorId: author.Id,
		Author:   author,
		TitleId:  title.Id,
	}
	if err := s.DB.Create(review).Error; err != nil {
		if database.IsDuplicate(err) {
			return nil, &ConflictError{Field: "title"}
		}
		return nil, err
	}
	dto := ReviewDTOOf(review)
	return &dto, nil
}

type ReviewPatch struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

func (s *ReviewService) Patch(review *model.Review, patch ReviewPatch) (*ReviewDTO, error) {
	fields := entity.FieldErrors{}
	updates := map[string]any{}

	if patch.Text != nil {
		validateReviewText(fields, *patch.Text)
		updates["text"] = *patch.Text
	}
	if patch.Score != nil {
		validateScore(fields, *patch.Score)
		updates["score"] = *patch.Score
	}
	if !fields.Empty() {
		return nil, &ValidationError{Fields: fields}
	}

	if len(updates) > 0 {
		if err := s.DB.Model(review).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	dto := ReviewDTOOf(review)
	return &dto, nil
}

// Delete removes the review; its comments fall to the FK cascade.
func (s *ReviewService) Delete(review *model.Review) error {
	return s.DB.Delete(review).Error
}
