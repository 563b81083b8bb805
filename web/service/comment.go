package service

import (
	"time"

	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"

	"gorm.io/gorm"
)

type CommentService struct {
	DB *gorm.DB
}

func NewCommentService() *CommentService {
	return &CommentService{DB: database.GetDB()}
}

type CommentDTO struct {
	Id      int       `json:"id"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func CommentDTOOf(c *model.Comment) CommentDTO {
	author := ""
	if c.Author != nil {
		author = c.Author.Username
	}
	return CommentDTO{
		Id:      c.Id,
		Text:    c.Text,
		Author:  author,
		PubDate: c.PubDate,
	}
}

// ResolveReview looks up the parent review of a nested comment route,
// scoped to its title.
func (s *CommentService) ResolveReview(titleID, reviewID int) (*model.Review, error) {
	review := &model.Review{}
	err := s.DB.Where("title_id = ?", titleID).First(review, reviewID).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "review"}
	} else if err != nil {
		return nil, err
	}
	return review, nil
}

// List returns the review's comments in insertion order.
func (s *CommentService) List(reviewID, page, pageSize int) ([]CommentDTO, int64, error) {
	query := s.DB.Model(&model.Comment{}).Where("review_id = ?", reviewID)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := query.Preload("Author").
		Order("id ASC").
		Scopes(paginate(page, pageSize)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]CommentDTO, 0, len(comments))
	for i := range comments {
		out = append(out, CommentDTOOf(&comments[i]))
	}
	return out, count, nil
}

// Get fetches one comment scoped to its parent review.
func (s *CommentService) Get(reviewID, commentID int) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.DB.Preload("Author").
		Where("review_id = ?", reviewID).
		First(comment, commentID).Error
	if database.IsNotFound(err) {
		return nil, &NotFoundError{Resource: "comment"}
	} else if err != nil {
		return nil, err
	}
	return comment, nil
}

// Create stamps the author and parent review server-side; any author or
// review fields in the request body are ignored by the controller.
func (s *CommentService) Create(review *model.Review, author *model.User, text string) (*CommentDTO, error) {
	if text == "" {
		return nil, newValidationError("text", "This field is required.")
	}

	comment := &model.Comment{
		Text:     text,
		AuthorId: author.Id,
		Author:   author,
		ReviewId: review.Id,
	}
	if err := s.DB.Create(comment).Error; err != nil {
		return nil, err
	}
	dto := CommentDTOOf(comment)
	return &dto, nil
}

type CommentPatch struct {
	Text *string `json:"text"`
}

func (s *CommentService) Patch(comment *model.Comment, patch CommentPatch) (*CommentDTO, error) {
	if patch.Text != nil {
		if *patch.Text == "" {
			return nil, newValidationError("text", "This field may not be blank.")
		}
		if err := s.DB.Model(comment).Update("text", *patch.Text).Error; err != nil {
			return nil, err
		}
	}
	dto := CommentDTOOf(comment)
	return &dto, nil
}

func (s *CommentService) Delete(comment *model.Comment) error {
	return s.DB.Delete(comment).Error
}
