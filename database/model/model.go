// Package model defines the gorm models of the review platform.
package model

import "time"

// Category and Genre are independent lookup entities addressed by slug.
type Category struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}

type Genre struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`
}

type Title struct {
	Id          int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Year        int    `json:"year"`

	// Deleting a category detaches titles rather than removing them.
	CategoryId *int      `json:"-"`
	Category   *Category `json:"category" gorm:"foreignKey:CategoryId;constraint:OnDelete:SET NULL"`

	Genres []Genre `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE"`
}

type Review struct {
	Id      int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Text    string    `json:"text" gorm:"not null"`
	Score   int       `json:"score" gorm:"not null"`
	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime"`

	AuthorId int   `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Author   *User `json:"-" gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`

	// Reviews disappear with their title.
	TitleId int    `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author"`
	Title   *Title `json:"-" gorm:"foreignKey:TitleId;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	Id      int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Text    string    `json:"text" gorm:"not null"`
	PubDate time.Time `json:"pub_date" gorm:"autoCreateTime"`

	AuthorId int   `json:"-" gorm:"not null"`
	Author   *User `json:"-" gorm:"foreignKey:AuthorId;constraint:OnDelete:CASCADE"`

	ReviewId int     `json:"-" gorm:"not null"`
	Review   *Review `json:"-" gorm:"foreignKey:ReviewId;constraint:OnDelete:CASCADE"`
}
