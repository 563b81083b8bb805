package service

import "gorm.io/gorm"

// Default page sizes per resource class.
const (
	UserPageSize    = 10
	CatalogPageSize = 20
	ReviewPageSize  = 10
	CommentPageSize = 15

	MaxPageSize = 100
)

// paginate is a gorm scope applying page-number pagination.
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
