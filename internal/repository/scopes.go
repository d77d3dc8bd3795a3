package repository

import (
	"strings"

	"dawrni-api/internal/domain/entity"

	"gorm.io/gorm"
)

// paginate applies a limit/offset window. A non-positive limit returns every row.
func paginate(page entity.Page) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page.Offset > 0 {
			db = db.Offset(page.Offset)
		}
		if page.Limit > 0 {
			db = db.Limit(page.Limit)
		}
		return db
	}
}

// containsPattern builds a LIKE pattern for case-insensitive substring search.
func containsPattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}
