package repository

import (
	"fmt"

	"gorm.io/gorm"

	"articles-backend/internal/model"
)

// Migrate creates or updates every table the API uses. Users go first so
// the article author projection never creates the users table itself.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.User{}, &model.Category{}, &model.Article{}, &model.ArticleEvent{}); err != nil {
		return fmt.Errorf("auto migrate tables failed: %w", err)
	}
	return nil
}
