package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"articles-backend/internal/model"
	"articles-backend/internal/pkg/password"
)

type demoUser struct {
	username string
	password string
	role     model.Role
}

type demoArticle struct {
	title    string
	content  string
	author   string
	category string
}

var (
	demoUsers = []demoUser{
		{username: "admin", password: "adminpassword", role: model.RoleAdmin},
		{username: "user", password: "userpassword", role: model.RoleUser},
	}

	// Categories are owned by the admin user.
	demoCategories = []string{"Technology", "Science", "Arts"}

	demoArticles = []demoArticle{
		{
			title:    "The Future of AI",
			content:  "Artificial Intelligence is rapidly evolving...",
			author:   "admin",
			category: "Technology",
		},
		{
			title:    "Latest Discoveries in Quantum Physics",
			content:  "Scientists have made groundbreaking discoveries...",
			author:   "user",
			category: "Science",
		},
		{
			title:    "The Renaissance of Digital Art",
			content:  "Digital art is experiencing a renaissance...",
			author:   "user",
			category: "Arts",
		},
	}
)

// Run inserts the demo users, categories and articles. Rows that already
// exist, matched by username, name or title, are left untouched.
func Run(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := make(map[string]*model.User, len(demoUsers))
		for _, du := range demoUsers {
			u, err := ensureUser(tx, du)
			if err != nil {
				return err
			}
			users[du.username] = u
			log.Info("seed user ready", "username", u.Username, "role", u.Role, "id", u.ID)
		}

		categories := make(map[string]*model.Category, len(demoCategories))
		for _, name := range demoCategories {
			c, err := ensureCategory(tx, name, users["admin"].ID)
			if err != nil {
				return err
			}
			categories[name] = c
			log.Info("seed category ready", "name", c.Name, "id", c.ID)
		}

		for _, da := range demoArticles {
			a, err := ensureArticle(tx, da, users[da.author].ID, categories[da.category].ID)
			if err != nil {
				return err
			}
			log.Info("seed article ready", "title", a.Title, "id", a.ID)
		}
		return nil
	})
}

func ensureUser(tx *gorm.DB, du demoUser) (*model.User, error) {
	var u model.User
	err := tx.Where("username = ?", du.username).First(&u).Error
	if err == nil {
		return &u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find user %q failed: %w", du.username, err)
	}

	hash, err := password.Hash(du.password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}
	u = model.User{Username: du.username, PasswordHash: hash, Role: du.role}
	if err := tx.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("create user %q failed: %w", du.username, err)
	}
	return &u, nil
}

func ensureCategory(tx *gorm.DB, name string, ownerID uint) (*model.Category, error) {
	c := model.Category{Name: name, UserID: ownerID}
	if err := tx.Where("name = ?", name).FirstOrCreate(&c).Error; err != nil {
		return nil, fmt.Errorf("ensure category %q failed: %w", name, err)
	}
	return &c, nil
}

func ensureArticle(tx *gorm.DB, da demoArticle, authorID, categoryID uint) (*model.Article, error) {
	a := model.Article{
		Title:      da.title,
		Content:    da.content,
		UserID:     authorID,
		CategoryID: categoryID,
	}
	if err := tx.Omit("Category", "User").Where("title = ?", da.title).FirstOrCreate(&a).Error; err != nil {
		return nil, fmt.Errorf("ensure article %q failed: %w", da.title, err)
	}
	return &a, nil
}
