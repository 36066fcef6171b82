package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"articles-backend/internal/model"
	"articles-backend/internal/pkg/jwtutil"
	"articles-backend/internal/pkg/password"
	"articles-backend/internal/platform/sqlite"
	"articles-backend/internal/repository"
)

const JWTSecret = "test-secret"

var dbSeq atomic.Int64

// OpenDB opens a migrated in-memory SQLite database private to the test.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, dbSeq.Add(1))

	db, err := sqlite.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if err := repository.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// CreateUser inserts a user with a bcrypt hash of plain.
func CreateUser(t *testing.T, db *gorm.DB, username, plain string, role model.Role) *model.User {
	t.Helper()
	hash, err := password.Hash(plain)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := &model.User{Username: username, PasswordHash: hash, Role: role}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return user
}

func CreateCategory(t *testing.T, db *gorm.DB, name string, ownerID uint) *model.Category {
	t.Helper()
	category := &model.Category{Name: name, UserID: ownerID}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return category
}

// CreateArticle inserts an article as-is; a non-zero CreatedAt is kept.
func CreateArticle(t *testing.T, db *gorm.DB, article *model.Article) *model.Article {
	t.Helper()
	if err := db.Omit("Category", "User").Create(article).Error; err != nil {
		t.Fatalf("create article %q: %v", article.Title, err)
	}
	return article
}

// Token returns a bearer token for userID signed with JWTSecret.
func Token(t *testing.T, userID uint) string {
	t.Helper()
	tok, err := jwtutil.GenerateToken(JWTSecret, 0, userID)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}
