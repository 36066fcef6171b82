package seed_test

import (
	"context"
	"testing"

	"articles-backend/internal/model"
	"articles-backend/internal/pkg/password"
	"articles-backend/internal/seed"
	"articles-backend/internal/testutil"
)

func TestRunIsIdempotent(t *testing.T) {
	db := testutil.OpenDB(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := seed.Run(ctx, db, nil); err != nil {
			t.Fatalf("seed run %d: %v", i+1, err)
		}
	}

	var users, categories, articles int64
	db.Model(&model.User{}).Count(&users)
	db.Model(&model.Category{}).Count(&categories)
	db.Model(&model.Article{}).Count(&articles)
	if users != 2 || categories != 3 || articles != 3 {
		t.Fatalf("unexpected counts users=%d categories=%d articles=%d", users, categories, articles)
	}

	var admin model.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		t.Fatalf("load admin: %v", err)
	}
	if admin.Role != model.RoleAdmin {
		t.Fatalf("expected admin role, got %q", admin.Role)
	}
	if err := password.Check(admin.PasswordHash, "adminpassword"); err != nil {
		t.Fatalf("admin password not hashed as expected: %v", err)
	}

	var quantum model.Article
	if err := db.Where("title = ?", "Latest Discoveries in Quantum Physics").First(&quantum).Error; err != nil {
		t.Fatalf("load article: %v", err)
	}
	var author model.User
	db.First(&author, quantum.UserID)
	if author.Username != "user" {
		t.Fatalf("expected article owned by user, got %q", author.Username)
	}
}
