package model

import "time"

type Article struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:256;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	CategoryID uint      `gorm:"not null;index" json:"categoryId"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	// Populated by list queries only.
	Category *Category     `gorm:"foreignKey:CategoryID;-:migration" json:"category"`
	User     *ArticleAuthor `gorm:"foreignKey:UserID;-:migration" json:"user"`
}

// ArticleAuthor is the public projection of a User attached to articles.
type ArticleAuthor struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

func (ArticleAuthor) TableName() string {
	return "users"
}
