package model

import "time"

type ArticleAction string

const (
	ArticleCreated ArticleAction = "created"
	ArticleUpdated ArticleAction = "updated"
	ArticleDeleted ArticleAction = "deleted"
)

// ArticleEvent is one entry of the article audit trail.
type ArticleEvent struct {
	ID        uint          `gorm:"primaryKey" json:"id"`
	ArticleID uint          `gorm:"not null;index" json:"articleId"`
	UserID    uint          `gorm:"not null;index" json:"userId"`
	Action    ArticleAction `gorm:"size:16;not null" json:"action"`
	CreatedAt time.Time     `gorm:"index" json:"createdAt"`
}
