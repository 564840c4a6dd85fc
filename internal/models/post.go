package models

import (
	"time"

	"gorm.io/gorm"
)

// Post is a short text message shown in the feed. The likes/retweets
// counters are persisted and maintained exclusively by the interaction
// ledger; they must always equal the number of matching ledger rows.
type Post struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Content string `gorm:"not null" json:"content"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user"`
	// Counters default to zero and never go negative.
	Likes    int `gorm:"not null;default:0" json:"likes"`
	Retweets int `gorm:"not null;default:0" json:"retweets"`
	Replies  int `gorm:"not null;default:0" json:"replies"`
	// Liked and Retweeted are computed per viewer at query time; not persisted
	Liked     bool           `gorm:"-" json:"liked"`
	Retweeted bool           `gorm:"-" json:"retweeted"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// MaxPostContentLength is the post length limit, measured in UTF-16 code
// units to stay wire-compatible with JavaScript clients that count
// String.length.
const MaxPostContentLength = 280
