package models

import "time"

// InteractionKind names a per-user action on a post.
type InteractionKind string

const (
	InteractionLike    InteractionKind = "like"
	InteractionRetweet InteractionKind = "retweet"
)

// Valid reports whether k is one of the supported interaction kinds.
func (k InteractionKind) Valid() bool {
	return k == InteractionLike || k == InteractionRetweet
}

// CounterColumn returns the posts column the kind drives.
func (k InteractionKind) CounterColumn() string {
	if k == InteractionRetweet {
		return "retweets"
	}
	return "likes"
}

// Interaction is a ledger row recording that a user liked or retweeted a
// post. At most one row may exist per (post, user, kind); the composite
// unique index is the authoritative arbiter under concurrent toggles.
// Rows are hard-deleted so the index always reflects current state.
type Interaction struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	PostID    uint            `gorm:"not null;uniqueIndex:idx_post_user_kind" json:"post_id"`
	UserID    uint            `gorm:"not null;uniqueIndex:idx_post_user_kind" json:"user_id"`
	Kind      InteractionKind `gorm:"type:varchar(16);not null;uniqueIndex:idx_post_user_kind" json:"kind"`
	CreatedAt time.Time       `json:"created_at"`
}
