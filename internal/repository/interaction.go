package repository

import (
	"context"
	"fmt"

	"chirp/internal/cache"
	"chirp/internal/middleware"
	"chirp/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionFlags carries a viewer's own interaction state for one post.
type InteractionFlags struct {
	Liked     bool
	Retweeted bool
}

// InteractionRepository is the ledger of per-user likes and retweets. It is
// the only writer of the posts.likes and posts.retweets counters.
type InteractionRepository interface {
	Toggle(ctx context.Context, postID, userID uint, kind models.InteractionKind) (added bool, err error)
	FlagsFor(ctx context.Context, userID uint, postIDs []uint) (map[uint]InteractionFlags, error)
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction ledger backed by db.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

// Toggle flips the (post, user, kind) ledger row and keeps the matching
// counter in lockstep, all inside one transaction. The delete, the insert,
// and the counter update are never visible separately, so concurrent toggles
// for the same key cannot drift the counter away from the true row count.
func (r *interactionRepository) Toggle(ctx context.Context, postID, userID uint, kind models.InteractionKind) (bool, error) {
	if !kind.Valid() {
		return false, models.NewValidationError("Invalid interaction type")
	}

	col := kind.CounterColumn()
	var added bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Select("id").First(&post, postID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return models.NewNotFoundError("Post", postID)
			}
			return models.NewInternalError(err)
		}

		res := tx.Where("post_id = ? AND user_id = ? AND kind = ?", postID, userID, kind).
			Delete(&models.Interaction{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}

		if res.RowsAffected > 0 {
			// Row removed; decrement, guarded so the counter can never go
			// negative. Zero rows here means the counter already disagreed
			// with the ledger.
			upd := tx.Model(&models.Post{}).
				Where("id = ? AND "+col+" > 0", postID).
				UpdateColumn(col, gorm.Expr(col+" - 1"))
			if upd.Error != nil {
				return models.NewInternalError(upd.Error)
			}
			if upd.RowsAffected == 0 {
				return models.NewInvariantViolationError(
					fmt.Sprintf("%s counter for post %d has no count to remove", col, postID))
			}
			added = false
			return nil
		}

		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_id"}, {Name: "kind"}},
			DoNothing: true,
		}).Create(&models.Interaction{PostID: postID, UserID: userID, Kind: kind})
		if ins.Error != nil {
			return models.NewInternalError(ins.Error)
		}

		added = true
		if ins.RowsAffected == 0 {
			// A concurrent toggle committed the same row between our delete
			// and insert; it owns the increment. The row exists, the counter
			// matches it, nothing left to do.
			return nil
		}

		upd := tx.Model(&models.Post{}).
			Where("id = ?", postID).
			UpdateColumn(col, gorm.Expr(col+" + 1"))
		if upd.Error != nil {
			return models.NewInternalError(upd.Error)
		}
		return nil
	})
	if err != nil {
		return false, err
	}

	cache.Invalidate(ctx, cache.PostKey(postID))
	cache.InvalidateFeed(ctx)

	direction := "removed"
	if added {
		direction = "added"
	}
	middleware.InteractionToggles.WithLabelValues(string(kind), direction).Inc()

	return added, nil
}

// FlagsFor returns the viewer's liked/retweeted state for the given posts in
// a single query over the ledger's unique index. An anonymous viewer gets an
// empty map without touching storage.
func (r *interactionRepository) FlagsFor(ctx context.Context, userID uint, postIDs []uint) (map[uint]InteractionFlags, error) {
	flags := make(map[uint]InteractionFlags, len(postIDs))
	if userID == 0 || len(postIDs) == 0 {
		return flags, nil
	}

	var rows []models.Interaction
	err := r.db.WithContext(ctx).
		Select("post_id", "kind").
		Where("user_id = ? AND post_id IN ?", userID, postIDs).
		Find(&rows).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	for _, row := range rows {
		f := flags[row.PostID]
		switch row.Kind {
		case models.InteractionLike:
			f.Liked = true
		case models.InteractionRetweet:
			f.Retweeted = true
		}
		flags[row.PostID] = f
	}
	return flags, nil
}
