package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"chirp/internal/cache"
	"chirp/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	user, _ := seedUserAndPost(t, db)
	ctx := context.Background()

	post := &models.Post{Content: "fresh content", UserID: user.ID}
	require.NoError(t, repo.Create(ctx, post))
	assert.NotZero(t, post.ID)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "fresh content", got.Content)
	// Author is preloaded so feed entries carry the username
	assert.Equal(t, "alice", got.User.Username)
}

func TestPostGetByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 9999)
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostListNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	user := &models.User{Username: "alice", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	for i, content := range []string{"A", "B", "C"} {
		post := &models.Post{
			Content:   content,
			UserID:    user.ID,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, db.Create(post).Error)
	}

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "C", posts[0].Content)
	assert.Equal(t, "B", posts[1].Content)
	assert.Equal(t, "A", posts[2].Content)
}

// GetByID populates the per-post cache entry, serves repeat reads from it,
// and a counter toggle drops it so the next read sees the fresh counter.
func TestPostGetByIDCachedAndInvalidatedByToggle(t *testing.T) {
	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	postRepo := NewPostRepository(db)
	interactionRepo := NewInteractionRepository(db)
	user, post := seedUserAndPost(t, db)
	ctx := context.Background()

	got, err := postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Likes)
	require.True(t, mr.Exists(cache.PostKey(post.ID)))

	// A change made behind the cache's back is not visible yet
	require.NoError(t, db.Model(&models.Post{}).
		Where("id = ?", post.ID).
		UpdateColumn("content", "changed directly").Error)
	got, err = postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Content)

	// Toggling invalidates the entry, so the next read is fresh
	_, err = interactionRepo.Toggle(ctx, post.ID, user.ID, models.InteractionLike)
	require.NoError(t, err)
	assert.False(t, mr.Exists(cache.PostKey(post.ID)))

	got, err = postRepo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "changed directly", got.Content)
	assert.Equal(t, 1, got.Likes)
}

// Posts created within the same timestamp tick still come back in a stable
// order: higher id (created later) first.
func TestPostListTieBreakOnID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	user := &models.User{Username: "alice", Password: "hashed"}
	require.NoError(t, db.Create(user).Error)

	stamp := time.Now().Truncate(time.Second)
	for _, content := range []string{"first", "second", "third"} {
		post := &models.Post{Content: content, UserID: user.ID, CreatedAt: stamp}
		require.NoError(t, db.Create(post).Error)
	}

	posts, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 3)

	assert.Equal(t, "third", posts[0].Content)
	assert.Equal(t, "second", posts[1].Content)
	assert.Equal(t, "first", posts[2].Content)
}
