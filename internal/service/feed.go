// Package service contains application services composing repositories.
package service

import (
	"context"

	"chirp/internal/cache"
	"chirp/internal/models"
	"chirp/internal/repository"
)

// FeedService assembles the reverse-chronological feed, annotating each post
// with the viewer's own interaction flags.
type FeedService struct {
	postRepo        repository.PostRepository
	interactionRepo repository.InteractionRepository
}

// NewFeedService creates a FeedService over the given repositories.
func NewFeedService(postRepo repository.PostRepository, interactionRepo repository.InteractionRepository) *FeedService {
	return &FeedService{postRepo: postRepo, interactionRepo: interactionRepo}
}

// GetFeed returns all posts newest-first. When viewerID is non-zero, the
// liked/retweeted flags reflect that viewer's ledger rows; anonymous viewers
// get false flags without a ledger lookup. Only the anonymous feed is
// cacheable: it is identical for every viewer, while an authenticated feed
// carries per-viewer flags. Post creation and toggles invalidate the entry.
func (s *FeedService) GetFeed(ctx context.Context, viewerID uint) ([]*models.Post, error) {
	if viewerID == 0 {
		var posts []*models.Post
		err := cache.Aside(ctx, cache.FeedKey, &posts, cache.FeedTTL, func() error {
			loaded, loadErr := s.postRepo.List(ctx)
			if loadErr != nil {
				return loadErr
			}
			posts = loaded
			return nil
		})
		if err != nil {
			return nil, err
		}
		return posts, nil
	}

	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return posts, nil
	}

	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	flags, err := s.interactionRepo.FlagsFor(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		f := flags[p.ID]
		p.Liked = f.Liked
		p.Retweeted = f.Retweeted
	}
	return posts, nil
}

// GetPost returns a single post annotated with the viewer's flags.
func (s *FeedService) GetPost(ctx context.Context, postID, viewerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if viewerID == 0 {
		return post, nil
	}

	flags, err := s.interactionRepo.FlagsFor(ctx, viewerID, []uint{post.ID})
	if err != nil {
		return nil, err
	}
	f := flags[post.ID]
	post.Liked = f.Liked
	post.Retweeted = f.Retweeted
	return post, nil
}
