package server

import (
	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary Get the feed
// @Description Return all posts newest-first; liked/retweeted reflect the optional bearer token's user
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	viewerID, _ := s.optionalUserID(c)

	posts, err := s.feedService.GetFeed(c.Context(), viewerID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(posts)
}

// CreatePost handles POST /api/posts
// @Summary Create a new post
// @Tags posts
// @Accept json
// @Produce json
// @Param request body object{content=string} true "Post content"
// @Success 201 {object} models.Post
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	content, err := validation.ValidatePostContent(req.Content)
	if err != nil {
		return fail(c, models.NewValidationError(err.Error()))
	}

	post := &models.Post{
		Content: content,
		UserID:  userID,
	}
	if err := s.postRepo.Create(c.Context(), post); err != nil {
		return fail(c, err)
	}

	// Reload with the author preloaded so the response matches feed entries.
	created, err := s.feedService.GetPost(c.Context(), post.ID, userID)
	if err != nil {
		return fail(c, err)
	}

	middleware.PostsCreated.Inc()

	return c.Status(fiber.StatusCreated).JSON(created)
}

// InteractPost handles POST /api/posts/:id/interact
// @Summary Toggle a like or retweet on a post
// @Description Adds the interaction if absent, removes it if present, and keeps the post's counter in sync
// @Tags posts
// @Accept json
// @Produce json
// @Param id path int true "Post ID"
// @Param request body object{kind=string} true "Interaction kind: like or retweet"
// @Success 200 {object} object{success=bool,added=bool}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/interact [post]
func (s *Server) InteractPost(c *fiber.Ctx) error {
	userID := currentUserID(c)

	postID, err := parseID(c, "id")
	if err != nil {
		return fail(c, err)
	}

	var req struct {
		Kind string `json:"kind"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	kind := models.InteractionKind(req.Kind)
	if !kind.Valid() {
		// Reject before touching storage so bad kinds never open a transaction
		return fail(c, models.NewValidationError("Invalid interaction type"))
	}

	added, err := s.interactionRepo.Toggle(c.Context(), postID, userID, kind)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"added":   added,
	})
}
