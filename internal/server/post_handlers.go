package server

import (
	"quill/internal/models"
	"quill/internal/service"
	"quill/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, _ := caller(c)

	var req struct {
		Title    string `json:"title"`
		Contents string `json:"contents"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		Title:    req.Title,
		Contents: req.Contents,
		UserID:   userID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, "Post created successfully", post)
}

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.postService.ListPosts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Posts retrieved successfully", posts)
}

// GetMyPosts handles GET /api/posts/myposts
func (s *Server) GetMyPosts(c *fiber.Ctx) error {
	userID, _ := caller(c)
	page := parsePagination(c, 20)

	posts, err := s.postService.ListMyPosts(c.Context(), userID, page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Posts retrieved successfully", posts)
}

// SearchPosts handles GET /api/posts/search?author=...
func (s *Server) SearchPosts(c *fiber.Ctx) error {
	page := parsePagination(c, 20)

	posts, err := s.postService.SearchByAuthor(c.Context(), c.Query("author"), page.Limit, page.Offset)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Posts retrieved successfully", posts)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}
	userID, _ := caller(c)

	post, err := s.postService.GetPost(c.Context(), postID, userID)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post retrieved successfully", post)
}

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}
	userID, _ := caller(c)

	var req struct {
		Title    string `json:"title"`
		Contents string `json:"contents"`
		Version  uint   `json:"version"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:   postID,
		Title:    req.Title,
		Contents: req.Contents,
		Version:  req.Version,
		UserID:   userID,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post updated successfully", post)
}

// UpdatePostStatus handles PATCH /api/posts/:id
func (s *Server) UpdatePostStatus(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	status, err := validation.ParseStatus(req.Status)
	if err != nil {
		return models.RespondWithError(c,
			models.NewValidationError(err.Error()))
	}

	post, err := s.postService.UpdateStatus(c.Context(), postID, status)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post status updated successfully", post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c)
	if err != nil {
		return nil
	}
	userID, role := caller(c)

	if err := s.postService.DeletePost(c.Context(), postID, userID, role); err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusOK, "Post deleted successfully", nil)
}
