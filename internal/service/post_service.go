package service

import (
	"context"

	"quill/internal/authz"
	"quill/internal/models"
	"quill/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

type CreatePostInput struct {
	Title    string
	Contents string
	UserID   uint
}

type UpdatePostInput struct {
	PostID   uint
	Title    string
	Contents string
	Version  uint
	UserID   uint
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// CreatePost stores a new post owned by the caller. The author field is
// denormalized from the owner's username at creation time.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Contents == "" {
		return nil, models.NewValidationError("Title and contents are required")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Author:   user.Username,
		Title:    in.Title,
		Contents: in.Contents,
		Status:   models.StatusPublic,
		UserID:   user.ID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts returns the public feed.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

// ListMyPosts returns every post owned by the caller, private ones included.
func (s *PostService) ListMyPosts(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.GetByUserID(ctx, userID, limit, offset)
}

// GetPost fetches a single post. A private post is visible only to its owner;
// everyone else gets the same not-found as a missing ID, so the post's
// existence is not leaked.
func (s *PostService) GetPost(ctx context.Context, postID, callerID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if post.Status == models.StatusPrivate && post.UserID != callerID {
		return nil, models.NewNotFoundError("Post", postID)
	}

	return post, nil
}

// SearchByAuthor finds public posts by author name. An empty author is a
// client error; a well-formed search with no hits is not-found.
func (s *PostService) SearchByAuthor(ctx context.Context, author string, limit, offset int) ([]*models.Post, error) {
	if author == "" {
		return nil, models.NewValidationError("Author query parameter is required")
	}

	posts, err := s.postRepo.SearchByAuthor(ctx, author, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, models.NewNotFoundError("Posts by author", author)
	}

	return posts, nil
}

// UpdatePost replaces a post's title and contents. Only the owner may update;
// the caller's version must match the stored one or the write is rejected.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Contents == "" {
		return nil, models.NewValidationError("Title and contents are required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	post.Title = in.Title
	post.Contents = in.Contents
	post.Version = in.Version
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, in.PostID)
}

// UpdateStatus flips a post's visibility. The route guard restricts this to
// admins; a zero update count means the post does not exist.
func (s *PostService) UpdateStatus(ctx context.Context, postID uint, status models.PostStatus) (*models.Post, error) {
	if !status.Valid() {
		return nil, models.NewValidationError("Status must be PUBLIC or PRIVATE")
	}

	affected, err := s.postRepo.UpdateStatus(ctx, postID, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, models.NewNotFoundError("Post", postID)
	}

	return s.postRepo.GetByID(ctx, postID)
}

// DeletePost removes a post and its comments. Owners and admins may delete.
func (s *PostService) DeletePost(ctx context.Context, postID, callerID uint, callerRole models.UserRole) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}

	if !authz.CanModify(post.UserID, callerID, callerRole) {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	return s.postRepo.Delete(ctx, postID)
}
