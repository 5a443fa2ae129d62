package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	PostID uint
	Text   string
	UserID uint
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// AddComment attaches a comment to a post. The parent post must exist and be
// visible to the caller.
func (s *CommentService) AddComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("Comment text is required")
	}

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.Status == models.StatusPrivate && post.UserID != in.UserID {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:   in.Text,
		Author: user.Username,
		PostID: post.ID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// ListComments returns a post's comments, newest first. The parent post must
// exist and be visible to the caller.
func (s *CommentService) ListComments(ctx context.Context, postID, callerID uint) ([]*models.Comment, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.Status == models.StatusPrivate && post.UserID != callerID {
		return nil, models.NewNotFoundError("Post", postID)
	}

	return s.commentRepo.ListByPost(ctx, postID)
}
