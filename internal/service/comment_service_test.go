package service

import (
	"context"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint) ([]*models.Comment, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
	}
}

func TestCommentService_AddComment(t *testing.T) {
	t.Run("Empty text", func(t *testing.T) {
		svc := NewCommentService(noopCommentRepo(), noopPostRepo(), noopUserRepo())
		_, err := svc.AddComment(context.Background(), CreateCommentInput{PostID: 1, UserID: 1})
		assertValidationError(t, err)
	})

	t.Run("Missing parent post", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, noopUserRepo())
		_, err := svc.AddComment(context.Background(), CreateCommentInput{PostID: 404, Text: "hi", UserID: 1})
		assertNotFoundError(t, err)
	})

	t.Run("Private post hidden from non-owner", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Status: models.StatusPrivate, UserID: 1}, nil
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, noopUserRepo())
		_, err := svc.AddComment(context.Background(), CreateCommentInput{PostID: 5, Text: "hi", UserID: 2})
		assertNotFoundError(t, err)
	})

	t.Run("Author is the commenter's username", func(t *testing.T) {
		var created *models.Comment
		commentRepo := noopCommentRepo()
		commentRepo.createFn = func(_ context.Context, c *models.Comment) error {
			c.ID = 3
			created = c
			return nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), noopUserRepo())
		comment, err := svc.AddComment(context.Background(), CreateCommentInput{PostID: 5, Text: "nice post", UserID: 1})
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, uint(3), comment.ID)
		assert.Equal(t, "alice", created.Author)
		assert.Equal(t, uint(5), created.PostID)
		assert.Equal(t, "nice post", created.Text)
	})
}

func TestCommentService_ListComments(t *testing.T) {
	t.Run("Missing parent post", func(t *testing.T) {
		postRepo := noopPostRepo()
		postRepo.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewCommentService(noopCommentRepo(), postRepo, noopUserRepo())
		_, err := svc.ListComments(context.Background(), 404, 1)
		assertNotFoundError(t, err)
	})

	t.Run("Returns comments for visible post", func(t *testing.T) {
		commentRepo := noopCommentRepo()
		commentRepo.listByPostFn = func(_ context.Context, postID uint) ([]*models.Comment, error) {
			return []*models.Comment{{ID: 2, PostID: postID}, {ID: 1, PostID: postID}}, nil
		}
		svc := NewCommentService(commentRepo, noopPostRepo(), noopUserRepo())
		comments, err := svc.ListComments(context.Background(), 5, 1)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, uint(2), comments[0].ID)
	})
}
