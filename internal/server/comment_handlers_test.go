package server

import (
	"net/http"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentFlow(t *testing.T) {
	app, s, db := newTestApp(t)
	owner, ownerToken := createTestUser(t, s, "alice", models.RoleUser)
	_, bobToken := createTestUser(t, s, "bob", models.RoleUser)

	require.NoError(t, db.Create(&models.Post{
		Author: owner.Username, Title: "Post", Contents: "Body",
		Status: models.StatusPublic, UserID: owner.ID, Version: 1,
	}).Error)

	t.Run("Empty text rejected", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", bobToken, map[string]string{"text": ""})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("Missing parent post", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/999/comments", bobToken, map[string]string{"text": "hello"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Comment carries commenter's username", func(t *testing.T) {
		resp, envelope := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", bobToken, map[string]string{"text": "nice post"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "bob", data["author"])
		assert.Equal(t, "nice post", data["text"])
		assert.EqualValues(t, 1, data["post_id"])
	})

	t.Run("Listing returns newest first", func(t *testing.T) {
		resp, envelope := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", ownerToken, map[string]string{"text": "thanks"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		resp, envelope = doJSON(t, app, http.MethodGet, "/api/posts/1/comments", bobToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		comments, ok := envelope.Data.([]any)
		require.True(t, ok)
		require.Len(t, comments, 2)
	})
}

func TestCommentOnPrivatePost(t *testing.T) {
	app, s, db := newTestApp(t)
	owner, ownerToken := createTestUser(t, s, "alice", models.RoleUser)
	_, bobToken := createTestUser(t, s, "bob", models.RoleUser)

	require.NoError(t, db.Create(&models.Post{
		Author: owner.Username, Title: "Secret", Contents: "hidden",
		Status: models.StatusPrivate, UserID: owner.ID, Version: 1,
	}).Error)

	t.Run("Non-owner cannot comment", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", bobToken, map[string]string{"text": "hi"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Non-owner cannot list", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/posts/1/comments", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("Owner can comment", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPost, "/api/posts/1/comments", ownerToken, map[string]string{"text": "note to self"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}
