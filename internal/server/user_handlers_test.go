package server

import (
	"net/http"
	"testing"

	"quill/internal/models"
	"quill/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMyProfile(t *testing.T) {
	app, s, _ := newTestApp(t)
	_, token := createTestUser(t, s, "alice", models.RoleUser)

	t.Run("Requires auth", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Returns profile without password", func(t *testing.T) {
		resp, envelope := doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "alice", data["username"])
		assert.Equal(t, "USER", data["role"])
		assert.NotContains(t, data, "password")
	})
}

func TestUpdateMyPassword(t *testing.T) {
	app, s, _ := newTestApp(t)
	user, token := createTestUser(t, s, "alice", models.RoleUser)

	signIn := func(password string) error {
		_, _, err := s.authService.SignIn(t.Context(), service.SignInInput{
			Email:    user.Email,
			Password: password,
		})
		return err
	}

	t.Run("Requires auth", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, "/api/users/me", "", map[string]string{
			"current_password": "Password123",
			"new_password":     "Newsecret12",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Wrong current password", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
			"current_password": "Wrongsecret1",
			"new_password":     "Newsecret12",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.NoError(t, signIn("Password123"))
	})

	t.Run("Success rotates the credential", func(t *testing.T) {
		resp, envelope := doJSON(t, app, http.MethodPut, "/api/users/me", token, map[string]string{
			"current_password": "Password123",
			"new_password":     "Newsecret12",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, envelope.Success)

		assert.Error(t, signIn("Password123"))
		assert.NoError(t, signIn("Newsecret12"))
	})
}

func TestListUsers(t *testing.T) {
	app, s, _ := newTestApp(t)
	_, userToken := createTestUser(t, s, "alice", models.RoleUser)
	_, adminToken := createTestUser(t, s, "root", models.RoleAdmin)

	t.Run("Regular user forbidden", func(t *testing.T) {
		resp, _ := doJSON(t, app, http.MethodGet, "/api/users", userToken, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Admin sees all accounts", func(t *testing.T) {
		resp, envelope := doJSON(t, app, http.MethodGet, "/api/users", adminToken, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		users, ok := envelope.Data.([]any)
		require.True(t, ok)
		assert.Len(t, users, 2)
	})
}
