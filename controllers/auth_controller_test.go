package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhat-is-coding/blog/middleware"
	"github.com/farhat-is-coding/blog/models"
	"github.com/farhat-is-coding/blog/utils"
)

func TestRegisterCreatesUser(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	registerUser(t, app, "alice", "alice@example.com", "secret123")

	var user models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "secret123"))
}

func TestRegisterDuplicateEmailRedirectsToLogin(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	registerUser(t, app, "alice", "alice@example.com", "secret123")

	w := postForm(app, "/register", url.Values{
		"name":     {"impostor"},
		"email":    {"alice@example.com"},
		"password": {"different456"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "alice@example.com").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRegisterInvalidSubmissionCreatesNothing(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	tests := []struct {
		name   string
		values url.Values
	}{
		{"missing email", url.Values{"name": {"bob"}, "password": {"secret123"}}},
		{"malformed email", url.Values{"name": {"bob"}, "email": {"not-an-email"}, "password": {"secret123"}}},
		{"short password", url.Values{"name": {"bob"}, "email": {"bob@example.com"}, "password": {"abc"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postForm(app, "/register", tt.values)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), "register")
		})
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestLoginIssuesSessionCookie(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	registerUser(t, app, "alice", "alice@example.com", "secret123")
	cookie := loginUser(t, app, "alice@example.com", "secret123")

	claims, err := utils.ParseToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Name)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.True(t, cookie.HttpOnly)
}

func TestLoginWrongPasswordRerendersForm(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	registerUser(t, app, "alice", "alice@example.com", "secret123")

	w := postForm(app, "/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong-password"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, middleware.SessionCookieName, c.Name)
	}
}

func TestLoginUnknownEmailRerendersForm(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	w := postForm(app, "/login", url.Values{
		"email":    {"ghost@example.com"},
		"password": {"whatever1"},
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutRevokesSession(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	registerUser(t, app, "alice", "alice@example.com", "secret123")
	cookie := loginUser(t, app, "alice@example.com", "secret123")

	w := get(app, "/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	assert.True(t, utils.IsTokenBlacklisted(cookie.Value))

	// Replaying the revoked cookie no longer authenticates.
	w = get(app, "/logout", cookie)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLogoutAnonymousRedirectsToLogin(t *testing.T) {
	db := setupTestDB(t)
	app := setupTestApp(t, db)

	w := get(app, "/logout")
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}
