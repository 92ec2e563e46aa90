package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TRAVELBUDDY_BACK-END/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t, Options{})

	u, err := e.users.Register(e.ctx, " Ana@Example.com ", "s3cret!", "Ana")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, models.UserStatusActive, u.Status)
	assert.NotEqual(t, "s3cret!", u.PasswordHash)

	_, err = e.users.Register(e.ctx, "ana@example.com", "other", "Ana 2")
	requireKind(t, err, KindConflict)

	_, err = e.users.Register(e.ctx, "", "x", "y")
	requireKind(t, err, KindInvalidInput)

	got, err := e.users.Login(e.ctx, "ANA@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = e.users.Login(e.ctx, "ana@example.com", "wrong")
	requireKind(t, err, KindUnauthenticated)
	_, err = e.users.Login(e.ctx, "nobody@example.com", "s3cret!")
	requireKind(t, err, KindUnauthenticated)
}

func TestAdminEmails(t *testing.T) {
	e := newEnv(t, Options{})
	e.users.WithAdminEmails([]string{" Boss@Example.com", ""})

	u, err := e.users.Register(e.ctx, "boss@example.com", "pw", "Boss")
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())
}

func TestLoginWithGoogle(t *testing.T) {
	e := newEnv(t, Options{})

	created, err := e.users.LoginWithGoogle(e.ctx, GoogleProfile{Email: "g@example.com", Name: "Gee", Picture: "http://img"})
	require.NoError(t, err)
	assert.Equal(t, "Gee", created.Name)
	require.NotNil(t, created.AvatarURL)

	again, err := e.users.LoginWithGoogle(e.ctx, GoogleProfile{Email: "G@example.com"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)

	// google accounts have no password
	_, err = e.users.Login(e.ctx, "g@example.com", "")
	requireKind(t, err, KindUnauthenticated)

	_, err = e.users.LoginWithGoogle(e.ctx, GoogleProfile{})
	requireKind(t, err, KindInvalidInput)
}

func TestSetUserStatus(t *testing.T) {
	e := newEnv(t, Options{})
	admin := e.admin(t, "admin")
	u, err := e.users.Register(e.ctx, "user@example.com", "pw", "User")
	require.NoError(t, err)

	_, err = e.users.SetUserStatus(e.ctx, u.ID, admin.ID, models.UserStatusBanned)
	requireKind(t, err, KindForbidden)
	_, err = e.users.SetUserStatus(e.ctx, admin.ID, admin.ID, models.UserStatusBanned)
	requireKind(t, err, KindInvalidInput)
	_, err = e.users.SetUserStatus(e.ctx, admin.ID, u.ID, "DELETED")
	requireKind(t, err, KindInvalidInput)
	_, err = e.users.SetUserStatus(e.ctx, admin.ID, uuid.New(), models.UserStatusBanned)
	requireKind(t, err, KindNotFound)

	banned, err := e.users.SetUserStatus(e.ctx, admin.ID, u.ID, models.UserStatusBanned)
	require.NoError(t, err)
	assert.Equal(t, models.UserStatusBanned, banned.Status)

	_, err = e.users.Login(e.ctx, "user@example.com", "pw")
	requireKind(t, err, KindForbidden)
	_, err = e.users.LoginWithGoogle(e.ctx, GoogleProfile{Email: "user@example.com"})
	requireKind(t, err, KindForbidden)

	_, err = e.users.SetUserStatus(e.ctx, admin.ID, u.ID, models.UserStatusActive)
	require.NoError(t, err)
	_, err = e.users.Login(e.ctx, "user@example.com", "pw")
	require.NoError(t, err)
}

func TestUpdateProfile(t *testing.T) {
	e := newEnv(t, Options{})
	u := e.user(t, "profile")

	name, bio, empty := "New Name", "Loves hiking", ""
	got, err := e.users.UpdateProfile(e.ctx, u.ID, ProfileInput{Name: &name, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	require.NotNil(t, got.Bio)
	assert.Equal(t, "Loves hiking", *got.Bio)

	got, err = e.users.UpdateProfile(e.ctx, u.ID, ProfileInput{Bio: &empty})
	require.NoError(t, err)
	assert.Nil(t, got.Bio)
	assert.Equal(t, "New Name", got.Name)

	_, err = e.users.UpdateProfile(e.ctx, u.ID, ProfileInput{Name: &empty})
	requireKind(t, err, KindInvalidInput)
	_, err = e.users.UpdateProfile(e.ctx, uuid.New(), ProfileInput{})
	requireKind(t, err, KindNotFound)
}

func TestNotifications(t *testing.T) {
	e := newEnv(t, Options{})
	u := e.user(t, "reader")
	other := e.user(t, "other")

	for i := 0; i < 3; i++ {
		e.notifications.Notify(e.ctx, u.ID, nil, models.NotificationConnectionRequest, "hello", "/connections")
		e.clock.Advance(1)
	}
	e.notifications.Notify(e.ctx, other.ID, nil, models.NotificationConnectionRequest, "hi", "/connections")

	page, err := e.notifications.List(e.ctx, u.ID, ListParams{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 3, page.UnreadCount)
	require.Len(t, page.Items, 2)

	ok, err := e.notifications.MarkRead(e.ctx, u.ID, page.Items[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = e.notifications.MarkRead(e.ctx, other.ID, page.Items[1].ID)
	require.NoError(t, err)
	assert.False(t, ok, "cannot mark someone else's notification")

	unread, err := e.notifications.List(e.ctx, u.ID, ListParams{UnreadOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 2, unread.Total)

	n, err := e.notifications.MarkAllRead(e.ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	page, err = e.notifications.List(e.ctx, u.ID, ListParams{})
	require.NoError(t, err)
	assert.Zero(t, page.UnreadCount)
	assert.Equal(t, defaultPageSize, page.Limit)
}
