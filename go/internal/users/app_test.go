package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeRepo(users ...*models.User) *fakeRepo {
	r := &fakeRepo{users: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeRepo) CreateUser(_ context.Context, req CreateUserRequest) (*models.User, error) {
	u := &models.User{
		ID:          uuid.New(),
		Username:    req.Username,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Role:        models.UserRoleUser,
		CreatedAt:   time.Now().UTC(),
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeRepo) GetUser(_ context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, models.ErrNotFound)
}

func (r *fakeRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, models.ErrNotFound
}

func TestCreateUser(t *testing.T) {
	app := NewApp(newFakeRepo())

	user, err := app.CreateUser(context.Background(), CreateUserRequest{Username: " ana ", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "ana", user.Username)
	assert.Equal(t, "ana", user.DisplayName)
	assert.Equal(t, models.UserRoleUser, user.Role)

	_, err = app.CreateUser(context.Background(), CreateUserRequest{Username: "ana", Email: "other@example.com"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	_, err = app.CreateUser(context.Background(), CreateUserRequest{Username: "bia", Email: "ana@example.com"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestCreateUser_Validation(t *testing.T) {
	app := NewApp(newFakeRepo())

	for _, req := range []CreateUserRequest{
		{Username: "", Email: "a@b.co"},
		{Username: "ana", Email: ""},
		{Username: "ana", Email: "no-at-sign.com"},
		{Username: "ana", Email: "@b.co"},
		{Username: "ana", Email: "ana@nodot"},
	} {
		_, err := app.CreateUser(context.Background(), req)
		assert.ErrorIs(t, err, models.ErrInvalidArgument, "request %+v", req)
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := &models.User{ID: uuid.New(), Username: "root", Role: models.UserRoleAdmin}
	player := &models.User{ID: uuid.New(), Username: "ana", Role: models.UserRoleUser}
	app := NewApp(newFakeRepo(admin, player))

	assert.NoError(t, app.RequireAdmin(context.Background(), admin.ID))
	assert.ErrorIs(t, app.RequireAdmin(context.Background(), player.ID), models.ErrRoleNotPermitted)
	assert.ErrorIs(t, app.RequireAdmin(context.Background(), uuid.New()), models.ErrRoleNotPermitted)
}
