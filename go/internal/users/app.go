package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/rs/zerolog/log"
)

// UsersRepository defines what the app layer needs from the repository
type UsersRepository interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// App handles users business logic
type App struct {
	repo UsersRepository
}

// NewApp creates a new users App
func NewApp(repo UsersRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateUser creates a new user with validation
func (a *App) CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}

	if err := a.validateCreateUserRequest(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Check if user with same username already exists
	if _, err := a.repo.GetUserByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("user with username %s: %w", req.Username, models.ErrAlreadyExists)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	// Check if user with same email already exists
	if _, err := a.repo.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("user with email %s: %w", req.Email, models.ErrAlreadyExists)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	user, err := a.repo.CreateUser(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info().
		Str("user_id", user.ID.String()).
		Str("username", user.Username).
		Msg("created user")
	return user, nil
}

// GetUser retrieves a user by ID
func (a *App) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := a.repo.GetUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// RequireAdmin fails with ErrRoleNotPermitted unless id names a system admin.
func (a *App) RequireAdmin(ctx context.Context, id uuid.UUID) error {
	user, err := a.repo.GetUser(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("unknown actor %s: %w", id, models.ErrRoleNotPermitted)
	}
	if err != nil {
		return fmt.Errorf("failed to load actor: %w", err)
	}
	if !user.IsAdmin() {
		log.Warn().
			Str("user_id", id.String()).
			Msg("non-admin attempted an admin action")
		return fmt.Errorf("user %s is not an admin: %w", id, models.ErrRoleNotPermitted)
	}
	return nil
}

// validateCreateUserRequest validates create user request
func (a *App) validateCreateUserRequest(req CreateUserRequest) error {
	if req.Username == "" {
		return fmt.Errorf("%w: username is required", models.ErrInvalidArgument)
	}
	if req.Email == "" {
		return fmt.Errorf("%w: email is required", models.ErrInvalidArgument)
	}
	at := strings.Index(req.Email, "@")
	if at < 1 || !strings.Contains(req.Email[at:], ".") {
		return fmt.Errorf("%w: email format is invalid", models.ErrInvalidArgument)
	}
	return nil
}
