package users

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/google/uuid"
	"github.com/mcdev12/scorepool/go/internal/models"
	"github.com/mcdev12/scorepool/go/internal/rpc"
)

// UserServiceName is the fully qualified connect service name.
const UserServiceName = "scorepool.v1.UserService"

// UsersApp defines what the service layer needs from the users application
type UsersApp interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}

// Service implements the UserService connect procedures
type Service struct {
	app UsersApp
}

// NewService creates a new users service
func NewService(app UsersApp) *Service {
	return &Service{
		app: app,
	}
}

// NewUserServiceHandler returns the mount path and handler for svc.
func NewUserServiceHandler(svc *Service, opts ...connect.HandlerOption) (string, http.Handler) {
	mux := rpc.NewServiceMux(UserServiceName, opts...)
	rpc.Handle(mux, "CreateUser", svc.CreateUser)
	rpc.Handle(mux, "GetUser", svc.GetUser)
	return mux.Path(), mux.Handler()
}

// CreateUser creates a new user
func (s *Service) CreateUser(ctx context.Context, req *CreateUserRequest) (*CreateUserResponse, error) {
	user, err := s.app.CreateUser(ctx, *req)
	if err != nil {
		return nil, err
	}
	return &CreateUserResponse{User: userToWire(user)}, nil
}

// GetUser retrieves a user by ID
func (s *Service) GetUser(ctx context.Context, req *GetUserRequest) (*GetUserResponse, error) {
	id, err := rpc.ParseID("id", req.ID)
	if err != nil {
		return nil, err
	}

	user, err := s.app.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetUserResponse{User: userToWire(user)}, nil
}

func userToWire(user *models.User) *User {
	return &User{
		ID:          user.ID.String(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Role:        string(user.Role),
		CreatedAt:   user.CreatedAt,
	}
}
