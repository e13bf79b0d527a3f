package users

// CreateUserRequest represents the data needed to create a new user
type CreateUserRequest struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	Email       string `json:"email"`
}
