package dto

type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ToggleEnabledRequest struct {
	IsEnabled *bool `json:"isEnabled"`
}

type UserCreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// DeleteUserResponse reports both steps of a user deletion.
type DeleteUserResponse struct {
	Message        string `json:"message"`
	RecordRemoved  bool   `json:"recordRemoved"`
	AccountRemoved bool   `json:"accountRemoved"`
	AccountError   string `json:"accountError,omitempty"`
}
