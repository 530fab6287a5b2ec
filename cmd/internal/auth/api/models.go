package authapi

import "time"

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type resetRequest struct {
	Email string `json:"email"`
}

type updatePasswordRequest struct {
	ResetToken  string `json:"reset_token"`
	NewPassword string `json:"new_password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type registerResponse struct {
	User    userResponse `json:"user"`
	Message string       `json:"message"`
}

type loginResponse struct {
	Email   string `json:"email"`
	Message string `json:"message"`
}

type resetResponse struct {
	Email      string `json:"email"`
	ResetToken string `json:"reset_token"`
}

type messageResponse struct {
	Message string `json:"message"`
}
