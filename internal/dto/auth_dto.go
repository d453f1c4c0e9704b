package dto

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresIn    int       `json:"expires_in"`
	TokenType    string    `json:"token_type,omitempty"`
	User         LoginUser `json:"user"`
}

type LoginUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
