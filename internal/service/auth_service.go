package service

import (
	"context"
	"fmt"

	"github.com/taskforge/client-go/internal/client"
	"github.com/taskforge/client-go/internal/models"
)

type AuthService struct {
	api *client.Client
}

func NewAuthService(api *client.Client) *AuthService {
	return &AuthService{api: api}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Prenom               string `json:"prenom"`
	Nom                  string `json:"nom"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// authResponse may or may not carry the user; some server versions
// answer login with the session cookie only.
type authResponse struct {
	User *userDTO `json:"user"`
}

type RegisterInput struct {
	Name                 string
	Surname              string
	Email                string
	Password             string
	PasswordConfirmation string
}

func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	body, err := s.api.Get(ctx, "/api/utilisateur")
	if err != nil {
		return nil, fmt.Errorf("get current user: %w", err)
	}
	dto, err := client.DecodeEnvelope[userDTO](body)
	if err != nil {
		return nil, fmt.Errorf("parse current user: %w", err)
	}
	u, err := toUser(dto)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Login returns the user from the response when the server includes
// one, nil otherwise. Callers fall back to CurrentUser on nil.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	if err := s.api.EnsureCSRF(ctx); err != nil {
		return nil, err
	}
	body, err := s.api.Post(ctx, "/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return decodeAuthUser(body)
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := s.api.EnsureCSRF(ctx); err != nil {
		return nil, err
	}
	req := registerRequest{
		Prenom:               in.Name,
		Nom:                  in.Surname,
		Email:                in.Email,
		Password:             in.Password,
		PasswordConfirmation: in.PasswordConfirmation,
	}
	body, err := s.api.Post(ctx, "/register", req)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return decodeAuthUser(body)
}

func (s *AuthService) Logout(ctx context.Context) error {
	// Pre-flight failure must not make logout stick.
	_ = s.api.EnsureCSRF(ctx)
	if _, err := s.api.Post(ctx, "/logout", nil); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

func decodeAuthUser(body []byte) (*models.User, error) {
	if len(body) == 0 {
		return nil, nil
	}
	resp, err := client.DecodeEnvelope[authResponse](body)
	if err != nil || resp.User == nil {
		return nil, nil
	}
	u, err := toUser(*resp.User)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
