package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/habitloop/habitloop-server/internal/service"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:   "signup",
		Method:        http.MethodPost,
		Path:          "/api/auth/signup",
		Summary:       "Sign up",
		Description:   "Registers a mobile number and seeds its habit document. Signing up an existing number returns a fresh session token.",
		Tags:          []string{"Authentication"},
		DefaultStatus: http.StatusCreated,
	}, s.handleSignup)

	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/api/auth/login",
		Summary:     "Log in",
		Description: "Authenticates a known mobile number and returns a session token",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)
}

// === DTOs ===

// SignupRequest is the request body for signup.
type SignupRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric,min=7,max=15" doc:"Mobile number (digits only)"`
}

// SignupInput wraps the signup request for Huma.
type SignupInput struct {
	Body          SignupRequest
	XForwardedFor string `header:"X-Forwarded-For"`
}

// LoginRequest is the request body for login.
type LoginRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric,min=7,max=15" doc:"Mobile number (digits only)"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body          LoginRequest
	XForwardedFor string `header:"X-Forwarded-For"`
}

// SessionResponse contains the session token for an authenticated identity.
type SessionResponse struct {
	ExpiresAt time.Time `json:"expires_at" doc:"Token expiry"`
	Identity  string    `json:"identity" doc:"Authenticated mobile number"`
	Token     string    `json:"token" doc:"PASETO session token"`
	Created   bool      `json:"created" doc:"True when a new document was seeded"`
}

// SignupOutput wraps the signup response for Huma.
type SignupOutput struct {
	Status int
	Body   SessionResponse
}

// LoginOutput wraps the login response for Huma.
type LoginOutput struct {
	Body SessionResponse
}

// === Handlers ===

func (s *Server) handleSignup(ctx context.Context, input *SignupInput) (*SignupOutput, error) {
	if !s.authRateLimiter.Allow(clientKey(input.XForwardedFor, ctx)) {
		return nil, huma.Error429TooManyRequests("Too many auth attempts, slow down")
	}

	resp, err := s.services.Auth.Signup(ctx, service.SignupRequest{Mobile: input.Body.Mobile})
	if err != nil {
		return nil, err
	}

	status := http.StatusCreated
	if !resp.Created {
		status = http.StatusOK
	}

	return &SignupOutput{
		Status: status,
		Body: SessionResponse{
			Identity:  resp.Identity,
			Token:     resp.Token,
			ExpiresAt: resp.ExpiresAt,
			Created:   resp.Created,
		},
	}, nil
}

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if !s.authRateLimiter.Allow(clientKey(input.XForwardedFor, ctx)) {
		return nil, huma.Error429TooManyRequests("Too many auth attempts, slow down")
	}

	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{Mobile: input.Body.Mobile})
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Body: SessionResponse{
			Identity:  resp.Identity,
			Token:     resp.Token,
			ExpiresAt: resp.ExpiresAt,
			Created:   resp.Created,
		},
	}, nil
}
