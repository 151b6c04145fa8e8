// Package service implements the application services between the HTTP
// surface and the document store.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/habitloop/habitloop-server/internal/auth"
	domainerrors "github.com/habitloop/habitloop-server/internal/errors"
	"github.com/habitloop/habitloop-server/internal/store"
	"github.com/habitloop/habitloop-server/internal/validation"
)

// validate is a shared validator instance for request validation.
var validate = func() *validator.Validate {
	v := validator.New()
	// Use JSON tag names for field names in error messages
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("json")
		if name == "" {
			return fld.Name
		}
		for i := range len(name) {
			if name[i] == ',' {
				return name[:i]
			}
		}
		return name
	})
	return v
}()

// AuthService handles identity signup, login, and token verification.
type AuthService struct {
	store        *store.Store
	tokenService *auth.TokenService
	logger       *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(store *store.Store, tokenService *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:        store,
		tokenService: tokenService,
		logger:       logger,
	}
}

// SignupRequest contains the identity to register.
type SignupRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric,min=7,max=15"`
}

// LoginRequest contains the identity to log in as.
type LoginRequest struct {
	Mobile string `json:"mobile" validate:"required,numeric,min=7,max=15"`
}

// AuthResponse contains the session token for an authenticated identity.
type AuthResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
	Identity  string    `json:"identity"`
	Token     string    `json:"token"`
	Created   bool      `json:"created"`
}

// Signup registers a mobile number and seeds its document. Signing up an
// existing identity is not an error: the caller gets a fresh session token
// for the document that is already there.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	created := false
	exists, err := s.store.DocumentExists(ctx, req.Mobile)
	if err != nil {
		return nil, fmt.Errorf("check document: %w", err)
	}
	if !exists {
		if _, err := s.store.GetOrCreateDocument(ctx, req.Mobile); err != nil {
			return nil, fmt.Errorf("seed document: %w", err)
		}
		created = true
	}

	resp, err := s.issueToken(req.Mobile, created)
	if err != nil {
		return nil, err
	}

	s.logger.Info("signup",
		slog.String("identity", req.Mobile),
		slog.Bool("created", created))
	return resp, nil
}

// Login authenticates a known mobile number. Unknown identities get a
// not-found error so the client can steer the user to signup.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	exists, err := s.store.DocumentExists(ctx, req.Mobile)
	if err != nil {
		return nil, fmt.Errorf("check document: %w", err)
	}
	if !exists {
		return nil, domainerrors.NotFound("no account for this mobile number")
	}

	resp, err := s.issueToken(req.Mobile, false)
	if err != nil {
		return nil, err
	}

	s.logger.Info("login", slog.String("identity", req.Mobile))
	return resp, nil
}

// Verify checks a session token and returns the identity it belongs to.
func (s *AuthService) Verify(tokenString string) (string, error) {
	claims, err := s.tokenService.VerifySessionToken(tokenString)
	if err != nil {
		return "", domainerrors.Unauthorized("invalid or expired session token").WithCause(err)
	}
	return claims.Identity, nil
}

func (s *AuthService) issueToken(mobile string, created bool) (*AuthResponse, error) {
	token, err := s.tokenService.GenerateSessionToken(mobile)
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}
	return &AuthResponse{
		Identity:  mobile,
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokenService.SessionDuration()),
		Created:   created,
	}, nil
}

// formatValidationError converts validator errors into the domain
// validation error with per-field messages.
func formatValidationError(err error) error {
	return validation.Format(err)
}
