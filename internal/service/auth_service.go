package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"golang.org/x/crypto/bcrypt"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/auth"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/repository"
)

// Auth error kinds
const (
	AuthErrCredentialsSignin = "CredentialsSignin"
	AuthErrCallbackRoute     = "CallbackRouteError"
	AuthErrInvalidProvider   = "InvalidProvider"
)

// Sign-in messages shown on the login form
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgSomethingWentWrong = "something went wrong"
)

// CredentialsProviderName is the email/password provider
const CredentialsProviderName = "credentials"

// AuthError is a recognized sign-in failure. Type discriminates the kind.
type AuthError struct {
	Type string
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Type, e.Err)
	}
	return e.Type
}

// Unwrap returns the underlying error
func (e *AuthError) Unwrap() error {
	return e.Err
}

// Provider verifies submitted form data and returns the signed-in identity
type Provider interface {
	Name() string
	Authorize(ctx context.Context, form url.Values) (*auth.SessionUser, error)
}

// LoginResult is the outcome of Authenticate. Exactly one of Token or
// Message is set.
type LoginResult struct {
	Token   string
	Session *auth.Session
	Message string
}

// AuthService handles sign-in through named identity providers
type AuthService interface {
	SignIn(ctx context.Context, provider string, form url.Values) (string, *auth.Session, error)
	Authenticate(ctx context.Context, form url.Values) (*LoginResult, error)
}

// authService implements AuthService
type authService struct {
	providers map[string]Provider
	sessions  *auth.SessionCodec
}

// NewAuthService creates a new auth service with the given providers
func NewAuthService(sessions *auth.SessionCodec, providers ...Provider) AuthService {
	byName := make(map[string]Provider, len(providers))
	for _, p := range providers {
		byName[p.Name()] = p
	}
	return &authService{providers: byName, sessions: sessions}
}

// SignIn authorizes form with the named provider and issues a session token.
// Recognized failures are *AuthError; anything else is returned as is.
func (s *authService) SignIn(ctx context.Context, provider string, form url.Values) (string, *auth.Session, error) {
	p, ok := s.providers[provider]
	if !ok {
		return "", nil, &AuthError{Type: AuthErrInvalidProvider, Err: fmt.Errorf("unknown provider %q", provider)}
	}

	user, err := p.Authorize(ctx, form)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, &AuthError{Type: AuthErrCredentialsSignin}
	}

	return s.sessions.Issue(*user)
}

// Authenticate signs in with the credentials provider and maps recognized
// auth errors to user-facing messages. Unrecognized errors are returned.
func (s *authService) Authenticate(ctx context.Context, form url.Values) (*LoginResult, error) {
	token, session, err := s.SignIn(ctx, CredentialsProviderName, form)
	if err == nil {
		return &LoginResult{Token: token, Session: session}, nil
	}

	var authErr *AuthError
	if errors.As(err, &authErr) {
		switch authErr.Type {
		case AuthErrCredentialsSignin:
			return &LoginResult{Message: MsgInvalidCredentials}, nil
		default:
			return &LoginResult{Message: MsgSomethingWentWrong}, nil
		}
	}
	return nil, err
}

// credentialsForm is the sign-in form accepted by the credentials provider
type credentialsForm struct {
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

// CredentialsProvider authorizes an email and password against stored users
type CredentialsProvider struct {
	users repository.UserRepository
}

// NewCredentialsProvider creates the "credentials" provider
func NewCredentialsProvider(users repository.UserRepository) *CredentialsProvider {
	return &CredentialsProvider{users: users}
}

// Name returns the provider name
func (p *CredentialsProvider) Name() string {
	return CredentialsProviderName
}

// Authorize checks the email and password fields of form
func (p *CredentialsProvider) Authorize(ctx context.Context, form url.Values) (*auth.SessionUser, error) {
	creds := credentialsForm{
		Email:    strings.TrimSpace(form.Get("email")),
		Password: form.Get("password"),
	}
	if err := binding.Validator.ValidateStruct(&creds); err != nil {
		return nil, &AuthError{Type: AuthErrCredentialsSignin, Err: err}
	}

	user, err := p.users.GetUserByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, &AuthError{Type: AuthErrCredentialsSignin}
		}
		return nil, &AuthError{Type: AuthErrCallbackRoute, Err: err}
	}

	if user.PasswordHash == "" {
		return nil, &AuthError{Type: AuthErrCredentialsSignin}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, &AuthError{Type: AuthErrCredentialsSignin}
	}

	return &auth.SessionUser{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}
