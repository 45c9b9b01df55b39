package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token
const SessionCookieName = "session"

// SessionUser is the signed-in identity carried by a session
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is the request's authentication state. A nil Session or one
// without a User is anonymous.
type Session struct {
	User      *SessionUser
	ExpiresAt time.Time
}

// IsLoggedIn reports whether a user is present
func (s *Session) IsLoggedIn() bool {
	return s != nil && s.User != nil
}

// Claims represents the JWT claims of a session token
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionCodec signs and verifies session tokens
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionCodec creates a codec using HS256 and the given secret
func NewSessionCodec(secret string, ttl time.Duration) (*SessionCodec, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	return &SessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns how long issued sessions stay valid
func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a session token for user
func (c *SessionCodec) Issue(user SessionUser) (string, *Session, error) {
	now := c.now()
	expiresAt := now.Add(c.ttl)
	claims := &Claims{
		Name:  user.Name,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	return token, &Session{User: &user, ExpiresAt: expiresAt}, nil
}

// Parse verifies tokenString and returns the session it carries
func (c *SessionCodec) Parse(tokenString string) (*Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid session token")
	}

	session := &Session{
		User: &SessionUser{ID: claims.Subject, Name: claims.Name, Email: claims.Email},
	}
	if claims.ExpiresAt != nil {
		session.ExpiresAt = claims.ExpiresAt.Time
	}
	return session, nil
}
