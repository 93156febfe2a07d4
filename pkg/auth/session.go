package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIssuer = "portfolio-backend"

var ErrInvalidSession = errors.New("invalid session token")

// SessionClaims identify one browser's page session
type SessionClaims struct {
	jwt.RegisteredClaims
}

// SessionManager issues and verifies HS256 page-session tokens
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionManager uses secret, or a random one when empty
func NewSessionManager(secret string, ttl time.Duration) (*SessionManager, error) {
	key := []byte(secret)
	if len(key) == 0 {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		key = []byte(hex.EncodeToString(buf))
	}
	return &SessionManager{secret: key, ttl: ttl, now: time.Now}, nil
}

// Issue creates a new session ID and its signed token
func (m *SessionManager) Issue() (sessionID, token string, err error) {
	sessionID = uuid.NewString()
	token, err = m.Reissue(sessionID)
	if err != nil {
		return "", "", err
	}
	return sessionID, token, nil
}

// Reissue signs a fresh token for an existing session ID
func (m *SessionManager) Reissue(sessionID string) (string, error) {
	now := m.now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return token, nil
}

// Session is a verified page session
type Session struct {
	ID        string
	ExpiresAt time.Time
}

// Verify returns the session ID carried by a valid token
func (m *SessionManager) Verify(token string) (string, error) {
	s, err := m.Parse(token)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// Parse validates a token and returns its session
func (m *SessionManager) Parse(token string) (Session, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	if claims.ExpiresAt == nil {
		return Session{}, fmt.Errorf("%w: missing expiry", ErrInvalidSession)
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return Session{}, fmt.Errorf("%w: bad subject", ErrInvalidSession)
	}
	return Session{ID: claims.Subject, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// NeedsRefresh reports whether less than half of the session's lifetime is left
func (m *SessionManager) NeedsRefresh(s Session) bool {
	return s.ExpiresAt.Sub(m.now()) < m.ttl/2
}

// TTL is how long an issued token stays valid
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}
