package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/appadook/appadook-portfolio-next/models"
	"github.com/appadook/appadook-portfolio-next/repository"
)

// ErrInvalidCredentials is returned for a bad email/password pair. Kept
// deliberately indistinct so callers cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrNoSession is returned when a request carries no valid session token.
var ErrNoSession = errors.New("no active session")

// sessionTTL is how long a session lives without keep-alive refreshes
const sessionTTL = 30 * time.Minute

// sweepInterval is how often expired sessions are purged
const sweepInterval = 10 * time.Minute

// AuthService implements the authentication collaborator: signup, login,
// logout, session lookup and keep-alive refresh, plus a background sweeper
// for expired sessions.
type AuthService struct {
	repo repository.AuthRepositoryInterface
	done chan struct{}
}

// NewAuthService creates the service and starts the expired-session sweeper.
func NewAuthService(repo repository.AuthRepositoryInterface) *AuthService {
	s := &AuthService{repo: repo, done: make(chan struct{})}
	go s.sweep()
	return s
}

// sweep purges expired sessions on a ticker until Close is called.
func (s *AuthService) sweep() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			removed, err := s.repo.DeleteExpiredSessions(context.Background())
			if err != nil {
				log.Printf("❌ AuthService: session sweep failed: %v", err)
				continue
			}
			if removed > 0 {
				log.Printf("🧹 AuthService: purged %d expired sessions", removed)
			}
		}
	}
}

// Close stops the sweeper.
func (s *AuthService) Close() {
	close(s.done)
}

// Signup creates the admin account and opens a session for it.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.SessionResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.InsertUser(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}
	log.Printf("✓ Signed up admin %s", user.Email)
	return s.openSession(ctx, user)
}

// Login verifies credentials and opens a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.SessionResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.openSession(ctx, user)
}

func (s *AuthService) openSession(ctx context.Context, user *models.User) (*models.SessionResponse, error) {
	session := models.Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := s.repo.InsertSession(ctx, session); err != nil {
		return nil, err
	}
	return &models.SessionResponse{Token: session.Token, Email: user.Email, ExpiresAt: session.ExpiresAt}, nil
}

// Logout deletes the session carried by the request. Logging out an
// already-dead session is not an error.
func (s *AuthService) Logout(ctx context.Context, r *http.Request) error {
	token := bearerToken(r)
	if token == "" {
		return nil
	}
	return s.repo.DeleteSession(ctx, token)
}

// GetSession resolves the request's bearer token to an active session.
func (s *AuthService) GetSession(ctx context.Context, r *http.Request) (*models.Session, error) {
	token := bearerToken(r)
	if token == "" {
		return nil, ErrNoSession
	}
	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return session, nil
}

// Refresh implements the keep-alive the dashboard polls: it extends the
// session's expiry by a full TTL.
func (s *AuthService) Refresh(ctx context.Context, r *http.Request) (*models.Session, error) {
	session, err := s.GetSession(ctx, r)
	if err != nil {
		return nil, err
	}
	session.ExpiresAt = time.Now().Add(sessionTTL)
	if err := s.repo.TouchSession(ctx, session.Token, session.ExpiresAt); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return session, nil
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}
