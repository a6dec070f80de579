package auth

import (
	"context"
	"encoding/gob"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

const sessionName = "cms-session"

// Store holds the cookie session store.
var Store *sessions.CookieStore

func InitSessionStore(sessionKey string) error {
	if len(sessionKey) < 32 {
		return errors.New("session key must be at least 32 characters long")
	}
	Store = sessions.NewCookieStore([]byte(sessionKey))
	Store.Options.HttpOnly = true
	Store.Options.Path = "/"
	Store.Options.SameSite = http.SameSiteLaxMode
	return nil
}

func init() {
	gob.Register(&models.User{})
}

type contextKey string

// UserContextKey carries the logged-in editor through the request context.
const UserContextKey contextKey = "user"

// Service provides authentication for the editing surface. The logged-in
// user is the actor recorded by the revision log.
type Service struct {
	Repo *Repository
}

// NewService creates a new authentication service.
func NewService(repo *Repository) *Service {
	return &Service{Repo: repo}
}

// RegisterUser creates a new editor account with a local-password identity.
func (s *Service) RegisterUser(username, displayName, password string) (*models.User, error) {
	if _, err := s.Repo.FindUserByUsername(username); err == nil {
		return nil, errors.New("user already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	passwordHash := string(hashedPassword)

	user := &models.User{
		Username:    username,
		DisplayName: displayName,
	}
	identity := &models.Identity{
		Provider:       "local",
		ProviderUserID: username,
		PasswordHash:   &passwordHash,
	}

	if err := s.Repo.CreateUser(user, identity); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and creates a session.
func (s *Service) Login(w http.ResponseWriter, r *http.Request, username, password string) (*models.User, error) {
	user, err := s.Repo.FindUserByUsername(username)
	if err != nil {
		return nil, err
	}

	identity, err := s.Repo.FindIdentityByProvider("local", username)
	if err != nil {
		return nil, err
	}

	if identity.PasswordHash == nil {
		return nil, errors.New("user has no password set")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*identity.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}

	session, _ := Store.Get(r, sessionName)
	session.Values["user"] = user

	// Secure flag follows the request scheme so the cookie survives
	// reverse proxies.
	session.Options.Secure = r.URL.Scheme == "https" || r.Header.Get("X-Forwarded-Proto") == "https"

	session.Save(r, w)

	return user, nil
}

// Logout destroys a user's session.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := Store.Get(r, sessionName)
	delete(session.Values, "user")
	session.Options.Secure = r.URL.Scheme == "https" || r.Header.Get("X-Forwarded-Proto") == "https"
	session.Save(r, w)
}

// GetCurrentUser returns the currently logged-in user.
func (s *Service) GetCurrentUser(r *http.Request) *models.User {
	session, _ := Store.Get(r, sessionName)
	if user, ok := session.Values["user"].(*models.User); ok {
		return user
	}
	return nil
}

// RequireLogin protects routes that mutate content.
func (s *Service) RequireLogin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.GetCurrentUser(r) == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// WithUser adds the current user to the request context.
func (s *Service) WithUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := s.GetCurrentUser(r)
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserFrom extracts the logged-in user from a request context.
func UserFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(UserContextKey).(*models.User)
	return user
}
