package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"health-connect-api/internal/domain/entity"
	"health-connect-api/internal/domain/repository"
	"health-connect-api/internal/service"
	"health-connect-api/pkg/response"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserKey   contextKey = "user"
	UserIDKey contextKey = "user_id"
)

var (
	ErrMissingToken = errors.New("authentication credentials were not provided")
	ErrInvalidToken = errors.New("invalid token")
	ErrUserInactive = errors.New("user inactive or deleted")
)

// Messages written for rejected credentials.
const (
	msgMissingToken = "Authentication credentials were not provided."
	msgInvalidToken = "Invalid token."
	msgUserInactive = "User inactive or deleted."
)

// AuthMiddleware authenticates requests carrying "Authorization: Token <key>".
// "Bearer <key>" is accepted as well.
type AuthMiddleware struct {
	db           repository.Transactor
	log          *logrus.Logger
	tokenService service.TokenService
	userRepo     repository.UserRepository
}

func NewAuthMiddleware(
	db repository.Transactor,
	log *logrus.Logger,
	tokenService service.TokenService,
	userRepo repository.UserRepository,
) *AuthMiddleware {
	return &AuthMiddleware{
		db:           db,
		log:          log,
		tokenService: tokenService,
		userRepo:     userRepo,
	}
}

// Authenticate rejects requests without a valid credential.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key, ok := tokenFromHeader(r.Header.Get("Authorization"))
		if !ok {
			response.Unauthorized(w, msgMissingToken)
			return
		}
		m.serveAuthenticated(w, r, next, key)
	})
}

// OptionalAuthenticate lets anonymous requests through but still rejects a
// credential that is present and wrong.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}
		key, ok := tokenFromHeader(header)
		if !ok {
			response.Unauthorized(w, msgInvalidToken)
			return
		}
		m.serveAuthenticated(w, r, next, key)
	})
}

func (m *AuthMiddleware) serveAuthenticated(w http.ResponseWriter, r *http.Request, next http.Handler, key string) {
	user, err := m.resolve(r.Context(), key)
	switch {
	case errors.Is(err, ErrInvalidToken):
		response.Unauthorized(w, msgInvalidToken)
		return
	case errors.Is(err, ErrUserInactive):
		response.Unauthorized(w, msgUserInactive)
		return
	case err != nil:
		m.log.Warnf("Failed to authenticate request: %+v", err)
		response.InternalServerError(w, "Failed to validate token")
		return
	}

	ctx := context.WithValue(r.Context(), UserKey, user)
	ctx = context.WithValue(ctx, UserIDKey, user.ID)

	next.ServeHTTP(w, r.WithContext(ctx))
}

func (m *AuthMiddleware) resolve(ctx context.Context, key string) (*entity.User, error) {
	userID, err := m.tokenService.Resolve(ctx, key)
	if err != nil {
		if errors.Is(err, service.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	user, err := m.userRepo.FindByID(ctx, m.db.DB(ctx), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

// tokenFromHeader extracts the key from "Token <key>" or "Bearer <key>".
func tokenFromHeader(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Token") && !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// GetUserFromContext returns the authenticated account, if any.
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
