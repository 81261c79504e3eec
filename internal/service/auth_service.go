package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/gambler-service/internal/auth"
	"github.com/spec-kit/gambler-service/internal/config"
	"github.com/spec-kit/gambler-service/internal/domain"
	"github.com/spec-kit/gambler-service/internal/events"
	"github.com/spec-kit/gambler-service/internal/repository"
	apperrors "github.com/spec-kit/gambler-service/pkg/util/errorutil"
)

// LogoutResult is returned to a caller that logged out.
const LogoutResult = "Logout"

// AuthService coordinates registration, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	issuer     *auth.Issuer
	dispatcher events.Dispatcher
	clock      auth.Clock
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Issuer     *auth.Issuer
	Dispatcher events.Dispatcher
	Clock      auth.Clock
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, deps AuthDependencies) *AuthService {
	clock := deps.Clock
	if clock == nil {
		clock = auth.SystemClock{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = events.NewInMemoryDispatcher()
	}
	return &AuthService{
		users:      deps.UserRepo,
		issuer:     deps.Issuer,
		dispatcher: dispatcher,
		clock:      clock,
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// Register creates a player account and issues its first token pair.
func (s *AuthService) Register(ctx context.Context, creds domain.Credentials) (*auth.TokenPair, error) {
	if _, err := s.users.GetByUsername(ctx, creds.Username); err == nil {
		return nil, apperrors.NewConflict("User already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	hash, err := auth.HashPassword(creds.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{Username: creds.Username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, apperrors.NewConflict("User already exists", nil)
		}
		return nil, apperrors.MapError(err)
	}

	pair, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.ID, s.clock.Now(), events.LoginPayload{Username: user.Username}))
	return pair, nil
}

// Login checks the credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, creds domain.Credentials) (*auth.TokenPair, error) {
	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, creds.Password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	pair, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.NewEvent(events.EventUserLoggedIn, user.ID, s.clock.Now(), events.LoginPayload{Username: user.Username}))
	return pair, nil
}

// Logout is a no-op for stateless tokens beyond recording the event.
func (s *AuthService) Logout(ctx context.Context, identity auth.JWTGuard) (string, error) {
	s.publish(ctx, events.NewEvent(events.EventUserLoggedOut, identity.Subject, s.clock.Now(), events.LogoutPayload{TokenExpiresAt: identity.ExpiresAt}))
	return LogoutResult, nil
}

// Profile loads the authenticated player's account.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("type", string(event.Type)), zap.Error(err))
	}
}
