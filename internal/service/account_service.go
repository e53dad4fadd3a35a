package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/genops-api/internal/domain"
	"github.com/phrazzld/genops-api/internal/platform/logger"
	"github.com/phrazzld/genops-api/internal/service/auth"
	"github.com/phrazzld/genops-api/internal/store"
)

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

// AccountService handles registration, login and token verification.
type AccountService interface {
	// Register creates a user and returns a session for it.
	Register(ctx context.Context, username, email, password string) (*AuthResult, error)

	// Login checks credentials and returns a fresh session.
	Login(ctx context.Context, username, password string) (*AuthResult, error)

	// Verify turns a session token into the identity it asserts.
	// It does not consult storage.
	Verify(ctx context.Context, token string) (domain.Identity, error)
}

type accountService struct {
	users  store.UserStore
	tx     store.Transactor
	hasher auth.PasswordHasher
	tokens auth.JWTService
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

var _ AccountService = (*accountService)(nil)

// NewAccountService creates an AccountService.
func NewAccountService(
	users store.UserStore,
	tx store.Transactor,
	hasher auth.PasswordHasher,
	tokens auth.JWTService,
	logger *slog.Logger,
) (AccountService, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", nil)
	}
	if tx == nil {
		return nil, domain.NewValidationError("tx", "cannot be nil", nil)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", nil)
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &accountService{
		users:  users,
		tx:     tx,
		hasher: hasher,
		tokens: tokens,
		logger: logger.With("component", "account_service"),
	}, nil
}

func (s *accountService) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// Register validates input, hashes the password, inserts the user and mints a token.
// Uniqueness is enforced by the database so two concurrent registrations of the
// same username cannot both succeed.
func (s *accountService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	log := s.log(ctx)
	creds := domain.Credentials{Username: username, Email: email, Password: password}.Normalize()
	if err := creds.ValidateForRegistration(); err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(creds.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, domain.NewValidationError("password", "must be at most 72 bytes", nil)
		}
		log.Error("failed to hash password", "error", err)
		return nil, NewServiceError("account", "register", err)
	}

	user := &domain.User{
		Username:       creds.Username,
		Email:          creds.Email,
		HashedPassword: hashed,
	}
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("registration rejected: username or email taken", "username", creds.Username)
			return nil, ErrConflict
		}
		log.Error("failed to create user", "error", err, "username", creds.Username)
		return nil, storageError("account", "register", err)
	}

	identity := domain.Identity{UserID: user.ID, Username: user.Username}
	result, err := s.issue(ctx, identity)
	if err != nil {
		return nil, NewServiceError("account", "register", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", user.Username)
	return result, nil
}

// Login verifies the password against the stored hash. Unknown users and wrong
// passwords are indistinguishable to the caller.
func (s *accountService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	log := s.log(ctx)
	creds := domain.Credentials{Username: username, Password: password}.Normalize()
	if err := creds.ValidateForLogin(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if store.IsNotFoundError(err) {
			// Spend the same bcrypt work as a real comparison.
			_ = s.hasher.Compare(s.dummyPasswordHash(), creds.Password)
			log.Debug("login failed: unknown user")
			return nil, ErrInvalidCredentials
		}
		log.Error("failed to load user for login", "error", err)
		return nil, storageError("account", "login", err)
	}

	if err := s.hasher.Compare(user.HashedPassword, creds.Password); err != nil {
		log.Debug("login failed: password mismatch", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	result, err := s.issue(ctx, domain.Identity{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, NewServiceError("account", "login", err)
	}

	log.Info("user logged in", "user_id", user.ID)
	return result, nil
}

// Verify validates the token and returns its identity. Every failure maps to ErrUnauthenticated.
func (s *accountService) Verify(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := s.tokens.ValidateToken(ctx, token)
	if err != nil {
		s.log(ctx).Debug("token verification failed", "error", err)
		return domain.Identity{}, ErrUnauthenticated
	}
	identity := claims.Identity()
	if !identity.Valid() {
		return domain.Identity{}, ErrUnauthenticated
	}
	return identity, nil
}

func (s *accountService) issue(ctx context.Context, identity domain.Identity) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.GenerateToken(ctx, identity)
	if err != nil {
		s.log(ctx).Error("failed to generate token", "error", err, "user_id", identity.UserID)
		return nil, err
	}
	return &AuthResult{Identity: identity, Token: token, ExpiresAt: expiresAt}, nil
}

// dummyPasswordHash returns a hash produced by the configured hasher so that
// comparisons against it cost the same as against a real user's hash.
func (s *accountService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("genops-dummy-password")
		if err != nil {
			s.logger.Warn("failed to prepare dummy password hash", "error", err)
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
