package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/credgate/credgate/internal/common"
	"github.com/credgate/credgate/internal/logging"
	"github.com/credgate/credgate/internal/server/auth"
	"github.com/credgate/credgate/internal/server/metrics"
)

// Service orchestrates registration, login and token validation over the
// identity store. It holds no per-request state; the only shared state is
// the injected token authority key and the externally owned store.
//
// Login failures stay distinguishable here (common.ErrorNotFound vs
// common.ErrorInvalidCredentials) for logging and metrics; the transport
// layer collapses them into one generic unauthorized response so usernames
// cannot be enumerated.
type Service struct {
	repo      Repository
	hasher    *auth.PasswordHasher
	authority *auth.Authority
	logger    logging.Logger
	newID     func() string
}

func NewService(repo Repository, hasher *auth.PasswordHasher, authority *auth.Authority, logger logging.Logger) *Service {
	return &Service{
		repo:      repo,
		hasher:    hasher,
		authority: authority,
		logger:    logger.With("module", "users"),
		newID:     uuid.NewString,
	}
}

// Register hashes the password, assigns a fresh opaque id and persists the
// record. A taken username surfaces as common.ErrorAlreadyExists; the store
// is the sole enforcer of uniqueness.
func (s *Service) Register(ctx context.Context, userName, password string) (*User, error) {
	if userName == "" || password == "" {
		metrics.Registrations.WithLabelValues("validation_error").Inc()
		return nil, common.ErrorValidation
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		metrics.Registrations.WithLabelValues("internal_error").Inc()
		return nil, fmt.Errorf("%w: hashing password: %v", common.ErrorInternal, err)
	}

	user := &User{
		ID:           s.newID(),
		UserName:     userName,
		PasswordHash: hash,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			s.logger.Warn(ctx, "registration conflict")
			metrics.Registrations.WithLabelValues("conflict").Inc()
			return nil, err
		}
		s.logger.Error(ctx, "error creating user", "error", err.Error())
		metrics.Registrations.WithLabelValues("storage_error").Inc()
		return nil, fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	metrics.Registrations.WithLabelValues("ok").Inc()
	return created, nil
}

// Login verifies the credentials against the stored hash and issues an
// access token for the record's id. An unknown username is an explicit
// branch, never a nil dereference.
func (s *Service) Login(ctx context.Context, userName, password string) (string, error) {
	if userName == "" || password == "" {
		metrics.Logins.WithLabelValues("validation_error").Inc()
		return "", common.ErrorValidation
	}

	user, err := s.repo.GetByUsername(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.logger.Info(ctx, "login for unknown user")
			metrics.Logins.WithLabelValues("unknown_user").Inc()
			return "", err
		}
		s.logger.Error(ctx, "error loading user", "error", err.Error())
		metrics.Logins.WithLabelValues("storage_error").Inc()
		return "", fmt.Errorf("%w: %v", common.ErrorStorage, err)
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		s.logger.Info(ctx, "password mismatch", "user_id", user.ID)
		metrics.Logins.WithLabelValues("bad_password").Inc()
		return "", common.ErrorInvalidCredentials
	}

	token, err := s.authority.Issue(user.ID)
	if err != nil {
		s.logger.Error(ctx, "error issuing token", "error", err.Error())
		metrics.Logins.WithLabelValues("internal_error").Inc()
		return "", common.ErrorInternal
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	return token, nil
}

// Validate checks a bearer token and returns its claims. All token failures
// collapse to common.ErrorUnauthorized; the specific reason is only logged
// and counted. Validation touches no state and never consults the store.
func (s *Service) Validate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.authority.Verify(token)
	if err != nil {
		s.logger.Info(ctx, "token rejected", "reason", err.Error())
		metrics.TokenValidations.WithLabelValues(validationResult(err)).Inc()
		return nil, common.ErrorUnauthorized
	}

	metrics.TokenValidations.WithLabelValues("ok").Inc()
	return claims, nil
}

func validationResult(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed"
	}
}
