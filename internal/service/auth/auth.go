// internal/service/auth/auth_service.go
package auth

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"crm-service/internal/domain/auth"
	"crm-service/internal/domain/identity"
	xerrors "crm-service/internal/pkg/errors"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/session"
	"crm-service/internal/repository/postgres"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthService is the local identity provider: email/password accounts,
// RS256 access tokens, redis-backed sessions and the persisted guest/user
// mode flag.
type AuthService struct {
	authRepo       *postgres.AuthRepository
	jwtManager     *jwt.Manager
	sessionManager *session.Manager
	rateLimiter    *session.RateLimiter
	logger         *zap.Logger
}

func NewAuthService(
	authRepo *postgres.AuthRepository,
	jwtManager *jwt.Manager,
	sessionManager *session.Manager,
	rateLimiter *session.RateLimiter,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		authRepo:       authRepo,
		jwtManager:     jwtManager,
		sessionManager: sessionManager,
		rateLimiter:    rateLimiter,
		logger:         logger,
	}
}

// Register creates a new account and signs it in.
func (s *AuthService) Register(ctx context.Context, req *auth.RegisterRequest) (*auth.AuthResponse, error) {
	exists, err := s.authRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, xerrors.ErrConflict
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &auth.Account{
		ID:           ulid.Make().String(),
		Email:        req.Email,
		DisplayName:  sql.NullString{String: req.DisplayName, Valid: req.DisplayName != ""},
		PasswordHash: string(hashedPassword),
		Roles:        []string{"user"},
	}

	if err := s.authRepo.CreateAccount(ctx, account); err != nil {
		s.logger.Error("failed to create account", zap.Error(err))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("account registered",
		zap.String("identity_key", account.ID),
		zap.String("email", account.Email),
	)

	return s.signIn(ctx, account, req.IPAddress, req.UserAgent)
}

// Login authenticates a user with email/password
func (s *AuthService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.AuthResponse, error) {
	allowed, remaining, err := s.rateLimiter.CheckLoginAttempt(ctx, req.IPAddress, req.Email)
	if err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}
	if !allowed {
		return nil, xerrors.ErrRateLimited
	}

	account, err := s.authRepo.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("invalid credentials (attempts remaining: %d)", remaining)
	}

	if err := s.authRepo.UpdateLastLogin(ctx, account.ID); err != nil {
		s.logger.Error("failed to update last login", zap.Error(err))
	}
	s.rateLimiter.ResetLoginAttempts(ctx, req.IPAddress, req.Email)

	// A successful login flips the persisted device mode to "user".
	if req.DeviceID != "" {
		if err := s.sessionManager.SetAuthMode(ctx, req.DeviceID, identity.ModeUser); err != nil {
			s.logger.Error("failed to persist auth mode", zap.Error(err))
		}
	}

	return s.signIn(ctx, account, req.IPAddress, req.UserAgent)
}

// signIn issues a token and records the session in redis.
func (s *AuthService) signIn(ctx context.Context, account *auth.Account, ipAddress, userAgent string) (*auth.AuthResponse, error) {
	token, jti, err := s.jwtManager.Generator.GenerateAccessToken(account.ID, account.Email, account.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	now := time.Now()
	expiresAt := now.Add(s.jwtManager.Generator.TTL)

	sessionData := &session.SessionData{
		JTI:            jti,
		IdentityKey:    account.ID,
		Email:          account.Email,
		Roles:          account.Roles,
		Mode:           identity.ModeUser,
		IPAddress:      ipAddress,
		UserAgent:      userAgent,
		LoginAt:        now,
		LastActivityAt: now,
		ExpiresAt:      expiresAt,
	}
	if err := s.sessionManager.CreateSession(ctx, sessionData); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &auth.AuthResponse{
		Token:       token,
		ExpiresAt:   expiresAt,
		IdentityKey: account.ID,
		Email:       account.Email,
		DisplayName: account.DisplayName.String,
		Roles:       account.Roles,
	}, nil
}

// ValidateToken verifies a bearer token and checks its session is alive.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtManager.Verifier.VerifyAccessToken(token)
	if err != nil {
		return nil, err
	}

	if _, err := s.sessionManager.GetSession(ctx, claims.IdentityKey, claims.ID); err != nil {
		return nil, xerrors.ErrSessionExpired
	}

	return claims, nil
}

// Logout invalidates the current session.
func (s *AuthService) Logout(ctx context.Context, identityKey, jti string) error {
	return s.sessionManager.InvalidateSession(ctx, identityKey, jti)
}

// LogoutAll invalidates every session of the identity.
func (s *AuthService) LogoutAll(ctx context.Context, identityKey string) error {
	return s.sessionManager.InvalidateAllSessions(ctx, identityKey)
}

// GetAccount returns the account behind an identity key.
func (s *AuthService) GetAccount(ctx context.Context, identityKey string) (*auth.Account, error) {
	return s.authRepo.FindAccountByID(ctx, identityKey)
}

// SetAuthMode persists the guest/user flag for a device.
func (s *AuthService) SetAuthMode(ctx context.Context, deviceID string, mode identity.Mode) error {
	return s.sessionManager.SetAuthMode(ctx, deviceID, mode)
}

// GetAuthMode reads the persisted guest/user flag for a device.
func (s *AuthService) GetAuthMode(ctx context.Context, deviceID string) (identity.Mode, error) {
	return s.sessionManager.GetAuthMode(ctx, deviceID)
}
