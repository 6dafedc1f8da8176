package identity

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/identity"
	"github.com/posalpro/backend/internal/domain/shared"
	"github.com/posalpro/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// Common authentication errors. Login failures collapse into
// ErrInvalidCredentials so the response never reveals whether the
// email exists.
var (
	ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid email or password")
	ErrAccountLocked      = shared.NewDomainError("ACCOUNT_LOCKED", "Account is temporarily locked")
	ErrAccountInactive    = shared.NewDomainError("ACCOUNT_INACTIVE", "Account is not active")
)

// AuthService handles login and password changes. Tokens carry the
// flattened permissions of the user's roles.
type AuthService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	jwt      *auth.JWTService
	recorder *activity.Recorder
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo identity.UserRepository,
	roleRepo identity.RoleRepository,
	jwt *auth.JWTService,
	recorder *activity.Recorder,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		jwt:      jwt,
		recorder: recorder,
		logger:   logger,
	}
}

// Login authenticates a user and issues an access token. Failed attempts
// count toward the account lockout.
func (s *AuthService) Login(ctx context.Context, tenantID uuid.UUID, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, tenantID, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CanLogin() {
		if user.Status == identity.UserStatusLocked {
			return nil, ErrAccountLocked
		}
		return nil, ErrAccountInactive
	}
	// A lock whose window has passed is lifted on the next login attempt
	if user.Status == identity.UserStatusLocked {
		user.Unlock()
	}

	if !user.VerifyPassword(req.Password) {
		user.RecordFailedLogin()
		if err := s.userRepo.Save(ctx, user); err != nil {
			s.logger.Warn("failed to persist failed login attempt",
				zap.String("user_id", user.ID.String()),
				zap.Error(err),
			)
		}
		s.recorder.Record(ctx, nil, user)
		return nil, ErrInvalidCredentials
	}

	user.RecordLogin()
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	permissions, err := s.flattenPermissions(ctx, user)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwt.GenerateToken(auth.GenerateTokenInput{
		TenantID:    user.TenantID,
		UserID:      user.ID,
		Email:       user.Email,
		TeamID:      user.TeamID,
		Permissions: permissions,
	})
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		User:        ToUserResponse(user),
	}, nil
}

// ChangePassword changes the current user's password after verifying
// the old one
func (s *AuthService) ChangePassword(ctx context.Context, tenantID, userID uuid.UUID, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return err
	}
	s.recorder.Record(ctx, &userID, user)
	return nil
}

// flattenPermissions collects the distinct permission strings of the
// user's roles, sorted for stable token payloads
func (s *AuthService) flattenPermissions(ctx context.Context, user *identity.User) ([]string, error) {
	if len(user.RoleIDs) == 0 {
		return []string{}, nil
	}

	roles, err := s.roleRepo.FindByIDs(ctx, user.TenantID, user.RoleIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	permissions := make([]string, 0)
	for i := range roles {
		for _, p := range roles[i].PermissionStrings() {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			permissions = append(permissions, p)
		}
	}
	sort.Strings(permissions)
	return permissions, nil
}
