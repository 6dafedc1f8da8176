package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/posalpro/backend/internal/application/activity"
	"github.com/posalpro/backend/internal/domain/identity"
	"github.com/posalpro/backend/internal/domain/shared"
)

// UserService handles user management: creation, role assignment, and
// lifecycle changes
type UserService struct {
	userRepo identity.UserRepository
	roleRepo identity.RoleRepository
	recorder *activity.Recorder
}

// NewUserService creates a new UserService
func NewUserService(userRepo identity.UserRepository, roleRepo identity.RoleRepository, recorder *activity.Recorder) *UserService {
	return &UserService{
		userRepo: userRepo,
		roleRepo: roleRepo,
		recorder: recorder,
	}
}

// Create creates a new user
func (s *UserService) Create(ctx context.Context, tenantID uuid.UUID, actorID *uuid.UUID, req CreateUserRequest) (*UserResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, tenantID, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("DUPLICATE_EMAIL", "A user with this email already exists")
	}

	var user *identity.User
	if req.Active {
		user, err = identity.NewActiveUser(tenantID, req.Email, req.Password)
	} else {
		user, err = identity.NewUser(tenantID, req.Email, req.Password)
	}
	if err != nil {
		return nil, err
	}
	if actorID != nil {
		user.SetCreatedBy(*actorID)
	}
	if req.DisplayName != "" {
		if err := user.SetDisplayName(req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.TeamID != nil {
		user.SetTeam(req.TeamID)
	}
	if len(req.RoleIDs) > 0 {
		roles, err := s.roleRepo.FindByIDs(ctx, tenantID, req.RoleIDs)
		if err != nil {
			return nil, err
		}
		if len(roles) != len(req.RoleIDs) {
			return nil, shared.NewDomainError("ROLE_NOT_FOUND", "One or more roles do not exist")
		}
		for _, roleID := range req.RoleIDs {
			if err := user.AssignRole(roleID); err != nil {
				return nil, err
			}
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, user)

	response := ToUserResponse(user)
	return &response, nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, tenantID, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	response := ToUserResponse(user)
	return &response, nil
}

// List retrieves users with filtering and pagination
func (s *UserService) List(ctx context.Context, tenantID uuid.UUID, filter UserListFilter) ([]UserResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]any),
	}
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}

	users, err := s.userRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// Update updates a user's display name or team
func (s *UserService) Update(ctx context.Context, tenantID, userID uuid.UUID, actorID *uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.SetDisplayName(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.TeamID != nil {
		user.SetTeam(req.TeamID)
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, user)

	response := ToUserResponse(user)
	return &response, nil
}

// AssignRole adds a role to a user
func (s *UserService) AssignRole(ctx context.Context, tenantID, userID, roleID uuid.UUID, actorID *uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if !role.IsOwnedBy(tenantID) {
		return nil, shared.ErrNotFound
	}

	if err := user.AssignRole(roleID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, user)

	response := ToUserResponse(user)
	return &response, nil
}

// RemoveRole removes a role from a user
func (s *UserService) RemoveRole(ctx context.Context, tenantID, userID, roleID uuid.UUID, actorID *uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}

	if err := user.RemoveRole(roleID); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, user)

	response := ToUserResponse(user)
	return &response, nil
}

// Activate activates a pending or deactivated user
func (s *UserService) Activate(ctx context.Context, tenantID, userID uuid.UUID, actorID *uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, tenantID, userID, actorID, func(u *identity.User) error {
		return u.Activate()
	})
}

// Deactivate deactivates a user
func (s *UserService) Deactivate(ctx context.Context, tenantID, userID uuid.UUID, actorID *uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, tenantID, userID, actorID, func(u *identity.User) error {
		return u.Deactivate()
	})
}

// Unlock lifts an account lock before its window expires
func (s *UserService) Unlock(ctx context.Context, tenantID, userID uuid.UUID, actorID *uuid.UUID) (*UserResponse, error) {
	return s.mutate(ctx, tenantID, userID, actorID, func(u *identity.User) error {
		u.Unlock()
		return nil
	})
}

// Delete deletes a user
func (s *UserService) Delete(ctx context.Context, tenantID, userID uuid.UUID) error {
	return s.userRepo.DeleteForTenant(ctx, tenantID, userID)
}

func (s *UserService) mutate(ctx context.Context, tenantID, userID uuid.UUID, actorID *uuid.UUID, change func(*identity.User) error) (*UserResponse, error) {
	user, err := s.userRepo.FindByIDForTenant(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	if err := change(user); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	s.recorder.Record(ctx, actorID, user)

	response := ToUserResponse(user)
	return &response, nil
}
