package user

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("user already existed")
)

type (
	Repository interface {
		// CreateUser inserts usr and returns it with its store-generated ID.
		// It returns ErrEmailExists when a user with the same email is already
		// persisted; uniqueness is enforced by the store, not a prior lookup.
		CreateUser(ctx context.Context, usr User) (User, error)
		QueryAllUsers(ctx context.Context) ([]User, error)
		FilterUsersByRole(ctx context.Context, role string) ([]User, error)
		GetUserByID(ctx context.Context, id string) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		UpdateUserRole(ctx context.Context, id, role string) (User, error)
	}

	ServiceInterface interface {
		Register(ctx context.Context, nu NewUser) (User, error)
		QueryAll(ctx context.Context) ([]User, error)
		QueryByRole(ctx context.Context, role string) ([]User, error)
		GetByID(ctx context.Context, id string) (User, error)
		GetByEmail(ctx context.Context, email string) (User, error)
		SetRole(ctx context.Context, id, role string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a new User. Registration is idempotent on email: a second
// call with a known email leaves the store unchanged and returns ErrEmailExists.
func (svc *Service) Register(ctx context.Context, nu NewUser) (User, error) {
	role := nu.Role
	if !IsValidRole(role) {
		role = RoleStudent
	}

	now := time.Now().UTC()
	usr := User{
		Name:      nu.Name,
		Email:     nu.Email,
		PhotoURL:  nu.PhotoURL,
		Gender:    nu.Gender,
		Address:   nu.Address,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) QueryAll(ctx context.Context) ([]User, error) {
	return svc.repo.QueryAllUsers(ctx)
}

func (svc *Service) QueryByRole(ctx context.Context, role string) ([]User, error) {
	return svc.repo.FilterUsersByRole(ctx, role)
}

func (svc *Service) GetByID(ctx context.Context, id string) (User, error) {
	return svc.repo.GetUserByID(ctx, id)
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, email)
}

// SetRole promotes the user to role. Only "admin" and "instructor" are ever
// applied; any other value leaves the user untouched.
func (svc *Service) SetRole(ctx context.Context, id, role string) (User, error) {
	if role != RoleAdmin && role != RoleInstructor {
		return svc.repo.GetUserByID(ctx, id)
	}
	return svc.repo.UpdateUserRole(ctx, id, role)
}
