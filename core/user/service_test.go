package user_test

import (
	"context"
	"testing"

	"github.com/jkatembo/kambi/core/user"
	inmemdb "github.com/jkatembo/kambi/storage/database/inmem"
)

func setup(t *testing.T) user.ServiceInterface {
	t.Helper()
	return user.NewService(inmemdb.NewUserRepository(inmemdb.NewDB()))
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		nu       user.NewUser
		wantRole string
	}{
		{name: "no role defaults to student", nu: user.NewUser{Name: "Awe", Email: "awe@kambi.cd"}, wantRole: user.RoleStudent},
		{name: "unknown role defaults to student", nu: user.NewUser{Name: "Awe", Email: "awe@kambi.cd", Role: "lol"}, wantRole: user.RoleStudent},
		{name: "instructor role is kept", nu: user.NewUser{Name: "Awe", Email: "awe@kambi.cd", Role: user.RoleInstructor}, wantRole: user.RoleInstructor},
		{name: "admin role is kept", nu: user.NewUser{Name: "Awe", Email: "awe@kambi.cd", Role: user.RoleAdmin}, wantRole: user.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setup(t)

			usr, err := svc.Register(ctx, tt.nu)
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if usr.ID == "" {
				t.Error("Register() did not set an ID")
			}
			if usr.Role != tt.wantRole {
				t.Errorf("Register() role = %q, want %q", usr.Role, tt.wantRole)
			}
			if usr.CreatedAt.IsZero() || usr.UpdatedAt.IsZero() {
				t.Error("Register() did not set timestamps")
			}
		})
	}
}

func TestService_Register_existingEmail(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	nu := user.NewUser{Name: "Awe", Email: "awe@kambi.cd"}
	if _, err := svc.Register(ctx, nu); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// a second registration with the same email leaves the store unchanged
	nu.Name = "Imposter"
	if _, err := svc.Register(ctx, nu); err != user.ErrEmailExists {
		t.Errorf("Register() error = %v, want %v", err, user.ErrEmailExists)
	}

	users, err := svc.QueryAll(ctx)
	if err != nil {
		t.Fatalf("QueryAll() error = %v", err)
	}
	if len(users) != 1 {
		t.Errorf("QueryAll() len = %d, want 1", len(users))
	}
	if users[0].Name != "Awe" {
		t.Errorf("stored user name = %q, want %q", users[0].Name, "Awe")
	}
}

func TestService_SetRole(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	usr, err := svc.Register(ctx, user.NewUser{Name: "Awe", Email: "awe@kambi.cd"})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	tests := []struct {
		name     string
		id       string
		role     string
		wantRole string
		wantErr  error
	}{
		{name: "unknown id", id: "lol", role: user.RoleAdmin, wantErr: user.ErrNotFound},
		{name: "student is a no-op", id: usr.ID, role: user.RoleStudent, wantRole: user.RoleStudent},
		{name: "unknown role is a no-op", id: usr.ID, role: "superuser", wantRole: user.RoleStudent},
		{name: "grant instructor", id: usr.ID, role: user.RoleInstructor, wantRole: user.RoleInstructor},
		{name: "grant admin", id: usr.ID, role: user.RoleAdmin, wantRole: user.RoleAdmin},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.SetRole(ctx, tt.id, tt.role)
			if err != tt.wantErr {
				t.Fatalf("SetRole() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Role != tt.wantRole {
				t.Errorf("SetRole() role = %q, want %q", got.Role, tt.wantRole)
			}
		})
	}
}

func TestService_QueryByRole(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	seed := []user.NewUser{
		{Name: "S1", Email: "s1@kambi.cd"},
		{Name: "S2", Email: "s2@kambi.cd"},
		{Name: "I1", Email: "i1@kambi.cd", Role: user.RoleInstructor},
	}
	for _, nu := range seed {
		if _, err := svc.Register(ctx, nu); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}

	instructors, err := svc.QueryByRole(ctx, user.RoleInstructor)
	if err != nil {
		t.Fatalf("QueryByRole() error = %v", err)
	}
	if len(instructors) != 1 {
		t.Fatalf("QueryByRole() len = %d, want 1", len(instructors))
	}
	if instructors[0].Email != "i1@kambi.cd" {
		t.Errorf("QueryByRole() email = %q, want %q", instructors[0].Email, "i1@kambi.cd")
	}
}
