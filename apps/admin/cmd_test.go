package main

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jkatembo/kambi/core/user"
	inmemdb "github.com/jkatembo/kambi/storage/database/inmem"
)

var usrSvc user.ServiceInterface

func setup(t *testing.T) *commandLine {
	t.Helper()

	usrSvc = user.NewService(inmemdb.NewUserRepository(inmemdb.NewDB()))

	// start CLI
	return &commandLine{
		usrSvc: usrSvc,
	}
}

func createUser(t *testing.T, name, email, role string) user.User {
	t.Helper()

	usr, err := usrSvc.Register(context.Background(), user.NewUser{Name: name, Email: email, Role: role})
	if err != nil {
		t.Fatalf("createUser() error = %v", err)
	}
	return usr
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	extra      interface{}
}

func Test_commandLine_ensureIndexes(t *testing.T) {
	cli := setup(t)

	var called bool
	ensureIndexesFunc = func(ctx context.Context, db *mongo.Database) error {
		called = true
		return nil
	}

	if err := cli.run([]string{"admin", "ensureindexes"}); err != nil {
		t.Errorf("cli.run() unexpected error = %v", err)
	}
	if !called {
		t.Error("cli.run() did not create indexes")
	}
}

func Test_commandLine_grantRole(t *testing.T) {
	cli := setup(t)

	usr := createUser(t, "Awe", "awe@kambi.cd", user.RoleStudent)

	type extra struct {
		role string
	}
	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"grantrole"}, wantErr: errHelp},
		{name: "unknown email", args: []string{"grantrole", "-email", "lol@kambi.cd"}, wantErr: user.ErrNotFound},
		{name: "unknown role", args: []string{"grantrole", "-email", usr.Email, "-role", "lol"},
			wantErrStr: `"lol": role must be "admin" or "instructor"`},
		{name: "grant instructor", args: []string{"grantrole", "-email", usr.Email, "-role", user.RoleInstructor},
			extra: extra{role: user.RoleInstructor}},
		{name: "grant admin (default role)", args: []string{"grantrole", "-email", usr.Email},
			extra: extra{role: user.RoleAdmin}},
		{name: "email is cleaned", args: []string{"grantrole", "-email", "  AWE@Kambi.CD ", "-role", user.RoleInstructor},
			extra: extra{role: user.RoleInstructor}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if err != nil {
				if tt.wantErr != nil {
					if err != tt.wantErr {
						t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
					}
				} else if tt.wantErrStr != "" {
					if err.Error() != tt.wantErrStr {
						t.Errorf("cli.run() error.Error() = %s, wantErrStr %s", err.Error(), tt.wantErrStr)
					}
				} else {
					t.Errorf("cli.run() unexpected error = %v", err)
				}
				return
			}

			if x, ok := tt.extra.(extra); ok {
				got, err := usrSvc.GetByID(context.Background(), usr.ID)
				if err != nil {
					t.Fatalf("GetByID() error = %v", err)
				}
				if got.Role != x.role {
					t.Errorf("user role = %q, want %q", got.Role, x.role)
				}
			}
		})
	}
}
