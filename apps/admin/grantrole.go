package main

import (
	"context"
	"fmt"

	"github.com/jkatembo/kambi/core"
	"github.com/jkatembo/kambi/core/user"
)

// grantRole promotes an existing user to admin or instructor.
func (cli *commandLine) grantRole(email, role string) error {
	ctx := context.Background()
	email = core.CleanString(email, true /* lower */)
	role = core.CleanString(role, true /* lower */)

	if role != user.RoleAdmin && role != user.RoleInstructor {
		return fmt.Errorf("%q: role must be %q or %q", role, user.RoleAdmin, user.RoleInstructor)
	}

	usr, err := cli.usrSvc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	_, err = cli.usrSvc.SetRole(ctx, usr.ID, role)
	return err
}
