package main

import (
	"errors"
	"flag"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jkatembo/kambi/core/user"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	db     *mongo.Database
	usrSvc user.ServiceInterface
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  ensureindexes - create the unique indexes backing the store's natural keys")
	fmt.Println("  grantrole -email EMAIL [-role ROLE] - promote a user to admin or instructor")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	grantRoleCmd := flag.NewFlagSet("grantrole", flag.ExitOnError)
	grantRoleEmail := grantRoleCmd.String("email", "", "The user's email.")
	grantRoleRole := grantRoleCmd.String("role", user.RoleAdmin, "The role to grant: admin or instructor.")

	switch args[1] {
	case "ensureindexes":
		return cli.ensureIndexes()
	case "grantrole":
		if err := grantRoleCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *grantRoleEmail == "" {
			grantRoleCmd.Usage()
			return errHelp
		}
		return cli.grantRole(*grantRoleEmail, *grantRoleRole)
	default:
		cli.printUsage()
		return errHelp
	}
}
