package main

import (
	"context"
	"log"
	"os"

	"github.com/jkatembo/kambi/core"
	"github.com/jkatembo/kambi/core/user"
	"github.com/jkatembo/kambi/storage/database"
	mongorepos "github.com/jkatembo/kambi/storage/database/mongodb"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	client, err := database.Open(conf)
	errAndDie(err)
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(conf.Database.Name)

	// start CLI
	cli := commandLine{
		db:     db,
		usrSvc: user.NewService(mongorepos.NewUserRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
