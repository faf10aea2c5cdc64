package main

import (
	"context"

	"github.com/jkatembo/kambi/storage/database"
)

var ensureIndexesFunc = database.EnsureIndexes // mockable

func (cli *commandLine) ensureIndexes() error {
	return ensureIndexesFunc(context.Background(), cli.db)
}
