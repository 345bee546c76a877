package main

import (
	"github.com/trezcool/darasa/storage/database"
)

var migrateFunc = database.Migrate // mockable

func (cli *commandLine) migrate() error {
	if err := migrateFunc(cli.db.DB); err != nil {
		return err
	}
	logger.Println("migrations applied")
	return nil
}
