package main

import (
	"context"
	"time"

	"github.com/trezcool/darasa/core/user"
)

// addUser validates nu and creates a user.User
func (cli *commandLine) addUser(nu user.NewUser) error {
	if err := nu.Validate(cli.validate); err != nil {
		return err
	}

	usr := user.User{
		Name:      nu.Name,
		Username:  nu.Username,
		Email:     nu.Email,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return err
	}
	usr, err := cli.usrRepo.CreateUser(context.Background(), usr)
	if err != nil {
		return err
	}
	logger.Printf("user created: %s", usr.ID)
	return nil
}
