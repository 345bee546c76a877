package main

import (
	"context"
	"fmt"
	"time"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// enroll adds a user to a class with the given role.
func (cli *commandLine) enroll(userID, classID, role string) error {
	role = core.CleanString(role, true /* lower */)
	var valid bool
	for _, r := range user.AllRoles {
		if r == role {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown role %q", role)
	}

	ctx := context.Background()
	if _, err := cli.usrRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}

	m, err := cli.usrRepo.CreateMembership(ctx, user.ClassMembership{
		UserID:    userID,
		ClassID:   classID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	logger.Printf("membership created: %s", m.ID)
	return nil
}

// unenroll removes a user's membership in a class.
func (cli *commandLine) unenroll(userID, classID string) error {
	ctx := context.Background()

	// ErrNotEnrolled when there is nothing to remove
	m, err := cli.usrRepo.GetMembership(ctx, userID, classID)
	if err != nil {
		return err
	}

	if err = cli.usrRepo.DeleteMembership(ctx, userID, classID); err != nil {
		return err
	}
	logger.Printf("membership deleted: %s", m.ID)
	return nil
}
