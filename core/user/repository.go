package user

import (
	"context"
	"errors"

	"github.com/trezcool/darasa/core"
)

var (
	// errors
	ErrNotFound     = errors.New("user not found")
	ErrNotEnrolled  = errors.New("user is not enrolled in this class")
	ErrMemberExists = errors.New("user is already enrolled in this class")
	ErrEmailExists  = errors.New("a user with this email already exists")
)

// Repository is the user directory consumed by the classroom workflow: user
// lookups and class rosters. Full profile CRUD lives in a separate system.
type Repository interface {
	CreateUser(ctx context.Context, usr User, exec ...core.DBExecutor) (User, error)
	GetUserByID(ctx context.Context, id string, exec ...core.DBExecutor) (User, error)
	GetUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) ([]User, error)

	CreateMembership(ctx context.Context, m ClassMembership, exec ...core.DBExecutor) (ClassMembership, error)
	// GetMembership returns ErrNotEnrolled when the user has no membership in the class.
	GetMembership(ctx context.Context, userID, classID string, exec ...core.DBExecutor) (ClassMembership, error)
	// QueryClassMembers returns the class memberships holding any of the given
	// roles; all members when no role is given.
	QueryClassMembers(ctx context.Context, classID string, roles []string, exec ...core.DBExecutor) ([]ClassMembership, error)
	DeleteMembership(ctx context.Context, userID, classID string, exec ...core.DBExecutor) error
}
