package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type userRepository struct {
	users       *userTable
	memberships *membershipTable
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{users: db.user, memberships: db.membership}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User, _ ...core.DBExecutor) (user.User, error) {
	repo.users.Lock()
	defer repo.users.Unlock()

	for _, u := range repo.users.table {
		if u.Email == usr.Email {
			return user.User{}, user.ErrEmailExists
		}
	}
	usr.ID = uuid.New().String()
	repo.users.table[usr.ID] = &usr
	return usr, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string, _ ...core.DBExecutor) (user.User, error) {
	repo.users.RLock()
	defer repo.users.RUnlock()

	if usr, ok := repo.users.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) GetUsersByID(ctx context.Context, ids []string, _ ...core.DBExecutor) ([]user.User, error) {
	repo.users.RLock()
	defer repo.users.RUnlock()

	users := make([]user.User, 0, len(ids))
	for _, id := range ids {
		if usr, ok := repo.users.table[id]; ok {
			users = append(users, *usr)
		}
	}
	return users, nil
}

func (repo *userRepository) CreateMembership(ctx context.Context, m user.ClassMembership, _ ...core.DBExecutor) (user.ClassMembership, error) {
	repo.memberships.Lock()
	defer repo.memberships.Unlock()

	for _, mbr := range repo.memberships.table {
		if mbr.UserID == m.UserID && mbr.ClassID == m.ClassID {
			return user.ClassMembership{}, user.ErrMemberExists
		}
	}
	m.ID = uuid.New().String()
	repo.memberships.table[m.ID] = &m
	return m, nil
}

func (repo *userRepository) GetMembership(ctx context.Context, userID, classID string, _ ...core.DBExecutor) (user.ClassMembership, error) {
	repo.memberships.RLock()
	defer repo.memberships.RUnlock()

	for _, m := range repo.memberships.table {
		if m.UserID == userID && m.ClassID == classID {
			return *m, nil
		}
	}
	return user.ClassMembership{}, user.ErrNotEnrolled
}

func (repo *userRepository) QueryClassMembers(ctx context.Context, classID string, roles []string, _ ...core.DBExecutor) ([]user.ClassMembership, error) {
	repo.memberships.RLock()
	defer repo.memberships.RUnlock()

	var members []user.ClassMembership
	for _, m := range repo.memberships.table {
		if m.ClassID != classID {
			continue
		}
		if len(roles) > 0 && !containsRole(roles, m.Role) {
			continue
		}
		members = append(members, *m)
	}
	return members, nil
}

func (repo *userRepository) DeleteMembership(ctx context.Context, userID, classID string, _ ...core.DBExecutor) error {
	repo.memberships.Lock()
	defer repo.memberships.Unlock()

	for id, m := range repo.memberships.table {
		if m.UserID == userID && m.ClassID == classID {
			delete(repo.memberships.table, id)
			return nil
		}
	}
	return nil
}

func containsRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
