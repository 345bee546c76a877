package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type userRepository struct {
	exec core.DBExecutor
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(exec core.DBExecutor) *userRepository {
	return &userRepository{exec: exec}
}

func (repo userRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User, exec ...core.DBExecutor) (user.User, error) {
	usr.ID = uuid.New().String()
	q := `INSERT INTO "user" (id, name, username, email, profile_photo, is_active, password_hash, created_at, updated_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		usr.ID, usr.Name, usr.Username, usr.Email, usr.ProfilePhoto, usr.IsActive, usr.PasswordHash, usr.CreatedAt, usr.UpdatedAt)
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string, exec ...core.DBExecutor) (user.User, error) {
	var usr user.User
	q := `SELECT * FROM "user" WHERE id = $1`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &usr, q, id); err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user")
	}
	return usr, nil
}

func (repo userRepository) GetUsersByID(ctx context.Context, ids []string, exec ...core.DBExecutor) ([]user.User, error) {
	users := make([]user.User, 0, len(ids))
	if len(ids) == 0 {
		return users, nil
	}

	q, args, err := sqlx.In(`SELECT * FROM "user" WHERE id IN (?)`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "building users query")
	}
	ex := repo.getExec(exec)
	if err = sqlx.SelectContext(ctx, ex, &users, ex.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return users, nil
}

func (repo userRepository) CreateMembership(ctx context.Context, m user.ClassMembership, exec ...core.DBExecutor) (user.ClassMembership, error) {
	m.ID = uuid.New().String()
	q := `INSERT INTO class_membership (id, user_id, class_id, role, created_at)
	      VALUES ($1, $2, $3, $4, $5)`
	_, err := repo.getExec(exec).ExecContext(ctx, q, m.ID, m.UserID, m.ClassID, m.Role, m.CreatedAt)
	if err != nil {
		return user.ClassMembership{}, errors.Wrap(err, "inserting class membership")
	}
	return m, nil
}

func (repo userRepository) GetMembership(ctx context.Context, userID, classID string, exec ...core.DBExecutor) (user.ClassMembership, error) {
	var m user.ClassMembership
	q := `SELECT * FROM class_membership WHERE user_id = $1 AND class_id = $2`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &m, q, userID, classID); err != nil {
		if err == sql.ErrNoRows {
			return user.ClassMembership{}, user.ErrNotEnrolled
		}
		return user.ClassMembership{}, errors.Wrap(err, "getting class membership")
	}
	return m, nil
}

func (repo userRepository) QueryClassMembers(ctx context.Context, classID string, roles []string, exec ...core.DBExecutor) ([]user.ClassMembership, error) {
	var members []user.ClassMembership
	ex := repo.getExec(exec)

	if len(roles) == 0 {
		q := `SELECT * FROM class_membership WHERE class_id = $1 ORDER BY created_at`
		if err := sqlx.SelectContext(ctx, ex, &members, q, classID); err != nil {
			return nil, errors.Wrap(err, "querying class members")
		}
		return members, nil
	}

	q, args, err := sqlx.In(`SELECT * FROM class_membership WHERE class_id = ? AND role IN (?) ORDER BY created_at`, classID, roles)
	if err != nil {
		return nil, errors.Wrap(err, "building class members query")
	}
	if err = sqlx.SelectContext(ctx, ex, &members, ex.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying class members")
	}
	return members, nil
}

func (repo userRepository) DeleteMembership(ctx context.Context, userID, classID string, exec ...core.DBExecutor) error {
	q := `DELETE FROM class_membership WHERE user_id = $1 AND class_id = $2`
	_, err := repo.getExec(exec).ExecContext(ctx, q, userID, classID)
	return errors.Wrap(err, "deleting class membership")
}
