package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/classroom"
)

type assignmentRepository struct {
	exec core.DBExecutor
}

var _ classroom.AssignmentRepository = (*assignmentRepository)(nil) // interface compliance check

func NewAssignmentRepository(exec core.DBExecutor) *assignmentRepository {
	return &assignmentRepository{exec: exec}
}

func (repo assignmentRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

// trapNoRowsErr maps psql "no rows" err to classroom.ErrNotFound
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return classroom.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo assignmentRepository) CreateAssignment(ctx context.Context, a classroom.Assignment, exec ...core.DBExecutor) (classroom.Assignment, error) {
	a.ID = uuid.New().String()
	q := `INSERT INTO assignment (id, class_id, name, instructions, draft, creator, created_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		a.ID, a.ClassID, a.Name, a.Instructions, a.Draft, a.Creator, a.CreatedAt)
	if err != nil {
		return classroom.Assignment{}, errors.Wrap(err, "inserting assignment")
	}
	return a, nil
}

func (repo assignmentRepository) GetAssignmentByID(ctx context.Context, id string, exec ...core.DBExecutor) (classroom.Assignment, error) {
	var a classroom.Assignment
	q := `SELECT * FROM assignment WHERE id = $1`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &a, q, id); err != nil {
		return classroom.Assignment{}, trapNoRowsErr(err, "getting assignment")
	}
	return a, nil
}

func (repo assignmentRepository) UpdateAssignment(ctx context.Context, a classroom.Assignment, exec ...core.DBExecutor) (classroom.Assignment, error) {
	q := `UPDATE assignment SET name = $2, instructions = $3, draft = $4, creator = $5 WHERE id = $1`
	ex := repo.getExec(exec)
	res, err := ex.ExecContext(ctx, q, a.ID, a.Name, a.Instructions, a.Draft, a.Creator)
	if err != nil {
		return classroom.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return classroom.Assignment{}, classroom.ErrNotFound
	}

	// re-load the updated row
	var updated classroom.Assignment
	if err = sqlx.GetContext(ctx, ex, &updated, `SELECT * FROM assignment WHERE id = $1`, a.ID); err != nil {
		return classroom.Assignment{}, trapNoRowsErr(err, "reloading assignment")
	}
	return updated, nil
}

func (repo assignmentRepository) DeleteAssignment(ctx context.Context, id string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM assignment WHERE id = $1`, id)
	return errors.Wrap(err, "deleting assignment")
}
