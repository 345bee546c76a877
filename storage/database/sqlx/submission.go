package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/classroom"
)

type submissionRepository struct {
	exec core.DBExecutor
}

var _ classroom.SubmissionRepository = (*submissionRepository)(nil) // interface compliance check

func NewSubmissionRepository(exec core.DBExecutor) *submissionRepository {
	return &submissionRepository{exec: exec}
}

func (repo submissionRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo submissionRepository) CreateSubmission(ctx context.Context, s classroom.Submission, exec ...core.DBExecutor) (classroom.Submission, error) {
	s.ID = uuid.New().String()
	q := `INSERT INTO submission (id, assignment_id, user_id, status, created_at)
	      VALUES ($1, $2, $3, $4, $5)`
	_, err := repo.getExec(exec).ExecContext(ctx, q, s.ID, s.AssignmentID, s.UserID, s.Status, s.CreatedAt)
	if err != nil {
		return classroom.Submission{}, errors.Wrap(err, "inserting submission")
	}
	return s, nil
}

func (repo submissionRepository) GetSubmissionByID(ctx context.Context, id string, exec ...core.DBExecutor) (classroom.Submission, error) {
	var s classroom.Submission
	q := `SELECT * FROM submission WHERE id = $1`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &s, q, id); err != nil {
		return classroom.Submission{}, trapNoRowsErr(err, "getting submission")
	}
	return s, nil
}

func (repo submissionRepository) GetSubmission(ctx context.Context, assignmentID, userID string, exec ...core.DBExecutor) (classroom.Submission, error) {
	var s classroom.Submission
	q := `SELECT * FROM submission WHERE assignment_id = $1 AND user_id = $2`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &s, q, assignmentID, userID); err != nil {
		return classroom.Submission{}, trapNoRowsErr(err, "getting submission")
	}
	return s, nil
}

func (repo submissionRepository) SubmissionExists(ctx context.Context, assignmentID, userID string, exec ...core.DBExecutor) (bool, error) {
	var exists bool
	q := `SELECT EXISTS (SELECT 1 FROM submission WHERE assignment_id = $1 AND user_id = $2)`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &exists, q, assignmentID, userID); err != nil {
		return false, errors.Wrap(err, "checking submission existence")
	}
	return exists, nil
}

func (repo submissionRepository) QueryAssignmentSubmissions(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]classroom.Submission, error) {
	var subs []classroom.Submission
	q := `SELECT * FROM submission WHERE assignment_id = $1 ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, repo.getExec(exec), &subs, q, assignmentID); err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	return subs, nil
}

func (repo submissionRepository) UpdateSubmissionStatus(ctx context.Context, id, status string, exec ...core.DBExecutor) (classroom.Submission, error) {
	ex := repo.getExec(exec)
	res, err := ex.ExecContext(ctx, `UPDATE submission SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return classroom.Submission{}, errors.Wrap(err, "updating submission status")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return classroom.Submission{}, classroom.ErrNotFound
	}
	return repo.GetSubmissionByID(ctx, id, exec...)
}

func (repo submissionRepository) DeleteAssignmentSubmissions(ctx context.Context, assignmentID string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM submission WHERE assignment_id = $1`, assignmentID)
	return errors.Wrap(err, "deleting submissions")
}
