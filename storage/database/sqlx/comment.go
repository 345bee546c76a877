package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/classroom"
)

type commentRepository struct {
	exec core.DBExecutor
}

var _ classroom.CommentRepository = (*commentRepository)(nil) // interface compliance check

func NewCommentRepository(exec core.DBExecutor) *commentRepository {
	return &commentRepository{exec: exec}
}

func (repo commentRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo commentRepository) CreateComment(ctx context.Context, c classroom.Comment, exec ...core.DBExecutor) (classroom.Comment, error) {
	c.ID = uuid.New().String()
	q := `INSERT INTO comment (id, assignment_id, user_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := repo.getExec(exec).ExecContext(ctx, q, c.ID, c.AssignmentID, c.UserID, c.Body, c.CreatedAt)
	if err != nil {
		return classroom.Comment{}, errors.Wrap(err, "inserting comment")
	}
	return c, nil
}

func (repo commentRepository) CreatePrivateComment(ctx context.Context, c classroom.PrivateComment, exec ...core.DBExecutor) (classroom.PrivateComment, error) {
	c.ID = uuid.New().String()
	q := `INSERT INTO private_comment (id, submission_id, user_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := repo.getExec(exec).ExecContext(ctx, q, c.ID, c.SubmissionID, c.UserID, c.Body, c.CreatedAt)
	if err != nil {
		return classroom.PrivateComment{}, errors.Wrap(err, "inserting private comment")
	}
	return c, nil
}

func (repo commentRepository) QueryAssignmentComments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]classroom.Comment, error) {
	var comments []classroom.Comment
	q := `SELECT * FROM comment WHERE assignment_id = $1 ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, repo.getExec(exec), &comments, q, assignmentID); err != nil {
		return nil, errors.Wrap(err, "querying comments")
	}
	return comments, nil
}

func (repo commentRepository) QuerySubmissionComments(ctx context.Context, submissionID string, exec ...core.DBExecutor) ([]classroom.PrivateComment, error) {
	var comments []classroom.PrivateComment
	q := `SELECT * FROM private_comment WHERE submission_id = $1 ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, repo.getExec(exec), &comments, q, submissionID); err != nil {
		return nil, errors.Wrap(err, "querying private comments")
	}
	return comments, nil
}

func (repo commentRepository) DeleteAssignmentComments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM comment WHERE assignment_id = $1`, assignmentID)
	return errors.Wrap(err, "deleting comments")
}

func (repo commentRepository) DeleteSubmissionComments(ctx context.Context, submissionID string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM private_comment WHERE submission_id = $1`, submissionID)
	return errors.Wrap(err, "deleting private comments")
}
