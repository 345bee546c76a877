package sqlxrepos

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/classroom"
)

type attachmentRepository struct {
	exec core.DBExecutor
}

var _ classroom.AttachmentRepository = (*attachmentRepository)(nil) // interface compliance check

func NewAttachmentRepository(exec core.DBExecutor) *attachmentRepository {
	return &attachmentRepository{exec: exec}
}

func (repo attachmentRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo attachmentRepository) CreateAttachment(ctx context.Context, att classroom.Attachment, exec ...core.DBExecutor) (classroom.Attachment, error) {
	att.ID = uuid.New().String()
	q := `INSERT INTO attachment (id, uploader_id, file_id, link_id, assignment_id, submission_id, announcement_id, created_at)
	      VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := repo.getExec(exec).ExecContext(ctx, q,
		att.ID, att.UploaderID, att.FileID, att.LinkID, att.AssignmentID, att.SubmissionID, att.AnnouncementID, att.CreatedAt)
	if err != nil {
		return classroom.Attachment{}, errors.Wrap(err, "inserting attachment")
	}
	return att, nil
}

func (repo attachmentRepository) QueryAssignmentAttachments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]classroom.Attachment, error) {
	var atts []classroom.Attachment
	q := `SELECT * FROM attachment WHERE assignment_id = $1 ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, repo.getExec(exec), &atts, q, assignmentID); err != nil {
		return nil, errors.Wrap(err, "querying assignment attachments")
	}
	return atts, nil
}

func (repo attachmentRepository) QuerySubmissionAttachments(ctx context.Context, submissionID string, exec ...core.DBExecutor) ([]classroom.Attachment, error) {
	var atts []classroom.Attachment
	q := `SELECT * FROM attachment WHERE submission_id = $1 ORDER BY created_at`
	if err := sqlx.SelectContext(ctx, repo.getExec(exec), &atts, q, submissionID); err != nil {
		return nil, errors.Wrap(err, "querying submission attachments")
	}
	return atts, nil
}

func (repo attachmentRepository) DeleteAssignmentAttachments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM attachment WHERE assignment_id = $1`, assignmentID)
	return errors.Wrap(err, "deleting assignment attachments")
}

func (repo attachmentRepository) DeleteSubmissionAttachments(ctx context.Context, submissionID string, exec ...core.DBExecutor) error {
	_, err := repo.getExec(exec).ExecContext(ctx, `DELETE FROM attachment WHERE submission_id = $1`, submissionID)
	return errors.Wrap(err, "deleting submission attachments")
}
