package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/classroom"
)

// File and link rows are written by the upload system; these repositories
// only resolve them.

type fileRepository struct {
	exec core.DBExecutor
}

var _ classroom.FileRepository = (*fileRepository)(nil) // interface compliance check

func NewFileRepository(exec core.DBExecutor) *fileRepository {
	return &fileRepository{exec: exec}
}

func (repo fileRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo fileRepository) GetFileByID(ctx context.Context, id string, exec ...core.DBExecutor) (classroom.UploadedFile, error) {
	var f classroom.UploadedFile
	q := `SELECT * FROM uploaded_file WHERE id = $1`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &f, q, id); err != nil {
		return classroom.UploadedFile{}, trapNoRowsErr(err, "getting uploaded file")
	}
	return f, nil
}

type linkRepository struct {
	exec core.DBExecutor
}

var _ classroom.LinkRepository = (*linkRepository)(nil) // interface compliance check

func NewLinkRepository(exec core.DBExecutor) *linkRepository {
	return &linkRepository{exec: exec}
}

func (repo linkRepository) getExec(svcExec []core.DBExecutor) core.DBExecutor {
	if len(svcExec) > 0 {
		return svcExec[0]
	}
	return repo.exec
}

func (repo linkRepository) GetLinkByID(ctx context.Context, id string, exec ...core.DBExecutor) (classroom.Link, error) {
	var l classroom.Link
	q := `SELECT * FROM link WHERE id = $1`
	if err := sqlx.GetContext(ctx, repo.getExec(exec), &l, q, id); err != nil {
		return classroom.Link{}, trapNoRowsErr(err, "getting link")
	}
	return l, nil
}
