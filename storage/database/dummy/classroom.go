package dummydb

import (
	"context"

	"github.com/google/uuid"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/classroom"
)

// NewClassroomRepositories wires every classroom repository onto the same DB.
func NewClassroomRepositories(db *DB) classroom.Repositories {
	return classroom.Repositories{
		Assignment: &assignmentRepository{assignments: db.assignment},
		Submission: &submissionRepository{submissions: db.submission},
		Attachment: &attachmentRepository{attachments: db.attachment},
		Comment:    &commentRepository{comments: db.comment, privateComments: db.privateComment},
		File:       &fileRepository{files: db.file},
		Link:       &linkRepository{links: db.link},
	}
}

// assignments

type assignmentRepository struct {
	assignments *assignmentTable
}

var _ classroom.AssignmentRepository = (*assignmentRepository)(nil) // interface compliance check

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a classroom.Assignment, _ ...core.DBExecutor) (classroom.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	a.ID = uuid.New().String()
	repo.assignments.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id string, _ ...core.DBExecutor) (classroom.Assignment, error) {
	repo.assignments.RLock()
	defer repo.assignments.RUnlock()

	if a, ok := repo.assignments.table[id]; ok {
		return *a, nil
	}
	return classroom.Assignment{}, classroom.ErrNotFound
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a classroom.Assignment, _ ...core.DBExecutor) (classroom.Assignment, error) {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()

	orig, ok := repo.assignments.table[a.ID]
	if !ok {
		return classroom.Assignment{}, classroom.ErrNotFound
	}
	orig.Name = a.Name
	orig.Instructions = a.Instructions
	orig.Draft = a.Draft
	orig.Creator = a.Creator
	return *orig, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id string, _ ...core.DBExecutor) error {
	repo.assignments.Lock()
	defer repo.assignments.Unlock()
	delete(repo.assignments.table, id)
	return nil
}

// submissions

type submissionRepository struct {
	submissions *submissionTable
}

var _ classroom.SubmissionRepository = (*submissionRepository)(nil) // interface compliance check

func (repo *submissionRepository) CreateSubmission(ctx context.Context, s classroom.Submission, _ ...core.DBExecutor) (classroom.Submission, error) {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	s.ID = uuid.New().String()
	repo.submissions.table[s.ID] = &s
	return s, nil
}

func (repo *submissionRepository) GetSubmissionByID(ctx context.Context, id string, _ ...core.DBExecutor) (classroom.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	if s, ok := repo.submissions.table[id]; ok {
		return *s, nil
	}
	return classroom.Submission{}, classroom.ErrNotFound
}

func (repo *submissionRepository) GetSubmission(ctx context.Context, assignmentID, userID string, _ ...core.DBExecutor) (classroom.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	for _, s := range repo.submissions.table {
		if s.AssignmentID == assignmentID && s.UserID == userID {
			return *s, nil
		}
	}
	return classroom.Submission{}, classroom.ErrNotFound
}

func (repo *submissionRepository) SubmissionExists(ctx context.Context, assignmentID, userID string, _ ...core.DBExecutor) (bool, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	for _, s := range repo.submissions.table {
		if s.AssignmentID == assignmentID && s.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (repo *submissionRepository) QueryAssignmentSubmissions(ctx context.Context, assignmentID string, _ ...core.DBExecutor) ([]classroom.Submission, error) {
	repo.submissions.RLock()
	defer repo.submissions.RUnlock()

	var subs []classroom.Submission
	for _, s := range repo.submissions.table {
		if s.AssignmentID == assignmentID {
			subs = append(subs, *s)
		}
	}
	return subs, nil
}

func (repo *submissionRepository) UpdateSubmissionStatus(ctx context.Context, id, status string, _ ...core.DBExecutor) (classroom.Submission, error) {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	s, ok := repo.submissions.table[id]
	if !ok {
		return classroom.Submission{}, classroom.ErrNotFound
	}
	s.Status = status
	return *s, nil
}

func (repo *submissionRepository) DeleteAssignmentSubmissions(ctx context.Context, assignmentID string, _ ...core.DBExecutor) error {
	repo.submissions.Lock()
	defer repo.submissions.Unlock()

	for id, s := range repo.submissions.table {
		if s.AssignmentID == assignmentID {
			delete(repo.submissions.table, id)
		}
	}
	return nil
}

// attachments

type attachmentRepository struct {
	attachments *attachmentTable
}

var _ classroom.AttachmentRepository = (*attachmentRepository)(nil) // interface compliance check

func (repo *attachmentRepository) CreateAttachment(ctx context.Context, att classroom.Attachment, _ ...core.DBExecutor) (classroom.Attachment, error) {
	repo.attachments.Lock()
	defer repo.attachments.Unlock()

	att.ID = uuid.New().String()
	repo.attachments.table[att.ID] = &att
	return att, nil
}

func (repo *attachmentRepository) QueryAssignmentAttachments(ctx context.Context, assignmentID string, _ ...core.DBExecutor) ([]classroom.Attachment, error) {
	repo.attachments.RLock()
	defer repo.attachments.RUnlock()

	var atts []classroom.Attachment
	for _, att := range repo.attachments.table {
		if att.AssignmentID.Valid && att.AssignmentID.String == assignmentID {
			atts = append(atts, *att)
		}
	}
	return atts, nil
}

func (repo *attachmentRepository) QuerySubmissionAttachments(ctx context.Context, submissionID string, _ ...core.DBExecutor) ([]classroom.Attachment, error) {
	repo.attachments.RLock()
	defer repo.attachments.RUnlock()

	var atts []classroom.Attachment
	for _, att := range repo.attachments.table {
		if att.SubmissionID.Valid && att.SubmissionID.String == submissionID {
			atts = append(atts, *att)
		}
	}
	return atts, nil
}

func (repo *attachmentRepository) DeleteAssignmentAttachments(ctx context.Context, assignmentID string, _ ...core.DBExecutor) error {
	repo.attachments.Lock()
	defer repo.attachments.Unlock()

	for id, att := range repo.attachments.table {
		if att.AssignmentID.Valid && att.AssignmentID.String == assignmentID {
			delete(repo.attachments.table, id)
		}
	}
	return nil
}

func (repo *attachmentRepository) DeleteSubmissionAttachments(ctx context.Context, submissionID string, _ ...core.DBExecutor) error {
	repo.attachments.Lock()
	defer repo.attachments.Unlock()

	for id, att := range repo.attachments.table {
		if att.SubmissionID.Valid && att.SubmissionID.String == submissionID {
			delete(repo.attachments.table, id)
		}
	}
	return nil
}

// comments

type commentRepository struct {
	comments        *commentTable
	privateComments *privateCommentTable
}

var _ classroom.CommentRepository = (*commentRepository)(nil) // interface compliance check

func (repo *commentRepository) CreateComment(ctx context.Context, c classroom.Comment, _ ...core.DBExecutor) (classroom.Comment, error) {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	c.ID = uuid.New().String()
	repo.comments.table[c.ID] = &c
	return c, nil
}

func (repo *commentRepository) CreatePrivateComment(ctx context.Context, c classroom.PrivateComment, _ ...core.DBExecutor) (classroom.PrivateComment, error) {
	repo.privateComments.Lock()
	defer repo.privateComments.Unlock()

	c.ID = uuid.New().String()
	repo.privateComments.table[c.ID] = &c
	return c, nil
}

func (repo *commentRepository) QueryAssignmentComments(ctx context.Context, assignmentID string, _ ...core.DBExecutor) ([]classroom.Comment, error) {
	repo.comments.RLock()
	defer repo.comments.RUnlock()

	var comments []classroom.Comment
	for _, c := range repo.comments.table {
		if c.AssignmentID == assignmentID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (repo *commentRepository) QuerySubmissionComments(ctx context.Context, submissionID string, _ ...core.DBExecutor) ([]classroom.PrivateComment, error) {
	repo.privateComments.RLock()
	defer repo.privateComments.RUnlock()

	var comments []classroom.PrivateComment
	for _, c := range repo.privateComments.table {
		if c.SubmissionID == submissionID {
			comments = append(comments, *c)
		}
	}
	return comments, nil
}

func (repo *commentRepository) DeleteAssignmentComments(ctx context.Context, assignmentID string, _ ...core.DBExecutor) error {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	for id, c := range repo.comments.table {
		if c.AssignmentID == assignmentID {
			delete(repo.comments.table, id)
		}
	}
	return nil
}

func (repo *commentRepository) DeleteSubmissionComments(ctx context.Context, submissionID string, _ ...core.DBExecutor) error {
	repo.privateComments.Lock()
	defer repo.privateComments.Unlock()

	for id, c := range repo.privateComments.table {
		if c.SubmissionID == submissionID {
			delete(repo.privateComments.table, id)
		}
	}
	return nil
}

// files & links

type fileRepository struct {
	files *fileTable
}

var _ classroom.FileRepository = (*fileRepository)(nil) // interface compliance check

func (repo *fileRepository) GetFileByID(ctx context.Context, id string, _ ...core.DBExecutor) (classroom.UploadedFile, error) {
	repo.files.RLock()
	defer repo.files.RUnlock()

	if f, ok := repo.files.table[id]; ok {
		return *f, nil
	}
	return classroom.UploadedFile{}, classroom.ErrNotFound
}

type linkRepository struct {
	links *linkTable
}

var _ classroom.LinkRepository = (*linkRepository)(nil) // interface compliance check

func (repo *linkRepository) GetLinkByID(ctx context.Context, id string, _ ...core.DBExecutor) (classroom.Link, error) {
	repo.links.RLock()
	defer repo.links.RUnlock()

	if l, ok := repo.links.table[id]; ok {
		return *l, nil
	}
	return classroom.Link{}, classroom.ErrNotFound
}
