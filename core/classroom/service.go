package classroom

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

var (
	// errors
	ErrNotFound = stderrors.New("record not found")
)

type (
	AssignmentRepository interface {
		CreateAssignment(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error)
		// GetAssignmentByID returns ErrNotFound when no such assignment exists.
		GetAssignmentByID(ctx context.Context, id string, exec ...core.DBExecutor) (Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment, exec ...core.DBExecutor) (Assignment, error)
		DeleteAssignment(ctx context.Context, id string, exec ...core.DBExecutor) error
	}

	SubmissionRepository interface {
		CreateSubmission(ctx context.Context, s Submission, exec ...core.DBExecutor) (Submission, error)
		GetSubmissionByID(ctx context.Context, id string, exec ...core.DBExecutor) (Submission, error)
		// GetSubmission looks a submission up by its natural key.
		GetSubmission(ctx context.Context, assignmentID, userID string, exec ...core.DBExecutor) (Submission, error)
		SubmissionExists(ctx context.Context, assignmentID, userID string, exec ...core.DBExecutor) (bool, error)
		QueryAssignmentSubmissions(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]Submission, error)
		UpdateSubmissionStatus(ctx context.Context, id, status string, exec ...core.DBExecutor) (Submission, error)
		DeleteAssignmentSubmissions(ctx context.Context, assignmentID string, exec ...core.DBExecutor) error
	}

	AttachmentRepository interface {
		CreateAttachment(ctx context.Context, att Attachment, exec ...core.DBExecutor) (Attachment, error)
		QueryAssignmentAttachments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]Attachment, error)
		QuerySubmissionAttachments(ctx context.Context, submissionID string, exec ...core.DBExecutor) ([]Attachment, error)
		DeleteAssignmentAttachments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) error
		DeleteSubmissionAttachments(ctx context.Context, submissionID string, exec ...core.DBExecutor) error
	}

	CommentRepository interface {
		CreateComment(ctx context.Context, c Comment, exec ...core.DBExecutor) (Comment, error)
		CreatePrivateComment(ctx context.Context, c PrivateComment, exec ...core.DBExecutor) (PrivateComment, error)
		QueryAssignmentComments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) ([]Comment, error)
		QuerySubmissionComments(ctx context.Context, submissionID string, exec ...core.DBExecutor) ([]PrivateComment, error)
		DeleteAssignmentComments(ctx context.Context, assignmentID string, exec ...core.DBExecutor) error
		DeleteSubmissionComments(ctx context.Context, submissionID string, exec ...core.DBExecutor) error
	}

	// FileRepository resolves stored file metadata; rows are written by the
	// upload system, never here.
	FileRepository interface {
		GetFileByID(ctx context.Context, id string, exec ...core.DBExecutor) (UploadedFile, error)
	}

	LinkRepository interface {
		GetLinkByID(ctx context.Context, id string, exec ...core.DBExecutor) (Link, error)
	}

	Repositories struct {
		Assignment AssignmentRepository
		Submission SubmissionRepository
		Attachment AttachmentRepository
		Comment    CommentRepository
		File       FileRepository
		Link       LinkRepository
	}

	Service interface {
		Draft(ctx context.Context, classID, actorID string) (Assignment, error)
		Publish(ctx context.Context, classID, assignmentID, actorID string, up UpdateAssignment) (Assignment, error)
		Delete(ctx context.Context, classID, assignmentID, actorID string) error
		StudentView(ctx context.Context, classID, assignmentID, actorID string) (StudentAssignmentView, error)
		TeacherView(ctx context.Context, classID, assignmentID, actorID string) (TeacherAssignmentView, error)
		AddAttachment(ctx context.Context, classID, actorID string, na NewAttachment) (Attachment, error)
		AddComment(ctx context.Context, classID, assignmentID, actorID string, nc NewComment) (AuthoredComment, error)
		AddPrivateComment(ctx context.Context, classID, submissionID, actorID string, nc NewComment) (AuthoredComment, error)
		TurnIn(ctx context.Context, classID, submissionID, actorID string) (Submission, error)
	}

	service struct {
		db       core.DB
		repos    Repositories
		usrRepo  user.Repository
		mailSvc  core.EmailService
		logger   core.Logger
		validate *validator.Validate
		conf     *core.Config
	}
)

var _ Service = (*service)(nil)

func NewService(
	db core.DB,
	repos Repositories,
	usrRepo user.Repository,
	mailSvc core.EmailService,
	logger core.Logger,
	validate *validator.Validate,
	conf *core.Config,
) *service {
	return &service{
		db:       db,
		repos:    repos,
		usrRepo:  usrRepo,
		mailSvc:  mailSvc,
		logger:   logger,
		validate: validate,
		conf:     conf,
	}
}

// runInTx wraps fn in a transaction; a nil db (in-memory repositories) runs
// fn against the repositories' default handles.
func (svc *service) runInTx(ctx context.Context, fn func(exec core.DBExecutor) error) error {
	if svc.db == nil {
		return fn(nil)
	}
	return core.RunInTx(ctx, svc.db, fn)
}

// dbx turns a transaction handle into repository exec args; a nil handle
// falls back to the repository default.
func dbx(exec core.DBExecutor) []core.DBExecutor {
	if exec == nil {
		return nil
	}
	return []core.DBExecutor{exec}
}

// membership loads the actor's membership in the class; a missing membership
// is a permission error, not a lookup error.
func (svc *service) membership(ctx context.Context, actorID, classID string, exec ...core.DBExecutor) (user.ClassMembership, error) {
	m, err := svc.usrRepo.GetMembership(ctx, actorID, classID, exec...)
	if err != nil {
		if errors.Cause(err) == user.ErrNotEnrolled {
			return m, core.ErrForbidden
		}
		return m, errors.Wrap(err, "loading class membership")
	}
	return m, nil
}

// getClassAssignment loads an assignment and hides assignments of other
// classes behind ErrNotFound.
func (svc *service) getClassAssignment(ctx context.Context, classID, assignmentID string, exec ...core.DBExecutor) (Assignment, error) {
	a, err := svc.repos.Assignment.GetAssignmentByID(ctx, assignmentID, exec...)
	if err != nil {
		return Assignment{}, err
	}
	if a.ClassID != classID {
		return Assignment{}, ErrNotFound
	}
	return a, nil
}

// Draft creates an empty draft assignment in the class and returns it; only
// staff members may create drafts.
func (svc *service) Draft(ctx context.Context, classID, actorID string) (Assignment, error) {
	m, err := svc.membership(ctx, actorID, classID)
	if err != nil {
		return Assignment{}, err
	}
	if !canManageAssignments(m) {
		return Assignment{}, core.ErrForbidden
	}

	a := Assignment{
		ClassID:   classID,
		Draft:     true,
		CreatedAt: time.Now().UTC(),
	}
	a, err = svc.repos.Assignment.CreateAssignment(ctx, a)
	return a, errors.Wrap(err, "creating draft assignment")
}

// Publish updates the assignment's content, ensures one submission exists per
// enrolled student and notifies the roster by email. The roster resolution,
// fan-out and field update commit atomically; notification is dispatched
// after commit and never blocks or fails the call.
//
// Publish is idempotent with respect to the fan-out: re-publishing with an
// overlapping roster never duplicates submissions, and back-fills students
// enrolled since the previous publish.
func (svc *service) Publish(ctx context.Context, classID, assignmentID, actorID string, up UpdateAssignment) (Assignment, error) {
	m, err := svc.membership(ctx, actorID, classID)
	if err != nil {
		return Assignment{}, err
	}
	if !canManageAssignments(m) {
		return Assignment{}, core.ErrForbidden
	}
	if err = up.Validate(svc.validate); err != nil {
		return Assignment{}, err
	}

	var (
		updated    Assignment
		sender     user.User
		recipients []user.User
	)
	err = svc.runInTx(ctx, func(exec core.DBExecutor) error {
		a, err := svc.getClassAssignment(ctx, classID, assignmentID, dbx(exec)...)
		if err != nil {
			return err
		}

		roster, err := svc.usrRepo.QueryClassMembers(ctx, classID, []string{user.RoleStudent}, dbx(exec)...)
		if err != nil {
			return errors.Wrap(err, "loading class roster")
		}

		studentIDs := make([]string, 0, len(roster))
		for _, member := range roster {
			studentIDs = append(studentIDs, member.UserID)

			exists, err := svc.repos.Submission.SubmissionExists(ctx, a.ID, member.UserID, dbx(exec)...)
			if err != nil {
				return errors.Wrap(err, "checking submission existence")
			}
			if exists {
				continue
			}
			sub := Submission{
				AssignmentID: a.ID,
				UserID:       member.UserID,
				Status:       SubmissionStatusInProgress,
				CreatedAt:    time.Now().UTC(),
			}
			if _, err = svc.repos.Submission.CreateSubmission(ctx, sub, dbx(exec)...); err != nil {
				return errors.Wrap(err, "creating submission")
			}
		}

		if up.Name != "" {
			a.Name = null.StringFrom(up.Name)
		}
		if up.Instructions != "" {
			a.Instructions = null.StringFrom(up.Instructions)
		}
		if up.Draft != nil {
			a.Draft = *up.Draft
		}
		if !a.Creator.Valid {
			a.Creator = null.StringFrom(actorID)
		}
		if updated, err = svc.repos.Assignment.UpdateAssignment(ctx, a, dbx(exec)...); err != nil {
			return errors.Wrap(err, "updating assignment")
		}

		if sender, err = svc.usrRepo.GetUserByID(ctx, updated.Creator.String, dbx(exec)...); err != nil {
			return errors.Wrap(err, "loading assignment creator")
		}
		if recipients, err = svc.usrRepo.GetUsersByID(ctx, studentIDs, dbx(exec)...); err != nil {
			return errors.Wrap(err, "loading roster emails")
		}
		return nil
	})
	if err != nil {
		return Assignment{}, err
	}

	svc.notifyPublished(sender, recipients, updated)
	return updated, nil
}

// Delete removes the assignment and everything it owns: submissions with
// their private comments and attachments, public comments and
// assignment-level attachments, all in one transaction.
func (svc *service) Delete(ctx context.Context, classID, assignmentID, actorID string) error {
	m, err := svc.membership(ctx, actorID, classID)
	if err != nil {
		return err
	}

	a, err := svc.getClassAssignment(ctx, classID, assignmentID)
	if err != nil {
		return err
	}
	if err = checkDelete(svc.conf.AssignmentDeletePolicy, m, a); err != nil {
		return err
	}

	return svc.runInTx(ctx, func(exec core.DBExecutor) error {
		subs, err := svc.repos.Submission.QueryAssignmentSubmissions(ctx, a.ID, dbx(exec)...)
		if err != nil {
			return errors.Wrap(err, "loading submissions")
		}
		for _, sub := range subs {
			if err = svc.repos.Comment.DeleteSubmissionComments(ctx, sub.ID, dbx(exec)...); err != nil {
				return errors.Wrap(err, "deleting private comments")
			}
			if err = svc.repos.Attachment.DeleteSubmissionAttachments(ctx, sub.ID, dbx(exec)...); err != nil {
				return errors.Wrap(err, "deleting submission attachments")
			}
		}
		if err = svc.repos.Submission.DeleteAssignmentSubmissions(ctx, a.ID, dbx(exec)...); err != nil {
			return errors.Wrap(err, "deleting submissions")
		}
		if err = svc.repos.Comment.DeleteAssignmentComments(ctx, a.ID, dbx(exec)...); err != nil {
			return errors.Wrap(err, "deleting comments")
		}
		if err = svc.repos.Attachment.DeleteAssignmentAttachments(ctx, a.ID, dbx(exec)...); err != nil {
			return errors.Wrap(err, "deleting assignment attachments")
		}
		return errors.Wrap(svc.repos.Assignment.DeleteAssignment(ctx, a.ID, dbx(exec)...), "deleting assignment")
	})
}

// StudentView assembles the assignment as seen by an enrolled student: the
// assignment with its resolved attachments and public comments, plus the
// actor's own submission with its attachments and private comments.
func (svc *service) StudentView(ctx context.Context, classID, assignmentID, actorID string) (StudentAssignmentView, error) {
	var view StudentAssignmentView

	m, err := svc.membership(ctx, actorID, classID)
	if err != nil {
		return view, err
	}
	if !m.IsStudent() {
		return view, core.ErrForbidden
	}

	if view.Assignment, err = svc.getClassAssignment(ctx, classID, assignmentID); err != nil {
		return view, err
	}

	comments, err := svc.repos.Comment.QueryAssignmentComments(ctx, assignmentID)
	if err != nil {
		return view, errors.Wrap(err, "loading comments")
	}
	if view.Comments, err = svc.resolveComments(ctx, commenters(comments)); err != nil {
		return view, err
	}

	if view.Submission, err = svc.repos.Submission.GetSubmission(ctx, assignmentID, actorID); err != nil {
		return view, err
	}

	privComments, err := svc.repos.Comment.QuerySubmissionComments(ctx, view.Submission.ID)
	if err != nil {
		return view, errors.Wrap(err, "loading private comments")
	}
	if view.PrivateComments, err = svc.resolveComments(ctx, privateCommenters(privComments)); err != nil {
		return view, err
	}

	aAtts, err := svc.repos.Attachment.QueryAssignmentAttachments(ctx, assignmentID)
	if err != nil {
		return view, errors.Wrap(err, "loading assignment attachments")
	}
	if view.AssignmentAttachments, err = svc.resolveAttachments(ctx, aAtts); err != nil {
		return view, err
	}

	sAtts, err := svc.repos.Attachment.QuerySubmissionAttachments(ctx, view.Submission.ID)
	if err != nil {
		return view, errors.Wrap(err, "loading submission attachments")
	}
	if view.SubmissionAttachments, err = svc.resolveAttachments(ctx, sAtts); err != nil {
		return view, err
	}
	return view, nil
}

// TeacherView assembles the assignment as seen by class staff: the assignment
// with its resolved attachments and every submission with its own. An
// assignment with no submissions yet is not an error.
func (svc *service) TeacherView(ctx context.Context, classID, assignmentID, actorID string) (TeacherAssignmentView, error) {
	var view TeacherAssignmentView

	m, err := svc.membership(ctx, actorID, classID)
	if err != nil {
		return view, err
	}
	if m.IsStudent() {
		return view, core.ErrForbidden
	}

	if view.Assignment, err = svc.getClassAssignment(ctx, classID, assignmentID); err != nil {
		return view, err
	}

	subs, err := svc.repos.Submission.QueryAssignmentSubmissions(ctx, assignmentID)
	if err != nil {
		return view, errors.Wrap(err, "loading submissions")
	}
	view.Submissions = make([]SubmissionDetail, 0, len(subs))
	for _, sub := range subs {
		atts, err := svc.repos.Attachment.QuerySubmissionAttachments(ctx, sub.ID)
		if err != nil {
			return view, errors.Wrap(err, "loading submission attachments")
		}
		detail := SubmissionDetail{Submission: sub}
		if detail.Attachments, err = svc.resolveAttachments(ctx, atts); err != nil {
			return view, err
		}
		view.Submissions = append(view.Submissions, detail)
	}

	aAtts, err := svc.repos.Attachment.QueryAssignmentAttachments(ctx, assignmentID)
	if err != nil {
		return view, errors.Wrap(err, "loading assignment attachments")
	}
	if view.AssignmentAttachments, err = svc.resolveAttachments(ctx, aAtts); err != nil {
		return view, err
	}
	return view, nil
}

// AddAttachment attaches a file or link to its owner record. Assignment and
// announcement material is staff-only; submission material may only be added
// by the submitting student or staff.
func (svc *service) AddAttachment(ctx context.Context, classID, actorID string, na NewAttachment) (Attachment, error) {
	if err := na.Validate(); err != nil {
		return Attachment{}, err
	}

	m, err := svc.membership(ctx, actorID, classID)
	if err != nil {
		return Attachment{}, err
	}

	switch {
	case na.AssignmentID != "":
		if _, err = svc.getClassAssignment(ctx, classID, na.AssignmentID); err != nil {
			return Attachment{}, err
		}
		if !canManageAssignments(m) {
			return Attachment{}, core.ErrForbidden
		}
	case na.SubmissionID != "":
		sub, err := svc.repos.Submission.GetSubmissionByID(ctx, na.SubmissionID)
		if err != nil {
			return Attachment{}, err
		}
		if _, err = svc.getClassAssignment(ctx, classID, sub.AssignmentID); err != nil {
			return Attachment{}, err
		}
		if err = checkCommentOnSubmission(m, sub); err != nil {
			return Attachment{}, err
		}
	default: // announcement
		if !canManageAssignments(m) {
			return Attachment{}, core.ErrForbidden
		}
	}

	// referenced file/link must exist
	if na.FileID != "" {
		if _, err = svc.repos.File.GetFileByID(ctx, na.FileID); err != nil {
			return Attachment{}, err
		}
	}
	if na.LinkID != "" {
		if _, err = svc.repos.Link.GetLinkByID(ctx, na.LinkID); err != nil {
			return Attachment{}, err
		}
	}

	att := na.attachment(actorID)
	att.CreatedAt = time.Now().UTC()
	att, err = svc.repos.Attachment.CreateAttachment(ctx, att)
	return att, errors.Wrap(err, "creating attachment")
}

// AddComment posts a public comment on an assignment; any class member may.
func (svc *service) AddComment(ctx context.Context, classID, assignmentID, actorID string, nc NewComment) (AuthoredComment, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return AuthoredComment{}, err
	}
	if _, err := svc.membership(ctx, actorID, classID); err != nil {
		return AuthoredComment{}, err
	}
	if _, err := svc.getClassAssignment(ctx, classID, assignmentID); err != nil {
		return AuthoredComment{}, err
	}

	c := Comment{
		AssignmentID: assignmentID,
		UserID:       actorID,
		Body:         nc.Body,
		CreatedAt:    time.Now().UTC(),
	}
	c, err := svc.repos.Comment.CreateComment(ctx, c)
	if err != nil {
		return AuthoredComment{}, errors.Wrap(err, "creating comment")
	}
	return svc.resolveComment(ctx, c)
}

// AddPrivateComment posts a private comment on a submission; only the
// submitting student and class staff may.
func (svc *service) AddPrivateComment(ctx context.Context, classID, submissionID, actorID string, nc NewComment) (AuthoredComment, error) {
	if err := nc.Validate(svc.validate); err != nil {
		return AuthoredComment{}, err
	}
	m, err := svc.membership(ctx, actorID, classID)
	if err != nil {
		return AuthoredComment{}, err
	}

	sub, err := svc.repos.Submission.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return AuthoredComment{}, err
	}
	if _, err = svc.getClassAssignment(ctx, classID, sub.AssignmentID); err != nil {
		return AuthoredComment{}, err
	}
	if err = checkCommentOnSubmission(m, sub); err != nil {
		return AuthoredComment{}, err
	}

	c := PrivateComment{
		SubmissionID: submissionID,
		UserID:       actorID,
		Body:         nc.Body,
		CreatedAt:    time.Now().UTC(),
	}
	c, err = svc.repos.Comment.CreatePrivateComment(ctx, c)
	if err != nil {
		return AuthoredComment{}, errors.Wrap(err, "creating private comment")
	}
	return svc.resolveComment(ctx, c)
}

// TurnIn marks the actor's submission as turned in.
func (svc *service) TurnIn(ctx context.Context, classID, submissionID, actorID string) (Submission, error) {
	if _, err := svc.membership(ctx, actorID, classID); err != nil {
		return Submission{}, err
	}

	sub, err := svc.repos.Submission.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return Submission{}, err
	}
	if _, err = svc.getClassAssignment(ctx, classID, sub.AssignmentID); err != nil {
		return Submission{}, err
	}
	if sub.UserID != actorID {
		return Submission{}, core.ErrForbidden
	}

	sub, err = svc.repos.Submission.UpdateSubmissionStatus(ctx, sub.ID, SubmissionStatusTurnedIn)
	return sub, errors.Wrap(err, "updating submission status")
}

// Aggregation helpers

// resolveAttachments resolves each attachment's file and/or link reference
// into metadata; a reference is resolved iff it is set.
func (svc *service) resolveAttachments(ctx context.Context, atts []Attachment) ([]ResolvedAttachment, error) {
	res := make([]ResolvedAttachment, 0, len(atts))
	for _, att := range atts {
		r := ResolvedAttachment{Attachment: att}
		if att.FileID.Valid {
			f, err := svc.repos.File.GetFileByID(ctx, att.FileID.String)
			if err != nil {
				return nil, errors.Wrap(err, "resolving attached file")
			}
			r.File = &f
		}
		if att.LinkID.Valid {
			l, err := svc.repos.Link.GetLinkByID(ctx, att.LinkID.String)
			if err != nil {
				return nil, errors.Wrap(err, "resolving attached link")
			}
			r.Link = &l
		}
		res = append(res, r)
	}
	return res, nil
}

// resolveComments pairs each comment with its author's public summary; it
// only needs the Commenter capability, so both comment variants resolve
// through the same path.
func (svc *service) resolveComments(ctx context.Context, comments []Commenter) ([]AuthoredComment, error) {
	res := make([]AuthoredComment, 0, len(comments))
	for _, c := range comments {
		ac, err := svc.resolveComment(ctx, c)
		if err != nil {
			return nil, err
		}
		res = append(res, ac)
	}
	return res, nil
}

func (svc *service) resolveComment(ctx context.Context, c Commenter) (AuthoredComment, error) {
	usr, err := svc.usrRepo.GetUserByID(ctx, c.AuthorID())
	if err != nil {
		return AuthoredComment{}, errors.Wrap(err, "resolving comment author")
	}
	return AuthoredComment{Author: usr.Public(), Comment: c}, nil
}

func commenters(comments []Comment) []Commenter {
	res := make([]Commenter, 0, len(comments))
	for _, c := range comments {
		res = append(res, c)
	}
	return res
}

func privateCommenters(comments []PrivateComment) []Commenter {
	res := make([]Commenter, 0, len(comments))
	for _, c := range comments {
		res = append(res, c)
	}
	return res
}
