package classroom

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// Submission statuses.
const (
	SubmissionStatusInProgress = "in progress"
	SubmissionStatusTurnedIn   = "turned in"
)

// Assignment starts out as an empty draft; name, instructions and creator are
// only set on first publish.
type Assignment struct {
	ID           string      `json:"id" db:"id"`
	ClassID      string      `json:"class_id" db:"class_id"`
	Name         null.String `json:"name" db:"name"`
	Instructions null.String `json:"instructions" db:"instructions"`
	Draft        bool        `json:"draft" db:"draft"`
	Creator      null.String `json:"creator" db:"creator"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"` // UTC
}

func (a Assignment) IsCreator(userID string) bool {
	return a.Creator.Valid && a.Creator.String == userID
}

// Submission tracks one student's work on one assignment; exactly one row
// exists per (assignment, student) pair once the assignment is published.
type Submission struct {
	ID           string    `json:"id" db:"id"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

// UploadedFile is file metadata resolved from the file store.
type UploadedFile struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Path        string `json:"path" db:"path"`
	ContentType string `json:"content_type" db:"content_type"`
	Size        int64  `json:"size" db:"size"`
}

type Link struct {
	ID    string `json:"id" db:"id"`
	URL   string `json:"url" db:"url"`
	Title string `json:"title" db:"title"`
}

// Attachment binds a stored file or a link to exactly one owner record: an
// assignment, a submission or an announcement.
type Attachment struct {
	ID             string      `json:"id" db:"id"`
	UploaderID     string      `json:"uploader_id" db:"uploader_id"`
	FileID         null.String `json:"file_id" db:"file_id"`
	LinkID         null.String `json:"link_id" db:"link_id"`
	AssignmentID   null.String `json:"assignment_id" db:"assignment_id"`
	SubmissionID   null.String `json:"submission_id" db:"submission_id"`
	AnnouncementID null.String `json:"announcement_id" db:"announcement_id"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"` // UTC
}

// Comment is a public comment on an assignment, visible to the whole class.
type Comment struct {
	ID           string    `json:"id" db:"id"`
	AssignmentID string    `json:"assignment_id" db:"assignment_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Body         string    `json:"body" db:"body"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

func (c Comment) AuthorID() string { return c.UserID }

// PrivateComment is a comment on a submission, visible only to the submitting
// student and the class staff.
type PrivateComment struct {
	ID           string    `json:"id" db:"id"`
	SubmissionID string    `json:"submission_id" db:"submission_id"`
	UserID       string    `json:"user_id" db:"user_id"`
	Body         string    `json:"body" db:"body"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

func (c PrivateComment) AuthorID() string { return c.UserID }

// Commenter is the capability shared by all comment variants: exposing the
// author's user id so authors can be resolved uniformly.
type Commenter interface {
	AuthorID() string
}

var (
	_ Commenter = Comment{}
	_ Commenter = PrivateComment{}
)

// Inputs

// UpdateAssignment defines the fields a publish call may set on an assignment.
// Empty fields are left untouched (partial update).
type UpdateAssignment struct {
	Name         string `json:"name" validate:"omitempty,max=255"`
	Instructions string `json:"instructions" validate:"omitempty,max=10000"`
	Draft        *bool  `json:"draft"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	ua.Name = core.CleanString(ua.Name)
	ua.Instructions = strings.TrimSpace(ua.Instructions)

	if err := validate.Struct(ua); err != nil {
		return err
	}
	// an assignment cannot go live without a name
	if ua.Draft != nil && !*ua.Draft && ua.Name == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "name", Error: "a name is required to publish an assignment"})
	}
	return nil
}

// NewComment contains information needed to comment on an assignment or a submission.
type NewComment struct {
	Body string `json:"body" validate:"required,max=5000"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Body = strings.TrimSpace(nc.Body)
	return validate.Struct(nc)
}

// NewAttachment contains information needed to attach a file or a link to an
// owner record. Exactly one owner id must be set, and at most one of FileID
// and LinkID.
type NewAttachment struct {
	FileID         string `json:"file_id"`
	LinkID         string `json:"link_id"`
	AssignmentID   string `json:"assignment_id"`
	SubmissionID   string `json:"submission_id"`
	AnnouncementID string `json:"announcement_id"`
}

func (na NewAttachment) Validate() error {
	var owners int
	for _, ref := range []string{na.AssignmentID, na.SubmissionID, na.AnnouncementID} {
		if ref != "" {
			owners++
		}
	}
	if owners != 1 {
		return core.NewValidationError(nil, core.FieldError{
			Field: "owner",
			Error: "exactly one of assignment_id, submission_id or announcement_id is required",
		})
	}
	if na.FileID != "" && na.LinkID != "" {
		return core.NewValidationError(nil, core.FieldError{
			Field: "file_id",
			Error: "an attachment cannot reference both a file and a link",
		})
	}
	return nil
}

func (na NewAttachment) attachment(uploaderID string) Attachment {
	return Attachment{
		UploaderID:     uploaderID,
		FileID:         null.NewString(na.FileID, na.FileID != ""),
		LinkID:         null.NewString(na.LinkID, na.LinkID != ""),
		AssignmentID:   null.NewString(na.AssignmentID, na.AssignmentID != ""),
		SubmissionID:   null.NewString(na.SubmissionID, na.SubmissionID != ""),
		AnnouncementID: null.NewString(na.AnnouncementID, na.AnnouncementID != ""),
	}
}

// Read models

// ResolvedAttachment pairs an attachment with its file or link metadata;
// File is set iff the file reference is, Link iff the link reference is.
type ResolvedAttachment struct {
	Attachment Attachment    `json:"attachment"`
	File       *UploadedFile `json:"file,omitempty"`
	Link       *Link         `json:"link,omitempty"`
}

// AuthoredComment pairs any comment variant with its author's public summary.
type AuthoredComment struct {
	Author  user.PublicUser `json:"author"`
	Comment Commenter       `json:"comment"`
}

type StudentAssignmentView struct {
	Assignment            Assignment           `json:"assignment"`
	AssignmentAttachments []ResolvedAttachment `json:"assignment_attachments"`
	Comments              []AuthoredComment    `json:"comments"`
	Submission            Submission           `json:"submission"`
	SubmissionAttachments []ResolvedAttachment `json:"submission_attachments"`
	PrivateComments       []AuthoredComment    `json:"private_comments"`
}

type SubmissionDetail struct {
	Submission  Submission           `json:"submission"`
	Attachments []ResolvedAttachment `json:"attachments"`
}

type TeacherAssignmentView struct {
	Assignment            Assignment           `json:"assignment"`
	AssignmentAttachments []ResolvedAttachment `json:"assignment_attachments"`
	Submissions           []SubmissionDetail   `json:"submissions"`
}
