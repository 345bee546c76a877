package dummydb

import (
	"sync"

	"github.com/trezcool/darasa/core/classroom"
	"github.com/trezcool/darasa/core/user"
)

type (
	DB struct {
		user           *userTable
		membership     *membershipTable
		assignment     *assignmentTable
		submission     *submissionTable
		attachment     *attachmentTable
		comment        *commentTable
		privateComment *privateCommentTable
		file           *fileTable
		link           *linkTable
	}

	userTable struct {
		sync.RWMutex
		table map[string]*user.User
	}

	membershipTable struct {
		sync.RWMutex
		table map[string]*user.ClassMembership
	}

	assignmentTable struct {
		sync.RWMutex
		table map[string]*classroom.Assignment
	}

	submissionTable struct {
		sync.RWMutex
		table map[string]*classroom.Submission
	}

	attachmentTable struct {
		sync.RWMutex
		table map[string]*classroom.Attachment
	}

	commentTable struct {
		sync.RWMutex
		table map[string]*classroom.Comment
	}

	privateCommentTable struct {
		sync.RWMutex
		table map[string]*classroom.PrivateComment
	}

	fileTable struct {
		sync.RWMutex
		table map[string]*classroom.UploadedFile
	}

	linkTable struct {
		sync.RWMutex
		table map[string]*classroom.Link
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:           &userTable{table: make(map[string]*user.User)},
		membership:     &membershipTable{table: make(map[string]*user.ClassMembership)},
		assignment:     &assignmentTable{table: make(map[string]*classroom.Assignment)},
		submission:     &submissionTable{table: make(map[string]*classroom.Submission)},
		attachment:     &attachmentTable{table: make(map[string]*classroom.Attachment)},
		comment:        &commentTable{table: make(map[string]*classroom.Comment)},
		privateComment: &privateCommentTable{table: make(map[string]*classroom.PrivateComment)},
		file:           &fileTable{table: make(map[string]*classroom.UploadedFile)},
		link:           &linkTable{table: make(map[string]*classroom.Link)},
	}
	return db, nil
}

// AddFile seeds file metadata; the classroom repositories only ever read it.
func (db *DB) AddFile(f classroom.UploadedFile) {
	db.file.Lock()
	defer db.file.Unlock()
	db.file.table[f.ID] = &f
}

// AddLink seeds link metadata; the classroom repositories only ever read it.
func (db *DB) AddLink(l classroom.Link) {
	db.link.Lock()
	defer db.link.Unlock()
	db.link.table[l.ID] = &l
}
