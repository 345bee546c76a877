package main

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
	dummydb "github.com/trezcool/darasa/storage/database/dummy"
	testutil "github.com/trezcool/darasa/tests"
)

var usrRepo user.Repository

func setup(t *testing.T) *commandLine {
	t.Helper()
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags)

	db, err := dummydb.Open()
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}
	usrRepo = dummydb.NewUserRepository(db)

	validate := validator.New()
	core.InitValidators(validate, newTranslator())

	// start CLI
	return &commandLine{
		usrRepo:  usrRepo,
		validate: validate,
	}
}

type cliTest struct {
	name    string
	args    []string // without program name
	pwd     string
	wantErr error
}

func Test_commandLine_addUser(t *testing.T) {
	cli := setup(t)

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "no args", args: []string{"adduser"}, wantErr: errHelp},
		{name: "username but no password", args: []string{"adduser", "-username", "awesome", "-email", "awe@test.cd"}, wantErr: errHelp},
		{name: "create", args: []string{"adduser", "-name", "User", "-username", "awesome", "-email", "awe@test.cd"}, pwd: "mdr"},
		{name: "duplicate email", args: []string{"adduser", "-name", "User", "-username", "awesome2", "-email", "awe@test.cd"}, pwd: "mdr", wantErr: user.ErrEmailExists},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		readPasswordFunc = func(fd int) ([]byte, error) {
			return []byte(tt.pwd), nil
		}

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_commandLine_addUser_validatesInput(t *testing.T) {
	cli := setup(t)

	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte("mdr"), nil
	}

	tests := []cliTest{
		{name: "username too short", args: []string{"adduser", "-name", "User", "-username", "awe", "-email", "awe@test.cd"}},
		{name: "username with punctuation", args: []string{"adduser", "-name", "User", "-username", "awe-some!", "-email", "awe@test.cd"}},
		{name: "bad email", args: []string{"adduser", "-name", "User", "-username", "awesome", "-email", "nope"}},
		{name: "no name", args: []string{"adduser", "-username", "awesome", "-email", "awe@test.cd"}},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(args)
			if _, ok := err.(validator.ValidationErrors); !ok {
				t.Errorf("cli.run() error = %v; want validator.ValidationErrors", err)
			}
		})
	}
}

func Test_commandLine_enroll(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.cd", "mdr", true)

	tests := []cliTest{
		{name: "no args", args: []string{"enroll"}, wantErr: errHelp},
		{name: "user only", args: []string{"enroll", "-user", usr.ID}, wantErr: errHelp},
		{name: "unknown user", args: []string{"enroll", "-user", "nope", "-class", "c1"}, wantErr: user.ErrNotFound},
		{name: "default role", args: []string{"enroll", "-user", usr.ID, "-class", "c1"}},
		{name: "teacher role", args: []string{"enroll", "-user", usr.ID, "-class", "c2", "-role", "teacher"}},
		{name: "already enrolled", args: []string{"enroll", "-user", usr.ID, "-class", "c1"}, wantErr: user.ErrMemberExists},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	// memberships exist with the requested roles
	for classID, role := range map[string]string{"c1": user.RoleStudent, "c2": user.RoleTeacher} {
		m, err := usrRepo.GetMembership(context.Background(), usr.ID, classID)
		if err != nil {
			t.Fatalf("GetMembership() failed: %v", err)
		}
		if m.Role != role {
			t.Errorf("membership role = %q; want %q", m.Role, role)
		}
	}
}

func Test_commandLine_enroll_rejectsUnknownRole(t *testing.T) {
	cli := setup(t)
	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.cd", "mdr", true)

	err := cli.run([]string{"admin", "enroll", "-user", usr.ID, "-class", "c1", "-role", "janitor"})
	if err == nil {
		t.Error("cli.run() = nil; want error for unknown role")
	}
}

func Test_commandLine_unenroll(t *testing.T) {
	cli := setup(t)

	usr := testutil.CreateUser(t, usrRepo, "User", "awe", "awe@test.cd", "mdr", true)
	testutil.Enroll(t, usrRepo, usr, "c1", user.RoleStudent)

	tests := []cliTest{
		{name: "no args", args: []string{"unenroll"}, wantErr: errHelp},
		{name: "user only", args: []string{"unenroll", "-user", usr.ID}, wantErr: errHelp},
		{name: "not enrolled", args: []string{"unenroll", "-user", usr.ID, "-class", "c2"}, wantErr: user.ErrNotEnrolled},
		{name: "unenroll", args: []string{"unenroll", "-user", usr.ID, "-class", "c1"}},
		{name: "already removed", args: []string{"unenroll", "-user", usr.ID, "-class", "c1"}, wantErr: user.ErrNotEnrolled},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			if err := cli.run(args); err != tt.wantErr {
				t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if _, err := usrRepo.GetMembership(context.Background(), usr.ID, "c1"); err != user.ErrNotEnrolled {
		t.Errorf("GetMembership() error = %v; want %v", err, user.ErrNotEnrolled)
	}
}
