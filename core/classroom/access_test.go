package classroom

import (
	"testing"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

func Test_checkDelete(t *testing.T) {
	member := func(role string) user.ClassMembership {
		return user.ClassMembership{UserID: "u1", ClassID: "c1", Role: role}
	}
	published := func(creatorID string) Assignment {
		return Assignment{ID: "a1", ClassID: "c1", Name: null.StringFrom("Essay 1"), Creator: null.StringFrom(creatorID)}
	}
	draft := Assignment{ID: "a1", ClassID: "c1", Draft: true}

	tests := []struct {
		name      string
		policy    string
		m         user.ClassMembership
		a         Assignment
		forbidden bool
	}{
		{name: "student always rejected", policy: core.DeletePolicyDenyNonCreator, m: member(user.RoleStudent), a: draft, forbidden: true},
		{name: "teacher deletes draft", policy: core.DeletePolicyDenyNonCreator, m: member(user.RoleTeacher), a: draft},
		{name: "admin deletes any published", policy: core.DeletePolicyDenyNonCreator, m: member(user.RoleAdmin), a: published("other")},

		// deny_non_creator (default): only the creator may delete
		{name: "creator allowed", policy: core.DeletePolicyDenyNonCreator, m: member(user.RoleTeacher), a: published("u1")},
		{name: "non-creator rejected", policy: core.DeletePolicyDenyNonCreator, m: member(user.RoleTeacher), a: published("other"), forbidden: true},

		// deny_creator (legacy): the creator may not delete their own work
		{name: "legacy creator rejected", policy: core.DeletePolicyDenyCreator, m: member(user.RoleTeacher), a: published("u1"), forbidden: true},
		{name: "legacy non-creator allowed", policy: core.DeletePolicyDenyCreator, m: member(user.RoleTeacher), a: published("other")},
		{name: "legacy admin bypass", policy: core.DeletePolicyDenyCreator, m: member(user.RoleAdmin), a: published("u1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkDelete(tt.policy, tt.m, tt.a)
			if tt.forbidden {
				if err != core.ErrForbidden {
					t.Errorf("checkDelete() = %v; want ErrForbidden", err)
				}
				return
			}
			if err != nil {
				t.Errorf("checkDelete() failed: %v", err)
			}
		})
	}
}

func Test_checkCommentOnSubmission(t *testing.T) {
	sub := Submission{ID: "s1", AssignmentID: "a1", UserID: "owner"}

	tests := []struct {
		name      string
		m         user.ClassMembership
		forbidden bool
	}{
		{name: "submitting student", m: user.ClassMembership{UserID: "owner", Role: user.RoleStudent}},
		{name: "other student", m: user.ClassMembership{UserID: "u2", Role: user.RoleStudent}, forbidden: true},
		{name: "teacher", m: user.ClassMembership{UserID: "u3", Role: user.RoleTeacher}},
		{name: "admin", m: user.ClassMembership{UserID: "u4", Role: user.RoleAdmin}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCommentOnSubmission(tt.m, sub)
			if tt.forbidden {
				if err != core.ErrForbidden {
					t.Errorf("checkCommentOnSubmission() = %v; want ErrForbidden", err)
				}
				return
			}
			if err != nil {
				t.Errorf("checkCommentOnSubmission() failed: %v", err)
			}
		})
	}
}
