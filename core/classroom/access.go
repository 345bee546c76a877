package classroom

import (
	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

// Stateless access predicates consulted before every operation. Membership is
// always checked first by the service, so every gate receives the actor's
// membership in the assignment's class.

// canManageAssignments reports whether the member may create drafts, publish
// and attach assignment-level material.
func canManageAssignments(m user.ClassMembership) bool {
	return m.IsTeacher() || m.IsAdmin()
}

// checkDelete applies the delete gate: students are always rejected. Draft
// assignments may then be deleted by any staff member. For published
// assignments the configured policy decides which teacher is rejected:
//
//   - deny_creator: the recorded creator may not delete their own published
//     work (the behavior observed in the legacy system, pending product
//     confirmation);
//   - deny_non_creator: only the recorded creator may delete it.
//
// Admins pass either policy.
func checkDelete(policy string, m user.ClassMembership, a Assignment) error {
	if m.IsStudent() {
		return core.ErrForbidden
	}
	if a.Draft || m.IsAdmin() {
		return nil
	}

	switch policy {
	case core.DeletePolicyDenyCreator:
		if a.IsCreator(m.UserID) {
			return core.ErrForbidden
		}
	default: // deny_non_creator
		if !a.IsCreator(m.UserID) {
			return core.ErrForbidden
		}
	}
	return nil
}

// checkCommentOnSubmission allows the submitting student and any staff member.
func checkCommentOnSubmission(m user.ClassMembership, s Submission) error {
	if m.IsStudent() && s.UserID != m.UserID {
		return core.ErrForbidden
	}
	return nil
}
