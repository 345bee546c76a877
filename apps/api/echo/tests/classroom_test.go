package tests

import (
	"net/http"
	"testing"

	"github.com/trezcool/darasa/core/classroom"
	"github.com/trezcool/darasa/core/user"
	testutil "github.com/trezcool/darasa/tests"
)

func Test_classroomApi_assignmentLifecycle(t *testing.T) {
	classID := "api-class-1"
	base := "/v1/classes/" + classID

	teacher := testutil.CreateUser(t, usrRepo, "Mr. Kabeya", "api-kabeya", "api-kabeya@test.cd", "", true)
	student := testutil.CreateUser(t, usrRepo, "Awa", "api-awa", "api-awa@test.cd", "", true)
	outsider := testutil.CreateUser(t, usrRepo, "Drifter", "api-drifter", "api-drifter@test.cd", "", true)
	testutil.Enroll(t, usrRepo, teacher, classID, user.RoleTeacher)
	testutil.Enroll(t, usrRepo, student, classID, user.RoleStudent)

	teacherToken := getToken(t, teacher)
	studentToken := getToken(t, student)
	outsiderToken := getToken(t, outsider)

	// auth required
	req, rec := newRequest(http.MethodPost, base+"/assignments")
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)}, rec)

	// students may not draft
	req, rec = newAuthRequest(http.MethodPost, base+"/assignments", studentToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

	// teacher drafts
	req, rec = newAuthRequest(http.MethodPost, base+"/assignments", teacherToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("draft failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var a classroom.Assignment
	decodeBody(t, rec, &a)
	if !a.Draft {
		t.Error("draft assignment not marked draft")
	}

	// going live without a name is rejected
	body := marchallObj(t, map[string]interface{}{"draft": false})
	req, rec = newAuthRequest(http.MethodPatch, base+"/assignments/"+a.ID, teacherToken, body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"name": "a name is required to publish an assignment"}),
	}, rec)

	// publish
	body = marchallObj(t, map[string]interface{}{"name": "Essay 1", "instructions": "Read chapter 3.", "draft": false})
	req, rec = newAuthRequest(http.MethodPatch, base+"/assignments/"+a.ID, teacherToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &a)
	if a.Draft {
		t.Error("published assignment still draft")
	}
	if a.Creator.String != teacher.ID {
		t.Errorf("creator = %q; want %q", a.Creator.String, teacher.ID)
	}

	// unknown assignment
	req, rec = newAuthRequest(http.MethodGet, base+"/assignments/teachers/nope", teacherToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, errNotFound)}, rec)

	// student view
	req, rec = newAuthRequest(http.MethodGet, base+"/assignments/students/"+a.ID, studentToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("student view failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var sView classroom.StudentAssignmentView
	decodeBody(t, rec, &sView)
	if sView.Submission.UserID != student.ID {
		t.Errorf("student view submission owner = %q; want %q", sView.Submission.UserID, student.ID)
	}

	// teacher view is staff-only
	req, rec = newAuthRequest(http.MethodGet, base+"/assignments/teachers/"+a.ID, studentToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

	req, rec = newAuthRequest(http.MethodGet, base+"/assignments/teachers/"+a.ID, teacherToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("teacher view failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var tView classroom.TeacherAssignmentView
	decodeBody(t, rec, &tView)
	if len(tView.Submissions) != 1 {
		t.Errorf("teacher view submissions = %d; want 1", len(tView.Submissions))
	}

	// turn in
	req, rec = newAuthRequest(http.MethodPost, base+"/submissions/"+sView.Submission.ID+"/turn-in", studentToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("turn-in failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var sub classroom.Submission
	decodeBody(t, rec, &sub)
	if sub.Status != classroom.SubmissionStatusTurnedIn {
		t.Errorf("status = %q; want %q", sub.Status, classroom.SubmissionStatusTurnedIn)
	}

	// delete: outsiders and students rejected, creator succeeds
	req, rec = newAuthRequest(http.MethodDelete, base+"/assignments/"+a.ID, outsiderToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

	req, rec = newAuthRequest(http.MethodDelete, base+"/assignments/"+a.ID, studentToken)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

	req, rec = newAuthRequest(http.MethodDelete, base+"/assignments/"+a.ID, teacherToken)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
}

func Test_classroomApi_attachmentsAndComments(t *testing.T) {
	classID := "api-class-2"
	base := "/v1/classes/" + classID

	teacher := testutil.CreateUser(t, usrRepo, "Ms. Ilunga", "api-ilunga", "api-ilunga@test.cd", "", true)
	student := testutil.CreateUser(t, usrRepo, "Bukasa", "api-bukasa", "api-bukasa@test.cd", "", true)
	testutil.Enroll(t, usrRepo, teacher, classID, user.RoleTeacher)
	testutil.Enroll(t, usrRepo, student, classID, user.RoleStudent)

	teacherToken := getToken(t, teacher)
	studentToken := getToken(t, student)

	db.AddFile(classroom.UploadedFile{ID: "api-file-1", Name: "essay.pdf", Path: "/files/essay.pdf", ContentType: "application/pdf", Size: 1024})

	// draft & publish
	req, rec := newAuthRequest(http.MethodPost, base+"/assignments", teacherToken)
	app.ServeHTTP(rec, req)
	var a classroom.Assignment
	decodeBody(t, rec, &a)

	body := marchallObj(t, map[string]interface{}{"name": "Essay 2", "draft": false})
	req, rec = newAuthRequest(http.MethodPatch, base+"/assignments/"+a.ID, teacherToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("publish failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	// attachment without an owner is rejected
	body = marchallObj(t, map[string]string{"file_id": "api-file-1"})
	req, rec = newAuthRequest(http.MethodPost, base+"/attachments", teacherToken, body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{
		wantCode: http.StatusBadRequest,
		wantData: marchallObj(t, map[string]string{"owner": "exactly one of assignment_id, submission_id or announcement_id is required"}),
	}, rec)

	// students may not attach assignment material
	body = marchallObj(t, map[string]string{"file_id": "api-file-1", "assignment_id": a.ID})
	req, rec = newAuthRequest(http.MethodPost, base+"/attachments", studentToken, body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}, rec)

	// teacher attaches
	req, rec = newAuthRequest(http.MethodPost, base+"/attachments", teacherToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("attachment failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}
	var att classroom.Attachment
	decodeBody(t, rec, &att)
	if att.UploaderID != teacher.ID {
		t.Errorf("uploader = %q; want %q", att.UploaderID, teacher.ID)
	}

	// public comment
	body = marchallObj(t, map[string]string{"body": "When is this due?"})
	req, rec = newAuthRequest(http.MethodPost, base+"/assignments/"+a.ID+"/comments", studentToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("comment failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	// blank comment body is rejected
	body = marchallObj(t, map[string]string{"body": "   "})
	req, rec = newAuthRequest(http.MethodPost, base+"/assignments/"+a.ID+"/comments", studentToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("blank comment code = %v; want 400", rec.Code)
	}

	// private comment on own submission
	// AuthoredComment holds a Commenter interface; decode only what we assert on.
	var sView struct {
		Submission            classroom.Submission           `json:"submission"`
		AssignmentAttachments []classroom.ResolvedAttachment `json:"assignment_attachments"`
	}
	req, rec = newAuthRequest(http.MethodGet, base+"/assignments/students/"+a.ID, studentToken)
	app.ServeHTTP(rec, req)
	decodeBody(t, rec, &sView)

	body = marchallObj(t, map[string]string{"body": "Here is my draft."})
	req, rec = newAuthRequest(http.MethodPost, base+"/submissions/"+sView.Submission.ID+"/comments", studentToken, body)
	app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("private comment failed! code = %v; body = %s", rec.Code, rec.Body.String())
	}

	// the attachment shows up resolved in the student view
	req, rec = newAuthRequest(http.MethodGet, base+"/assignments/students/"+a.ID, studentToken)
	app.ServeHTTP(rec, req)
	decodeBody(t, rec, &sView)
	if len(sView.AssignmentAttachments) != 1 || sView.AssignmentAttachments[0].File == nil {
		t.Errorf("assignment attachment not resolved: %+v", sView.AssignmentAttachments)
	}
}
