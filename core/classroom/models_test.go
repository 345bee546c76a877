package classroom

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/darasa/core"
)

func newTestValidator(t *testing.T) *validator.Validate {
	t.Helper()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)
	return validate
}

func Test_NewAttachment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		na      NewAttachment
		wantErr bool
	}{
		{name: "no owner", na: NewAttachment{FileID: "f1"}, wantErr: true},
		{
			name:    "two owners",
			na:      NewAttachment{FileID: "f1", AssignmentID: "a1", SubmissionID: "s1"},
			wantErr: true,
		},
		{
			name:    "all owners",
			na:      NewAttachment{AssignmentID: "a1", SubmissionID: "s1", AnnouncementID: "n1"},
			wantErr: true,
		},
		{
			name:    "file and link",
			na:      NewAttachment{FileID: "f1", LinkID: "l1", AssignmentID: "a1"},
			wantErr: true,
		},
		{name: "file on assignment", na: NewAttachment{FileID: "f1", AssignmentID: "a1"}},
		{name: "link on submission", na: NewAttachment{LinkID: "l1", SubmissionID: "s1"}},
		{name: "bare announcement attachment", na: NewAttachment{AnnouncementID: "n1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.na.Validate()
			if tt.wantErr {
				if _, ok := err.(*core.ValidationError); !ok {
					t.Errorf("Validate() = %v; want ValidationError", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
		})
	}
}

func Test_UpdateAssignment_Validate(t *testing.T) {
	validate := newTestValidator(t)
	bPtr := func(b bool) *bool { return &b }

	tests := []struct {
		name    string
		ua      UpdateAssignment
		wantErr bool
	}{
		{name: "empty partial update", ua: UpdateAssignment{}},
		{name: "name only", ua: UpdateAssignment{Name: "Essay 1"}},
		{name: "going live with a name", ua: UpdateAssignment{Name: "Essay 1", Draft: bPtr(false)}},
		{name: "going live without a name", ua: UpdateAssignment{Draft: bPtr(false)}, wantErr: true},
		{name: "staying draft without a name", ua: UpdateAssignment{Instructions: "read ch. 3", Draft: bPtr(true)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ua.Validate(validate)
			if tt.wantErr {
				if err == nil {
					t.Error("Validate() = nil; want error")
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() failed: %v", err)
			}
		})
	}
}

func Test_UpdateAssignment_Validate_whitespaceOnlyName(t *testing.T) {
	validate := newTestValidator(t)
	live := false

	ua := UpdateAssignment{Name: "   ", Draft: &live}
	if err := ua.Validate(validate); err == nil {
		t.Error("Validate() = nil; want error")
	}
}
