package emailsvc

import (
	"net/mail"
	"testing"

	"github.com/trezcool/darasa/core"
	testutil "github.com/trezcool/darasa/tests"
)

// a message that fails to render is dropped, never delivered and never fatal
func Test_consoleService_dropsUnrenderableMessage(t *testing.T) {
	conf := &core.Config{
		TestMode:         true,
		AppName:          "Darasa",
		WorkDir:          core.Getwd(),
		FrontendBaseURL:  "http://localhost:3000",
		DefaultFromEmail: mail.Address{Name: "Darasa", Address: "noreply@localhost"},
	}
	logger := testutil.NewLogger()
	core.ParseEmailTemplates(conf, logger)
	ClearSentMessages()

	svc := NewConsoleServiceMock(conf, logger)

	bad := &core.EmailMessage{
		To:           []mail.Address{{Address: "awa@test.cd"}},
		Subject:      "New Assignment",
		TemplateName: "new-assignment",
		TemplateData: struct{}{}, // lacks the template's fields: rendering fails
	}
	good := &core.EmailMessage{
		To:      []mail.Address{{Address: "awa@test.cd"}},
		Subject: "Hello",
		BodyStr: "plain text",
	}
	svc.SendMessages(bad, good)

	mu.Lock()
	defer mu.Unlock()
	if len(SentMessages) != 1 {
		t.Fatalf("len(SentMessages) = %d; want 1", len(SentMessages))
	}
	if got := SentMessages[0].Subject; got != "Hello" {
		t.Errorf("SentMessages[0].Subject = %q; want %q", got, "Hello")
	}
}
