package classroom

import (
	"fmt"
	"net/mail"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/user"
)

type newAssignmentEmailData struct {
	SenderName     string
	AssignmentName string
	Instructions   string
}

// notifyPublished queues one email per roster student. Delivery is
// fire-and-forget: the EmailService sends each message on its own goroutine,
// logs failures and never reports back here.
func (svc *service) notifyPublished(sender user.User, recipients []user.User, a Assignment) {
	data := newAssignmentEmailData{
		SenderName:     sender.Name,
		AssignmentName: a.Name.String,
		Instructions:   a.Instructions.String,
	}
	subject := fmt.Sprintf("New Assignment from %s: %s", sender.Name, a.Name.String)

	msgs := make([]*core.EmailMessage, 0, len(recipients))
	for _, rcpt := range recipients {
		if rcpt.Email == "" {
			continue
		}
		msgs = append(msgs, &core.EmailMessage{
			To:           []mail.Address{{Name: rcpt.Name, Address: rcpt.Email}},
			Subject:      subject,
			TemplateName: "new-assignment",
			TemplateData: data,
		})
	}
	svc.mailSvc.SendMessages(msgs...)
}
