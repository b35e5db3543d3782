// internal/email/mailer/member_joined.go
package mailer

import (
	"context"
	"errors"
	"fmt"

	"github.com/dangerclosesec/audiencelab/internal/email"
	"github.com/dangerclosesec/audiencelab/internal/model"
)

const memberJoinedTemplate = "member_joined"

// MemberJoinedTemplateData contains data for the member_joined template
type MemberJoinedTemplateData struct {
	AdminName        string
	MemberName       string
	MemberEmail      string
	OrganizationName string
	DashboardLink    string
}

// MemberJoinedNotifier emails every organization admin when a member joins.
type MemberJoinedNotifier struct {
	sender  email.Sender
	baseURL string
}

func NewMemberJoinedNotifier(sender email.Sender, baseURL string) *MemberJoinedNotifier {
	return &MemberJoinedNotifier{sender: sender, baseURL: baseURL}
}

// NotifyMemberJoined sends one message per admin. Delivery continues past
// individual failures and the joined error is returned.
func (n *MemberJoinedNotifier) NotifyMemberJoined(ctx context.Context, org *model.Organization, member *model.User, admins []*model.User) error {
	var errs []error
	for _, admin := range admins {
		data := email.EmailData{
			To:           admin.Email,
			Subject:      fmt.Sprintf("%s joined %s", member.Name, org.Name),
			TemplateName: memberJoinedTemplate,
			TemplateData: MemberJoinedTemplateData{
				AdminName:        admin.Name,
				MemberName:       member.Name,
				MemberEmail:      member.Email,
				OrganizationName: org.Name,
				DashboardLink:    n.baseURL + "/dashboard",
			},
		}
		if err := n.sender.SendEmail(ctx, data); err != nil {
			errs = append(errs, fmt.Errorf("notifying %s: %w", admin.Email, err))
		}
	}
	return errors.Join(errs...)
}
