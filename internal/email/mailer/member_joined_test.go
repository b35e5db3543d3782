package mailer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/dangerclosesec/audiencelab/internal/email"
	"github.com/dangerclosesec/audiencelab/internal/email/mailer"
	"github.com/dangerclosesec/audiencelab/internal/mocks"
	"github.com/dangerclosesec/audiencelab/internal/model"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestNotifyMemberJoined(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)

	org := &model.Organization{Name: "Acme"}
	member := &model.User{Name: "Bea", Email: "bea@acme.test"}
	admins := []*model.User{
		{Name: "Ada", Email: "ada@acme.test"},
		{Name: "Alan", Email: "alan@acme.test"},
	}

	sender.EXPECT().SendEmail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data email.EmailData) error {
			assert.Equal(t, "ada@acme.test", data.To)
			assert.Equal(t, "Bea joined Acme", data.Subject)
			assert.Equal(t, "member_joined", data.TemplateName)

			td, ok := data.TemplateData.(mailer.MemberJoinedTemplateData)
			assert.True(t, ok)
			assert.Equal(t, "Ada", td.AdminName)
			assert.Equal(t, "https://app.example.com/dashboard", td.DashboardLink)
			return errors.New("mailbox full")
		})
	sender.EXPECT().SendEmail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, data email.EmailData) error {
			assert.Equal(t, "alan@acme.test", data.To)
			return nil
		})

	n := mailer.NewMemberJoinedNotifier(sender, "https://app.example.com")
	err := n.NotifyMemberJoined(context.Background(), org, member, admins)

	assert.ErrorContains(t, err, "notifying ada@acme.test")
	assert.ErrorContains(t, err, "mailbox full")
}

func TestNotifyMemberJoinedNoAdmins(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mocks.NewMockSender(ctrl)

	n := mailer.NewMemberJoinedNotifier(sender, "")
	assert.NoError(t, n.NotifyMemberJoined(context.Background(), &model.Organization{}, &model.User{}, nil))
}
