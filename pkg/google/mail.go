package google

import (
	"context"
	"strings"

	"google.golang.org/api/gmail/v1"

	"github.com/harrisonrobin/daybrief/pkg/model"
)

const gmailUser = "me"

// MailClient reads the authenticated user's inbox.
type MailClient struct {
	svc *gmail.Service
}

// NewMailClient wraps an authenticated Gmail service.
func NewMailClient(svc *gmail.Service) *MailClient {
	return &MailClient{svc: svc}
}

// Fetch lists up to maxResults inbox messages, newest first, then pulls
// the From/Subject/Date headers for each. The listing endpoint only
// returns IDs, so one metadata call per message is unavoidable.
func (c *MailClient) Fetch(ctx context.Context, maxResults int64) ([]model.Message, error) {
	list, err := c.svc.Users.Messages.List(gmailUser).
		LabelIds("INBOX").
		MaxResults(maxResults).
		Context(ctx).Do()
	if err != nil {
		return nil, wrapErr(model.SourceMail, err)
	}

	messages := make([]model.Message, 0, len(list.Messages))
	for _, meta := range list.Messages {
		msg, err := c.svc.Users.Messages.Get(gmailUser, meta.Id).
			Format("metadata").
			MetadataHeaders("From", "Subject", "Date").
			Context(ctx).Do()
		if err != nil {
			return nil, wrapErr(model.SourceMail, err)
		}
		messages = append(messages, messageFromHeaders(msg))
	}
	return messages, nil
}

// messageFromHeaders reduces a message to its displayed headers, with
// sentinels for anything the sender left out.
func messageFromHeaders(msg *gmail.Message) model.Message {
	m := model.Message{From: "(unknown)", Subject: "(no subject)"}
	if msg.Payload == nil {
		return m
	}
	for _, h := range msg.Payload.Headers {
		if h.Value == "" {
			continue
		}
		switch strings.ToLower(h.Name) {
		case "from":
			m.From = h.Value
		case "subject":
			m.Subject = h.Value
		case "date":
			m.Date = h.Value
		}
	}
	return m
}
