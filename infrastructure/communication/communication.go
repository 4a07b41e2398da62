package communication

import (
	"context"
	"errors"
	"fmt"
	"log"

	"axiapac.com/attendance/attendance"
	"github.com/slack-go/slack"
)

type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type Slack struct {
	client  poster
	options SlackOption
}

type SlackOption struct {
	InfoChannelID  string
	ErrorChannelID string
}

func NewSlack(token string, options SlackOption) *Slack {
	client := slack.New(token)
	return &Slack{client: client, options: options}
}

func (s *Slack) postMessage(ctx context.Context, channelID, message string) error {
	if channelID == "" {
		return nil
	}
	_, _, err := s.client.PostMessageContext(ctx,
		channelID,
		slack.MsgOptionText(message, false),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		return fmt.Errorf("failed to post message to Slack: %w", err)
	}
	return nil
}

func (this *Slack) Info(ctx context.Context, message string) error {
	return this.postMessage(ctx, this.options.InfoChannelID, message)
}

func (this *Slack) Error(ctx context.Context, message string) error {
	return this.postMessage(ctx, this.options.ErrorChannelID, message)
}

// OnTransition reports failures that need someone to look at the backend:
// service errors and inconsistent records. Employee-side failures such as a
// denied location permission are not reported.
func (this *Slack) OnTransition(ctx context.Context, ev attendance.Event) {
	var (
		se  *attendance.ServiceError
		ise *attendance.InconsistentStateError
	)
	var msg string
	switch {
	case errors.As(ev.Err, &ise):
		msg = fmt.Sprintf(":warning: employee %d %s: %v", ev.EmployeeID, ev.Action, ise)
	case errors.As(ev.Err, &se):
		msg = fmt.Sprintf(":x: employee %d %s: %s", ev.EmployeeID, ev.Action, se.Message)
	default:
		return
	}
	if err := this.Error(ctx, msg); err != nil {
		log.Printf("communication: %v", err)
	}
}
