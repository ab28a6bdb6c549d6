package notify

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/2beens/rollfit/internal/streak"
	"github.com/2beens/rollfit/internal/telemetry/tracing"

	"firebase.google.com/go/v4/messaging"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=notify_test

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

var (
	_ streak.Notifier = (*FCMNotifier)(nil)
	_ streak.Notifier = (*LogNotifier)(nil)
)

// FCMNotifier pushes milestone notifications through firebase cloud messaging.
// The mobile app subscribes each signed in user to the topic from UserTopic.
type FCMNotifier struct {
	client messagingClient
}

func NewFCMNotifier(client messagingClient) *FCMNotifier {
	return &FCMNotifier{
		client: client,
	}
}

// UserTopic maps a user id to its FCM topic, replacing characters topics cannot hold.
func UserTopic(userID string) string {
	return "streak-" + strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '-', r == '_', r == '.', r == '~', r == '%':
			return r
		default:
			return '_'
		}
	}, userID)
}

func MilestoneMessage(userID string, milestone streak.Milestone) *messaging.Message {
	return &messaging.Message{
		Topic: UserTopic(userID),
		Notification: &messaging.Notification{
			Title: fmt.Sprintf("%d day streak!", milestone.Streak),
			Body:  fmt.Sprintf("You rolled in %d days in a row. Next goal: %d days.", milestone.Streak, milestone.NextGoal),
		},
		Data: map[string]string{
			"type":     "streak_milestone",
			"streak":   strconv.Itoa(milestone.Streak),
			"nextGoal": strconv.Itoa(milestone.NextGoal),
			"day":      milestone.Day.String(),
		},
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Sound: "default",
			},
		},
	}
}

func (n *FCMNotifier) NotifyMilestone(ctx context.Context, userID string, milestone streak.Milestone) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notify.fcm.milestone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user-id", userID), attribute.Int("streak", milestone.Streak))

	msgID, err := n.client.Send(ctx, MilestoneMessage(userID, milestone))
	if err != nil {
		return fmt.Errorf("fcm send milestone to [%s]: %w", userID, err)
	}
	log.Debugf("fcm: milestone %d sent to [%s], message id: %s", milestone.Streak, userID, msgID)
	return nil
}

// LogNotifier only logs milestones; used when push notifications are disabled.
type LogNotifier struct{}

func (LogNotifier) NotifyMilestone(_ context.Context, userID string, milestone streak.Milestone) error {
	log.Infof("milestone for user [%s]: streak %d, next goal %d", userID, milestone.Streak, milestone.NextGoal)
	return nil
}
