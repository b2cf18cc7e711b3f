// Package notify publishes post-commit booking notifications.
// Email jobs are pushed onto a redis list drained by the notification
// worker; push tokens per user live in a redis hash. Everything here is
// best-effort: callers run it after their transaction has committed, log
// failures and never propagate them - a lost confirmation email must not
// fail a committed booking.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pantrydesk/booking-service/internal/domain"
)

const (
	emailQueueKey     = "notifications:email"
	pushQueueKey      = "notifications:push"
	pushTokensKeyTmpl = "push_tokens:user:%d"

	publishTimeout = 3 * time.Second
)

// Logger is the logging interface used by the publisher.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher pushes notification jobs to redis.
type Publisher struct {
	rdb *redis.Client
	log Logger
}

// NewPublisher creates a notification publisher.
func NewPublisher(rdb *redis.Client, log Logger) *Publisher {
	return &Publisher{rdb: rdb, log: log}
}

// BookingConfirmed enqueues a confirmation notification for a freshly
// admitted booking. Errors are logged, never returned.
func (p *Publisher) BookingConfirmed(b *domain.Booking, slot *domain.Slot) {
	p.publish(EventBookingConfirmed, b, slot)
}

// BookingRescheduled enqueues a notification for a moved booking.
func (p *Publisher) BookingRescheduled(b *domain.Booking, slot *domain.Slot) {
	p.publish(EventBookingRescheduled, b, slot)
}

// BookingCancelled enqueues a cancellation notification.
func (p *Publisher) BookingCancelled(b *domain.Booking, slot *domain.Slot) {
	p.publish(EventBookingCancelled, b, slot)
}

// RegisterPushToken stores a device push token for a user.
func (p *Publisher) RegisterPushToken(ctx context.Context, userID int64, deviceID, token string) error {
	key := fmt.Sprintf(pushTokensKeyTmpl, userID)
	if err := p.rdb.HSet(ctx, key, deviceID, token).Err(); err != nil {
		return fmt.Errorf("notify: failed to register push token for user=%d: %w", userID, err)
	}
	return nil
}

// PushTokens returns the registered device push tokens of a user.
func (p *Publisher) PushTokens(ctx context.Context, userID int64) (map[string]string, error) {
	key := fmt.Sprintf(pushTokensKeyTmpl, userID)
	tokens, err := p.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("notify: failed to fetch push tokens for user=%d: %w", userID, err)
	}
	return tokens, nil
}

func (p *Publisher) publish(event string, b *domain.Booking, slot *domain.Slot) {
	// The caller's request context may already be done; publishing happens
	// after commit on its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	job := EmailJob{
		Event:           event,
		BookingID:       b.ID,
		UserID:          b.UserID,
		NewClientID:     b.NewClientID,
		SlotID:          b.SlotID,
		Date:            b.Date.Format(domain.DateFormat),
		StartTime:       slot.StartTime.String(),
		EndTime:         slot.EndTime.String(),
		RescheduleToken: b.RescheduleToken,
		EnqueuedAt:      time.Now().UTC(),
	}

	payload, err := json.Marshal(job)
	if err != nil {
		p.log.Error("notify: failed to marshal %s job for booking=%d: %v", event, b.ID, err)
		return
	}

	if err := p.rdb.LPush(ctx, emailQueueKey, payload).Err(); err != nil {
		p.log.Error("notify: failed to enqueue %s job for booking=%d: %v", event, b.ID, err)
		return
	}

	p.log.Info("notify: enqueued %s for booking=%d", event, b.ID)

	if b.UserID != nil {
		p.publishPush(ctx, event, b, slot)
	}
}

// publishPush fans the event out to the user's registered devices.
func (p *Publisher) publishPush(ctx context.Context, event string, b *domain.Booking, slot *domain.Slot) {
	tokens, err := p.PushTokens(ctx, *b.UserID)
	if err != nil {
		p.log.Error("notify: %v", err)
		return
	}

	for deviceID, token := range tokens {
		job := PushJob{
			Event:      event,
			BookingID:  b.ID,
			UserID:     *b.UserID,
			DeviceID:   deviceID,
			Token:      token,
			Date:       b.Date.Format(domain.DateFormat),
			StartTime:  slot.StartTime.String(),
			EndTime:    slot.EndTime.String(),
			EnqueuedAt: time.Now().UTC(),
		}

		payload, err := json.Marshal(job)
		if err != nil {
			p.log.Error("notify: failed to marshal %s push job for booking=%d: %v", event, b.ID, err)
			continue
		}

		if err := p.rdb.LPush(ctx, pushQueueKey, payload).Err(); err != nil {
			p.log.Error("notify: failed to enqueue %s push job for booking=%d: %v", event, b.ID, err)
		}
	}
}
