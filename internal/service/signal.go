package service

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ahashem12/LaunchpadX-sub001/internal/domain"
)

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

// RoleChannel is the pub/sub channel carrying application events of a role.
func RoleChannel(roleID string) string {
	return "lpx:role:" + roleID + ":applications"
}

func (s *SignalService) Publish(ctx context.Context, channel string, event domain.ApplicationEvent) error {
	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = s.rdb.Publish(ctx, channel, jsonstr).Err()
	if err != nil {
		return errors.Wrapf(err, "publish to %s", channel)
	}

	return nil
}

func (s *SignalService) PublishApplicationEvent(ctx context.Context, event domain.ApplicationEvent) error {
	return s.Publish(ctx, RoleChannel(event.Application.RoleID), event)
}

// Realtime forwards events for the roles most recently received on input to
// output. Each value on input replaces the previous subscription set. It
// returns when ctx is done or input is closed.
func (s *SignalService) Realtime(ctx context.Context, input <-chan []string, output chan<- domain.ApplicationEvent) {
	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	messages := pubsub.Channel()
	var current []string

	for {
		select {
		case <-ctx.Done():
			return
		case roles, ok := <-input:
			if !ok {
				return
			}
			channels := make([]string, 0, len(roles))
			for _, role := range roles {
				if role != "" {
					channels = append(channels, RoleChannel(role))
				}
			}
			if len(current) > 0 {
				if err := pubsub.Unsubscribe(ctx, current...); err != nil {
					zap.L().Warn("realtime unsubscribe failed", zap.Error(err))
				}
			}
			if len(channels) > 0 {
				if err := pubsub.Subscribe(ctx, channels...); err != nil {
					zap.L().Warn("realtime subscribe failed", zap.Error(err))
				}
			}
			current = channels
		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event domain.ApplicationEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				zap.L().Debug("dropping malformed realtime payload",
					zap.String("channel", msg.Channel),
					zap.Error(err),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
