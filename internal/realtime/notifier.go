package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/thesrcielos/BananaRealm/internal/achievement"
	"github.com/thesrcielos/BananaRealm/internal/logger"
	"github.com/thesrcielos/BananaRealm/websocket/message"
	"github.com/thesrcielos/BananaRealm/websocket/transport"
)

// Envelope is what travels over the events channel. Every instance receives
// it and delivers it to the listed users it holds sockets for.
type Envelope struct {
	Type     string          `json:"type"`
	Users    []string        `json:"users"`
	Instance string          `json:"instance"`
	Payload  json.RawMessage `json:"payload"`
}

type Notifier struct {
	rdb        *redis.Client
	channel    string
	instanceID string
	deliver    func(userID string, msg transport.OutgoingMessage)
}

func NewNotifier(rdb *redis.Client, channel, instanceID string) *Notifier {
	return &Notifier{
		rdb:        rdb,
		channel:    channel,
		instanceID: instanceID,
		deliver:    transport.SendToPlayer,
	}
}

// NotifyUnlocked publishes the unlock; publish errors are only logged.
func (n *Notifier) NotifyUnlocked(ctx context.Context, userID string, unlocked achievement.Unlocked) {
	n.Publish(ctx, message.TypeAchievementUnlocked, []string{userID}, unlocked)
}

func (n *Notifier) Publish(ctx context.Context, msgType string, users []string, payload interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Error encoding %s event: %v", msgType, err)
		return
	}
	env, err := json.Marshal(Envelope{Type: msgType, Users: users, Instance: n.instanceID, Payload: raw})
	if err != nil {
		logger.Error("Error encoding %s event: %v", msgType, err)
		return
	}
	if err := n.rdb.Publish(ctx, n.channel, env).Err(); err != nil {
		logger.Error("Error publishing %s event: %v", msgType, err)
	}
}

// Subscribe starts forwarding channel events to local sockets until ctx is
// done. It returns once the subscription is confirmed.
func (n *Notifier) Subscribe(ctx context.Context) error {
	sub := n.rdb.Subscribe(ctx, n.channel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("error subscribing to %s: %w", n.channel, err)
	}

	ch := sub.Channel()
	logger.Info("Subscribed to %s channel", n.channel)
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				n.dispatch(msg.Payload)
			}
		}
	}()
	return nil
}

func (n *Notifier) dispatch(encoded string) {
	var env Envelope
	if err := json.Unmarshal([]byte(encoded), &env); err != nil {
		logger.Warn("Error decoding event: %v", err)
		return
	}
	logger.Debug("Event %s from %s for %v", env.Type, env.Instance, env.Users)

	msg := transport.OutgoingMessage{Type: env.Type, Payload: env.Payload}
	for _, userID := range env.Users {
		n.deliver(userID, msg)
	}
}
