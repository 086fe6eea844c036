package broadcaster

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"troffee-admin-console/internal/metrics"
	"troffee-admin-console/internal/ports/outbound"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LastAuctionUpdateKey holds the unix timestamp of the latest auction change made
// from the console. Auction list views poll it to know when to refetch.
const LastAuctionUpdateKey = "auctions:last_update"

const subscriberBuffer = 64

// RedisBroadcaster implements outbound.Notifier using Redis pub/sub
type RedisBroadcaster struct {
	client  *redis.Client
	channel string
	pubsubs map[*redis.PubSub]struct{}
	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	logger  zerolog.Logger
}

type RedisBroadcasterParams struct {
	RedisClient *redis.Client
	Channel     string
	Logger      zerolog.Logger
}

func NewBroadcaster(params RedisBroadcasterParams) *RedisBroadcaster {
	ctx, cancel := context.WithCancel(context.Background())

	return &RedisBroadcaster{
		client:  params.RedisClient,
		channel: params.Channel,
		pubsubs: make(map[*redis.PubSub]struct{}),
		ctx:     ctx,
		cancel:  cancel,
		logger:  params.Logger.With().Str("component", "redis_broadcaster").Logger(),
	}
}

// Publish publishes an event on the events channel. Auction events also bump the
// last-update marker.
func (r *RedisBroadcaster) Publish(ctx context.Context, event outbound.Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	result := r.client.Publish(ctx, r.channel, string(eventJSON))
	if err := result.Err(); err != nil {
		r.logger.Error().Err(err).Str("event_type", string(event.Type)).Msg("Failed to publish to Redis")
		return fmt.Errorf("failed to publish to Redis: %w", err)
	}
	metrics.EventsPublishedTotal.WithLabelValues(string(event.Type)).Inc()

	if event.Type.IsAuctionEvent() {
		if err := r.client.Set(ctx, LastAuctionUpdateKey, strconv.FormatInt(event.Timestamp, 10), 0).Err(); err != nil {
			r.logger.Error().Err(err).Msg("Failed to update auction refresh marker")
			return fmt.Errorf("failed to update auction refresh marker: %w", err)
		}
	}

	r.logger.Info().
		Str("event_type", string(event.Type)).
		Str("subject_id", event.SubjectID).
		Int64("subscriber_count", result.Val()).
		Msg("Published admin event")

	return nil
}

// Subscribe subscribes to the events channel. The returned channel is closed when
// ctx is done or the broadcaster is closed.
func (r *RedisBroadcaster) Subscribe(ctx context.Context) (<-chan outbound.Event, error) {
	pubsub := r.client.Subscribe(ctx, r.channel)

	// Wait for the subscription confirmation so no event published afterwards is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		r.logger.Error().Err(err).Str("channel", r.channel).Msg("Failed to subscribe to Redis channel")
		return nil, fmt.Errorf("failed to subscribe to %s: %w", r.channel, err)
	}

	r.mu.Lock()
	r.pubsubs[pubsub] = struct{}{}
	r.mu.Unlock()

	out := make(chan outbound.Event, subscriberBuffer)
	go func() {
		defer func() {
			r.mu.Lock()
			delete(r.pubsubs, pubsub)
			r.mu.Unlock()
			if err := pubsub.Close(); err != nil {
				r.logger.Debug().Err(err).Msg("Error closing Redis pubsub")
			}
		}()
		r.forward(ctx, pubsub.Channel(), out)
	}()

	r.logger.Info().Str("channel", r.channel).Msg("Subscribed to admin events")
	return out, nil
}

// forward decodes Redis messages into events until in is closed or either context is
// done, then closes out. A full subscriber drops the event.
func (r *RedisBroadcaster) forward(ctx context.Context, in <-chan *redis.Message, out chan<- outbound.Event) {
	defer close(out)
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error().Interface("panic", err).Msg("Redis message listener panic")
		}
	}()

	for {
		select {
		case msg, ok := <-in:
			if !ok {
				r.logger.Info().Msg("Redis channel closed")
				return
			}

			var event outbound.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.logger.Error().Err(err).Msg("Failed to unmarshal Redis message")
				continue
			}

			select {
			case out <- event:
			default:
				r.logger.Warn().Str("event_type", string(event.Type)).Msg("Subscriber channel full, dropping event")
			}

		case <-ctx.Done():
			return
		case <-r.ctx.Done():
			return
		}
	}
}

// Close stops every subscription and closes the Redis client
func (r *RedisBroadcaster) Close() error {
	r.cancel()

	r.mu.Lock()
	for pubsub := range r.pubsubs {
		if err := pubsub.Close(); err != nil {
			r.logger.Error().Err(err).Msg("Error closing Redis pubsub")
		}
		delete(r.pubsubs, pubsub)
	}
	r.mu.Unlock()

	return r.client.Close()
}
