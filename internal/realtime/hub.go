// Package realtime keeps at most one Redis pub/sub subscription per topic and
// fans every event out to all local subscribers. Multiple SSE clients watching
// the same branch share a single upstream subscription; the upstream is torn
// down when the last local subscriber leaves.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const channelPrefix = "rt:"

// Event is the compact change notification published after every mutation.
// Action: "created" | "updated" | "deleted"
type Event struct {
	Collection string `json:"collection"`
	BranchID   string `json:"branch_id"`
	EntityID   string `json:"entity_id"`
	Action     string `json:"action"`
	At         string `json:"at"` // RFC 3339
}

// Topic builds the canonical topic name for a collection within a branch.
func Topic(collection, branchID string) string {
	return collection + ":" + branchID
}

// Publisher is the narrow interface services use to emit change events.
type Publisher interface {
	Publish(ctx context.Context, ev Event)
}

type topicState struct {
	subs   map[int]chan Event
	nextID int
	pubsub *redis.PubSub
	cancel context.CancelFunc
}

// Hub multiplexes Redis pub/sub subscriptions across local subscribers.
type Hub struct {
	rdb *redis.Client

	mu     sync.Mutex
	topics map[string]*topicState
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{rdb: rdb, topics: make(map[string]*topicState)}
}

// Publish emits a change event. Best-effort: a publish failure is logged, not
// propagated — mutations must not fail because a notification did.
func (h *Hub) Publish(ctx context.Context, ev Event) {
	if ev.At == "" {
		ev.At = time.Now().UTC().Format(time.RFC3339)
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Error().Err(err).Msg("realtime: marshal event")
		return
	}
	if err := h.rdb.Publish(ctx, channelPrefix+Topic(ev.Collection, ev.BranchID), data).Err(); err != nil {
		log.Warn().Err(err).Str("collection", ev.Collection).Str("branch_id", ev.BranchID).
			Msg("realtime: publish failed")
	}
}

// Subscribe registers a local subscriber on a topic and returns its event
// channel plus an unsubscribe func. The first subscriber on a topic opens the
// upstream Redis subscription; the last one closing tears it down.
func (h *Hub) Subscribe(topic string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	st, ok := h.topics[topic]
	if !ok {
		ctx, cancel := context.WithCancel(context.Background())
		st = &topicState{
			subs:   make(map[int]chan Event),
			pubsub: h.rdb.Subscribe(ctx, channelPrefix+topic),
			cancel: cancel,
		}
		h.topics[topic] = st
		go h.pump(ctx, topic, st)
	}

	id := st.nextID
	st.nextID++
	ch := make(chan Event, 16)
	st.subs[id] = ch

	unsubscribe := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		cur, ok := h.topics[topic]
		if !ok {
			return
		}
		sub, ok := cur.subs[id]
		if !ok {
			return
		}
		delete(cur.subs, id)
		close(sub)
		if len(cur.subs) == 0 {
			cur.cancel()
			_ = cur.pubsub.Close()
			delete(h.topics, topic)
		}
	}
	return ch, unsubscribe
}

// SubscriberCount reports local subscribers on a topic (monitoring/tests).
func (h *Hub) SubscriberCount(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if st, ok := h.topics[topic]; ok {
		return len(st.subs)
	}
	return 0
}

// pump reads upstream messages and fans them out. Slow subscribers with a
// full buffer are skipped rather than allowed to stall the fan-out.
func (h *Hub) pump(ctx context.Context, topic string, st *topicState) {
	ch := st.pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var ev Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Error().Err(err).Str("topic", topic).Msg("realtime: bad event payload")
				continue
			}
			h.fanout(topic, ev)
		}
	}
}

func (h *Hub) fanout(topic string, ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	st, ok := h.topics[topic]
	if !ok {
		return
	}
	for _, sub := range st.subs {
		select {
		case sub <- ev:
		default:
			// subscriber buffer full — drop for this one
		}
	}
}
