package gateway

import (
	"fmt"
	"log/slog"
	"sync"

	disgodiscord "github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"

	"github.com/norio-nomura/discordkit/pkg/client"
	"github.com/norio-nomura/discordkit/pkg/discord"
)

// messageEvent is the cache change a gateway message event asks for. A nil message means the
// message was deleted.
type messageEvent struct {
	id      snowflake.ID
	message *discord.Message
}

// messageEventsHandler applies message events to the cache. Events are dispatched
// asynchronously, so only the latest event for each message ID is applied.
type messageEventsHandler struct {
	client  *client.Client
	syncMap sync.Map
}

func newMessageEventsHandler(c *client.Client) *messageEventsHandler {
	return &messageEventsHandler{client: c}
}

func (q *messageEventsHandler) onMessageCreate(e *events.MessageCreate) {
	q.storeSnapshot(e.GenericMessage)
}

func (q *messageEventsHandler) onMessageUpdate(e *events.MessageUpdate) {
	q.storeSnapshot(e.GenericMessage)
}

func (q *messageEventsHandler) onMessageDelete(e *events.MessageDelete) {
	q.storeLatestEventForMessageID(messageEvent{id: e.MessageID})
}

func (q *messageEventsHandler) storeSnapshot(gm *events.GenericMessage) {
	m, err := toMessage(gm.Message, gm.GuildID)
	if err != nil {
		q.client.Logger().Error("Failed to convert message", slog.Any("id", gm.MessageID), slog.Any("err", err))
		return
	}
	q.storeLatestEventForMessageID(messageEvent{id: gm.MessageID, message: &m})
}

// storeLatestEventForMessageID stores the latest event for a given message ID in the sync map.
// If the event is newly stored, it starts a goroutine to process events for that message ID.
func (q *messageEventsHandler) storeLatestEventForMessageID(e messageEvent) {
	if _, stored := storeToSyncMap(&q.syncMap, e.id, e); stored {
		go q.processEventsForMessageID(e.id)
	}
}

// processEventsForMessageID applies the stored event until no newer one arrived meanwhile.
func (q *messageEventsHandler) processEventsForMessageID(id snowflake.ID) {
	for {
		e, err := loadFromSyncMap[snowflake.ID, messageEvent](&q.syncMap, id)
		if err != nil {
			q.client.Logger().Error("Failed to load event from sync map", slog.Any("id", id), slog.Any("err", err))
			return
		}
		q.apply(e)
		if q.syncMap.CompareAndDelete(id, e) {
			return
		}
	}
}

func (q *messageEventsHandler) apply(e messageEvent) {
	if e.message == nil {
		q.client.UncacheMessage(e.id)
		q.client.Logger().Debug("Uncached message", slog.Any("id", e.id))
		return
	}
	q.client.CacheMessage(*e.message)
}

// storeToSyncMap stores a value in a sync.Map for the given key.
// Returns true if the value was newly stored, or false if it updated an existing value.
func storeToSyncMap[K, V any](m *sync.Map, k K, v V) (old V, stored bool) {
	if oldAny, loaded := m.LoadOrStore(k, v); loaded {
		if m.CompareAndSwap(k, oldAny, v) {
			old, _ := oldAny.(V)
			return old, false
		}
		// Try again from the beginning.
		return storeToSyncMap(m, k, v)
	}
	var zero V
	return zero, true
}

// loadFromSyncMap retrieves a value from a sync.Map for the given key.
func loadFromSyncMap[K, V any](m *sync.Map, k K) (V, error) {
	latest, ok := m.Load(k)
	if !ok {
		var zero V
		return zero, fmt.Errorf("key %v not found in sync map", k)
	}
	v, ok := latest.(V)
	if !ok {
		var zero V
		return zero, fmt.Errorf("loaded value is not of expected type: %T", latest)
	}
	return v, nil
}

// toMessage converts disgo's message into the entity the cache holds. Gateway messages omit
// the guild ID, so it is taken from the event.
func toMessage(m disgodiscord.Message, guildID *snowflake.ID) (discord.Message, error) {
	msg, err := convert[discord.Message](m)
	if err != nil {
		return msg, err
	}
	if msg.GuildID == 0 && guildID != nil {
		msg.GuildID = *guildID
	}
	return msg, nil
}

// convert re-decodes a disgo value as its counterpart in this module. Both follow the API's
// JSON shape.
func convert[T any](v any) (T, error) {
	var out T
	data, err := json.Marshal(v)
	if err != nil {
		return out, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("failed to unmarshal %T: %w", out, err)
	}
	return out, nil
}
