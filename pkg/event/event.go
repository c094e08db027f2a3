// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-skirmish/pkg/entity"
	"github.com/opd-ai/go-skirmish/pkg/physics"
)

// Type represents the type of event
type Type string

// Tick event types
const (
	Explosion       Type = "explosion"
	Damage          Type = "damage"
	Score           Type = "score"
	EntityDestroyed Type = "entity_destroyed"
	WaveAdvanced    Type = "wave_advanced"
	WaveCleared     Type = "wave_cleared"
	Respawned       Type = "respawned"
	FloatingText    Type = "floating_text"
	WeaponFired     Type = "weapon_fired"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]subscription
	all      []subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// SubscribeAll registers a handler that receives every event
func (b *Bus) SubscribeAll(handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.all = append(b.all, subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a handler. Unknown ids are ignored.
func (b *Bus) Unsubscribe(id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for eventType, subs := range b.handlers {
		b.handlers[eventType] = removeSubscription(subs, id)
	}
	b.all = removeSubscription(b.all, id)
}

func removeSubscription(subs []subscription, id SubscriptionID) []subscription {
	for i, s := range subs {
		if s.id == id {
			out := make([]subscription, 0, len(subs)-1)
			out = append(out, subs[:i]...)
			return append(out, subs[i+1:]...)
		}
	}
	return subs
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers := b.handlers[event.GetType()]
	all := b.all
	b.mu.RUnlock()

	for _, s := range handlers {
		s.handler(event)
	}
	for _, s := range all {
		s.handler(event)
	}
}

// ExplosionEvent marks a visual blast
type ExplosionEvent struct {
	BaseEvent
	Position physics.Vector2D
	Size     float64
}

// NewExplosionEvent creates a new explosion event
func NewExplosionEvent(source interface{}, position physics.Vector2D, size float64) *ExplosionEvent {
	return &ExplosionEvent{
		BaseEvent: BaseEvent{EventType: Explosion, Source: source},
		Position:  position,
		Size:      size,
	}
}

// DamageEvent reports a hit on a target. Absorbed hits carry the shield
// energy left instead of a health change.
type DamageEvent struct {
	BaseEvent
	TargetID   entity.ID
	TargetKind entity.Kind
	Owner      entity.Owner
	Amount     float64
	Absorbed   bool
	Remaining  float64
}

// NewDamageEvent creates a new damage event
func NewDamageEvent(source interface{}, target entity.ID, kind entity.Kind, owner entity.Owner, amount float64, absorbed bool, remaining float64) *DamageEvent {
	return &DamageEvent{
		BaseEvent:  BaseEvent{EventType: Damage, Source: source},
		TargetID:   target,
		TargetKind: kind,
		Owner:      owner,
		Amount:     amount,
		Absorbed:   absorbed,
		Remaining:  remaining,
	}
}

// ScoreEvent reports a score change
type ScoreEvent struct {
	BaseEvent
	Delta  int
	Total  int
	Reason entity.Kind
}

// NewScoreEvent creates a new score event
func NewScoreEvent(source interface{}, delta, total int, reason entity.Kind) *ScoreEvent {
	return &ScoreEvent{
		BaseEvent: BaseEvent{EventType: Score, Source: source},
		Delta:     delta,
		Total:     total,
		Reason:    reason,
	}
}

// DestroyedEvent reports that an entity left the simulation through damage
type DestroyedEvent struct {
	BaseEvent
	EntityID entity.ID
	Kind     entity.Kind
	Position physics.Vector2D
	Children int
}

// NewDestroyedEvent creates a new entity destroyed event
func NewDestroyedEvent(source interface{}, id entity.ID, kind entity.Kind, position physics.Vector2D, children int) *DestroyedEvent {
	return &DestroyedEvent{
		BaseEvent: BaseEvent{EventType: EntityDestroyed, Source: source},
		EntityID:  id,
		Kind:      kind,
		Position:  position,
		Children:  children,
	}
}

// WaveEvent carries a wave number. For WaveCleared it is the wave that was
// just cleared; for WaveAdvanced it is the wave now starting.
type WaveEvent struct {
	BaseEvent
	Wave int
}

// NewWaveEvent creates a new wave event
func NewWaveEvent(eventType Type, source interface{}, wave int) *WaveEvent {
	return &WaveEvent{
		BaseEvent: BaseEvent{EventType: eventType, Source: source},
		Wave:      wave,
	}
}

// RespawnEvent reports a craft returning to play
type RespawnEvent struct {
	BaseEvent
	EntityID entity.ID
	Position physics.Vector2D
}

// NewRespawnEvent creates a new respawn event
func NewRespawnEvent(source interface{}, id entity.ID, position physics.Vector2D) *RespawnEvent {
	return &RespawnEvent{
		BaseEvent: BaseEvent{EventType: Respawned, Source: source},
		EntityID:  id,
		Position:  position,
	}
}

// TextEvent carries a floating label for the presentation layer
type TextEvent struct {
	BaseEvent
	Position physics.Vector2D
	Text     string
	Tone     entity.Tone
}

// NewTextEvent creates a new floating text event
func NewTextEvent(source interface{}, position physics.Vector2D, text string, tone entity.Tone) *TextEvent {
	return &TextEvent{
		BaseEvent: BaseEvent{EventType: FloatingText, Source: source},
		Position:  position,
		Text:      text,
		Tone:      tone,
	}
}

// WeaponEvent reports a volley or beam leaving a shooter
type WeaponEvent struct {
	BaseEvent
	ShooterID entity.ID
	Owner     entity.Owner
	Beam      bool
	Count     int
}

// NewWeaponEvent creates a new weapon fired event
func NewWeaponEvent(source interface{}, shooter entity.ID, owner entity.Owner, beam bool, count int) *WeaponEvent {
	return &WeaponEvent{
		BaseEvent: BaseEvent{EventType: WeaponFired, Source: source},
		ShooterID: shooter,
		Owner:     owner,
		Beam:      beam,
		Count:     count,
	}
}
