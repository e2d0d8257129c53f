package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hexharbor/settlers-server-go/internal/game/resource"
)

// EventType indicates the category of a game event.
type EventType string

const (
	EventPhaseChanged       EventType = "PHASE_CHANGED"
	EventDiceRolled         EventType = "DICE_ROLLED"
	EventResourcesProduced  EventType = "RESOURCES_PRODUCED"
	EventBuildingPlaced     EventType = "BUILDING_PLACED"
	EventRoadPlaced         EventType = "ROAD_PLACED"
	EventRobberMoved        EventType = "ROBBER_MOVED"
	EventResourceStolen     EventType = "RESOURCE_STOLEN"
	EventCardsDiscarded     EventType = "CARDS_DISCARDED"
	EventDevelopmentPlayed  EventType = "DEVELOPMENT_PLAYED"
	EventBankWithdrawal     EventType = "BANK_WITHDRAWAL"
	EventTurnEnded          EventType = "TURN_ENDED"
	EventGameFinished       EventType = "GAME_FINISHED"
	EventProductionWithheld EventType = "PRODUCTION_WITHHELD"
)

// Event represents a state change that other subsystems may react to.
type Event struct {
	Type      EventType
	ID        string
	GameID    string
	Player    int // acting player, -1 when none
	Target    int // affected player (victim, producer), -1 when none
	Amount    int // dice sum, victory points, card count
	Position  string
	Resources resource.Group
	Phase     Phase
	Timestamp time.Time
}

// NewEvent creates an event with a fresh ID and no target.
func NewEvent(eventType EventType, gameID string, player int) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		GameID:    gameID,
		Player:    player,
		Target:    -1,
		Timestamp: time.Now(),
	}
}

// NewEventWithAmount creates an event carrying a numeric value.
func NewEventWithAmount(eventType EventType, gameID string, player, amount int) Event {
	evt := NewEvent(eventType, gameID, player)
	evt.Amount = amount
	return evt
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// TypedListener defines a callback that reacts to a specific event type.
type TypedListener struct {
	Handle    int
	EventType EventType
	Callback  func(Event)
}

// EventBus provides a synchronous publish/subscribe implementation with type
// filtering. Listeners must not subscribe or unsubscribe from inside a
// callback.
type EventBus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	order          []int
	typedListeners map[EventType][]TypedListener
	nextHandle     int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]TypedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.listeners[handle] = listener
	bus.order = append(bus.order, handle)
	return handle
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.typedListeners[eventType] = append(bus.typedListeners[eventType], TypedListener{
		Handle:    handle,
		EventType: eventType,
		Callback:  callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by handle, whether it was
// registered with Subscribe or SubscribeTyped.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	if _, ok := bus.listeners[handle]; ok {
		delete(bus.listeners, handle)
		for i, h := range bus.order {
			if h == handle {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
		return
	}
	for eventType, listeners := range bus.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].Handle == handle {
				bus.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to all registered listeners synchronously, in
// subscription order.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	defer bus.mu.RUnlock()

	for _, handle := range bus.order {
		bus.listeners[handle](event)
	}
	for _, listener := range bus.typedListeners[event.Type] {
		listener.Callback(event)
	}
}

// PublishBatch publishes events in order.
func (bus *EventBus) PublishBatch(events []Event) {
	for _, event := range events {
		bus.Publish(event)
	}
}
