package rules

import (
	"sort"
	"sync"

	"github.com/hexharbor/settlers-server-go/internal/game/resource"
)

// WatcherScope defines how long a watcher's tally lives.
type WatcherScope int

const (
	// WatcherScopeGame tracks events for the entire game.
	WatcherScopeGame WatcherScope = iota
	// WatcherScopeTurn is reset whenever a turn ends.
	WatcherScopeTurn
)

func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeGame:
		return "GAME"
	case WatcherScopeTurn:
		return "TURN"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes game events and keeps a running tally.
type Watcher interface {
	Watch(event Event)
	Reset()
	Scope() WatcherScope
	Key() string
}

// WatcherRegistry manages the watchers of one game.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	keys     []string
}

// NewWatcherRegistry creates an empty registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{watchers: make(map[string]Watcher)}
}

// Add registers watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) Add(watcher Watcher) {
	if watcher == nil {
		return
	}
	wr.mu.Lock()
	defer wr.mu.Unlock()
	key := watcher.Key()
	if _, ok := wr.watchers[key]; !ok {
		wr.keys = append(wr.keys, key)
		sort.Strings(wr.keys)
	}
	wr.watchers[key] = watcher
}

// Remove drops the watcher registered under key.
func (wr *WatcherRegistry) Remove(key string) {
	wr.mu.Lock()
	defer wr.mu.Unlock()
	if _, ok := wr.watchers[key]; !ok {
		return
	}
	delete(wr.watchers, key)
	for i, k := range wr.keys {
		if k == key {
			wr.keys = append(wr.keys[:i], wr.keys[i+1:]...)
			break
		}
	}
}

// Get returns the watcher registered under key, or nil.
func (wr *WatcherRegistry) Get(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// Notify passes event to every watcher in key order. Turn-scoped watchers
// are reset once they have seen a TURN_ENDED event, and again when a fresh
// turn begins, which also covers the end of opening placement.
func (wr *WatcherRegistry) Notify(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	for _, key := range wr.keys {
		wr.watchers[key].Watch(event)
	}
	if event.Type == EventTurnEnded || turnBegins(event) {
		for _, key := range wr.keys {
			if w := wr.watchers[key]; w.Scope() == WatcherScopeTurn {
				w.Reset()
			}
		}
	}
}

func turnBegins(event Event) bool {
	return event.Type == EventPhaseChanged && event.Phase.IsTurn() &&
		event.Phase.Turn == PreRoll && event.Phase.Development == Ready
}

// ProductionWatcher totals the resources each player has received from
// the board, opening payouts included.
type ProductionWatcher struct {
	mu     sync.Mutex
	totals map[int]resource.Group
}

// ProductionWatcherKey is the registry key of ProductionWatcher.
const ProductionWatcherKey = "production"

func NewProductionWatcher() *ProductionWatcher {
	return &ProductionWatcher{totals: make(map[int]resource.Group)}
}

func (w *ProductionWatcher) Watch(event Event) {
	if event.Type != EventResourcesProduced {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.totals[event.Target] = w.totals[event.Target].Plus(event.Resources)
}

func (w *ProductionWatcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.totals = make(map[int]resource.Group)
}

func (w *ProductionWatcher) Scope() WatcherScope { return WatcherScopeGame }
func (w *ProductionWatcher) Key() string         { return ProductionWatcherKey }

// Total returns what player has produced so far.
func (w *ProductionWatcher) Total(player int) resource.Group {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.totals[player]
}

// RollWatcher keeps a histogram of dice sums.
type RollWatcher struct {
	mu     sync.Mutex
	counts [13]int
}

// RollWatcherKey is the registry key of RollWatcher.
const RollWatcherKey = "rolls"

func NewRollWatcher() *RollWatcher { return &RollWatcher{} }

func (w *RollWatcher) Watch(event Event) {
	if event.Type != EventDiceRolled || event.Amount < 2 || event.Amount > 12 {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.counts[event.Amount]++
}

func (w *RollWatcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.counts = [13]int{}
}

func (w *RollWatcher) Scope() WatcherScope { return WatcherScopeGame }
func (w *RollWatcher) Key() string         { return RollWatcherKey }

// Histogram maps each dice sum rolled at least once to its count.
func (w *RollWatcher) Histogram() map[int]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[int]int)
	for sum, n := range w.counts {
		if n > 0 {
			out[sum] = n
		}
	}
	return out
}

// TurnBuildWatcher counts pieces placed during the current turn.
type TurnBuildWatcher struct {
	mu     sync.Mutex
	placed int
}

// TurnBuildWatcherKey is the registry key of TurnBuildWatcher.
const TurnBuildWatcherKey = "turn_builds"

func NewTurnBuildWatcher() *TurnBuildWatcher { return &TurnBuildWatcher{} }

func (w *TurnBuildWatcher) Watch(event Event) {
	if event.Type != EventBuildingPlaced && event.Type != EventRoadPlaced {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.placed++
}

func (w *TurnBuildWatcher) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.placed = 0
}

func (w *TurnBuildWatcher) Scope() WatcherScope { return WatcherScopeTurn }
func (w *TurnBuildWatcher) Key() string         { return TurnBuildWatcherKey }

// Placed returns the number of pieces placed this turn.
func (w *TurnBuildWatcher) Placed() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.placed
}
