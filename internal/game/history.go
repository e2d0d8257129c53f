package game

import (
	"sync"

	"go.uber.org/zap"
)

// History is the sequence of views recorded for one game, with a cursor
// for stepping through them.
type History struct {
	GameID  string
	views   []*View
	current int
	mu      sync.RWMutex
}

func NewHistory(gameID string) *History {
	return &History{GameID: gameID}
}

// Record appends a snapshot.
func (h *History) Record(view *View) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.views = append(h.views, view)
}

// Start rewinds the cursor.
func (h *History) Start() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = 0
}

// Next returns the view under the cursor and advances it, or nil at the end.
func (h *History) Next() *View {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current < len(h.views) {
		v := h.views[h.current]
		h.current++
		return v
	}
	return nil
}

// Previous steps the cursor back and returns that view, or nil at the start.
func (h *History) Previous() *View {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current > 0 {
		h.current--
		return h.views[h.current]
	}
	return nil
}

// Skip moves the cursor by count, clamped to the recorded range.
func (h *History) Skip(count int) *View {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.views) == 0 {
		return nil
	}
	h.current = min(max(h.current+count, 0), len(h.views)-1)
	return h.views[h.current]
}

func (h *History) Size() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.views)
}

// At returns the view at index, or nil when out of range.
func (h *History) At(index int) *View {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if index >= 0 && index < len(h.views) {
		return h.views[index]
	}
	return nil
}

// Recorder keeps a History per game while recording is on.
type Recorder struct {
	logger    *zap.Logger
	mu        sync.RWMutex
	histories map[string]*History
	enabled   map[string]bool
}

func NewRecorder(logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		logger:    logger,
		histories: make(map[string]*History),
		enabled:   make(map[string]bool),
	}
}

// StartRecording begins a fresh history for gameID.
func (r *Recorder) StartRecording(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.histories[gameID] = NewHistory(gameID)
	r.enabled[gameID] = true
	r.logger.Info("started recording", zap.String("game_id", gameID))
}

// StopRecording keeps the history but records nothing further.
func (r *Recorder) StopRecording(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[gameID] = false
	r.logger.Info("stopped recording", zap.String("game_id", gameID))
}

// Record appends view to gameID's history if recording is on.
func (r *Recorder) Record(gameID string, view *View) {
	r.mu.RLock()
	enabled := r.enabled[gameID]
	history := r.histories[gameID]
	r.mu.RUnlock()

	if !enabled || history == nil {
		return
	}
	history.Record(view)
	r.logger.Debug("recorded view",
		zap.String("game_id", gameID),
		zap.Int("views", history.Size()),
	)
}

func (r *Recorder) History(gameID string) (*History, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.histories[gameID]
	return h, ok
}

// Clear drops gameID's history.
func (r *Recorder) Clear(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.histories, gameID)
	delete(r.enabled, gameID)
}

func (r *Recorder) IsRecording(gameID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[gameID]
}
