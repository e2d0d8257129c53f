package game

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hexharbor/settlers-server-go/internal/game/board"
	"go.uber.org/zap"
)

type session struct {
	mu      sync.RWMutex
	game    *Game
	created time.Time
}

// Manager owns the running games of a process. Calls on different games
// run in parallel; calls on one game are serialised.
type Manager struct {
	logger   *zap.Logger
	recorder *Recorder

	mu       sync.RWMutex
	sessions map[string]*session
}

func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		logger:   logger,
		recorder: NewRecorder(logger),
		sessions: make(map[string]*session),
	}
}

// Create starts a game and records its opening view.
func (m *Manager) Create(id string, settings Settings, b *board.Board) (string, error) {
	g, err := NewGame(id, settings, b, m.logger)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	if _, ok := m.sessions[g.ID()]; ok {
		m.mu.Unlock()
		return "", fmt.Errorf("game %s already exists", g.ID())
	}
	m.sessions[g.ID()] = &session{game: g, created: time.Now()}
	m.mu.Unlock()

	m.recorder.StartRecording(g.ID())
	m.recorder.Record(g.ID(), BuildView(g))
	m.logger.Info("session started", zap.String("game_id", g.ID()))
	return g.ID(), nil
}

// Do runs fn with exclusive access to game id. The resulting view is
// recorded when fn succeeds.
func (m *Manager) Do(id string, fn func(*Game) error) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.game); err != nil {
		return err
	}
	m.recorder.Record(id, BuildView(s.game))
	return nil
}

// View runs fn with shared access to game id. fn must not mutate the game.
func (m *Manager) View(id string, fn func(*Game) error) error {
	s, err := m.session(id)
	if err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.game)
}

// History returns the recorded views of game id.
func (m *Manager) History(id string) (*History, error) {
	h, ok := m.recorder.History(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	return h, nil
}

// End removes game id and its history.
func (m *Manager) End(id string) error {
	m.mu.Lock()
	_, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	m.recorder.StopRecording(id)
	m.recorder.Clear(id)
	m.logger.Info("session ended", zap.String("game_id", id))
	return nil
}

// List returns the ids of running games, oldest first.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		if c := m.sessions[a].created.Compare(m.sessions[b].created); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	return ids
}

func (m *Manager) session(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, id)
	}
	return s, nil
}
