package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/game"
	"github.com/jvirtane/barfeud/internal/random"
)

const codeLength = 6

// ErrSessionNotFound is returned when a join code does not match a live
// session.
var ErrSessionNotFound = errors.NewSentinel("session not found")

// Manager owns the live sessions, keyed by join code.
type Manager struct {
	cfg    game.Config
	logger *slog.Logger
	sink   Sink
	store  Store

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewManager(cfg game.Config, logger *slog.Logger, sink Sink, store Store) *Manager {
	return &Manager{
		cfg:      cfg,
		logger:   logger.With("source", "SessionManager"),
		sink:     sink,
		store:    store,
		sessions: make(map[string]*Session),
	}
}

// Create starts a new session with a fresh join code and publishes its
// initial snapshot so displays can connect right away.
func (m *Manager) Create(ctx context.Context, fastMoneyQuestions []game.FastMoneyQuestion) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var code string
	for {
		var err error
		if code, err = random.Code(codeLength); err != nil {
			return nil, errors.Wrap(err, "generate session code")
		}
		if _, taken := m.sessions[code]; !taken {
			break
		}
	}

	sess, err := newSession(code, fastMoneyQuestions, m.cfg, m.logger, m.sink, m.store)
	if err != nil {
		return nil, err
	}
	m.sessions[code] = sess

	snapshot := sess.CurrentSnapshot()
	m.sink.Publish(code, snapshot)
	if err = m.store.Save(ctx, snapshot); err != nil {
		m.logger.LogAttrs(ctx, slog.LevelWarn, "persist initial snapshot",
			slog.String("code", code), errors.SlogError(err))
	}

	m.logger.LogAttrs(ctx, slog.LevelInfo, "session created", slog.String("code", code))
	return sess, nil
}

// Get returns the live session for a join code.
func (m *Manager) Get(code string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[code]
	if !ok {
		return nil, errors.Wrap(ErrSessionNotFound, "get session", slog.String("code", code))
	}
	return sess, nil
}

// Remove ends a session: its countdown stops and its subscribers are
// disconnected.
func (m *Manager) Remove(code string) {
	m.mu.Lock()
	sess, ok := m.sessions[code]
	delete(m.sessions, code)
	m.mu.Unlock()

	if ok {
		sess.Close()
		m.sink.Drop(code)
	}
}

// Close ends every session, for server shutdown.
func (m *Manager) Close() {
	m.mu.Lock()
	codes := make([]string, 0, len(m.sessions))
	for code := range m.sessions {
		codes = append(codes, code)
	}
	m.mu.Unlock()

	for _, code := range codes {
		m.Remove(code)
	}
}
