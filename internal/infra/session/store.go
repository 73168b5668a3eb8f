// Package session holds live conversational state: transcripts, carts and
// the per-session turn flag. State is in-memory by design; a session lives
// and dies with the process, orders are what get persisted.
package session

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"diner/config"
	"diner/internal/domain/entity"
	"diner/internal/domain/repository"
)

const (
	// Sessions idle past their TTL are dropped so abandoned guest carts do
	// not pin memory for the process lifetime.
	defaultSessionTTL = 24 * time.Hour

	sweepInterval = time.Minute
)

// entry pairs a session with its own lock so independent sessions never
// block each other.
type entry struct {
	mu   sync.Mutex
	sess *entity.Session
}

// Store is the in-memory SessionRepository implementation.
type Store struct {
	mu       sync.Mutex // Guards the map, not the sessions.
	sessions map[uuid.UUID]*entry
	greeting string
	ttl      time.Duration
	logger   *slog.Logger
}

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewStore is the fx constructor for the session store. The janitor sweeping
// idle sessions runs for the application lifetime.
func NewStore(params Params) repository.SessionRepository {
	s := newStore(params.Config)
	s.logger = params.Logger

	janitorCtx, cancelJanitor := context.WithCancel(context.Background())
	params.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go s.janitor(janitorCtx)

			return nil
		},
		OnStop: func(_ context.Context) error {
			cancelJanitor()

			return nil
		},
	})

	return s
}

func newStore(cfg *config.Config) *Store {
	greeting := ""
	ttl := defaultSessionTTL
	if cfg != nil && cfg.Chat != nil {
		greeting = cfg.Chat.Greeting
		if cfg.Chat.SessionTTL > 0 {
			ttl = cfg.Chat.SessionTTL
		}
	}

	return &Store{
		sessions: make(map[uuid.UUID]*entry),
		greeting: greeting,
		ttl:      ttl,
	}
}

// WithSession runs fn with exclusive access to the session, creating it on
// first touch. A non-nil userID binds the session to that user.
func (s *Store) WithSession(_ context.Context, id uuid.UUID, userID uuid.UUID, fn func(sess *entity.Session) error) error {
	e := s.entryFor(id)

	e.mu.Lock()
	defer e.mu.Unlock()

	if userID != uuid.Nil && e.sess.UserID == uuid.Nil {
		e.sess.UserID = userID
	}

	err := fn(e.sess)
	// Any exclusive touch counts as activity for the idle sweep, so a cart
	// being worked on never expires under the customer.
	e.sess.UpdatedAt = time.Now()

	return err
}

// ViewSession runs fn with exclusive access to an existing session.
func (s *Store) ViewSession(_ context.Context, id uuid.UUID, fn func(sess *entity.Session) error) error {
	s.mu.Lock()
	e, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return repository.ErrSessionNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return fn(e.sess)
}

// ListByUser returns the user's session summaries, most recent first.
func (s *Store) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.SessionSummary, error) {
	s.mu.Lock()
	entries := make([]*entry, 0, len(s.sessions))
	for _, e := range s.sessions {
		entries = append(entries, e)
	}
	s.mu.Unlock()

	var out []*entity.SessionSummary
	for _, e := range entries {
		e.mu.Lock()
		if e.sess.UserID == userID {
			out = append(out, &entity.SessionSummary{
				ID:           e.sess.ID,
				Title:        e.sess.Title,
				MessageCount: len(e.sess.Messages),
				UpdatedAt:    e.sess.UpdatedAt,
			})
		}
		e.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })

	return out, nil
}

// Delete removes a session and its cart.
func (s *Store) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(s.sessions, id)

	return nil
}

// entryFor returns the session entry, creating and seeding a new session
// when the id is unknown.
func (s *Store) entryFor(id uuid.UUID) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.sessions[id]; ok {
		return e
	}

	now := time.Now()
	sess := &entity.Session{
		ID:        id,
		Cart:      entity.NewCart(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if s.greeting != "" {
		sess.Messages = append(sess.Messages, entity.Message{
			Role:      entity.RoleAssistant,
			Content:   s.greeting,
			CreatedAt: now,
		})
	}

	e := &entry{sess: sess}
	s.sessions[id] = e

	return e
}

func (s *Store) janitor(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := s.sweep(now); removed > 0 && s.logger != nil {
				s.logger.Debug("Swept idle sessions", slog.Int("removed", removed))
			}
		}
	}
}

// sweep drops sessions idle past the TTL. Sessions mid-turn or currently
// locked by a request are never dropped.
func (s *Store) sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if !e.mu.TryLock() {
			continue
		}
		idle := !e.sess.Streaming && now.Sub(e.sess.UpdatedAt) > s.ttl
		e.mu.Unlock()

		if idle {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}
