// internal/app/store/thresholds/store.go

// Package thresholds holds the per-session specification limits for every
// monitored parameter. Limits live in memory for the life of an operator
// session: switching machines or parameters never resets them, and they are
// never persisted.
package thresholds

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/castwatch/internal/domain/models"
)

// Side selects which bound a Set call updates.
type Side string

const (
	SideLower Side = "lower"
	SideUpper Side = "upper"
)

// IsValidSide reports whether s names a threshold side.
func IsValidSide(s string) bool {
	return Side(s) == SideLower || Side(s) == SideUpper
}

// Store keeps one limits table per operator session. Each session carries its
// own mutex; the outer lock only guards the session map itself.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionLimits
}

type sessionLimits struct {
	mu       sync.Mutex
	limits   map[models.Parameter]models.Thresholds
	lastSeen time.Time
}

// New creates an empty threshold store.
func New() *Store {
	return &Store{sessions: make(map[string]*sessionLimits)}
}

// session returns the limits table for sessionID, creating it with the fixed
// engineering defaults on first touch.
func (s *Store) session(sessionID string) *sessionLimits {
	s.mu.RLock()
	sess, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[sessionID]; ok {
		return sess
	}
	limits := make(map[models.Parameter]models.Thresholds, len(models.AllParameters))
	for _, p := range models.AllParameters {
		limits[p] = models.DefaultThresholds(p)
	}
	sess = &sessionLimits{limits: limits, lastSeen: time.Now().UTC()}
	s.sessions[sessionID] = sess
	return sess
}

// Get returns the current (lower, upper) pair for the parameter. Every known
// parameter always has a record; an identifier outside the monitored set is a
// contract violation and returns models.ErrUnknownParameter.
func (s *Store) Get(sessionID string, p models.Parameter) (models.Thresholds, error) {
	if !models.IsValidParameter(string(p)) {
		return models.Thresholds{}, models.ErrUnknownParameter
	}
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now().UTC()
	return sess.limits[p], nil
}

// All returns the full limits table for the session, one pair per parameter.
func (s *Store) All(sessionID string) map[models.Parameter]models.Thresholds {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now().UTC()
	out := make(map[models.Parameter]models.Thresholds, len(sess.limits))
	for p, t := range sess.limits {
		out[p] = t
	}
	return out
}

// Set updates one bound from raw operator input, parsed as an integer.
// Non-numeric input (including the empty string an operator produces while
// typing) is silently ignored and the prior value retained, so partial
// keystrokes never corrupt state or surface errors. No ordering is enforced
// between lower and upper.
func (s *Store) Set(sessionID string, p models.Parameter, side Side, raw string) error {
	if !models.IsValidParameter(string(p)) {
		return models.ErrUnknownParameter
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil // silent rejection
	}

	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastSeen = time.Now().UTC()

	t := sess.limits[p]
	switch side {
	case SideLower:
		t.Lower = &value
	case SideUpper:
		t.Upper = &value
	}
	sess.limits[p] = t
	return nil
}

// PurgeIdle drops sessions not touched within maxIdle and returns the number
// removed. Called from the background task runner; threshold state is cheap
// to rebuild from defaults, so expiry only costs an operator their overrides.
func (s *Store) PurgeIdle(maxIdle time.Duration) int {
	cutoff := time.Now().UTC().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
